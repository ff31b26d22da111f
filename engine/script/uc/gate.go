package uc

import (
	"github.com/podded/podded/engine/lock"
	"github.com/podded/podded/engine/script"
)

// lockedFor rejects operation on a locked document before any file is read
// or patch planned.
func lockedFor(doc *script.Document, operation string) error {
	return lock.Guard(doc, operation)
}
