// Package lock is the two-state gate over the LOCK slot. Every request is
// checked against the document state before any patch is planned.
package lock

import (
	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/engine/script"
)

type State int

const (
	Unlocked State = iota
	Locked
)

func (s State) String() string {
	if s == Locked {
		return "locked"
	}
	return "unlocked"
}

// Request classifies what an operation wants to do to the document.
type Request int

const (
	// Read never touches the document.
	Read Request = iota
	// Mutate patches BUILD, COMMAND or a template.
	Mutate
	// Lock is a confirmed `lock`.
	Lock
	// Force is `lock force`, the only request allowed while locked.
	Force
)

// StateOf reads the gate state from a document.
func StateOf(doc *script.Document) State {
	if doc.Locked() {
		return Locked
	}
	return Unlocked
}

// Check returns the state the document is in after the request, or a
// LockedError when the request is rejected.
func Check(state State, req Request, operation string) (State, error) {
	switch req {
	case Mutate, Lock:
		if state == Locked {
			return state, &core.LockedError{Operation: operation}
		}
		if req == Lock {
			return Locked, nil
		}
		return state, nil
	case Force:
		if state == Locked {
			return Unlocked, nil
		}
		return Locked, nil
	default:
		return state, nil
	}
}

// Guard rejects a mutation of a locked document.
func Guard(doc *script.Document, operation string) error {
	_, err := Check(StateOf(doc), Mutate, operation)
	return err
}
