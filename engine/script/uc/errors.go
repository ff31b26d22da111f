package uc

import "github.com/podded/podded/engine/core"

var (
	ErrNoDocument error = &core.ArgumentError{Reason: "no document given, the first argument must be a podded document"}
	// ErrAborted is returned when the user declines a confirmation.
	ErrAborted       error = &core.ArgumentError{Reason: "Aborted"}
	ErrUnknownAction error = &core.ArgumentError{Reason: "unknown action"}
)
