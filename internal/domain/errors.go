package domain

import (
	"errors"
	"fmt"
)

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Engine errors
	ErrTaskNotFound    = errors.New("task not found in today's list")
	ErrUnknownCategory = errors.New("unknown task category")
	ErrStaleState      = errors.New("state changed by another writer; reload before mutating")

	// Notice errors
	ErrNoticeNotFound = errors.New("notice not found")

	// Remote sync errors
	ErrRemoteDisabled    = errors.New("remote sync is disabled")
	ErrRemoteUnavailable = errors.New("remote store unreachable")
)

// PersistenceError wraps a local store failure with the operation and
// key involved, so callers surface, log, or ignore it deliberately.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("persistence: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
