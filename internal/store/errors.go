package store

import (
	"errors"
	"fmt"

	"github.com/BarkinBalci/launch-tracker/internal/blob"
)

var (
	// ErrConflictExhausted means every attempt lost the compare-and-swap race.
	ErrConflictExhausted = errors.New("conflict exhausted")
	// ErrConflict means a Replace was based on a stale version.
	ErrConflict = errors.New("store: version conflict")
)

// FailureKind classifies a failed append.
type FailureKind string

const (
	KindConflictExhausted FailureKind = "conflict_exhausted"
	KindHardError         FailureKind = "hard_error"
)

// AppendError is returned by Append. Whether the record reached the log is
// unknown to the caller; it must be surfaced for human follow-up.
type AppendError struct {
	Kind     FailureKind
	Attempts int
	Err      error
}

func (e *AppendError) Error() string {
	return fmt.Sprintf("append failed after %d attempt(s) (%s): %v", e.Attempts, e.Kind, e.Err)
}

func (e *AppendError) Unwrap() error {
	return e.Err
}

// IsConflictExhausted reports whether err is an append that ran out of attempts on conflicts.
func IsConflictExhausted(err error) bool {
	var appendErr *AppendError
	return errors.As(err, &appendErr) && appendErr.Kind == KindConflictExhausted
}

func isConflict(err error) bool {
	return errors.Is(err, blob.ErrVersionMismatch) || errors.Is(err, blob.ErrAlreadyExists)
}
