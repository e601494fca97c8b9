package utils

import "fmt"

// ValidationError rejects a request before any state change (missing/invalid
// fields, invalid lifecycle transition).
type ValidationError struct {
	Msg    string
	Fields map[string]string // optional per-field detail
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError marks an operation against an unknown or deleted id. The
// collection is left untouched; callers treat it as a no-op.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// RemoteCallFailure wraps a non-2xx response or transport error from an
// external endpoint. Never retried.
type RemoteCallFailure struct {
	Op     string
	Status int // 0 when the call never completed
	Err    error
}

func (e *RemoteCallFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed with status %d", e.Op, e.Status)
}

func (e *RemoteCallFailure) Unwrap() error { return e.Err }
