package domain

import (
	"fmt"
	"time"
)

// ValidationError marks malformed or out-of-whitelist input. The caller can
// recover by resubmitting corrected data.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError marks an absent session, patient, entry or staff member.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ForbiddenError marks a failed ownership check.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// ConflictError marks a uniqueness-guard violation. ExistingAt carries the
// prior record's timestamp so the boundary can tell the user why the write
// was rejected instead of a bare "already exists".
type ConflictError struct {
	Message    string
	ExistingAt time.Time
}

func (e *ConflictError) Error() string {
	if e.ExistingAt.IsZero() {
		return e.Message
	}
	return fmt.Sprintf("%s (existing record from %s)", e.Message, e.ExistingAt.Format(time.RFC3339))
}

// ConsistencyError marks a divergence between a session's cached total and
// the re-summed entry durations. It should never surface in normal
// operation; callers log it and fall back to the recomputed value.
type ConsistencyError struct {
	SessionID  int64
	Cached     int32
	Recomputed int32
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("session %d cached total %d diverges from recomputed %d", e.SessionID, e.Cached, e.Recomputed)
}
