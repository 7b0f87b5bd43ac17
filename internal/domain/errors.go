package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotFoundError indicates a lookup by id or email found nothing.
type NotFoundError struct {
	Resource string
	Ref      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Ref)
}

// NewNotFound builds a NotFoundError for an entity referenced by id.
func NewNotFound(resource string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Resource: resource, Ref: id.String()}
}

// DuplicateEmailError indicates the candidate or interviewer email is taken.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// DuplicateFeedbackError indicates feedback already exists for the
// (interview, interviewer) pair.
type DuplicateFeedbackError struct {
	InterviewID   uuid.UUID
	InterviewerID uuid.UUID
}

func (e *DuplicateFeedbackError) Error() string {
	return fmt.Sprintf("feedback already submitted for interview %s by interviewer %s",
		e.InterviewID, e.InterviewerID)
}

// SchedulingConflictError carries the conflicting slot so the HTTP layer
// can surface interviewerId and conflictTime in the response metadata.
type SchedulingConflictError struct {
	InterviewerID uuid.UUID
	ConflictTime  time.Time
}

func (e *SchedulingConflictError) Error() string {
	return fmt.Sprintf("scheduling conflict: interviewer %s already has an interview at %s",
		e.InterviewerID, e.ConflictTime.Format(time.RFC3339))
}

// ValidationError indicates a request field failed a domain constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IllegalTransitionError indicates a move not present in the transition
// table of the candidate pipeline or the interview lifecycle.
type IllegalTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal %s transition: %s -> %s", e.Entity, e.From, e.To)
}

// NoOpTransitionError indicates the target state equals the current state.
type NoOpTransitionError struct {
	Entity string
	State  string
}

func (e *NoOpTransitionError) Error() string {
	return fmt.Sprintf("%s is already in state %s", e.Entity, e.State)
}

// InvalidStateError indicates the entity's current state forbids the
// requested operation (e.g. feedback before the interview completed).
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

// ForbiddenError indicates a business rule refuses the operation outright
// (deleting a hired candidate, deleting an interviewer with interviews,
// feedback from a non-panel interviewer).
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// PayloadTooLargeError indicates an upload exceeded the configured limit.
type PayloadTooLargeError struct {
	LimitBytes int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload exceeds the %d byte upload limit", e.LimitBytes)
}

// ExternalServiceError indicates an outbound dependency was unreachable.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
