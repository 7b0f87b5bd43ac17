package domain

import (
	"time"

	"github.com/google/uuid"
)

// Interviewer is a panel member who conducts interviews. Interviewers with
// interviews on record are archived rather than deleted so that history
// keeps resolving.
type Interviewer struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Department string    `json:"department,omitempty" db:"department"`
	Title      string    `json:"title,omitempty" db:"title"`
	Expertise  []string  `json:"expertise,omitempty" db:"expertise"`
	Active     bool      `json:"active" db:"active"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateInterviewerRequest carries the fields of POST /api/interviewers.
type CreateInterviewerRequest struct {
	Name       string   `json:"name" binding:"required"`
	Email      string   `json:"email" binding:"required,email"`
	Department string   `json:"department"`
	Title      string   `json:"title"`
	Expertise  []string `json:"expertise"`
}

// UpdateInterviewerRequest updates mutable interviewer fields.
type UpdateInterviewerRequest struct {
	Name       string   `json:"name"`
	Department string   `json:"department"`
	Title      string   `json:"title"`
	Expertise  []string `json:"expertise"`
}
