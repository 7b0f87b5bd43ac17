package domain

import (
	"time"

	"github.com/google/uuid"
)

// CandidateStage is a candidate's position in the hiring pipeline.
type CandidateStage string

const (
	StageApplied            CandidateStage = "APPLIED"
	StageScreening          CandidateStage = "SCREENING"
	StageInterviewScheduled CandidateStage = "INTERVIEW_SCHEDULED"
	StageInterviewCompleted CandidateStage = "INTERVIEW_COMPLETED"
	StageHired              CandidateStage = "HIRED"
	StageRejected           CandidateStage = "REJECTED"
)

// stageTransitions is the closed set of allowed pipeline moves.
// HIRED and REJECTED are terminal.
var stageTransitions = map[CandidateStage][]CandidateStage{
	StageApplied:            {StageScreening, StageRejected},
	StageScreening:          {StageInterviewScheduled, StageRejected},
	StageInterviewScheduled: {StageInterviewCompleted, StageRejected},
	StageInterviewCompleted: {StageHired, StageRejected},
	StageHired:              {},
	StageRejected:           {},
}

// ValidStage reports whether s is one of the six pipeline stages.
func ValidStage(s CandidateStage) bool {
	_, ok := stageTransitions[s]
	return ok
}

// CanTransitionStage reports whether the pipeline allows moving from one
// stage to another. Both persistence and HTTP validation go through here.
func CanTransitionStage(from, to CandidateStage) bool {
	for _, next := range stageTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the stage has no outgoing transitions.
func (s CandidateStage) Terminal() bool {
	return s == StageHired || s == StageRejected
}

// Candidate represents a job applicant moving through the pipeline.
// currentStage is denormalized for fast queries; the stage history table
// is the source of truth.
type Candidate struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	Name         string         `json:"name" db:"name"`
	Email        string         `json:"email" db:"email"`
	Phone        string         `json:"phone,omitempty" db:"phone"`
	ResumePath   string         `json:"resumePath,omitempty" db:"resume_path"`
	CurrentStage CandidateStage `json:"currentStage" db:"current_stage"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time      `json:"updatedAt" db:"updated_at"`
}

// CreateCandidateRequest carries the multipart fields of POST /api/candidates.
type CreateCandidateRequest struct {
	Name  string `form:"name" binding:"required"`
	Email string `form:"email" binding:"required,email"`
	Phone string `form:"phone"`
}

// UpdateCandidateRequest updates mutable profile fields. Email is the
// unique identifier and cannot change.
type UpdateCandidateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CandidateSearchFilter narrows candidate listings.
type CandidateSearchFilter struct {
	Name  string
	Email string
	Stage *CandidateStage
}
