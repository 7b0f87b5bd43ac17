package domain

import (
	"time"

	"github.com/google/uuid"
)

// StageChange is an append-only record of a candidate pipeline transition.
// FromStage is nil for the initial APPLIED record.
type StageChange struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	CandidateID uuid.UUID       `json:"candidateId" db:"candidate_id"`
	FromStage   *CandidateStage `json:"fromStage" db:"from_stage"`
	ToStage     CandidateStage  `json:"toStage" db:"to_stage"`
	ChangedBy   string          `json:"changedBy" db:"changed_by"`
	Reason      string          `json:"reason,omitempty" db:"reason"`
	ChangedAt   time.Time       `json:"changedAt" db:"changed_at"`
}

// StatusChange is an append-only record of an interview lifecycle
// transition. FromStatus is nil for the initial SCHEDULED record.
type StatusChange struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	InterviewID uuid.UUID        `json:"interviewId" db:"interview_id"`
	FromStatus  *InterviewStatus `json:"fromStatus" db:"from_status"`
	ToStatus    InterviewStatus  `json:"toStatus" db:"to_status"`
	ChangedBy   string           `json:"changedBy" db:"changed_by"`
	Notes       string           `json:"notes,omitempty" db:"notes"`
	ChangedAt   time.Time        `json:"changedAt" db:"changed_at"`
}

// RecentActivity is a dashboard projection of a recent stage transition,
// joined with the candidate it belongs to.
type RecentActivity struct {
	CandidateID   uuid.UUID       `json:"candidateId"`
	CandidateName string          `json:"candidateName"`
	FromStage     *CandidateStage `json:"fromStage"`
	ToStage       CandidateStage  `json:"toStage"`
	ChangedBy     string          `json:"changedBy"`
	Reason        string          `json:"reason,omitempty"`
	ChangedAt     time.Time       `json:"changedAt"`
}

// StageDuration is the observed average dwell time in one pipeline stage,
// computed from adjacent transitions per candidate.
type StageDuration struct {
	Stage        CandidateStage `json:"stage"`
	AverageHours float64        `json:"averageHours"`
	Samples      int64          `json:"samples"`
}
