package domain

import (
	"time"

	"github.com/google/uuid"
)

// InterviewStatus is an interview's position in its lifecycle.
type InterviewStatus string

const (
	StatusScheduled   InterviewStatus = "SCHEDULED"
	StatusInProgress  InterviewStatus = "IN_PROGRESS"
	StatusCompleted   InterviewStatus = "COMPLETED"
	StatusCancelled   InterviewStatus = "CANCELLED"
	StatusRescheduled InterviewStatus = "RESCHEDULED"
)

// InterviewType classifies the interview round.
type InterviewType string

const (
	TypeTechnical   InterviewType = "TECHNICAL"
	TypeHR          InterviewType = "HR"
	TypeManagerial  InterviewType = "MANAGERIAL"
	TypeCulturalFit InterviewType = "CULTURAL_FIT"
)

const (
	// DefaultDurationMinutes applies when no duration is supplied.
	DefaultDurationMinutes = 60
	MinDurationMinutes     = 15
	MaxDurationMinutes     = 480
)

// statusTransitions is the closed set of allowed lifecycle moves.
// RESCHEDULED exists only as an audit mark; it flips back to SCHEDULED
// within the same transaction.
var statusTransitions = map[InterviewStatus][]InterviewStatus{
	StatusScheduled:   {StatusInProgress, StatusCompleted, StatusCancelled, StatusRescheduled},
	StatusInProgress:  {StatusCompleted, StatusCancelled},
	StatusRescheduled: {StatusScheduled},
	StatusCompleted:   {},
	StatusCancelled:   {},
}

// ValidStatus reports whether s is one of the five lifecycle statuses.
func ValidStatus(s InterviewStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionStatus reports whether the lifecycle allows moving from one
// status to another.
func CanTransitionStatus(from, to InterviewStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s InterviewStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ValidInterviewType reports whether t is a known interview type.
func ValidInterviewType(t InterviewType) bool {
	switch t {
	case TypeTechnical, TypeHR, TypeManagerial, TypeCulturalFit:
		return true
	}
	return false
}

// Interview is a scheduled session between a candidate and an interviewer.
type Interview struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	CandidateID     uuid.UUID       `json:"candidateId" db:"candidate_id"`
	InterviewerID   uuid.UUID       `json:"interviewerId" db:"interviewer_id"`
	ScheduledAt     time.Time       `json:"scheduledAt" db:"scheduled_at"`
	DurationMinutes int             `json:"durationMinutes" db:"duration_minutes"`
	CurrentStatus   InterviewStatus `json:"currentStatus" db:"current_status"`
	Type            InterviewType   `json:"interviewType" db:"interview_type"`
	Location        string          `json:"location,omitempty" db:"location"`
	Notes           string          `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// EndsAt is the exclusive end of the interview's time slot.
func (i *Interview) EndsAt() time.Time {
	return i.ScheduledAt.Add(time.Duration(i.DurationMinutes) * time.Minute)
}

// OverlapsWith applies the half-open interval rule: [s1,e1) and [s2,e2)
// overlap iff s1 < e2 && e1 > s2. Back-to-back slots do not overlap.
func (i *Interview) OverlapsWith(start time.Time, durationMinutes int) bool {
	return IntervalsOverlap(i.ScheduledAt, i.DurationMinutes, start, durationMinutes)
}

// IntervalsOverlap is the shared overlap algebra for two half-open slots.
func IntervalsOverlap(s1 time.Time, d1 int, s2 time.Time, d2 int) bool {
	e1 := s1.Add(time.Duration(d1) * time.Minute)
	e2 := s2.Add(time.Duration(d2) * time.Minute)
	return s1.Before(e2) && e1.After(s2)
}

// ScheduleInterviewRequest carries the fields of POST /api/interviews.
type ScheduleInterviewRequest struct {
	CandidateID     uuid.UUID     `json:"candidateId" form:"candidateId" binding:"required"`
	InterviewerID   uuid.UUID     `json:"interviewerId" form:"interviewerId" binding:"required"`
	ScheduledAt     time.Time     `json:"scheduledAt" form:"scheduledAt" time_format:"2006-01-02T15:04:05Z07:00" binding:"required"`
	DurationMinutes int           `json:"durationMinutes" form:"durationMinutes"`
	Type            InterviewType `json:"interviewType" form:"interviewType" binding:"required"`
	Location        string        `json:"location" form:"location"`
	Notes           string        `json:"notes" form:"notes"`
	ScheduledBy     string        `json:"scheduledBy" form:"scheduledBy" binding:"required"`
}
