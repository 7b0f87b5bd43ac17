package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

// transitionCandidate is the single choke point for candidate stage moves.
// It enforces the transition table, mutates the denormalized currentStage
// and appends the audit record, all against the caller's transaction.
func transitionCandidate(ctx context.Context, r *domain.Repositories, c *domain.Candidate,
	to domain.CandidateStage, changedBy, reason string) error {

	if !domain.ValidStage(to) {
		return &domain.ValidationError{Field: "newStage", Message: fmt.Sprintf("unknown stage %q", to)}
	}
	if c.CurrentStage == to {
		return &domain.NoOpTransitionError{Entity: "candidate", State: string(to)}
	}
	if !domain.CanTransitionStage(c.CurrentStage, to) {
		return &domain.IllegalTransitionError{
			Entity: "candidate",
			From:   string(c.CurrentStage),
			To:     string(to),
		}
	}

	from := c.CurrentStage
	c.CurrentStage = to
	if err := r.Candidates.Update(ctx, c); err != nil {
		return err
	}
	return r.History.AppendStageChange(ctx, &domain.StageChange{
		ID:          uuid.New(),
		CandidateID: c.ID,
		FromStage:   &from,
		ToStage:     to,
		ChangedBy:   changedBy,
		Reason:      reason,
		ChangedAt:   time.Now(),
	})
}

// recordInitialStage writes the from=null APPLIED record for a freshly
// created candidate.
func recordInitialStage(ctx context.Context, r *domain.Repositories, c *domain.Candidate, changedBy string) error {
	return r.History.AppendStageChange(ctx, &domain.StageChange{
		ID:          uuid.New(),
		CandidateID: c.ID,
		FromStage:   nil,
		ToStage:     c.CurrentStage,
		ChangedBy:   changedBy,
		Reason:      "Application received",
		ChangedAt:   time.Now(),
	})
}

// transitionInterview is the single choke point for interview status moves.
func transitionInterview(ctx context.Context, r *domain.Repositories, i *domain.Interview,
	to domain.InterviewStatus, changedBy, notes string) error {

	if !domain.ValidStatus(to) {
		return &domain.ValidationError{Field: "newStatus", Message: fmt.Sprintf("unknown status %q", to)}
	}
	if i.CurrentStatus == to {
		return &domain.NoOpTransitionError{Entity: "interview", State: string(to)}
	}
	if !domain.CanTransitionStatus(i.CurrentStatus, to) {
		return &domain.IllegalTransitionError{
			Entity: "interview",
			From:   string(i.CurrentStatus),
			To:     string(to),
		}
	}

	from := i.CurrentStatus
	i.CurrentStatus = to
	if err := r.Interviews.Update(ctx, i); err != nil {
		return err
	}
	return r.History.AppendStatusChange(ctx, &domain.StatusChange{
		ID:          uuid.New(),
		InterviewID: i.ID,
		FromStatus:  &from,
		ToStatus:    to,
		ChangedBy:   changedBy,
		Notes:       notes,
		ChangedAt:   time.Now(),
	})
}

// recordInitialStatus writes the from=null SCHEDULED record for a freshly
// scheduled interview.
func recordInitialStatus(ctx context.Context, r *domain.Repositories, i *domain.Interview, changedBy string) error {
	return r.History.AppendStatusChange(ctx, &domain.StatusChange{
		ID:          uuid.New(),
		InterviewID: i.ID,
		FromStatus:  nil,
		ToStatus:    i.CurrentStatus,
		ChangedBy:   changedBy,
		Notes:       "Interview scheduled",
		ChangedAt:   time.Now(),
	})
}
