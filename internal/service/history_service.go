package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

// HistoryService exposes the append-only audit trail: per-candidate
// stage history, per-interview status history and time-in-stage
// aggregates.
type HistoryService struct {
	store  domain.Store
	logger zerolog.Logger
}

func NewHistoryService(store domain.Store, logger zerolog.Logger) *HistoryService {
	return &HistoryService{
		store:  store,
		logger: logger.With().Str("service", "history").Logger(),
	}
}

// StageHistory returns the candidate's transitions in chronological
// order, starting with the from=null application record.
func (s *HistoryService) StageHistory(ctx context.Context, candidateID uuid.UUID) ([]*domain.StageChange, error) {
	repos := s.store.Repos()
	candidate, err := repos.Candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	if candidate == nil {
		return nil, domain.NewNotFound("Candidate", candidateID)
	}
	return repos.History.StageHistory(ctx, candidateID)
}

// StatusHistory returns the interview's lifecycle transitions in
// chronological order.
func (s *HistoryService) StatusHistory(ctx context.Context, interviewID uuid.UUID) ([]*domain.StatusChange, error) {
	repos := s.store.Repos()
	interview, err := repos.Interviews.GetByID(ctx, interviewID)
	if err != nil {
		return nil, fmt.Errorf("get interview: %w", err)
	}
	if interview == nil {
		return nil, domain.NewNotFound("Interview", interviewID)
	}
	return repos.History.StatusHistory(ctx, interviewID)
}

// RecentActivity returns the latest stage changes across all candidates.
func (s *HistoryService) RecentActivity(ctx context.Context, days, limit int) ([]*domain.RecentActivity, error) {
	if days <= 0 {
		days = 7
	}
	if limit <= 0 {
		limit = 20
	}
	since := time.Now().AddDate(0, 0, -days)
	return s.store.Repos().History.RecentStageChanges(ctx, since, limit)
}

// AverageStageDurations reports the mean dwell time per pipeline stage.
func (s *HistoryService) AverageStageDurations(ctx context.Context) ([]*domain.StageDuration, error) {
	return s.store.Repos().History.AverageStageDurations(ctx)
}
