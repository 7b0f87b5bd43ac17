package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

func TestStageHistoryUnknownCandidate(t *testing.T) {
	st := newFakeStore()
	svc := NewHistoryService(st, zerolog.Nop())

	_, err := svc.StageHistory(context.Background(), newUUID())

	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestStageHistoryRoundTrip(t *testing.T) {
	st := newFakeStore()
	histSvc := NewHistoryService(st, zerolog.Nop())
	candSvc, _ := newCandidateService(st)

	c, err := candSvc.Create(context.Background(), &domain.CreateCandidateRequest{
		Name:  "Jane Doe",
		Email: "jane.history@example.com",
	}, nil)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := candSvc.UpdateStage(context.Background(), c.ID, domain.StageScreening, "recruiter@corp.com", "Looks promising"); err != nil {
		t.Fatalf("UpdateStage returned error: %v", err)
	}

	history, err := histSvc.StageHistory(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("StageHistory returned error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d records, want 2", len(history))
	}
	if history[0].FromStage != nil || history[0].ToStage != domain.StageApplied {
		t.Errorf("first record = %+v", history[0])
	}
	if history[1].FromStage == nil || *history[1].FromStage != domain.StageApplied || history[1].ToStage != domain.StageScreening {
		t.Errorf("second record = %+v", history[1])
	}
}

func TestRecentActivityDefaults(t *testing.T) {
	st := newFakeStore()
	svc := NewHistoryService(st, zerolog.Nop())
	c := seedCandidate(st, domain.StageApplied)

	st.repos.History.AppendStageChange(context.Background(), &domain.StageChange{
		ID: newUUID(), CandidateID: c.ID, ToStage: domain.StageApplied,
		ChangedBy: c.Email, ChangedAt: time.Now().Add(-time.Hour),
	})
	st.repos.History.AppendStageChange(context.Background(), &domain.StageChange{
		ID: newUUID(), CandidateID: c.ID, ToStage: domain.StageScreening,
		ChangedBy: domain.AISystemPrincipal, ChangedAt: time.Now().AddDate(0, 0, -30),
	})

	// Zero days and limit fall back to the one-week window.
	activity, err := svc.RecentActivity(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("RecentActivity returned error: %v", err)
	}
	if len(activity) != 1 {
		t.Fatalf("activity = %d entries, want 1", len(activity))
	}
	if activity[0].CandidateName != c.Name {
		t.Errorf("CandidateName = %q, want %q", activity[0].CandidateName, c.Name)
	}
}
