package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

func feedbackRequest(interviewID, interviewerID uuid.UUID) *domain.SubmitFeedbackRequest {
	return &domain.SubmitFeedbackRequest{
		InterviewID:         interviewID,
		InterviewerID:       interviewerID,
		TechnicalScore:      4,
		CommunicationScore:  5,
		ProblemSolvingScore: 4,
		Recommendation:      domain.RecommendHire,
	}
}

func seedCompletedInterview(st *fakeStore) (*domain.Interview, *domain.Interviewer) {
	c := seedCandidate(st, domain.StageInterviewCompleted)
	iv := seedInterviewer(st, true)
	interview := seedInterview(st, c.ID, iv.ID, time.Now().Add(-24*time.Hour), 60, domain.StatusCompleted)
	return interview, iv
}

func TestSubmitFeedbackHappyPath(t *testing.T) {
	st := newFakeStore()
	svc := NewFeedbackService(st, zerolog.Nop())
	interview, iv := seedCompletedInterview(st)

	feedback, err := svc.Submit(context.Background(), feedbackRequest(interview.ID, iv.ID))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if feedback.SubmittedAt.IsZero() {
		t.Error("SubmittedAt not set")
	}
	if st.data.feedback[feedback.ID] == nil {
		t.Error("feedback not persisted")
	}
}

func TestSubmitFeedbackRequiresCompletedInterview(t *testing.T) {
	st := newFakeStore()
	svc := NewFeedbackService(st, zerolog.Nop())
	c := seedCandidate(st, domain.StageInterviewScheduled)
	iv := seedInterviewer(st, true)
	interview := seedInterview(st, c.ID, iv.ID, time.Now().Add(24*time.Hour), 60, domain.StatusScheduled)

	_, err := svc.Submit(context.Background(), feedbackRequest(interview.ID, iv.ID))

	var invalid *domain.InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStateError, got %T: %v", err, err)
	}
}

func TestSubmitFeedbackRejectsNonAssignedInterviewer(t *testing.T) {
	st := newFakeStore()
	svc := NewFeedbackService(st, zerolog.Nop())
	interview, _ := seedCompletedInterview(st)
	other := seedInterviewer(st, true)

	_, err := svc.Submit(context.Background(), feedbackRequest(interview.ID, other.ID))

	var forbidden *domain.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError, got %T: %v", err, err)
	}
}

func TestSubmitFeedbackRejectsDuplicate(t *testing.T) {
	st := newFakeStore()
	svc := NewFeedbackService(st, zerolog.Nop())
	interview, iv := seedCompletedInterview(st)

	if _, err := svc.Submit(context.Background(), feedbackRequest(interview.ID, iv.ID)); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	_, err := svc.Submit(context.Background(), feedbackRequest(interview.ID, iv.ID))

	var dup *domain.DuplicateFeedbackError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateFeedbackError, got %T: %v", err, err)
	}
}

func TestSubmitFeedbackScoreBounds(t *testing.T) {
	st := newFakeStore()
	svc := NewFeedbackService(st, zerolog.Nop())
	interview, iv := seedCompletedInterview(st)

	for _, score := range []int{0, 6} {
		req := feedbackRequest(interview.ID, iv.ID)
		req.TechnicalScore = score
		_, err := svc.Submit(context.Background(), req)
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("score %d: expected ValidationError, got %T: %v", score, err, err)
		}
	}

	// The optional cultural fit score is bounded too.
	bad := 7
	req := feedbackRequest(interview.ID, iv.ID)
	req.CulturalFitScore = &bad
	_, err := svc.Submit(context.Background(), req)
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("cultural fit 7: expected ValidationError, got %T: %v", err, err)
	}
}

func TestSubmitFeedbackUnknownRecommendation(t *testing.T) {
	st := newFakeStore()
	svc := NewFeedbackService(st, zerolog.Nop())
	interview, iv := seedCompletedInterview(st)

	req := feedbackRequest(interview.ID, iv.ID)
	req.Recommendation = "LEAN_HIRE"
	_, err := svc.Submit(context.Background(), req)

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestUpdateFeedbackRevalidates(t *testing.T) {
	st := newFakeStore()
	svc := NewFeedbackService(st, zerolog.Nop())
	interview, iv := seedCompletedInterview(st)

	feedback, err := svc.Submit(context.Background(), feedbackRequest(interview.ID, iv.ID))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	req := feedbackRequest(interview.ID, iv.ID)
	req.TechnicalScore = 9
	if _, err := svc.Update(context.Background(), feedback.ID, req); err == nil {
		t.Error("Update accepted an out-of-range score")
	}

	req.TechnicalScore = 2
	updated, err := svc.Update(context.Background(), feedback.ID, req)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.TechnicalScore != 2 {
		t.Errorf("TechnicalScore = %d, want 2", updated.TechnicalScore)
	}
}

func TestAveragesForUnknownCandidate(t *testing.T) {
	st := newFakeStore()
	svc := NewFeedbackService(st, zerolog.Nop())

	_, err := svc.AveragesForCandidate(context.Background(), newUUID())

	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestStatsForInterviewer(t *testing.T) {
	st := newFakeStore()
	svc := NewFeedbackService(st, zerolog.Nop())
	interview, iv := seedCompletedInterview(st)

	req := feedbackRequest(interview.ID, iv.ID)
	req.Recommendation = domain.RecommendStrongHire
	if _, err := svc.Submit(context.Background(), req); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	stats, err := svc.StatsForInterviewer(context.Background(), iv.ID)
	if err != nil {
		t.Fatalf("StatsForInterviewer returned error: %v", err)
	}
	if stats.TotalFeedbacks != 1 || stats.StrongHireCount != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgTechnicalScore != 4 {
		t.Errorf("AvgTechnicalScore = %v, want 4", stats.AvgTechnicalScore)
	}
}
