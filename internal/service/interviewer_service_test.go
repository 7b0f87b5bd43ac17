package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

func TestCreateInterviewer(t *testing.T) {
	st := newFakeStore()
	svc := NewInterviewerService(st, zerolog.Nop())

	iv, err := svc.Create(context.Background(), &domain.CreateInterviewerRequest{
		Name:      "  Alex Reviewer ",
		Email:     "alex@corp.com",
		Expertise: []string{"backend", "distributed-systems"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if iv.Name != "Alex Reviewer" {
		t.Errorf("name not trimmed: %q", iv.Name)
	}
	if !iv.Active {
		t.Error("new interviewer should be active")
	}
}

func TestCreateInterviewerDuplicateEmail(t *testing.T) {
	st := newFakeStore()
	svc := NewInterviewerService(st, zerolog.Nop())
	existing := seedInterviewer(st, true)

	_, err := svc.Create(context.Background(), &domain.CreateInterviewerRequest{
		Name:  "Someone Else",
		Email: existing.Email,
	})

	var dup *domain.DuplicateEmailError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateEmailError, got %T: %v", err, err)
	}
}

func TestDeleteInterviewerWithInterviewsRefused(t *testing.T) {
	st := newFakeStore()
	svc := NewInterviewerService(st, zerolog.Nop())
	c := seedCandidate(st, domain.StageInterviewScheduled)
	iv := seedInterviewer(st, true)
	seedInterview(st, c.ID, iv.ID, time.Now().Add(24*time.Hour), 60, domain.StatusScheduled)

	err := svc.Delete(context.Background(), iv.ID)

	var forbidden *domain.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError, got %T: %v", err, err)
	}
	if st.data.interviewers[iv.ID] == nil {
		t.Error("interviewer deleted despite interviews on record")
	}
}

func TestDeleteInterviewerWithoutInterviews(t *testing.T) {
	st := newFakeStore()
	svc := NewInterviewerService(st, zerolog.Nop())
	iv := seedInterviewer(st, true)

	if err := svc.Delete(context.Background(), iv.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if st.data.interviewers[iv.ID] != nil {
		t.Error("interviewer not deleted")
	}
}

func TestArchiveInterviewer(t *testing.T) {
	st := newFakeStore()
	svc := NewInterviewerService(st, zerolog.Nop())
	iv := seedInterviewer(st, true)

	archived, err := svc.Archive(context.Background(), iv.ID)
	if err != nil {
		t.Fatalf("Archive returned error: %v", err)
	}
	if archived.Active {
		t.Error("archived interviewer still active")
	}

	active, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active list = %d entries, want 0", len(active))
	}
}
