package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

type stubResumeStore struct {
	saved   []string
	removed []string
}

func (s *stubResumeStore) Save(_ *multipart.FileHeader, email string) (string, error) {
	path := "uploads/resumes/" + email
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *stubResumeStore) Remove(path string) error {
	s.removed = append(s.removed, path)
	return nil
}

func newCandidateService(st *fakeStore) (*CandidateService, *stubResumeStore) {
	resumes := &stubResumeStore{}
	return NewCandidateService(st, resumes, zerolog.Nop()), resumes
}

func TestCreateCandidateRecordsInitialStage(t *testing.T) {
	st := newFakeStore()
	svc, _ := newCandidateService(st)

	c, err := svc.Create(context.Background(), &domain.CreateCandidateRequest{
		Name:  "  Jane Doe  ",
		Email: "jane@example.com",
	}, nil)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if c.Name != "Jane Doe" {
		t.Errorf("name not trimmed: %q", c.Name)
	}
	if c.CurrentStage != domain.StageApplied {
		t.Errorf("CurrentStage = %s, want APPLIED", c.CurrentStage)
	}

	if len(st.data.stageChanges) != 1 {
		t.Fatalf("stage changes = %d, want 1", len(st.data.stageChanges))
	}
	sc := st.data.stageChanges[0]
	if sc.FromStage != nil {
		t.Errorf("initial record FromStage = %v, want nil", *sc.FromStage)
	}
	if sc.ToStage != domain.StageApplied {
		t.Errorf("initial record ToStage = %s", sc.ToStage)
	}
	if sc.Reason != "Application received" {
		t.Errorf("initial record Reason = %q", sc.Reason)
	}
}

func TestCreateCandidateDuplicateEmail(t *testing.T) {
	st := newFakeStore()
	svc, _ := newCandidateService(st)
	existing := seedCandidate(st, domain.StageApplied)

	_, err := svc.Create(context.Background(), &domain.CreateCandidateRequest{
		Name:  "Other Person",
		Email: existing.Email,
	}, nil)

	var dup *domain.DuplicateEmailError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateEmailError, got %T: %v", err, err)
	}
	if dup.Email != existing.Email {
		t.Errorf("error email = %q, want %q", dup.Email, existing.Email)
	}
}

func TestCreateCandidateBlankName(t *testing.T) {
	st := newFakeStore()
	svc, _ := newCandidateService(st)

	_, err := svc.Create(context.Background(), &domain.CreateCandidateRequest{
		Name:  "   ",
		Email: "blank@example.com",
	}, nil)

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestUpdateStageValidTransition(t *testing.T) {
	st := newFakeStore()
	svc, _ := newCandidateService(st)
	c := seedCandidate(st, domain.StageApplied)

	updated, err := svc.UpdateStage(context.Background(), c.ID, domain.StageScreening, "recruiter@corp.com", "Resume looks solid")
	if err != nil {
		t.Fatalf("UpdateStage returned error: %v", err)
	}
	if updated.CurrentStage != domain.StageScreening {
		t.Errorf("CurrentStage = %s, want SCREENING", updated.CurrentStage)
	}

	if len(st.data.stageChanges) != 1 {
		t.Fatalf("stage changes = %d, want 1", len(st.data.stageChanges))
	}
	sc := st.data.stageChanges[0]
	if sc.FromStage == nil || *sc.FromStage != domain.StageApplied {
		t.Errorf("FromStage = %v, want APPLIED", sc.FromStage)
	}
	if sc.ChangedBy != "recruiter@corp.com" || sc.Reason != "Resume looks solid" {
		t.Errorf("audit actor/reason = %q/%q", sc.ChangedBy, sc.Reason)
	}
}

func TestUpdateStageIllegalTransition(t *testing.T) {
	st := newFakeStore()
	svc, _ := newCandidateService(st)
	c := seedCandidate(st, domain.StageApplied)

	_, err := svc.UpdateStage(context.Background(), c.ID, domain.StageHired, "recruiter@corp.com", "")

	var illegal *domain.IllegalTransitionError
	if !errors.As(err, &illegal) {
		t.Fatalf("expected IllegalTransitionError, got %T: %v", err, err)
	}
	if st.data.candidates[c.ID].CurrentStage != domain.StageApplied {
		t.Error("stage changed despite illegal transition")
	}
	if len(st.data.stageChanges) != 0 {
		t.Error("audit record written for refused transition")
	}
}

func TestUpdateStageNoOp(t *testing.T) {
	st := newFakeStore()
	svc, _ := newCandidateService(st)
	c := seedCandidate(st, domain.StageScreening)

	_, err := svc.UpdateStage(context.Background(), c.ID, domain.StageScreening, "recruiter@corp.com", "")

	var noop *domain.NoOpTransitionError
	if !errors.As(err, &noop) {
		t.Fatalf("expected NoOpTransitionError, got %T: %v", err, err)
	}
}

func TestUpdateStageUnknownStage(t *testing.T) {
	st := newFakeStore()
	svc, _ := newCandidateService(st)
	c := seedCandidate(st, domain.StageApplied)

	_, err := svc.UpdateStage(context.Background(), c.ID, "ONBOARDING", "recruiter@corp.com", "")

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestDeleteHiredCandidateForbidden(t *testing.T) {
	st := newFakeStore()
	svc, _ := newCandidateService(st)
	c := seedCandidate(st, domain.StageHired)

	err := svc.Delete(context.Background(), c.ID)

	var forbidden *domain.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError, got %T: %v", err, err)
	}
	if st.data.candidates[c.ID] == nil {
		t.Error("hired candidate was deleted")
	}
}

func TestDeleteCascades(t *testing.T) {
	st := newFakeStore()
	svc, resumes := newCandidateService(st)

	c := seedCandidate(st, domain.StageRejected)
	c.ResumePath = "uploads/resumes/jane.pdf"
	iv := seedInterviewer(st, true)
	interview := seedInterview(st, c.ID, iv.ID, timeNowPlus(24), 60, domain.StatusCompleted)
	st.data.feedback[newUUID()] = &domain.Feedback{
		ID: newUUID(), InterviewID: interview.ID, InterviewerID: iv.ID,
		TechnicalScore: 4, CommunicationScore: 4, ProblemSolvingScore: 4,
		Recommendation: domain.RecommendHire,
	}
	st.data.screenings[newUUID()] = &domain.AIScreening{
		ID: newUUID(), CandidateID: c.ID, MatchScore: 60, Recommendation: domain.RecommendMaybe,
	}
	st.repos.History.AppendStageChange(context.Background(), &domain.StageChange{
		ID: newUUID(), CandidateID: c.ID, ToStage: domain.StageApplied, ChangedBy: c.Email,
	})
	st.repos.History.AppendStatusChange(context.Background(), &domain.StatusChange{
		ID: newUUID(), InterviewID: interview.ID, ToStatus: domain.StatusScheduled, ChangedBy: "recruiter",
	})

	if err := svc.Delete(context.Background(), c.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if len(st.data.candidates) != 0 {
		t.Error("candidate not deleted")
	}
	if len(st.data.interviews) != 0 {
		t.Error("interviews not cascaded")
	}
	if len(st.data.feedback) != 0 {
		t.Error("feedback not cascaded")
	}
	if len(st.data.screenings) != 0 {
		t.Error("screenings not cascaded")
	}
	if len(st.data.stageChanges) != 0 || len(st.data.statusChanges) != 0 {
		t.Error("history not cascaded")
	}
	if len(resumes.removed) != 1 || resumes.removed[0] != "uploads/resumes/jane.pdf" {
		t.Errorf("resume file not removed: %v", resumes.removed)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	st := newFakeStore()
	svc, _ := newCandidateService(st)

	_, err := svc.GetByID(context.Background(), newUUID())

	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestSearchRejectsUnknownStage(t *testing.T) {
	st := newFakeStore()
	svc, _ := newCandidateService(st)

	bad := domain.CandidateStage("ONBOARDING")
	_, err := svc.Search(context.Background(), domain.CandidateSearchFilter{Stage: &bad}, domain.PageRequest{Size: 20})

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}
