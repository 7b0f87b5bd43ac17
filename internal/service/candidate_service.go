package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

// ResumeStore persists uploaded resume blobs and yields the opaque path
// stored on the candidate.
type ResumeStore interface {
	Save(file *multipart.FileHeader, email string) (string, error)
	Remove(path string) error
}

// CandidateService owns the candidate pipeline: creation, reads, profile
// updates, stage transitions and cascading deletion.
type CandidateService struct {
	store   domain.Store
	resumes ResumeStore
	logger  zerolog.Logger
}

func NewCandidateService(store domain.Store, resumes ResumeStore, logger zerolog.Logger) *CandidateService {
	return &CandidateService{
		store:   store,
		resumes: resumes,
		logger:  logger.With().Str("service", "candidate").Logger(),
	}
}

// Create registers a new candidate in stage APPLIED and records the
// initial from=null transition in the same transaction.
func (s *CandidateService) Create(ctx context.Context, req *domain.CreateCandidateRequest, resume *multipart.FileHeader) (*domain.Candidate, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Message: "must not be empty"}
	}

	repos := s.store.Repos()
	exists, err := repos.Candidates.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check candidate email: %w", err)
	}
	if exists {
		return nil, &domain.DuplicateEmailError{Email: req.Email}
	}

	resumePath := ""
	if resume != nil {
		resumePath, err = s.resumes.Save(resume, req.Email)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	candidate := &domain.Candidate{
		ID:           uuid.New(),
		Name:         name,
		Email:        req.Email,
		Phone:        strings.TrimSpace(req.Phone),
		ResumePath:   resumePath,
		CurrentStage: domain.StageApplied,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.store.WithinTx(ctx, func(r *domain.Repositories) error {
		if err := r.Candidates.Create(ctx, candidate); err != nil {
			return err
		}
		return recordInitialStage(ctx, r, candidate, candidate.Email)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("candidate_id", candidate.ID.String()).
		Str("email", candidate.Email).Msg("candidate created")
	return candidate, nil
}

func (s *CandidateService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	candidate, err := s.store.Repos().Candidates.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	if candidate == nil {
		return nil, domain.NewNotFound("Candidate", id)
	}
	return candidate, nil
}

func (s *CandidateService) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	candidate, err := s.store.Repos().Candidates.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get candidate by email: %w", err)
	}
	if candidate == nil {
		return nil, &domain.NotFoundError{Resource: "Candidate", Ref: email}
	}
	return candidate, nil
}

func (s *CandidateService) List(ctx context.Context, req domain.PageRequest) (*domain.CandidatePage, error) {
	candidates, total, err := s.store.Repos().Candidates.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return domain.NewCandidatePage(candidates, req, total), nil
}

func (s *CandidateService) Search(ctx context.Context, filter domain.CandidateSearchFilter, req domain.PageRequest) (*domain.CandidatePage, error) {
	if filter.Stage != nil && !domain.ValidStage(*filter.Stage) {
		return nil, &domain.ValidationError{Field: "stage", Message: fmt.Sprintf("unknown stage %q", *filter.Stage)}
	}
	candidates, total, err := s.store.Repos().Candidates.Search(ctx, filter, req)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}
	return domain.NewCandidatePage(candidates, req, total), nil
}

// UpdateStage moves the candidate through the pipeline. The transition
// table is enforced; the stage change and its audit record commit together.
func (s *CandidateService) UpdateStage(ctx context.Context, id uuid.UUID, newStage domain.CandidateStage, changedBy, reason string) (*domain.Candidate, error) {
	var candidate *domain.Candidate
	err := s.store.WithinTx(ctx, func(r *domain.Repositories) error {
		var err error
		candidate, err = r.Candidates.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get candidate: %w", err)
		}
		if candidate == nil {
			return domain.NewNotFound("Candidate", id)
		}
		return transitionCandidate(ctx, r, candidate, newStage, changedBy, reason)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("candidate_id", id.String()).
		Str("stage", string(newStage)).Str("changed_by", changedBy).
		Msg("candidate stage updated")
	return candidate, nil
}

// UpdateProfile changes mutable fields. Email is immutable.
func (s *CandidateService) UpdateProfile(ctx context.Context, id uuid.UUID, req *domain.UpdateCandidateRequest) (*domain.Candidate, error) {
	var candidate *domain.Candidate
	err := s.store.WithinTx(ctx, func(r *domain.Repositories) error {
		var err error
		candidate, err = r.Candidates.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get candidate: %w", err)
		}
		if candidate == nil {
			return domain.NewNotFound("Candidate", id)
		}
		if name := strings.TrimSpace(req.Name); name != "" {
			candidate.Name = name
		}
		if phone := strings.TrimSpace(req.Phone); phone != "" {
			candidate.Phone = phone
		}
		return r.Candidates.Update(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}
	return candidate, nil
}

// Delete removes the candidate and cascades to owned feedback, history,
// interviews and screenings. Hired candidates are protected.
func (s *CandidateService) Delete(ctx context.Context, id uuid.UUID) error {
	var resumePath string
	err := s.store.WithinTx(ctx, func(r *domain.Repositories) error {
		candidate, err := r.Candidates.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get candidate: %w", err)
		}
		if candidate == nil {
			return domain.NewNotFound("Candidate", id)
		}
		if candidate.CurrentStage == domain.StageHired {
			return &domain.ForbiddenError{Message: "Cannot delete hired candidate"}
		}
		resumePath = candidate.ResumePath

		if err := r.Feedback.DeleteByCandidate(ctx, id); err != nil {
			return err
		}
		if err := r.History.DeleteStatusHistoryByCandidate(ctx, id); err != nil {
			return err
		}
		if err := r.Interviews.DeleteByCandidate(ctx, id); err != nil {
			return err
		}
		if err := r.Screenings.DeleteByCandidate(ctx, id); err != nil {
			return err
		}
		if err := r.History.DeleteStageHistoryByCandidate(ctx, id); err != nil {
			return err
		}
		return r.Candidates.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if resumePath != "" {
		if err := s.resumes.Remove(resumePath); err != nil {
			s.logger.Warn().Err(err).Str("path", resumePath).Msg("failed to remove resume file")
		}
	}
	s.logger.Info().Str("candidate_id", id.String()).Msg("candidate deleted")
	return nil
}

func (s *CandidateService) WithoutScreening(ctx context.Context) ([]*domain.Candidate, error) {
	return s.store.Repos().Candidates.WithoutScreening(ctx)
}

// CountThisMonth counts candidates created since the start of the current
// calendar month.
func (s *CandidateService) CountThisMonth(ctx context.Context) (int64, error) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return s.store.Repos().Candidates.CountCreatedSince(ctx, startOfMonth)
}
