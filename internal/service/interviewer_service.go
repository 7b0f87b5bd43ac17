package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

// InterviewerService owns the interviewer roster. Interviewers that have
// conducted interviews are archived rather than deleted so that interview
// and feedback history keeps resolving.
type InterviewerService struct {
	store  domain.Store
	logger zerolog.Logger
}

func NewInterviewerService(store domain.Store, logger zerolog.Logger) *InterviewerService {
	return &InterviewerService{
		store:  store,
		logger: logger.With().Str("service", "interviewer").Logger(),
	}
}

func (s *InterviewerService) Create(ctx context.Context, req *domain.CreateInterviewerRequest) (*domain.Interviewer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Message: "must not be empty"}
	}

	repos := s.store.Repos()
	exists, err := repos.Interviewers.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check interviewer email: %w", err)
	}
	if exists {
		return nil, &domain.DuplicateEmailError{Email: req.Email}
	}

	now := time.Now()
	interviewer := &domain.Interviewer{
		ID:         uuid.New(),
		Name:       name,
		Email:      req.Email,
		Department: req.Department,
		Title:      req.Title,
		Expertise:  req.Expertise,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.store.WithinTx(ctx, func(r *domain.Repositories) error {
		return r.Interviewers.Create(ctx, interviewer)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("interviewer_id", interviewer.ID.String()).
		Str("email", interviewer.Email).Msg("interviewer created")
	return interviewer, nil
}

func (s *InterviewerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Interviewer, error) {
	interviewer, err := s.store.Repos().Interviewers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get interviewer: %w", err)
	}
	if interviewer == nil {
		return nil, domain.NewNotFound("Interviewer", id)
	}
	return interviewer, nil
}

func (s *InterviewerService) List(ctx context.Context, activeOnly bool) ([]*domain.Interviewer, error) {
	return s.store.Repos().Interviewers.List(ctx, activeOnly)
}

func (s *InterviewerService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateInterviewerRequest) (*domain.Interviewer, error) {
	var interviewer *domain.Interviewer
	err := s.store.WithinTx(ctx, func(r *domain.Repositories) error {
		var err error
		interviewer, err = r.Interviewers.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get interviewer: %w", err)
		}
		if interviewer == nil {
			return domain.NewNotFound("Interviewer", id)
		}
		if name := strings.TrimSpace(req.Name); name != "" {
			interviewer.Name = name
		}
		if req.Department != "" {
			interviewer.Department = req.Department
		}
		if req.Title != "" {
			interviewer.Title = req.Title
		}
		if req.Expertise != nil {
			interviewer.Expertise = req.Expertise
		}
		return r.Interviewers.Update(ctx, interviewer)
	})
	if err != nil {
		return nil, err
	}
	return interviewer, nil
}

// Delete removes an interviewer that has never conducted an interview.
// Anyone with interviews on record must be archived instead.
func (s *InterviewerService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.WithinTx(ctx, func(r *domain.Repositories) error {
		interviewer, err := r.Interviewers.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get interviewer: %w", err)
		}
		if interviewer == nil {
			return domain.NewNotFound("Interviewer", id)
		}
		hasInterviews, err := r.Interviews.ExistsForInterviewer(ctx, id)
		if err != nil {
			return fmt.Errorf("check interviews: %w", err)
		}
		if hasInterviews {
			return &domain.ForbiddenError{Message: "Cannot delete interviewer with interviews on record; archive instead"}
		}
		return r.Interviewers.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("interviewer_id", id.String()).Msg("interviewer deleted")
	return nil
}

// Archive marks the interviewer inactive; archived interviewers keep their
// history but are excluded from availability queries.
func (s *InterviewerService) Archive(ctx context.Context, id uuid.UUID) (*domain.Interviewer, error) {
	var interviewer *domain.Interviewer
	err := s.store.WithinTx(ctx, func(r *domain.Repositories) error {
		var err error
		interviewer, err = r.Interviewers.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get interviewer: %w", err)
		}
		if interviewer == nil {
			return domain.NewNotFound("Interviewer", id)
		}
		interviewer.Active = false
		return r.Interviewers.Archive(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("interviewer_id", id.String()).Msg("interviewer archived")
	return interviewer, nil
}
