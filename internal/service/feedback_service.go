package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

// FeedbackService collects and aggregates interviewer feedback. Feedback
// is only accepted for completed interviews, from the assigned
// interviewer, once per (interview, interviewer) pair.
type FeedbackService struct {
	store  domain.Store
	logger zerolog.Logger
}

func NewFeedbackService(store domain.Store, logger zerolog.Logger) *FeedbackService {
	return &FeedbackService{
		store:  store,
		logger: logger.With().Str("service", "feedback").Logger(),
	}
}

func validateScore(field string, score int) error {
	if score < 1 || score > 5 {
		return &domain.ValidationError{Field: field, Message: "must be between 1 and 5"}
	}
	return nil
}

func validateScores(req *domain.SubmitFeedbackRequest) error {
	if err := validateScore("technicalScore", req.TechnicalScore); err != nil {
		return err
	}
	if err := validateScore("communicationScore", req.CommunicationScore); err != nil {
		return err
	}
	if err := validateScore("problemSolvingScore", req.ProblemSolvingScore); err != nil {
		return err
	}
	if req.CulturalFitScore != nil {
		if err := validateScore("culturalFitScore", *req.CulturalFitScore); err != nil {
			return err
		}
	}
	if !domain.ValidRecommendation(req.Recommendation) {
		return &domain.ValidationError{Field: "recommendation", Message: fmt.Sprintf("unknown recommendation %q", req.Recommendation)}
	}
	return nil
}

// Submit records one interviewer's assessment of one completed interview.
func (s *FeedbackService) Submit(ctx context.Context, req *domain.SubmitFeedbackRequest) (*domain.Feedback, error) {
	if err := validateScores(req); err != nil {
		return nil, err
	}

	var feedback *domain.Feedback
	err := s.store.WithinTx(ctx, func(r *domain.Repositories) error {
		interview, err := r.Interviews.GetByID(ctx, req.InterviewID)
		if err != nil {
			return fmt.Errorf("get interview: %w", err)
		}
		if interview == nil {
			return domain.NewNotFound("Interview", req.InterviewID)
		}
		if interview.CurrentStatus != domain.StatusCompleted {
			return &domain.InvalidStateError{
				Message: fmt.Sprintf("Feedback can only be submitted for completed interviews, current status: %s", interview.CurrentStatus),
			}
		}
		if interview.InterviewerID != req.InterviewerID {
			return &domain.ForbiddenError{Message: "Feedback can only be submitted by the assigned interviewer"}
		}

		exists, err := r.Feedback.Exists(ctx, req.InterviewID, req.InterviewerID)
		if err != nil {
			return fmt.Errorf("check feedback: %w", err)
		}
		if exists {
			return &domain.DuplicateFeedbackError{InterviewID: req.InterviewID, InterviewerID: req.InterviewerID}
		}

		feedback = &domain.Feedback{
			ID:                  uuid.New(),
			InterviewID:         req.InterviewID,
			InterviewerID:       req.InterviewerID,
			TechnicalScore:      req.TechnicalScore,
			CommunicationScore:  req.CommunicationScore,
			ProblemSolvingScore: req.ProblemSolvingScore,
			CulturalFitScore:    req.CulturalFitScore,
			Strengths:           req.Strengths,
			Weaknesses:          req.Weaknesses,
			Comments:            req.Comments,
			Recommendation:      req.Recommendation,
			SubmittedAt:         time.Now(),
		}
		return r.Feedback.Create(ctx, feedback)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("feedback_id", feedback.ID.String()).
		Str("interview_id", req.InterviewID.String()).
		Str("recommendation", string(req.Recommendation)).
		Msg("feedback submitted")
	return feedback, nil
}

func (s *FeedbackService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	feedback, err := s.store.Repos().Feedback.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	if feedback == nil {
		return nil, domain.NewNotFound("Feedback", id)
	}
	return feedback, nil
}

// Update amends the scores and comments of existing feedback. The
// (interview, interviewer) binding and the submission time are fixed.
func (s *FeedbackService) Update(ctx context.Context, id uuid.UUID, req *domain.SubmitFeedbackRequest) (*domain.Feedback, error) {
	if err := validateScores(req); err != nil {
		return nil, err
	}

	var feedback *domain.Feedback
	err := s.store.WithinTx(ctx, func(r *domain.Repositories) error {
		var err error
		feedback, err = r.Feedback.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get feedback: %w", err)
		}
		if feedback == nil {
			return domain.NewNotFound("Feedback", id)
		}
		feedback.TechnicalScore = req.TechnicalScore
		feedback.CommunicationScore = req.CommunicationScore
		feedback.ProblemSolvingScore = req.ProblemSolvingScore
		feedback.CulturalFitScore = req.CulturalFitScore
		feedback.Strengths = req.Strengths
		feedback.Weaknesses = req.Weaknesses
		feedback.Comments = req.Comments
		feedback.Recommendation = req.Recommendation
		return r.Feedback.Update(ctx, feedback)
	})
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *FeedbackService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.WithinTx(ctx, func(r *domain.Repositories) error {
		feedback, err := r.Feedback.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get feedback: %w", err)
		}
		if feedback == nil {
			return domain.NewNotFound("Feedback", id)
		}
		return r.Feedback.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("feedback_id", id.String()).Msg("feedback deleted")
	return nil
}

func (s *FeedbackService) ByInterview(ctx context.Context, interviewID uuid.UUID) ([]*domain.Feedback, error) {
	return s.store.Repos().Feedback.ByInterview(ctx, interviewID)
}

func (s *FeedbackService) ByInterviewer(ctx context.Context, interviewerID uuid.UUID) ([]*domain.Feedback, error) {
	return s.store.Repos().Feedback.ByInterviewer(ctx, interviewerID)
}

func (s *FeedbackService) Positive(ctx context.Context) ([]*domain.Feedback, error) {
	return s.store.Repos().Feedback.Positive(ctx)
}

// AveragesForCandidate aggregates the mean scores across all feedback on
// the candidate's completed interviews.
func (s *FeedbackService) AveragesForCandidate(ctx context.Context, candidateID uuid.UUID) (*domain.FeedbackAverages, error) {
	repos := s.store.Repos()
	candidate, err := repos.Candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	if candidate == nil {
		return nil, domain.NewNotFound("Candidate", candidateID)
	}
	return repos.Feedback.AveragesForCandidate(ctx, candidateID)
}

// StatsForInterviewer aggregates one interviewer's feedback record.
func (s *FeedbackService) StatsForInterviewer(ctx context.Context, interviewerID uuid.UUID) (*domain.InterviewerStats, error) {
	repos := s.store.Repos()
	interviewer, err := repos.Interviewers.GetByID(ctx, interviewerID)
	if err != nil {
		return nil, fmt.Errorf("get interviewer: %w", err)
	}
	if interviewer == nil {
		return nil, domain.NewNotFound("Interviewer", interviewerID)
	}
	return repos.Feedback.StatsForInterviewer(ctx, interviewerID)
}
