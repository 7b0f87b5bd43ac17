package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yashi-star/InterviewManagementSystem/internal/ai"
	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
	"github.com/yashi-star/InterviewManagementSystem/internal/resume"
	"github.com/yashi-star/InterviewManagementSystem/internal/worker"
)

// highScoreThreshold marks a screening as high-scoring in the
// statistics projection.
const highScoreThreshold = 80

// TextExtractor is the slice of the resume parser the pipeline needs.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// Submitter is the slice of the worker pool the async entry points need.
type Submitter interface {
	Submit(task worker.Task) bool
}

// ScreeningService runs the resume screening pipeline: extract text,
// analyze with the model (or the keyword fallback), persist the
// screening and advance freshly applied candidates to SCREENING.
type ScreeningService struct {
	store    domain.Store
	parser   TextExtractor
	analyzer *ai.Analyzer
	pool     Submitter
	logger   zerolog.Logger
	now      func() time.Time
}

func NewScreeningService(store domain.Store, parser TextExtractor, analyzer *ai.Analyzer, pool Submitter, logger zerolog.Logger) *ScreeningService {
	return &ScreeningService{
		store:    store,
		parser:   parser,
		analyzer: analyzer,
		pool:     pool,
		logger:   logger.With().Str("service", "screening").Logger(),
		now:      time.Now,
	}
}

// Screen runs the full pipeline synchronously and returns the persisted
// screening. The screening insert and the stage advance commit together.
func (s *ScreeningService) Screen(ctx context.Context, candidateID uuid.UUID, jobDescription string) (*domain.AIScreening, error) {
	s.logger.Info().Str("candidate_id", candidateID.String()).Msg("starting screening")
	started := s.now()

	candidate, err := s.store.Repos().Candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	if candidate == nil {
		return nil, domain.NewNotFound("Candidate", candidateID)
	}
	if candidate.ResumePath == "" {
		return nil, &domain.ValidationError{Field: "resume", Message: "Candidate has no resume uploaded"}
	}

	resumeText, err := s.parser.ExtractText(candidate.ResumePath)
	if err != nil {
		return nil, err
	}
	if !resume.HasValidContent(resumeText) {
		return nil, &domain.ValidationError{Field: "resume", Message: "Resume does not contain valid content"}
	}

	result := s.analyzer.Analyze(ctx, resumeText, jobDescription)
	processingMs := s.now().Sub(started).Milliseconds()

	screening := &domain.AIScreening{
		ID:              uuid.New(),
		CandidateID:     candidateID,
		SkillsMatched:   result.SkillsMatched,
		ExperienceYears: result.ExperienceYears,
		EducationLevel:  result.EducationLevel,
		CulturalFit:     result.CulturalFit,
		MatchScore:      result.MatchScore,
		AnalysisText:    result.AnalysisText,
		Recommendation:  result.Recommendation,
		ModelUsed:       s.analyzer.Model(),
		ProcessingMs:    processingMs,
		ScreenedAt:      s.now(),
	}

	err = s.store.WithinTx(ctx, func(r *domain.Repositories) error {
		if err := r.Screenings.Create(ctx, screening); err != nil {
			return err
		}
		if candidate.CurrentStage != domain.StageApplied {
			return nil
		}
		reason := fmt.Sprintf("Automated AI screening completed. Score: %d/100", result.MatchScore)
		return transitionCandidate(ctx, r, candidate, domain.StageScreening, domain.AISystemPrincipal, reason)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("candidate_id", candidateID.String()).
		Int("match_score", screening.MatchScore).
		Int64("processing_ms", processingMs).
		Msg("screening complete")
	return screening, nil
}

// ScreenAsync enqueues the pipeline on the worker pool and returns
// immediately. The candidate must exist and have a resume; those checks
// run up front so the caller gets an error instead of a silent no-op.
func (s *ScreeningService) ScreenAsync(ctx context.Context, candidateID uuid.UUID, jobDescription string) error {
	candidate, err := s.store.Repos().Candidates.GetByID(ctx, candidateID)
	if err != nil {
		return fmt.Errorf("get candidate: %w", err)
	}
	if candidate == nil {
		return domain.NewNotFound("Candidate", candidateID)
	}
	if candidate.ResumePath == "" {
		return &domain.ValidationError{Field: "resume", Message: "Candidate has no resume uploaded"}
	}

	accepted := s.pool.Submit(func(taskCtx context.Context) {
		if _, err := s.Screen(taskCtx, candidateID, jobDescription); err != nil {
			s.logger.Error().Err(err).Str("candidate_id", candidateID.String()).
				Msg("async screening failed")
		}
	})
	if !accepted {
		s.logger.Warn().Str("candidate_id", candidateID.String()).
			Msg("screening task rejected, pool is shutting down")
		return &domain.ExternalServiceError{Service: "screening queue", Err: errors.New("not accepting new tasks")}
	}
	return nil
}

// BulkScreenAsync enqueues one screening task per candidate. Unknown
// ids are skipped with a log line rather than failing the batch.
func (s *ScreeningService) BulkScreenAsync(ctx context.Context, req *domain.BulkScreeningRequest) (int, error) {
	s.logger.Info().Int("count", len(req.CandidateIDs)).Msg("starting bulk screening")

	enqueued := 0
	for _, id := range req.CandidateIDs {
		if err := s.ScreenAsync(ctx, id, req.JobDescription); err != nil {
			s.logger.Warn().Err(err).Str("candidate_id", id.String()).
				Msg("skipping candidate in bulk screening")
			continue
		}
		enqueued++
	}
	return enqueued, nil
}

func (s *ScreeningService) GetByID(ctx context.Context, id uuid.UUID) (*domain.AIScreening, error) {
	screening, err := s.store.Repos().Screenings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get screening: %w", err)
	}
	if screening == nil {
		return nil, domain.NewNotFound("AIScreening", id)
	}
	return screening, nil
}

func (s *ScreeningService) ByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*domain.AIScreening, error) {
	repos := s.store.Repos()
	candidate, err := repos.Candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	if candidate == nil {
		return nil, domain.NewNotFound("Candidate", candidateID)
	}
	return repos.Screenings.ByCandidate(ctx, candidateID)
}

func (s *ScreeningService) LatestForCandidate(ctx context.Context, candidateID uuid.UUID) (*domain.AIScreening, error) {
	screening, err := s.store.Repos().Screenings.LatestForCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("latest screening: %w", err)
	}
	if screening == nil {
		return nil, &domain.NotFoundError{Resource: "AIScreening", Ref: "candidate " + candidateID.String()}
	}
	return screening, nil
}

func (s *ScreeningService) HighScoreCandidates(ctx context.Context, minScore int) ([]*domain.AIScreening, error) {
	if minScore < 0 || minScore > 100 {
		return nil, &domain.ValidationError{Field: "minScore", Message: "must be between 0 and 100"}
	}
	return s.store.Repos().Screenings.ByMinScore(ctx, minScore)
}

// Statistics summarizes screening activity for the dashboard.
func (s *ScreeningService) Statistics(ctx context.Context) (*domain.ScreeningStatistics, error) {
	repos := s.store.Repos()

	total, err := repos.Screenings.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count screenings: %w", err)
	}
	highScorers, err := repos.Screenings.CountByMinScore(ctx, highScoreThreshold)
	if err != nil {
		return nil, fmt.Errorf("count high scorers: %w", err)
	}
	avg, err := repos.Screenings.AverageScore(ctx)
	if err != nil {
		return nil, fmt.Errorf("average score: %w", err)
	}

	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := repos.Screenings.CountSince(ctx, startOfDay)
	if err != nil {
		return nil, fmt.Errorf("count today: %w", err)
	}

	return &domain.ScreeningStatistics{
		TotalScreenings:     total,
		HighScoreCandidates: highScorers,
		AverageScore:        avg,
		ScreeningsToday:     today,
	}, nil
}

func (s *ScreeningService) AverageScoreByStage(ctx context.Context) (map[domain.CandidateStage]float64, error) {
	return s.store.Repos().Screenings.AverageScoreByStage(ctx)
}
