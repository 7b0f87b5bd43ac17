package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

type screeningRepository struct {
	q DBTX
}

const screeningColumns = `id, candidate_id, skills_matched, experience_years, education_level,
       cultural_fit, match_score, analysis_text, recommendation, model_used,
       processing_ms, screened_at`

func (r *screeningRepository) Create(ctx context.Context, s *domain.AIScreening) error {
	query := `
        INSERT INTO ai_screenings (id, candidate_id, skills_matched, experience_years, education_level,
                                   cultural_fit, match_score, analysis_text, recommendation,
                                   model_used, processing_ms, screened_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.q.ExecContext(ctx, query,
		s.ID, s.CandidateID, s.SkillsMatched, s.ExperienceYears, s.EducationLevel,
		s.CulturalFit, s.MatchScore, s.AnalysisText, s.Recommendation,
		s.ModelUsed, s.ProcessingMs, s.ScreenedAt)
	if err != nil {
		return fmt.Errorf("insert screening: %w", err)
	}
	return nil
}

func (r *screeningRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.AIScreening, error) {
	query := `SELECT ` + screeningColumns + ` FROM ai_screenings WHERE id = $1`
	s := &domain.AIScreening{}
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.CandidateID, &s.SkillsMatched, &s.ExperienceYears, &s.EducationLevel,
		&s.CulturalFit, &s.MatchScore, &s.AnalysisText, &s.Recommendation,
		&s.ModelUsed, &s.ProcessingMs, &s.ScreenedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan screening: %w", err)
	}
	return s, nil
}

func (r *screeningRepository) DeleteByCandidate(ctx context.Context, candidateID uuid.UUID) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM ai_screenings WHERE candidate_id = $1`, candidateID)
	if err != nil {
		return fmt.Errorf("delete screenings for candidate: %w", err)
	}
	return nil
}

func (r *screeningRepository) ByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*domain.AIScreening, error) {
	query := `SELECT ` + screeningColumns + ` FROM ai_screenings
        WHERE candidate_id = $1 ORDER BY screened_at DESC`
	return r.query(ctx, query, candidateID)
}

func (r *screeningRepository) LatestForCandidate(ctx context.Context, candidateID uuid.UUID) (*domain.AIScreening, error) {
	query := `SELECT ` + screeningColumns + ` FROM ai_screenings
        WHERE candidate_id = $1 ORDER BY screened_at DESC LIMIT 1`
	out, err := r.query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *screeningRepository) ByMinScore(ctx context.Context, minScore int) ([]*domain.AIScreening, error) {
	query := `SELECT ` + screeningColumns + ` FROM ai_screenings
        WHERE match_score >= $1 ORDER BY match_score DESC`
	return r.query(ctx, query, minScore)
}

func (r *screeningRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM ai_screenings`).Scan(&n)
	return n, err
}

func (r *screeningRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ai_screenings WHERE screened_at >= $1`, since).Scan(&n)
	return n, err
}

func (r *screeningRepository) CountByMinScore(ctx context.Context, minScore int) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ai_screenings WHERE match_score >= $1`, minScore).Scan(&n)
	return n, err
}

func (r *screeningRepository) AverageScore(ctx context.Context) (float64, error) {
	var avg float64
	err := r.q.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(match_score), 0) FROM ai_screenings`).Scan(&avg)
	return avg, err
}

func (r *screeningRepository) AverageScoreByStage(ctx context.Context) (map[domain.CandidateStage]float64, error) {
	query := `
        SELECT c.current_stage, AVG(s.match_score)
        FROM ai_screenings s
        JOIN candidates c ON c.id = s.candidate_id
        GROUP BY c.current_stage`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("average score by stage: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.CandidateStage]float64)
	for rows.Next() {
		var stage domain.CandidateStage
		var avg float64
		if err := rows.Scan(&stage, &avg); err != nil {
			return nil, err
		}
		out[stage] = avg
	}
	return out, rows.Err()
}

func (r *screeningRepository) TopCandidates(ctx context.Context, limit int) ([]*domain.TopCandidate, error) {
	query := `
        SELECT c.id, c.name, c.email, c.current_stage,
               MAX(s.match_score) AS best_score, MAX(s.screened_at)
        FROM ai_screenings s
        JOIN candidates c ON c.id = s.candidate_id
        GROUP BY c.id, c.name, c.email, c.current_stage
        ORDER BY best_score DESC
        LIMIT $1`

	rows, err := r.q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top candidates: %w", err)
	}
	defer rows.Close()

	var out []*domain.TopCandidate
	for rows.Next() {
		tc := &domain.TopCandidate{}
		if err := rows.Scan(&tc.CandidateID, &tc.Name, &tc.Email,
			&tc.CurrentStage, &tc.MatchScore, &tc.ScreenedAt); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

func (r *screeningRepository) query(ctx context.Context, query string, args ...any) ([]*domain.AIScreening, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query screenings: %w", err)
	}
	defer rows.Close()

	var out []*domain.AIScreening
	for rows.Next() {
		s := &domain.AIScreening{}
		if err := rows.Scan(&s.ID, &s.CandidateID, &s.SkillsMatched, &s.ExperienceYears,
			&s.EducationLevel, &s.CulturalFit, &s.MatchScore, &s.AnalysisText,
			&s.Recommendation, &s.ModelUsed, &s.ProcessingMs, &s.ScreenedAt); err != nil {
			return nil, fmt.Errorf("scan screening: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
