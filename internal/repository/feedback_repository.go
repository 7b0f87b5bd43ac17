package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

type feedbackRepository struct {
	q DBTX
}

const feedbackColumns = `id, interview_id, interviewer_id, technical_score, communication_score,
       problem_solving_score, cultural_fit_score, strengths, weaknesses, comments,
       recommendation, submitted_at`

func (r *feedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	query := `
        INSERT INTO feedback (id, interview_id, interviewer_id, technical_score, communication_score,
                              problem_solving_score, cultural_fit_score, strengths, weaknesses,
                              comments, recommendation, submitted_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.q.ExecContext(ctx, query,
		f.ID, f.InterviewID, f.InterviewerID, f.TechnicalScore, f.CommunicationScore,
		f.ProblemSolvingScore, f.CulturalFitScore, f.Strengths, f.Weaknesses,
		f.Comments, f.Recommendation, f.SubmittedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return &domain.DuplicateFeedbackError{InterviewID: f.InterviewID, InterviewerID: f.InterviewerID}
		}
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE id = $1`
	rows, err := r.q.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	defer rows.Close()
	out, err := r.scanMany(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *feedbackRepository) Update(ctx context.Context, f *domain.Feedback) error {
	query := `
        UPDATE feedback
        SET technical_score = $2, communication_score = $3, problem_solving_score = $4,
            cultural_fit_score = $5, strengths = $6, weaknesses = $7, comments = $8,
            recommendation = $9
        WHERE id = $1`

	res, err := r.q.ExecContext(ctx, query,
		f.ID, f.TechnicalScore, f.CommunicationScore, f.ProblemSolvingScore,
		f.CulturalFitScore, f.Strengths, f.Weaknesses, f.Comments, f.Recommendation)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("Feedback", f.ID)
	}
	return nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("Feedback", id)
	}
	return nil
}

func (r *feedbackRepository) DeleteByCandidate(ctx context.Context, candidateID uuid.UUID) error {
	query := `
        DELETE FROM feedback
        WHERE interview_id IN (SELECT id FROM interviews WHERE candidate_id = $1)`
	if _, err := r.q.ExecContext(ctx, query, candidateID); err != nil {
		return fmt.Errorf("delete feedback for candidate: %w", err)
	}
	return nil
}

func (r *feedbackRepository) Exists(ctx context.Context, interviewID, interviewerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM feedback WHERE interview_id = $1 AND interviewer_id = $2)`,
		interviewID, interviewerID).Scan(&exists)
	return exists, err
}

func (r *feedbackRepository) ByInterview(ctx context.Context, interviewID uuid.UUID) ([]*domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback
        WHERE interview_id = $1 ORDER BY submitted_at`
	rows, err := r.q.QueryContext(ctx, query, interviewID)
	if err != nil {
		return nil, fmt.Errorf("feedback by interview: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *feedbackRepository) ByInterviewer(ctx context.Context, interviewerID uuid.UUID) ([]*domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback
        WHERE interviewer_id = $1 ORDER BY submitted_at DESC`
	rows, err := r.q.QueryContext(ctx, query, interviewerID)
	if err != nil {
		return nil, fmt.Errorf("feedback by interviewer: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *feedbackRepository) Positive(ctx context.Context) ([]*domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback
        WHERE recommendation IN ('STRONG_HIRE', 'HIRE') ORDER BY submitted_at DESC`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("positive feedback: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *feedbackRepository) AveragesForCandidate(ctx context.Context, candidateID uuid.UUID) (*domain.FeedbackAverages, error) {
	query := `
        SELECT COALESCE(AVG(f.technical_score), 0),
               COALESCE(AVG(f.communication_score), 0),
               COALESCE(AVG(f.problem_solving_score), 0),
               COUNT(*)
        FROM feedback f
        JOIN interviews i ON i.id = f.interview_id
        WHERE i.candidate_id = $1 AND i.current_status = 'COMPLETED'`

	avg := &domain.FeedbackAverages{}
	err := r.q.QueryRowContext(ctx, query, candidateID).Scan(
		&avg.Technical, &avg.Communication, &avg.ProblemSolving, &avg.Count)
	if err != nil {
		return nil, fmt.Errorf("feedback averages: %w", err)
	}
	return avg, nil
}

func (r *feedbackRepository) StatsForInterviewer(ctx context.Context, interviewerID uuid.UUID) (*domain.InterviewerStats, error) {
	query := `
        SELECT COALESCE(AVG(technical_score), 0),
               COALESCE(AVG(communication_score), 0),
               COUNT(*),
               COUNT(*) FILTER (WHERE recommendation = 'STRONG_HIRE')
        FROM feedback
        WHERE interviewer_id = $1`

	stats := &domain.InterviewerStats{}
	err := r.q.QueryRowContext(ctx, query, interviewerID).Scan(
		&stats.AvgTechnicalScore, &stats.AvgCommunicationScore,
		&stats.TotalFeedbacks, &stats.StrongHireCount)
	if err != nil {
		return nil, fmt.Errorf("interviewer stats: %w", err)
	}
	return stats, nil
}

func (r *feedbackRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&n)
	return n, err
}

func (r *feedbackRepository) CountPositive(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM feedback WHERE recommendation IN ('STRONG_HIRE', 'HIRE')`).Scan(&n)
	return n, err
}

func (r *feedbackRepository) scanMany(rows *sql.Rows) ([]*domain.Feedback, error) {
	var out []*domain.Feedback
	for rows.Next() {
		f := &domain.Feedback{}
		var culturalFit sql.NullInt64
		var strengths, weaknesses, comments sql.NullString
		if err := rows.Scan(&f.ID, &f.InterviewID, &f.InterviewerID,
			&f.TechnicalScore, &f.CommunicationScore, &f.ProblemSolvingScore,
			&culturalFit, &strengths, &weaknesses, &comments,
			&f.Recommendation, &f.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		if culturalFit.Valid {
			v := int(culturalFit.Int64)
			f.CulturalFitScore = &v
		}
		f.Strengths = strengths.String
		f.Weaknesses = weaknesses.String
		f.Comments = comments.String
		out = append(out, f)
	}
	return out, rows.Err()
}
