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

type interviewRepository struct {
	q DBTX
}

const interviewColumns = `id, candidate_id, interviewer_id, scheduled_at, duration_minutes,
       current_status, interview_type, location, notes, created_at, updated_at`

// terminalStatuses is inlined into queries that must skip interviews no
// longer occupying the interviewer's calendar.
const nonTerminalFilter = `current_status NOT IN ('CANCELLED', 'COMPLETED')`

func (r *interviewRepository) Create(ctx context.Context, i *domain.Interview) error {
	query := `
        INSERT INTO interviews (id, candidate_id, interviewer_id, scheduled_at, duration_minutes,
                                current_status, interview_type, location, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.q.ExecContext(ctx, query,
		i.ID, i.CandidateID, i.InterviewerID, i.ScheduledAt, i.DurationMinutes,
		i.CurrentStatus, i.Type, i.Location, i.Notes, i.CreatedAt, i.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert interview: %w", err)
	}
	return nil
}

func (r *interviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`
	i, err := r.scanOne(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *interviewRepository) Update(ctx context.Context, i *domain.Interview) error {
	query := `
        UPDATE interviews
        SET scheduled_at = $2, duration_minutes = $3, current_status = $4,
            location = $5, notes = $6, updated_at = $7
        WHERE id = $1`

	res, err := r.q.ExecContext(ctx, query,
		i.ID, i.ScheduledAt, i.DurationMinutes, i.CurrentStatus,
		i.Location, i.Notes, time.Now())
	if err != nil {
		return fmt.Errorf("update interview: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("Interview", i.ID)
	}
	return nil
}

func (r *interviewRepository) DeleteByCandidate(ctx context.Context, candidateID uuid.UUID) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM interviews WHERE candidate_id = $1`, candidateID)
	if err != nil {
		return fmt.Errorf("delete interviews for candidate: %w", err)
	}
	return nil
}

func (r *interviewRepository) ByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
        WHERE candidate_id = $1 ORDER BY scheduled_at DESC`
	return r.query(ctx, query, candidateID)
}

func (r *interviewRepository) ByInterviewer(ctx context.Context, interviewerID uuid.UUID) ([]*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
        WHERE interviewer_id = $1 ORDER BY scheduled_at DESC`
	return r.query(ctx, query, interviewerID)
}

func (r *interviewRepository) ByStatus(ctx context.Context, status domain.InterviewStatus) ([]*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
        WHERE current_status = $1 ORDER BY scheduled_at`
	return r.query(ctx, query, status)
}

func (r *interviewRepository) ActiveForInterviewerBetween(ctx context.Context, interviewerID uuid.UUID, start, end time.Time) ([]*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
        WHERE interviewer_id = $1 AND ` + nonTerminalFilter + `
          AND scheduled_at BETWEEN $2 AND $3
        ORDER BY scheduled_at`
	return r.query(ctx, query, interviewerID, start, end)
}

func (r *interviewRepository) BusyInterviewerIDs(ctx context.Context, start, end time.Time) ([]uuid.UUID, error) {
	// Half-open overlap against the window: slot_start < end AND slot_end > start.
	query := `
        SELECT DISTINCT interviewer_id FROM interviews
        WHERE ` + nonTerminalFilter + `
          AND scheduled_at < $2
          AND scheduled_at + make_interval(mins => duration_minutes) > $1`

	rows, err := r.q.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("busy interviewers: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *interviewRepository) ScheduledBetween(ctx context.Context, start, end time.Time) ([]*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
        WHERE scheduled_at BETWEEN $1 AND $2 ORDER BY scheduled_at`
	return r.query(ctx, query, start, end)
}

func (r *interviewRepository) CountScheduledBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM interviews WHERE scheduled_at BETWEEN $1 AND $2`,
		start, end).Scan(&n)
	return n, err
}

func (r *interviewRepository) CompletedWithoutFeedback(ctx context.Context) ([]*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews i
        WHERE i.current_status = 'COMPLETED'
          AND NOT EXISTS (SELECT 1 FROM feedback f WHERE f.interview_id = i.id)
        ORDER BY i.scheduled_at`
	return r.query(ctx, query)
}

func (r *interviewRepository) CountCompletedWithoutFeedback(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM interviews i
        WHERE i.current_status = 'COMPLETED'
          AND NOT EXISTS (SELECT 1 FROM feedback f WHERE f.interview_id = i.id)`).Scan(&n)
	return n, err
}

func (r *interviewRepository) Overdue(ctx context.Context, now time.Time) ([]*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
        WHERE current_status = 'SCHEDULED' AND scheduled_at < $1
        ORDER BY scheduled_at`
	return r.query(ctx, query, now)
}

func (r *interviewRepository) ExistsForInterviewer(ctx context.Context, interviewerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM interviews WHERE interviewer_id = $1)`,
		interviewerID).Scan(&exists)
	return exists, err
}

func (r *interviewRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Interview, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query interviews: %w", err)
	}
	defer rows.Close()

	var out []*domain.Interview
	for rows.Next() {
		i := &domain.Interview{}
		var location, notes sql.NullString
		if err := rows.Scan(&i.ID, &i.CandidateID, &i.InterviewerID, &i.ScheduledAt,
			&i.DurationMinutes, &i.CurrentStatus, &i.Type, &location, &notes,
			&i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan interview: %w", err)
		}
		i.Location = location.String
		i.Notes = notes.String
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *interviewRepository) scanOne(row *sql.Row) (*domain.Interview, error) {
	i := &domain.Interview{}
	var location, notes sql.NullString
	err := row.Scan(&i.ID, &i.CandidateID, &i.InterviewerID, &i.ScheduledAt,
		&i.DurationMinutes, &i.CurrentStatus, &i.Type, &location, &notes,
		&i.CreatedAt, &i.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan interview: %w", err)
	}
	i.Location = location.String
	i.Notes = notes.String
	return i, nil
}
