package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

type historyRepository struct {
	q DBTX
}

func (r *historyRepository) AppendStageChange(ctx context.Context, sc *domain.StageChange) error {
	query := `
        INSERT INTO candidate_stage_history (id, candidate_id, from_stage, to_stage, changed_by, reason, changed_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.q.ExecContext(ctx, query,
		sc.ID, sc.CandidateID, stagePtr(sc.FromStage), sc.ToStage,
		sc.ChangedBy, sc.Reason, sc.ChangedAt)
	if err != nil {
		return fmt.Errorf("append stage change: %w", err)
	}
	return nil
}

func (r *historyRepository) AppendStatusChange(ctx context.Context, sc *domain.StatusChange) error {
	query := `
        INSERT INTO interview_status_history (id, interview_id, from_status, to_status, changed_by, notes, changed_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.q.ExecContext(ctx, query,
		sc.ID, sc.InterviewID, statusPtr(sc.FromStatus), sc.ToStatus,
		sc.ChangedBy, sc.Notes, sc.ChangedAt)
	if err != nil {
		return fmt.Errorf("append status change: %w", err)
	}
	return nil
}

func (r *historyRepository) StageHistory(ctx context.Context, candidateID uuid.UUID) ([]*domain.StageChange, error) {
	query := `
        SELECT id, candidate_id, from_stage, to_stage, changed_by, reason, changed_at
        FROM candidate_stage_history
        WHERE candidate_id = $1
        ORDER BY changed_at ASC`

	rows, err := r.q.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("stage history: %w", err)
	}
	defer rows.Close()

	var out []*domain.StageChange
	for rows.Next() {
		sc := &domain.StageChange{}
		var from sql.NullString
		var reason sql.NullString
		if err := rows.Scan(&sc.ID, &sc.CandidateID, &from, &sc.ToStage,
			&sc.ChangedBy, &reason, &sc.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan stage change: %w", err)
		}
		if from.Valid {
			stage := domain.CandidateStage(from.String)
			sc.FromStage = &stage
		}
		sc.Reason = reason.String
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (r *historyRepository) StatusHistory(ctx context.Context, interviewID uuid.UUID) ([]*domain.StatusChange, error) {
	query := `
        SELECT id, interview_id, from_status, to_status, changed_by, notes, changed_at
        FROM interview_status_history
        WHERE interview_id = $1
        ORDER BY changed_at ASC`

	rows, err := r.q.QueryContext(ctx, query, interviewID)
	if err != nil {
		return nil, fmt.Errorf("status history: %w", err)
	}
	defer rows.Close()

	var out []*domain.StatusChange
	for rows.Next() {
		sc := &domain.StatusChange{}
		var from, notes sql.NullString
		if err := rows.Scan(&sc.ID, &sc.InterviewID, &from, &sc.ToStatus,
			&sc.ChangedBy, &notes, &sc.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan status change: %w", err)
		}
		if from.Valid {
			status := domain.InterviewStatus(from.String)
			sc.FromStatus = &status
		}
		sc.Notes = notes.String
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (r *historyRepository) RecentStageChanges(ctx context.Context, since time.Time, limit int) ([]*domain.RecentActivity, error) {
	query := `
        SELECT h.candidate_id, c.name, h.from_stage, h.to_stage, h.changed_by, h.reason, h.changed_at
        FROM candidate_stage_history h
        JOIN candidates c ON c.id = h.candidate_id
        WHERE h.changed_at >= $1
        ORDER BY h.changed_at DESC
        LIMIT $2`

	rows, err := r.q.QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("recent stage changes: %w", err)
	}
	defer rows.Close()

	var out []*domain.RecentActivity
	for rows.Next() {
		ra := &domain.RecentActivity{}
		var from, reason sql.NullString
		if err := rows.Scan(&ra.CandidateID, &ra.CandidateName, &from, &ra.ToStage,
			&ra.ChangedBy, &reason, &ra.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan recent activity: %w", err)
		}
		if from.Valid {
			stage := domain.CandidateStage(from.String)
			ra.FromStage = &stage
		}
		ra.Reason = reason.String
		out = append(out, ra)
	}
	return out, rows.Err()
}

// AverageStageDurations pairs each transition with the next one for the
// same candidate; the gap between them is the dwell time in the stage
// the first transition entered.
func (r *historyRepository) AverageStageDurations(ctx context.Context) ([]*domain.StageDuration, error) {
	query := `
        WITH ordered AS (
            SELECT candidate_id, to_stage, changed_at,
                   LEAD(changed_at) OVER (PARTITION BY candidate_id ORDER BY changed_at) AS left_at
            FROM candidate_stage_history
        )
        SELECT to_stage,
               AVG(EXTRACT(EPOCH FROM (left_at - changed_at)) / 3600.0),
               COUNT(*)
        FROM ordered
        WHERE left_at IS NOT NULL
        GROUP BY to_stage
        ORDER BY to_stage`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("average stage durations: %w", err)
	}
	defer rows.Close()

	var out []*domain.StageDuration
	for rows.Next() {
		sd := &domain.StageDuration{}
		if err := rows.Scan(&sd.Stage, &sd.AverageHours, &sd.Samples); err != nil {
			return nil, fmt.Errorf("scan stage duration: %w", err)
		}
		out = append(out, sd)
	}
	return out, rows.Err()
}

func (r *historyRepository) DeleteStageHistoryByCandidate(ctx context.Context, candidateID uuid.UUID) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM candidate_stage_history WHERE candidate_id = $1`, candidateID)
	if err != nil {
		return fmt.Errorf("delete stage history: %w", err)
	}
	return nil
}

func (r *historyRepository) DeleteStatusHistoryByCandidate(ctx context.Context, candidateID uuid.UUID) error {
	query := `
        DELETE FROM interview_status_history
        WHERE interview_id IN (SELECT id FROM interviews WHERE candidate_id = $1)`
	if _, err := r.q.ExecContext(ctx, query, candidateID); err != nil {
		return fmt.Errorf("delete status history: %w", err)
	}
	return nil
}

func stagePtr(s *domain.CandidateStage) any {
	if s == nil {
		return nil
	}
	return string(*s)
}

func statusPtr(s *domain.InterviewStatus) any {
	if s == nil {
		return nil
	}
	return string(*s)
}
