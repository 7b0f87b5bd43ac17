package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

type interviewerRepository struct {
	q DBTX
}

const interviewerColumns = `id, name, email, department, title, expertise, active, created_at, updated_at`

func (r *interviewerRepository) Create(ctx context.Context, iv *domain.Interviewer) error {
	query := `
        INSERT INTO interviewers (id, name, email, department, title, expertise, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.q.ExecContext(ctx, query,
		iv.ID, iv.Name, iv.Email, iv.Department, iv.Title,
		pq.Array(iv.Expertise), iv.Active, iv.CreatedAt, iv.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return &domain.DuplicateEmailError{Email: iv.Email}
		}
		return fmt.Errorf("insert interviewer: %w", err)
	}
	return nil
}

func (r *interviewerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Interviewer, error) {
	query := `SELECT ` + interviewerColumns + ` FROM interviewers WHERE id = $1`
	iv := &domain.Interviewer{}
	var department, title sql.NullString
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&iv.ID, &iv.Name, &iv.Email, &department, &title,
		pq.Array(&iv.Expertise), &iv.Active, &iv.CreatedAt, &iv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan interviewer: %w", err)
	}
	iv.Department = department.String
	iv.Title = title.String
	return iv, nil
}

func (r *interviewerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM interviewers WHERE email = $1)`
	err := r.q.QueryRowContext(ctx, query, email).Scan(&exists)
	return exists, err
}

func (r *interviewerRepository) Update(ctx context.Context, iv *domain.Interviewer) error {
	query := `
        UPDATE interviewers
        SET name = $2, department = $3, title = $4, expertise = $5, active = $6, updated_at = $7
        WHERE id = $1`

	res, err := r.q.ExecContext(ctx, query,
		iv.ID, iv.Name, iv.Department, iv.Title, pq.Array(iv.Expertise), iv.Active, time.Now())
	if err != nil {
		return fmt.Errorf("update interviewer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("Interviewer", iv.ID)
	}
	return nil
}

func (r *interviewerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM interviewers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete interviewer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("Interviewer", id)
	}
	return nil
}

func (r *interviewerRepository) Archive(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE interviewers SET active = FALSE, updated_at = $2 WHERE id = $1`, id, time.Now())
	if err != nil {
		return fmt.Errorf("archive interviewer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("Interviewer", id)
	}
	return nil
}

func (r *interviewerRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Interviewer, error) {
	query := `SELECT ` + interviewerColumns + ` FROM interviewers`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list interviewers: %w", err)
	}
	defer rows.Close()

	var out []*domain.Interviewer
	for rows.Next() {
		iv := &domain.Interviewer{}
		var department, title sql.NullString
		if err := rows.Scan(&iv.ID, &iv.Name, &iv.Email, &department, &title,
			pq.Array(&iv.Expertise), &iv.Active, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan interviewer: %w", err)
		}
		iv.Department = department.String
		iv.Title = title.String
		out = append(out, iv)
	}
	return out, rows.Err()
}

// LockForUpdate serializes concurrent schedule calls per interviewer: the
// row lock is held until the surrounding transaction commits.
func (r *interviewerRepository) LockForUpdate(ctx context.Context, id uuid.UUID) error {
	var locked uuid.UUID
	err := r.q.QueryRowContext(ctx,
		`SELECT id FROM interviewers WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound("Interviewer", id)
	}
	if err != nil {
		return fmt.Errorf("lock interviewer row: %w", err)
	}
	return nil
}
