package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

type candidateRepository struct {
	q DBTX
}

const candidateColumns = `id, name, email, phone, resume_path, current_stage, created_at, updated_at`

// candidateSortColumns whitelists sortable fields; anything else falls
// back to created_at.
var candidateSortColumns = map[string]string{
	"name":         "name",
	"email":        "email",
	"currentStage": "current_stage",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	query := `
        INSERT INTO candidates (id, name, email, phone, resume_path, current_stage, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.q.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.ResumePath, c.CurrentStage,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return &domain.DuplicateEmailError{Email: c.Email}
		}
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

func (r *candidateRepository) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE email = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, email))
}

func (r *candidateRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM candidates WHERE email = $1)`
	err := r.q.QueryRowContext(ctx, query, email).Scan(&exists)
	return exists, err
}

func (r *candidateRepository) Update(ctx context.Context, c *domain.Candidate) error {
	query := `
        UPDATE candidates
        SET name = $2, phone = $3, resume_path = $4, current_stage = $5, updated_at = $6
        WHERE id = $1`

	res, err := r.q.ExecContext(ctx, query,
		c.ID, c.Name, c.Phone, c.ResumePath, c.CurrentStage, time.Now())
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("Candidate", c.ID)
	}
	return nil
}

func (r *candidateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("Candidate", id)
	}
	return nil
}

func (r *candidateRepository) List(ctx context.Context, req domain.PageRequest) ([]*domain.Candidate, int64, error) {
	return r.Search(ctx, domain.CandidateSearchFilter{}, req)
}

func (r *candidateRepository) Search(ctx context.Context, filter domain.CandidateSearchFilter, req domain.PageRequest) ([]*domain.Candidate, int64, error) {
	var where []string
	var args []any
	i := 1

	if filter.Name != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", i))
		args = append(args, "%"+filter.Name+"%")
		i++
	}
	if filter.Email != "" {
		where = append(where, fmt.Sprintf("email ILIKE $%d", i))
		args = append(args, "%"+filter.Email+"%")
		i++
	}
	if filter.Stage != nil {
		where = append(where, fmt.Sprintf("current_stage = $%d", i))
		args = append(args, *filter.Stage)
		i++
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count candidates: %w", err)
	}

	sortCol, ok := candidateSortColumns[req.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	dir := "ASC"
	if strings.EqualFold(req.SortDir, "desc") {
		dir = "DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM candidates%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		candidateColumns, clause, sortCol, dir, i, i+1)
	args = append(args, req.Size, req.Page*req.Size)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	candidates, err := r.scanMany(rows)
	if err != nil {
		return nil, 0, err
	}
	return candidates, total, nil
}

func (r *candidateRepository) CountByStage(ctx context.Context) (map[domain.CandidateStage]int64, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT current_stage, COUNT(*) FROM candidates GROUP BY current_stage`)
	if err != nil {
		return nil, fmt.Errorf("count candidates by stage: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.CandidateStage]int64)
	for rows.Next() {
		var stage domain.CandidateStage
		var n int64
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, err
		}
		counts[stage] = n
	}
	return counts, rows.Err()
}

func (r *candidateRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM candidates WHERE created_at >= $1`, since).Scan(&n)
	return n, err
}

func (r *candidateRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&n)
	return n, err
}

func (r *candidateRepository) WithoutScreening(ctx context.Context) ([]*domain.Candidate, error) {
	query := `
        SELECT ` + candidateColumns + ` FROM candidates c
        WHERE NOT EXISTS (SELECT 1 FROM ai_screenings s WHERE s.candidate_id = c.id)
        ORDER BY c.created_at`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("candidates without screening: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *candidateRepository) scanOne(row *sql.Row) (*domain.Candidate, error) {
	c := &domain.Candidate{}
	var phone, resumePath sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.Email, &phone, &resumePath,
		&c.CurrentStage, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan candidate: %w", err)
	}
	c.Phone = phone.String
	c.ResumePath = resumePath.String
	return c, nil
}

func (r *candidateRepository) scanMany(rows *sql.Rows) ([]*domain.Candidate, error) {
	var out []*domain.Candidate
	for rows.Next() {
		c := &domain.Candidate{}
		var phone, resumePath sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &phone, &resumePath,
			&c.CurrentStage, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		c.Phone = phone.String
		c.ResumePath = resumePath.String
		out = append(out, c)
	}
	return out, rows.Err()
}
