package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so every repository can
// run against the pool or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type store struct {
	db *sql.DB
}

// NewStore wraps the connection pool as the data store gateway.
func NewStore(db *sql.DB) domain.Store {
	return &store{db: db}
}

func newRepositories(q DBTX) *domain.Repositories {
	return &domain.Repositories{
		Candidates:   &candidateRepository{q: q},
		Interviewers: &interviewerRepository{q: q},
		Interviews:   &interviewRepository{q: q},
		Feedback:     &feedbackRepository{q: q},
		Screenings:   &screeningRepository{q: q},
		History:      &historyRepository{q: q},
	}
}

func (s *store) Repos() *domain.Repositories {
	return newRepositories(s.db)
}

// WithinTx runs fn with transaction-bound repositories. A failure from fn
// rolls back the primary mutation and any audit appends together.
func (s *store) WithinTx(ctx context.Context, fn func(r *domain.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(newRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
