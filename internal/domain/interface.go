package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CandidateRepository is the typed persistence surface for candidates.
// Lookups return (nil, nil) when nothing matches.
type CandidateRepository interface {
	Create(ctx context.Context, c *Candidate) error
	GetByID(ctx context.Context, id uuid.UUID) (*Candidate, error)
	GetByEmail(ctx context.Context, email string) (*Candidate, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, c *Candidate) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, req PageRequest) ([]*Candidate, int64, error)
	Search(ctx context.Context, filter CandidateSearchFilter, req PageRequest) ([]*Candidate, int64, error)
	CountByStage(ctx context.Context) (map[CandidateStage]int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	WithoutScreening(ctx context.Context) ([]*Candidate, error)
}

// InterviewerRepository is the typed persistence surface for interviewers.
type InterviewerRepository interface {
	Create(ctx context.Context, iv *Interviewer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Interviewer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, iv *Interviewer) error
	Delete(ctx context.Context, id uuid.UUID) error
	Archive(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]*Interviewer, error)
	// LockForUpdate takes the interviewer row lock that serializes
	// conflict-check + insert during scheduling. Only meaningful inside
	// a transaction.
	LockForUpdate(ctx context.Context, id uuid.UUID) error
}

// InterviewRepository is the typed persistence surface for interviews.
type InterviewRepository interface {
	Create(ctx context.Context, i *Interview) error
	GetByID(ctx context.Context, id uuid.UUID) (*Interview, error)
	Update(ctx context.Context, i *Interview) error
	DeleteByCandidate(ctx context.Context, candidateID uuid.UUID) error
	ByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*Interview, error)
	ByInterviewer(ctx context.Context, interviewerID uuid.UUID) ([]*Interview, error)
	ByStatus(ctx context.Context, status InterviewStatus) ([]*Interview, error)
	// ActiveForInterviewerBetween returns the interviewer's non-terminal
	// interviews whose scheduled_at falls inside [start, end]; used as the
	// broadened candidate set for the exact overlap test.
	ActiveForInterviewerBetween(ctx context.Context, interviewerID uuid.UUID, start, end time.Time) ([]*Interview, error)
	// BusyInterviewerIDs returns interviewers holding a non-terminal
	// interview overlapping the half-open window [start, end).
	BusyInterviewerIDs(ctx context.Context, start, end time.Time) ([]uuid.UUID, error)
	ScheduledBetween(ctx context.Context, start, end time.Time) ([]*Interview, error)
	CountScheduledBetween(ctx context.Context, start, end time.Time) (int64, error)
	CompletedWithoutFeedback(ctx context.Context) ([]*Interview, error)
	CountCompletedWithoutFeedback(ctx context.Context) (int64, error)
	Overdue(ctx context.Context, now time.Time) ([]*Interview, error)
	ExistsForInterviewer(ctx context.Context, interviewerID uuid.UUID) (bool, error)
}

// FeedbackRepository is the typed persistence surface for feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, f *Feedback) error
	GetByID(ctx context.Context, id uuid.UUID) (*Feedback, error)
	Update(ctx context.Context, f *Feedback) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCandidate(ctx context.Context, candidateID uuid.UUID) error
	Exists(ctx context.Context, interviewID, interviewerID uuid.UUID) (bool, error)
	ByInterview(ctx context.Context, interviewID uuid.UUID) ([]*Feedback, error)
	ByInterviewer(ctx context.Context, interviewerID uuid.UUID) ([]*Feedback, error)
	Positive(ctx context.Context) ([]*Feedback, error)
	AveragesForCandidate(ctx context.Context, candidateID uuid.UUID) (*FeedbackAverages, error)
	StatsForInterviewer(ctx context.Context, interviewerID uuid.UUID) (*InterviewerStats, error)
	CountAll(ctx context.Context) (int64, error)
	CountPositive(ctx context.Context) (int64, error)
}

// ScreeningRepository is the typed persistence surface for AI screenings.
// Screenings are append-only except for the candidate-delete cascade.
type ScreeningRepository interface {
	Create(ctx context.Context, s *AIScreening) error
	GetByID(ctx context.Context, id uuid.UUID) (*AIScreening, error)
	DeleteByCandidate(ctx context.Context, candidateID uuid.UUID) error
	ByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*AIScreening, error)
	LatestForCandidate(ctx context.Context, candidateID uuid.UUID) (*AIScreening, error)
	ByMinScore(ctx context.Context, minScore int) ([]*AIScreening, error)
	CountAll(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountByMinScore(ctx context.Context, minScore int) (int64, error)
	AverageScore(ctx context.Context) (float64, error)
	AverageScoreByStage(ctx context.Context) (map[CandidateStage]float64, error)
	TopCandidates(ctx context.Context, limit int) ([]*TopCandidate, error)
}

// HistoryRepository is the append-only audit surface. Records are written
// inside the same transaction as the mutation they describe and are never
// updated or removed, apart from the candidate-delete cascade.
type HistoryRepository interface {
	AppendStageChange(ctx context.Context, sc *StageChange) error
	AppendStatusChange(ctx context.Context, sc *StatusChange) error
	StageHistory(ctx context.Context, candidateID uuid.UUID) ([]*StageChange, error)
	StatusHistory(ctx context.Context, interviewID uuid.UUID) ([]*StatusChange, error)
	RecentStageChanges(ctx context.Context, since time.Time, limit int) ([]*RecentActivity, error)
	AverageStageDurations(ctx context.Context) ([]*StageDuration, error)
	DeleteStageHistoryByCandidate(ctx context.Context, candidateID uuid.UUID) error
	DeleteStatusHistoryByCandidate(ctx context.Context, candidateID uuid.UUID) error
}

// Repositories bundles every repository bound to one query executor,
// either the pooled connection or an open transaction.
type Repositories struct {
	Candidates   CandidateRepository
	Interviewers InterviewerRepository
	Interviews   InterviewRepository
	Feedback     FeedbackRepository
	Screenings   ScreeningRepository
	History      HistoryRepository
}

// Store is the data store gateway. Repos gives plain repositories for
// reads; WithinTx scopes every mutation and its audit append to one
// transaction that commits or rolls back as a unit.
type Store interface {
	Repos() *Repositories
	WithinTx(ctx context.Context, fn func(r *Repositories) error) error
}
