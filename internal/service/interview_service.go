package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

// conflictWindow pads the conflict query on both sides so that any
// interview whose slot could touch the requested one lands in the
// candidate set. MaxDurationMinutes is 480, well inside 2h on the left
// only for short slots, so the left edge is widened by the max duration.
const conflictWindow = 2 * time.Hour

// InterviewService is the scheduling engine. All slot mutations run
// inside a transaction that first takes the interviewer's row lock, so
// two concurrent requests for the same interviewer serialize and the
// loser sees the winner's booking.
type InterviewService struct {
	store  domain.Store
	logger zerolog.Logger
	now    func() time.Time
}

func NewInterviewService(store domain.Store, logger zerolog.Logger) *InterviewService {
	return &InterviewService{
		store:  store,
		logger: logger.With().Str("service", "interview").Logger(),
		now:    time.Now,
	}
}

// schedulableStages are the candidate stages from which an interview may
// be booked.
var schedulableStages = map[domain.CandidateStage]bool{
	domain.StageScreening:          true,
	domain.StageInterviewScheduled: true,
	domain.StageInterviewCompleted: true,
}

func validateSlot(scheduledAt time.Time, durationMinutes int, now time.Time) (int, error) {
	if durationMinutes == 0 {
		durationMinutes = domain.DefaultDurationMinutes
	}
	if durationMinutes < domain.MinDurationMinutes || durationMinutes > domain.MaxDurationMinutes {
		return 0, &domain.ValidationError{
			Field:   "durationMinutes",
			Message: fmt.Sprintf("must be between %d and %d", domain.MinDurationMinutes, domain.MaxDurationMinutes),
		}
	}
	if !scheduledAt.After(now) {
		return 0, &domain.ValidationError{Field: "scheduledAt", Message: "must be in the future"}
	}
	return durationMinutes, nil
}

// checkConflicts pulls the interviewer's non-terminal interviews around
// the requested slot and applies the exact half-open overlap test in
// memory. The caller must already hold the interviewer row lock.
func checkConflicts(ctx context.Context, r *domain.Repositories, interviewerID uuid.UUID,
	scheduledAt time.Time, durationMinutes int, exclude uuid.UUID) error {

	windowStart := scheduledAt.Add(-conflictWindow - time.Duration(domain.MaxDurationMinutes)*time.Minute)
	windowEnd := scheduledAt.Add(time.Duration(durationMinutes)*time.Minute + conflictWindow)

	nearby, err := r.Interviews.ActiveForInterviewerBetween(ctx, interviewerID, windowStart, windowEnd)
	if err != nil {
		return fmt.Errorf("load nearby interviews: %w", err)
	}
	for _, existing := range nearby {
		if existing.ID == exclude {
			continue
		}
		if existing.OverlapsWith(scheduledAt, durationMinutes) {
			return &domain.SchedulingConflictError{
				InterviewerID: interviewerID,
				ConflictTime:  existing.ScheduledAt,
			}
		}
	}
	return nil
}

// Schedule books a new interview. On success the candidate is advanced
// from SCREENING to INTERVIEW_SCHEDULED if not already there; the
// interview insert, both audit records and the stage move commit
// together.
func (s *InterviewService) Schedule(ctx context.Context, req *domain.ScheduleInterviewRequest) (*domain.Interview, error) {
	if !domain.ValidInterviewType(req.Type) {
		return nil, &domain.ValidationError{Field: "interviewType", Message: fmt.Sprintf("unknown type %q", req.Type)}
	}
	duration, err := validateSlot(req.ScheduledAt, req.DurationMinutes, s.now())
	if err != nil {
		return nil, err
	}

	var interview *domain.Interview
	err = s.store.WithinTx(ctx, func(r *domain.Repositories) error {
		candidate, err := r.Candidates.GetByID(ctx, req.CandidateID)
		if err != nil {
			return fmt.Errorf("get candidate: %w", err)
		}
		if candidate == nil {
			return domain.NewNotFound("Candidate", req.CandidateID)
		}
		if !schedulableStages[candidate.CurrentStage] {
			return &domain.InvalidStateError{
				Message: fmt.Sprintf("Cannot schedule interview for candidate in stage %s", candidate.CurrentStage),
			}
		}

		interviewer, err := r.Interviewers.GetByID(ctx, req.InterviewerID)
		if err != nil {
			return fmt.Errorf("get interviewer: %w", err)
		}
		if interviewer == nil {
			return domain.NewNotFound("Interviewer", req.InterviewerID)
		}
		if !interviewer.Active {
			return &domain.InvalidStateError{Message: "Cannot schedule interview with archived interviewer"}
		}

		if err := r.Interviewers.LockForUpdate(ctx, req.InterviewerID); err != nil {
			return fmt.Errorf("lock interviewer: %w", err)
		}
		if err := checkConflicts(ctx, r, req.InterviewerID, req.ScheduledAt, duration, uuid.Nil); err != nil {
			return err
		}

		now := s.now()
		interview = &domain.Interview{
			ID:              uuid.New(),
			CandidateID:     req.CandidateID,
			InterviewerID:   req.InterviewerID,
			ScheduledAt:     req.ScheduledAt,
			DurationMinutes: duration,
			CurrentStatus:   domain.StatusScheduled,
			Type:            req.Type,
			Location:        req.Location,
			Notes:           req.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := r.Interviews.Create(ctx, interview); err != nil {
			return err
		}
		if err := recordInitialStatus(ctx, r, interview, req.ScheduledBy); err != nil {
			return err
		}

		if candidate.CurrentStage == domain.StageScreening {
			reason := fmt.Sprintf("Interview scheduled for %s", req.ScheduledAt.Format(time.RFC3339))
			if err := transitionCandidate(ctx, r, candidate, domain.StageInterviewScheduled, req.ScheduledBy, reason); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("interview_id", interview.ID.String()).
		Str("candidate_id", req.CandidateID.String()).
		Str("interviewer_id", req.InterviewerID.String()).
		Time("scheduled_at", req.ScheduledAt).
		Msg("interview scheduled")
	return interview, nil
}

// Reschedule moves an existing interview to a new slot. The audit trail
// records RESCHEDULED then SCHEDULED so the detour is visible; both
// records and the slot change commit together.
func (s *InterviewService) Reschedule(ctx context.Context, id uuid.UUID, newTime time.Time, durationMinutes int, changedBy, reason string) (*domain.Interview, error) {
	var interview *domain.Interview
	err := s.store.WithinTx(ctx, func(r *domain.Repositories) error {
		var err error
		interview, err = r.Interviews.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get interview: %w", err)
		}
		if interview == nil {
			return domain.NewNotFound("Interview", id)
		}
		if interview.CurrentStatus.Terminal() {
			return &domain.InvalidStateError{
				Message: fmt.Sprintf("Cannot reschedule interview in status %s", interview.CurrentStatus),
			}
		}

		if durationMinutes == 0 {
			durationMinutes = interview.DurationMinutes
		}
		duration, err := validateSlot(newTime, durationMinutes, s.now())
		if err != nil {
			return err
		}

		if err := r.Interviewers.LockForUpdate(ctx, interview.InterviewerID); err != nil {
			return fmt.Errorf("lock interviewer: %w", err)
		}
		if err := checkConflicts(ctx, r, interview.InterviewerID, newTime, duration, interview.ID); err != nil {
			return err
		}

		if err := transitionInterview(ctx, r, interview, domain.StatusRescheduled, changedBy, reason); err != nil {
			return err
		}
		interview.ScheduledAt = newTime
		interview.DurationMinutes = duration
		notes := fmt.Sprintf("Rescheduled to %s", newTime.Format(time.RFC3339))
		return transitionInterview(ctx, r, interview, domain.StatusScheduled, changedBy, notes)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("interview_id", id.String()).
		Time("new_time", newTime).Msg("interview rescheduled")
	return interview, nil
}

// Cancel moves the interview to CANCELLED. Cancelled slots no longer
// block the interviewer's calendar.
func (s *InterviewService) Cancel(ctx context.Context, id uuid.UUID, changedBy, reason string) (*domain.Interview, error) {
	return s.UpdateStatus(ctx, id, domain.StatusCancelled, changedBy, reason)
}

// UpdateStatus applies a lifecycle move. Completing an interview also
// advances the candidate from INTERVIEW_SCHEDULED to INTERVIEW_COMPLETED
// in the same transaction.
func (s *InterviewService) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus domain.InterviewStatus, changedBy, notes string) (*domain.Interview, error) {
	var interview *domain.Interview
	err := s.store.WithinTx(ctx, func(r *domain.Repositories) error {
		var err error
		interview, err = r.Interviews.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get interview: %w", err)
		}
		if interview == nil {
			return domain.NewNotFound("Interview", id)
		}
		if err := transitionInterview(ctx, r, interview, newStatus, changedBy, notes); err != nil {
			return err
		}

		if newStatus != domain.StatusCompleted {
			return nil
		}
		candidate, err := r.Candidates.GetByID(ctx, interview.CandidateID)
		if err != nil {
			return fmt.Errorf("get candidate: %w", err)
		}
		if candidate == nil || candidate.CurrentStage != domain.StageInterviewScheduled {
			return nil
		}
		return transitionCandidate(ctx, r, candidate, domain.StageInterviewCompleted,
			changedBy, "Interview completed")
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("interview_id", id.String()).
		Str("status", string(newStatus)).Msg("interview status updated")
	return interview, nil
}

func (s *InterviewService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Interview, error) {
	interview, err := s.store.Repos().Interviews.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get interview: %w", err)
	}
	if interview == nil {
		return nil, domain.NewNotFound("Interview", id)
	}
	return interview, nil
}

func (s *InterviewService) ByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*domain.Interview, error) {
	return s.store.Repos().Interviews.ByCandidate(ctx, candidateID)
}

func (s *InterviewService) ByInterviewer(ctx context.Context, interviewerID uuid.UUID) ([]*domain.Interview, error) {
	return s.store.Repos().Interviews.ByInterviewer(ctx, interviewerID)
}

func (s *InterviewService) ByStatus(ctx context.Context, status domain.InterviewStatus) ([]*domain.Interview, error) {
	if !domain.ValidStatus(status) {
		return nil, &domain.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}
	return s.store.Repos().Interviews.ByStatus(ctx, status)
}

func (s *InterviewService) ScheduledBetween(ctx context.Context, start, end time.Time) ([]*domain.Interview, error) {
	if end.Before(start) {
		return nil, &domain.ValidationError{Field: "end", Message: "must not precede start"}
	}
	return s.store.Repos().Interviews.ScheduledBetween(ctx, start, end)
}

func (s *InterviewService) CompletedWithoutFeedback(ctx context.Context) ([]*domain.Interview, error) {
	return s.store.Repos().Interviews.CompletedWithoutFeedback(ctx)
}

func (s *InterviewService) Overdue(ctx context.Context) ([]*domain.Interview, error) {
	return s.store.Repos().Interviews.Overdue(ctx, s.now())
}

// IsAvailable reports whether the interviewer has no conflicting
// non-terminal interview in the given slot. Read-only, no lock; the
// authoritative check happens again under the lock at booking time.
func (s *InterviewService) IsAvailable(ctx context.Context, interviewerID uuid.UUID, start time.Time, durationMinutes int) (bool, error) {
	if durationMinutes == 0 {
		durationMinutes = domain.DefaultDurationMinutes
	}
	err := checkConflicts(ctx, s.store.Repos(), interviewerID, start, durationMinutes, uuid.Nil)
	if err != nil {
		var conflict *domain.SchedulingConflictError
		if errors.As(err, &conflict) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// FindAvailable returns active interviewers free in the given slot,
// optionally narrowed to an expertise tag.
func (s *InterviewService) FindAvailable(ctx context.Context, start time.Time, durationMinutes int, expertise string) ([]*domain.Interviewer, error) {
	if durationMinutes == 0 {
		durationMinutes = domain.DefaultDurationMinutes
	}
	repos := s.store.Repos()

	active, err := repos.Interviewers.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list interviewers: %w", err)
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	busyIDs, err := repos.Interviews.BusyInterviewerIDs(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("busy interviewers: %w", err)
	}
	busy := make(map[uuid.UUID]bool, len(busyIDs))
	for _, id := range busyIDs {
		busy[id] = true
	}

	var out []*domain.Interviewer
	for _, iv := range active {
		if busy[iv.ID] {
			continue
		}
		if expertise != "" && !hasExpertise(iv, expertise) {
			continue
		}
		out = append(out, iv)
	}
	return out, nil
}

func hasExpertise(iv *domain.Interviewer, tag string) bool {
	for _, e := range iv.Expertise {
		if e == tag {
			return true
		}
	}
	return false
}
