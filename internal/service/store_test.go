package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

// fakeData is the shared backing state of the in-memory repositories.
type fakeData struct {
	candidates   map[uuid.UUID]*domain.Candidate
	interviewers map[uuid.UUID]*domain.Interviewer
	interviews   map[uuid.UUID]*domain.Interview
	feedback     map[uuid.UUID]*domain.Feedback
	screenings   map[uuid.UUID]*domain.AIScreening

	stageChanges  []*domain.StageChange
	statusChanges []*domain.StatusChange

	lockedInterviewers []uuid.UUID
}

// fakeStore satisfies domain.Store over the in-memory repositories.
// WithinTx just runs fn; transactional atomicity is the real store's
// concern, the services under test only need the repository semantics.
type fakeStore struct {
	data  *fakeData
	repos *domain.Repositories
}

func newFakeStore() *fakeStore {
	d := &fakeData{
		candidates:   make(map[uuid.UUID]*domain.Candidate),
		interviewers: make(map[uuid.UUID]*domain.Interviewer),
		interviews:   make(map[uuid.UUID]*domain.Interview),
		feedback:     make(map[uuid.UUID]*domain.Feedback),
		screenings:   make(map[uuid.UUID]*domain.AIScreening),
	}
	return &fakeStore{
		data: d,
		repos: &domain.Repositories{
			Candidates:   &fakeCandidateRepo{d: d},
			Interviewers: &fakeInterviewerRepo{d: d},
			Interviews:   &fakeInterviewRepo{d: d},
			Feedback:     &fakeFeedbackRepo{d: d},
			Screenings:   &fakeScreeningRepo{d: d},
			History:      &fakeHistoryRepo{d: d},
		},
	}
}

func (s *fakeStore) Repos() *domain.Repositories { return s.repos }

func (s *fakeStore) WithinTx(_ context.Context, fn func(r *domain.Repositories) error) error {
	return fn(s.repos)
}

type fakeCandidateRepo struct{ d *fakeData }

func (r *fakeCandidateRepo) Create(_ context.Context, c *domain.Candidate) error {
	r.d.candidates[c.ID] = c
	return nil
}

func (r *fakeCandidateRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Candidate, error) {
	return r.d.candidates[id], nil
}

func (r *fakeCandidateRepo) GetByEmail(_ context.Context, email string) (*domain.Candidate, error) {
	for _, c := range r.d.candidates {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCandidateRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	c, _ := r.GetByEmail(ctx, email)
	return c != nil, nil
}

func (r *fakeCandidateRepo) Update(_ context.Context, c *domain.Candidate) error {
	r.d.candidates[c.ID] = c
	return nil
}

func (r *fakeCandidateRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.d.candidates, id)
	return nil
}

func (r *fakeCandidateRepo) List(_ context.Context, _ domain.PageRequest) ([]*domain.Candidate, int64, error) {
	var out []*domain.Candidate
	for _, c := range r.d.candidates {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCandidateRepo) Search(_ context.Context, filter domain.CandidateSearchFilter, _ domain.PageRequest) ([]*domain.Candidate, int64, error) {
	var out []*domain.Candidate
	for _, c := range r.d.candidates {
		if filter.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Email != "" && !strings.Contains(strings.ToLower(c.Email), strings.ToLower(filter.Email)) {
			continue
		}
		if filter.Stage != nil && c.CurrentStage != *filter.Stage {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCandidateRepo) CountByStage(_ context.Context) (map[domain.CandidateStage]int64, error) {
	out := make(map[domain.CandidateStage]int64)
	for _, c := range r.d.candidates {
		out[c.CurrentStage]++
	}
	return out, nil
}

func (r *fakeCandidateRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, c := range r.d.candidates {
		if !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeCandidateRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.d.candidates)), nil
}

func (r *fakeCandidateRepo) WithoutScreening(_ context.Context) ([]*domain.Candidate, error) {
	screened := make(map[uuid.UUID]bool)
	for _, sc := range r.d.screenings {
		screened[sc.CandidateID] = true
	}
	var out []*domain.Candidate
	for _, c := range r.d.candidates {
		if !screened[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeInterviewerRepo struct{ d *fakeData }

func (r *fakeInterviewerRepo) Create(_ context.Context, iv *domain.Interviewer) error {
	r.d.interviewers[iv.ID] = iv
	return nil
}

func (r *fakeInterviewerRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Interviewer, error) {
	return r.d.interviewers[id], nil
}

func (r *fakeInterviewerRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, iv := range r.d.interviewers {
		if iv.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeInterviewerRepo) Update(_ context.Context, iv *domain.Interviewer) error {
	r.d.interviewers[iv.ID] = iv
	return nil
}

func (r *fakeInterviewerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.d.interviewers, id)
	return nil
}

func (r *fakeInterviewerRepo) Archive(_ context.Context, id uuid.UUID) error {
	if iv, ok := r.d.interviewers[id]; ok {
		iv.Active = false
	}
	return nil
}

func (r *fakeInterviewerRepo) List(_ context.Context, activeOnly bool) ([]*domain.Interviewer, error) {
	var out []*domain.Interviewer
	for _, iv := range r.d.interviewers {
		if activeOnly && !iv.Active {
			continue
		}
		out = append(out, iv)
	}
	return out, nil
}

func (r *fakeInterviewerRepo) LockForUpdate(_ context.Context, id uuid.UUID) error {
	r.d.lockedInterviewers = append(r.d.lockedInterviewers, id)
	return nil
}

type fakeInterviewRepo struct{ d *fakeData }

func (r *fakeInterviewRepo) Create(_ context.Context, i *domain.Interview) error {
	r.d.interviews[i.ID] = i
	return nil
}

func (r *fakeInterviewRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Interview, error) {
	return r.d.interviews[id], nil
}

func (r *fakeInterviewRepo) Update(_ context.Context, i *domain.Interview) error {
	r.d.interviews[i.ID] = i
	return nil
}

func (r *fakeInterviewRepo) DeleteByCandidate(_ context.Context, candidateID uuid.UUID) error {
	for id, i := range r.d.interviews {
		if i.CandidateID == candidateID {
			delete(r.d.interviews, id)
		}
	}
	return nil
}

func (r *fakeInterviewRepo) ByCandidate(_ context.Context, candidateID uuid.UUID) ([]*domain.Interview, error) {
	var out []*domain.Interview
	for _, i := range r.d.interviews {
		if i.CandidateID == candidateID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeInterviewRepo) ByInterviewer(_ context.Context, interviewerID uuid.UUID) ([]*domain.Interview, error) {
	var out []*domain.Interview
	for _, i := range r.d.interviews {
		if i.InterviewerID == interviewerID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeInterviewRepo) ByStatus(_ context.Context, status domain.InterviewStatus) ([]*domain.Interview, error) {
	var out []*domain.Interview
	for _, i := range r.d.interviews {
		if i.CurrentStatus == status {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeInterviewRepo) ActiveForInterviewerBetween(_ context.Context, interviewerID uuid.UUID, start, end time.Time) ([]*domain.Interview, error) {
	var out []*domain.Interview
	for _, i := range r.d.interviews {
		if i.InterviewerID != interviewerID || i.CurrentStatus.Terminal() {
			continue
		}
		if i.ScheduledAt.Before(start) || i.ScheduledAt.After(end) {
			continue
		}
		out = append(out, i)
	}
	return out, nil
}

func (r *fakeInterviewRepo) BusyInterviewerIDs(_ context.Context, start, end time.Time) ([]uuid.UUID, error) {
	duration := int(end.Sub(start).Minutes())
	var out []uuid.UUID
	for _, i := range r.d.interviews {
		if i.CurrentStatus.Terminal() {
			continue
		}
		if i.OverlapsWith(start, duration) {
			out = append(out, i.InterviewerID)
		}
	}
	return out, nil
}

func (r *fakeInterviewRepo) ScheduledBetween(_ context.Context, start, end time.Time) ([]*domain.Interview, error) {
	var out []*domain.Interview
	for _, i := range r.d.interviews {
		if !i.ScheduledAt.Before(start) && !i.ScheduledAt.After(end) {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeInterviewRepo) CountScheduledBetween(ctx context.Context, start, end time.Time) (int64, error) {
	out, _ := r.ScheduledBetween(ctx, start, end)
	return int64(len(out)), nil
}

func (r *fakeInterviewRepo) CompletedWithoutFeedback(_ context.Context) ([]*domain.Interview, error) {
	withFeedback := make(map[uuid.UUID]bool)
	for _, f := range r.d.feedback {
		withFeedback[f.InterviewID] = true
	}
	var out []*domain.Interview
	for _, i := range r.d.interviews {
		if i.CurrentStatus == domain.StatusCompleted && !withFeedback[i.ID] {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeInterviewRepo) CountCompletedWithoutFeedback(ctx context.Context) (int64, error) {
	out, _ := r.CompletedWithoutFeedback(ctx)
	return int64(len(out)), nil
}

func (r *fakeInterviewRepo) Overdue(_ context.Context, now time.Time) ([]*domain.Interview, error) {
	var out []*domain.Interview
	for _, i := range r.d.interviews {
		if i.CurrentStatus == domain.StatusScheduled && i.EndsAt().Before(now) {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeInterviewRepo) ExistsForInterviewer(_ context.Context, interviewerID uuid.UUID) (bool, error) {
	for _, i := range r.d.interviews {
		if i.InterviewerID == interviewerID {
			return true, nil
		}
	}
	return false, nil
}

type fakeFeedbackRepo struct{ d *fakeData }

func (r *fakeFeedbackRepo) Create(_ context.Context, f *domain.Feedback) error {
	r.d.feedback[f.ID] = f
	return nil
}

func (r *fakeFeedbackRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Feedback, error) {
	return r.d.feedback[id], nil
}

func (r *fakeFeedbackRepo) Update(_ context.Context, f *domain.Feedback) error {
	r.d.feedback[f.ID] = f
	return nil
}

func (r *fakeFeedbackRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.d.feedback, id)
	return nil
}

func (r *fakeFeedbackRepo) DeleteByCandidate(_ context.Context, candidateID uuid.UUID) error {
	for id, f := range r.d.feedback {
		if i, ok := r.d.interviews[f.InterviewID]; ok && i.CandidateID == candidateID {
			delete(r.d.feedback, id)
		}
	}
	return nil
}

func (r *fakeFeedbackRepo) Exists(_ context.Context, interviewID, interviewerID uuid.UUID) (bool, error) {
	for _, f := range r.d.feedback {
		if f.InterviewID == interviewID && f.InterviewerID == interviewerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFeedbackRepo) ByInterview(_ context.Context, interviewID uuid.UUID) ([]*domain.Feedback, error) {
	var out []*domain.Feedback
	for _, f := range r.d.feedback {
		if f.InterviewID == interviewID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) ByInterviewer(_ context.Context, interviewerID uuid.UUID) ([]*domain.Feedback, error) {
	var out []*domain.Feedback
	for _, f := range r.d.feedback {
		if f.InterviewerID == interviewerID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) Positive(_ context.Context) ([]*domain.Feedback, error) {
	var out []*domain.Feedback
	for _, f := range r.d.feedback {
		if f.Recommendation.Positive() {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) AveragesForCandidate(_ context.Context, candidateID uuid.UUID) (*domain.FeedbackAverages, error) {
	avg := &domain.FeedbackAverages{}
	var tech, comm, prob int
	for _, f := range r.d.feedback {
		i, ok := r.d.interviews[f.InterviewID]
		if !ok || i.CandidateID != candidateID {
			continue
		}
		tech += f.TechnicalScore
		comm += f.CommunicationScore
		prob += f.ProblemSolvingScore
		avg.Count++
	}
	if avg.Count > 0 {
		avg.Technical = float64(tech) / float64(avg.Count)
		avg.Communication = float64(comm) / float64(avg.Count)
		avg.ProblemSolving = float64(prob) / float64(avg.Count)
	}
	return avg, nil
}

func (r *fakeFeedbackRepo) StatsForInterviewer(_ context.Context, interviewerID uuid.UUID) (*domain.InterviewerStats, error) {
	stats := &domain.InterviewerStats{}
	var tech, comm int
	for _, f := range r.d.feedback {
		if f.InterviewerID != interviewerID {
			continue
		}
		tech += f.TechnicalScore
		comm += f.CommunicationScore
		stats.TotalFeedbacks++
		if f.Recommendation == domain.RecommendStrongHire {
			stats.StrongHireCount++
		}
	}
	if stats.TotalFeedbacks > 0 {
		stats.AvgTechnicalScore = float64(tech) / float64(stats.TotalFeedbacks)
		stats.AvgCommunicationScore = float64(comm) / float64(stats.TotalFeedbacks)
	}
	return stats, nil
}

func (r *fakeFeedbackRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.d.feedback)), nil
}

func (r *fakeFeedbackRepo) CountPositive(ctx context.Context) (int64, error) {
	out, _ := r.Positive(ctx)
	return int64(len(out)), nil
}

type fakeScreeningRepo struct{ d *fakeData }

func (r *fakeScreeningRepo) Create(_ context.Context, s *domain.AIScreening) error {
	r.d.screenings[s.ID] = s
	return nil
}

func (r *fakeScreeningRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.AIScreening, error) {
	return r.d.screenings[id], nil
}

func (r *fakeScreeningRepo) DeleteByCandidate(_ context.Context, candidateID uuid.UUID) error {
	for id, s := range r.d.screenings {
		if s.CandidateID == candidateID {
			delete(r.d.screenings, id)
		}
	}
	return nil
}

func (r *fakeScreeningRepo) ByCandidate(_ context.Context, candidateID uuid.UUID) ([]*domain.AIScreening, error) {
	var out []*domain.AIScreening
	for _, s := range r.d.screenings {
		if s.CandidateID == candidateID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScreenedAt.After(out[j].ScreenedAt) })
	return out, nil
}

func (r *fakeScreeningRepo) LatestForCandidate(ctx context.Context, candidateID uuid.UUID) (*domain.AIScreening, error) {
	out, _ := r.ByCandidate(ctx, candidateID)
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *fakeScreeningRepo) ByMinScore(_ context.Context, minScore int) ([]*domain.AIScreening, error) {
	var out []*domain.AIScreening
	for _, s := range r.d.screenings {
		if s.MatchScore >= minScore {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeScreeningRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.d.screenings)), nil
}

func (r *fakeScreeningRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, s := range r.d.screenings {
		if !s.ScreenedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeScreeningRepo) CountByMinScore(ctx context.Context, minScore int) (int64, error) {
	out, _ := r.ByMinScore(ctx, minScore)
	return int64(len(out)), nil
}

func (r *fakeScreeningRepo) AverageScore(_ context.Context) (float64, error) {
	if len(r.d.screenings) == 0 {
		return 0, nil
	}
	sum := 0
	for _, s := range r.d.screenings {
		sum += s.MatchScore
	}
	return float64(sum) / float64(len(r.d.screenings)), nil
}

func (r *fakeScreeningRepo) AverageScoreByStage(_ context.Context) (map[domain.CandidateStage]float64, error) {
	sums := make(map[domain.CandidateStage]int)
	counts := make(map[domain.CandidateStage]int)
	for _, s := range r.d.screenings {
		c, ok := r.d.candidates[s.CandidateID]
		if !ok {
			continue
		}
		sums[c.CurrentStage] += s.MatchScore
		counts[c.CurrentStage]++
	}
	out := make(map[domain.CandidateStage]float64)
	for stage, sum := range sums {
		out[stage] = float64(sum) / float64(counts[stage])
	}
	return out, nil
}

func (r *fakeScreeningRepo) TopCandidates(_ context.Context, limit int) ([]*domain.TopCandidate, error) {
	best := make(map[uuid.UUID]*domain.AIScreening)
	for _, s := range r.d.screenings {
		if cur, ok := best[s.CandidateID]; !ok || s.MatchScore > cur.MatchScore {
			best[s.CandidateID] = s
		}
	}
	var out []*domain.TopCandidate
	for id, s := range best {
		c, ok := r.d.candidates[id]
		if !ok {
			continue
		}
		out = append(out, &domain.TopCandidate{
			CandidateID:  id,
			Name:         c.Name,
			Email:        c.Email,
			CurrentStage: c.CurrentStage,
			MatchScore:   s.MatchScore,
			ScreenedAt:   s.ScreenedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchScore > out[j].MatchScore })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeHistoryRepo struct{ d *fakeData }

func (r *fakeHistoryRepo) AppendStageChange(_ context.Context, sc *domain.StageChange) error {
	r.d.stageChanges = append(r.d.stageChanges, sc)
	return nil
}

func (r *fakeHistoryRepo) AppendStatusChange(_ context.Context, sc *domain.StatusChange) error {
	r.d.statusChanges = append(r.d.statusChanges, sc)
	return nil
}

func (r *fakeHistoryRepo) StageHistory(_ context.Context, candidateID uuid.UUID) ([]*domain.StageChange, error) {
	var out []*domain.StageChange
	for _, sc := range r.d.stageChanges {
		if sc.CandidateID == candidateID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) StatusHistory(_ context.Context, interviewID uuid.UUID) ([]*domain.StatusChange, error) {
	var out []*domain.StatusChange
	for _, sc := range r.d.statusChanges {
		if sc.InterviewID == interviewID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) RecentStageChanges(_ context.Context, since time.Time, limit int) ([]*domain.RecentActivity, error) {
	var out []*domain.RecentActivity
	for _, sc := range r.d.stageChanges {
		if sc.ChangedAt.Before(since) {
			continue
		}
		name := ""
		if c, ok := r.d.candidates[sc.CandidateID]; ok {
			name = c.Name
		}
		out = append(out, &domain.RecentActivity{
			CandidateID:   sc.CandidateID,
			CandidateName: name,
			FromStage:     sc.FromStage,
			ToStage:       sc.ToStage,
			ChangedBy:     sc.ChangedBy,
			Reason:        sc.Reason,
			ChangedAt:     sc.ChangedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChangedAt.After(out[j].ChangedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeHistoryRepo) AverageStageDurations(_ context.Context) ([]*domain.StageDuration, error) {
	return nil, nil
}

func (r *fakeHistoryRepo) DeleteStageHistoryByCandidate(_ context.Context, candidateID uuid.UUID) error {
	kept := r.d.stageChanges[:0]
	for _, sc := range r.d.stageChanges {
		if sc.CandidateID != candidateID {
			kept = append(kept, sc)
		}
	}
	r.d.stageChanges = kept
	return nil
}

func (r *fakeHistoryRepo) DeleteStatusHistoryByCandidate(_ context.Context, candidateID uuid.UUID) error {
	owned := make(map[uuid.UUID]bool)
	for id, i := range r.d.interviews {
		if i.CandidateID == candidateID {
			owned[id] = true
		}
	}
	kept := r.d.statusChanges[:0]
	for _, sc := range r.d.statusChanges {
		if !owned[sc.InterviewID] {
			kept = append(kept, sc)
		}
	}
	r.d.statusChanges = kept
	return nil
}

// Seeding helpers shared by the service tests.

func newUUID() uuid.UUID { return uuid.New() }

func timeNowPlus(hours int) time.Time {
	return time.Now().Add(time.Duration(hours) * time.Hour)
}

func seedCandidate(st *fakeStore, stage domain.CandidateStage) *domain.Candidate {
	c := &domain.Candidate{
		ID:           uuid.New(),
		Name:         "Jane Doe",
		Email:        uuid.NewString() + "@example.com",
		CurrentStage: stage,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	st.data.candidates[c.ID] = c
	return c
}

func seedInterviewer(st *fakeStore, active bool) *domain.Interviewer {
	iv := &domain.Interviewer{
		ID:        uuid.New(),
		Name:      "Alex Reviewer",
		Email:     uuid.NewString() + "@example.com",
		Expertise: []string{"backend"},
		Active:    active,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	st.data.interviewers[iv.ID] = iv
	return iv
}

func seedInterview(st *fakeStore, candidateID, interviewerID uuid.UUID, at time.Time, minutes int, status domain.InterviewStatus) *domain.Interview {
	i := &domain.Interview{
		ID:              uuid.New(),
		CandidateID:     candidateID,
		InterviewerID:   interviewerID,
		ScheduledAt:     at,
		DurationMinutes: minutes,
		CurrentStatus:   status,
		Type:            domain.TypeTechnical,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	st.data.interviews[i.ID] = i
	return i
}
