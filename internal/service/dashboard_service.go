package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 30 * time.Second

	recentActivityDays  = 7
	recentActivityLimit = 10
	topCandidatesLimit  = 5
)

// DashboardService assembles the read-only dashboard projection. The
// component queries fan out concurrently and the assembled result is
// cached briefly in Redis; a cold or unreachable cache degrades to a
// direct read.
type DashboardService struct {
	store  domain.Store
	cache  *redis.Client
	logger zerolog.Logger
	now    func() time.Time
}

func NewDashboardService(store domain.Store, cache *redis.Client, logger zerolog.Logger) *DashboardService {
	return &DashboardService{
		store:  store,
		cache:  cache,
		logger: logger.With().Str("service", "dashboard").Logger(),
		now:    time.Now,
	}
}

// Stats returns the composite dashboard projection.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	stats := &domain.DashboardStats{}
	repos := s.store.Repos()
	now := s.now()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := repos.Candidates.CountAll(gctx)
		if err != nil {
			return fmt.Errorf("count candidates: %w", err)
		}
		stats.TotalCandidates = total
		return nil
	})
	g.Go(func() error {
		startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		n, err := repos.Candidates.CountCreatedSince(gctx, startOfMonth)
		if err != nil {
			return fmt.Errorf("count candidates this month: %w", err)
		}
		stats.CandidatesThisMonth = n
		return nil
	})
	g.Go(func() error {
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		n, err := repos.Interviews.CountScheduledBetween(gctx, startOfDay, startOfDay.AddDate(0, 0, 1))
		if err != nil {
			return fmt.Errorf("count interviews today: %w", err)
		}
		stats.InterviewsToday = n
		return nil
	})
	g.Go(func() error {
		n, err := repos.Interviews.CountCompletedWithoutFeedback(gctx)
		if err != nil {
			return fmt.Errorf("count pending feedback: %w", err)
		}
		stats.PendingFeedbackCount = n
		return nil
	})
	g.Go(func() error {
		byStage, err := repos.Candidates.CountByStage(gctx)
		if err != nil {
			return fmt.Errorf("count by stage: %w", err)
		}
		stats.CandidatesByStage = byStage
		return nil
	})
	g.Go(func() error {
		activity, err := repos.History.RecentStageChanges(gctx,
			now.AddDate(0, 0, -recentActivityDays), recentActivityLimit)
		if err != nil {
			return fmt.Errorf("recent activity: %w", err)
		}
		stats.RecentActivity = activity
		return nil
	})
	g.Go(func() error {
		top, err := repos.Screenings.TopCandidates(gctx, topCandidatesLimit)
		if err != nil {
			return fmt.Errorf("top candidates: %w", err)
		}
		stats.TopCandidates = top
		return nil
	})
	g.Go(func() error {
		avg, err := repos.Screenings.AverageScoreByStage(gctx)
		if err != nil {
			return fmt.Errorf("average score by stage: %w", err)
		}
		stats.AverageScoreByStage = avg
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.Funnel = buildFunnel(stats.CandidatesByStage)
	s.toCache(ctx, stats)
	return stats, nil
}

// Funnel returns the per-stage breakdown with the overall conversion
// rate.
func (s *DashboardService) Funnel(ctx context.Context) (*domain.HiringFunnel, error) {
	byStage, err := s.store.Repos().Candidates.CountByStage(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by stage: %w", err)
	}
	return buildFunnel(byStage), nil
}

func buildFunnel(byStage map[domain.CandidateStage]int64) *domain.HiringFunnel {
	funnel := &domain.HiringFunnel{
		Applied:            byStage[domain.StageApplied],
		Screening:          byStage[domain.StageScreening],
		InterviewScheduled: byStage[domain.StageInterviewScheduled],
		InterviewCompleted: byStage[domain.StageInterviewCompleted],
		Hired:              byStage[domain.StageHired],
		Rejected:           byStage[domain.StageRejected],
	}
	for _, n := range byStage {
		funnel.TotalCandidates += n
	}
	if funnel.TotalCandidates > 0 {
		funnel.OverallConversionRate = float64(funnel.Hired) / float64(funnel.TotalCandidates) * 100
	}
	return funnel
}

func (s *DashboardService) fromCache(ctx context.Context) *domain.DashboardStats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("dashboard cache read failed")
		}
		return nil
	}
	stats := &domain.DashboardStats{}
	if err := json.Unmarshal(raw, stats); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard cache entry corrupt")
		return nil
	}
	return stats
}

func (s *DashboardService) toCache(ctx context.Context, stats *domain.DashboardStats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard cache write failed")
	}
}
