package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"golang.org/x/sync/errgroup"

	"github.com/riskibarqy/racha-league/internal/domain/athlete"
	"github.com/riskibarqy/racha-league/internal/domain/dataversion"
	"github.com/riskibarqy/racha-league/internal/domain/group"
	"github.com/riskibarqy/racha-league/internal/domain/match"
	"github.com/riskibarqy/racha-league/internal/domain/period"
	"github.com/riskibarqy/racha-league/internal/domain/ranking"
	"github.com/riskibarqy/racha-league/internal/domain/team"
	"github.com/riskibarqy/racha-league/internal/platform/cache"
	"github.com/riskibarqy/racha-league/internal/platform/logging"
)

type RankingServiceConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	// ShardWorkers above one folds matches concurrently.
	ShardWorkers int
}

type AthleteRankingQuery struct {
	GroupID  string
	Period   period.Selector
	Metric   ranking.Metric
	Position athlete.Position
	Limit    int
	Trend    bool
}

type AthleteRanking struct {
	GroupID     string
	Period      period.Selector
	Range       period.Range
	Metric      ranking.Metric
	Position    athlete.Position
	DataVersion int64
	Entries     []ranking.AthleteEntry
}

type TeamStandingsQuery struct {
	GroupID string
	Period  period.Selector
	Limit   int
	Trend   bool
}

type TeamStandings struct {
	GroupID     string
	Period      period.Selector
	Range       period.Range
	DataVersion int64
	Entries     []ranking.TeamEntry
}

type OverviewQuery struct {
	GroupID string
	Period  period.Selector
	Limit   int
	Trend   bool
}

type RankingOverview struct {
	GroupID     string
	Period      period.Selector
	Range       period.Range
	DataVersion int64
	Points      []ranking.AthleteEntry
	Goals       []ranking.AthleteEntry
	Assists     []ranking.AthleteEntry
	Teams       []ranking.TeamEntry
}

type RankingOption func(*RankingService)

// WithClock replaces time.Now as the source of "now" for period resolution.
func WithClock(now func() time.Time) RankingOption {
	return func(s *RankingService) {
		if now != nil {
			s.now = now
		}
	}
}

func WithRankingObserver(observer RankingObserver) RankingOption {
	return func(s *RankingService) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// RankingService serves athlete rankings, team standings and daily highlights.
// Results are cached per group data version, so a bumped version makes every
// older entry unreachable.
type RankingService struct {
	groupRepo   group.Repository
	athleteRepo athlete.Repository
	teamRepo    team.Repository
	matchRepo   match.Repository
	versions    dataversion.Repository
	cfg         RankingServiceConfig
	logger      *logging.Logger
	observer    RankingObserver
	now         func() time.Time

	athleteCache   *cache.Store[AthleteRanking]
	teamCache      *cache.Store[TeamStandings]
	highlightCache *cache.Store[DailyHighlights]
	overviewCache  *cache.Store[RankingOverview]
}

func NewRankingService(
	groupRepo group.Repository,
	athleteRepo athlete.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	versions dataversion.Repository,
	cfg RankingServiceConfig,
	logger *logging.Logger,
	opts ...RankingOption,
) *RankingService {
	if logger == nil {
		logger = logging.Default()
	}

	s := &RankingService{
		groupRepo:   groupRepo,
		athleteRepo: athleteRepo,
		teamRepo:    teamRepo,
		matchRepo:   matchRepo,
		versions:    versions,
		cfg:         cfg,
		logger:      logger.Named("ranking"),
		observer:    nopObserver{},
		now:         time.Now,
	}
	if cfg.CacheEnabled {
		s.athleteCache = cache.NewStore[AthleteRanking](cfg.CacheTTL)
		s.teamCache = cache.NewStore[TeamStandings](cfg.CacheTTL)
		s.highlightCache = cache.NewStore[DailyHighlights](cfg.CacheTTL)
		s.overviewCache = cache.NewStore[RankingOverview](cfg.CacheTTL)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RankingService) ListAthleteRanking(ctx context.Context, q AthleteRankingQuery) (AthleteRanking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.ListAthleteRanking")
	defer span.End()

	if q.Metric == "" {
		q.Metric = ranking.MetricPoints
	}
	query := ranking.Query{Metric: q.Metric, Position: q.Position, Limit: q.Limit}
	if err := query.Validate(); err != nil {
		return AthleteRanking{}, err
	}
	window, err := s.resolveWindow(q.Period, q.Trend)
	if err != nil {
		return AthleteRanking{}, err
	}
	groupID, err := s.ensureGroup(ctx, q.GroupID)
	if err != nil {
		return AthleteRanking{}, err
	}

	version, cacheable := s.dataVersion(ctx, groupID)
	key := fmt.Sprintf("%sv%d:athletes:%s:%s:%s:%d:%t",
		cachePrefix(groupID), version, rangeKey(window.current), q.Metric, q.Position, q.Limit, window.previous != nil)

	return cached(ctx, s, s.athleteCache, "athletes", key, cacheable, func(ctx context.Context) (AthleteRanking, error) {
		started := time.Now()
		current, previous, err := s.aggregate(ctx, groupID, window)
		if err != nil {
			return AthleteRanking{}, err
		}
		roster, err := s.athleteRepo.ListByGroup(ctx, groupID)
		if err != nil {
			return AthleteRanking{}, fmt.Errorf("list athletes: %w", err)
		}

		entries, err := ranking.BuildAthleteRanking(current, roster, query, previous)
		if err != nil {
			return AthleteRanking{}, err
		}
		s.observer.ObserveComputation("athletes", time.Since(started))

		return AthleteRanking{
			GroupID:     groupID,
			Period:      q.Period,
			Range:       window.current,
			Metric:      q.Metric,
			Position:    q.Position,
			DataVersion: version,
			Entries:     entries,
		}, nil
	})
}

func (s *RankingService) ListTeamStandings(ctx context.Context, q TeamStandingsQuery) (TeamStandings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.ListTeamStandings")
	defer span.End()

	if q.Limit < 0 {
		return TeamStandings{}, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	window, err := s.resolveWindow(q.Period, q.Trend)
	if err != nil {
		return TeamStandings{}, err
	}
	groupID, err := s.ensureGroup(ctx, q.GroupID)
	if err != nil {
		return TeamStandings{}, err
	}

	version, cacheable := s.dataVersion(ctx, groupID)
	key := fmt.Sprintf("%sv%d:teams:%s:%d:%t", cachePrefix(groupID), version, rangeKey(window.current), q.Limit, window.previous != nil)

	return cached(ctx, s, s.teamCache, "teams", key, cacheable, func(ctx context.Context) (TeamStandings, error) {
		started := time.Now()
		current, previous, err := s.aggregate(ctx, groupID, window)
		if err != nil {
			return TeamStandings{}, err
		}
		teams, err := s.teamRepo.ListByGroup(ctx, groupID)
		if err != nil {
			return TeamStandings{}, fmt.Errorf("list teams: %w", err)
		}

		entries, err := ranking.BuildTeamStandings(current, teams, q.Limit, previous)
		if err != nil {
			return TeamStandings{}, err
		}
		s.observer.ObserveComputation("teams", time.Since(started))

		return TeamStandings{
			GroupID:     groupID,
			Period:      q.Period,
			Range:       window.current,
			DataVersion: version,
			Entries:     entries,
		}, nil
	})
}

// Overview builds the three athlete rankings and the team standings of one
// period from a single data version and a single fold of the matches.
func (s *RankingService) Overview(ctx context.Context, q OverviewQuery) (RankingOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Overview")
	defer span.End()

	if q.Limit < 0 {
		return RankingOverview{}, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	window, err := s.resolveWindow(q.Period, q.Trend)
	if err != nil {
		return RankingOverview{}, err
	}
	groupID, err := s.ensureGroup(ctx, q.GroupID)
	if err != nil {
		return RankingOverview{}, err
	}

	version, cacheable := s.dataVersion(ctx, groupID)
	key := fmt.Sprintf("%sv%d:overview:%s:%d:%t", cachePrefix(groupID), version, rangeKey(window.current), q.Limit, window.previous != nil)

	return cached(ctx, s, s.overviewCache, "overview", key, cacheable, func(ctx context.Context) (RankingOverview, error) {
		started := time.Now()
		current, previous, err := s.aggregate(ctx, groupID, window)
		if err != nil {
			return RankingOverview{}, err
		}

		var (
			roster []athlete.Athlete
			teams  []team.Team
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			if roster, err = s.athleteRepo.ListByGroup(gctx, groupID); err != nil {
				return fmt.Errorf("list athletes: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			if teams, err = s.teamRepo.ListByGroup(gctx, groupID); err != nil {
				return fmt.Errorf("list teams: %w", err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return RankingOverview{}, err
		}

		out := RankingOverview{
			GroupID:     groupID,
			Period:      q.Period,
			Range:       window.current,
			DataVersion: version,
		}
		athleteTargets := []struct {
			metric ranking.Metric
			dst    *[]ranking.AthleteEntry
		}{
			{metric: ranking.MetricPoints, dst: &out.Points},
			{metric: ranking.MetricGoals, dst: &out.Goals},
			{metric: ranking.MetricAssists, dst: &out.Assists},
		}
		for _, target := range athleteTargets {
			entries, err := ranking.BuildAthleteRanking(current, roster, ranking.Query{Metric: target.metric, Limit: q.Limit}, previous)
			if err != nil {
				return RankingOverview{}, err
			}
			*target.dst = entries
		}
		if out.Teams, err = ranking.BuildTeamStandings(current, teams, q.Limit, previous); err != nil {
			return RankingOverview{}, err
		}
		s.observer.ObserveComputation("overview", time.Since(started))
		return out, nil
	})
}

// Invalidate drops every cached result of a group.
func (s *RankingService) Invalidate(ctx context.Context, groupID string) {
	prefix := cachePrefix(groupID)
	removed := 0
	if s.athleteCache != nil {
		removed += s.athleteCache.DeletePrefix(ctx, prefix)
	}
	if s.teamCache != nil {
		removed += s.teamCache.DeletePrefix(ctx, prefix)
	}
	if s.highlightCache != nil {
		removed += s.highlightCache.DeletePrefix(ctx, prefix)
	}
	if s.overviewCache != nil {
		removed += s.overviewCache.DeletePrefix(ctx, prefix)
	}
	s.logger.DebugContext(ctx, "ranking cache invalidated", "group_id", groupID, "removed", removed)
}

type rankingWindow struct {
	current  period.Range
	previous *period.Range
}

func (s *RankingService) resolveWindow(sel period.Selector, trend bool) (rankingWindow, error) {
	now := s.now()
	current, err := period.Resolve(sel, now)
	if err != nil {
		return rankingWindow{}, err
	}
	w := rankingWindow{current: current}
	if !trend {
		return w, nil
	}

	prevSel, ok, err := period.Previous(sel, now)
	if err != nil {
		return rankingWindow{}, err
	}
	if !ok {
		return w, nil
	}
	previous, err := period.Resolve(prevSel, now)
	if err != nil {
		return rankingWindow{}, err
	}
	w.previous = &previous
	return w, nil
}

// aggregate loads one match snapshot covering both windows and folds it.
func (s *RankingService) aggregate(ctx context.Context, groupID string, w rankingWindow) (ranking.Totals, *ranking.Totals, error) {
	var (
		matches []match.Match
		err     error
	)
	if w.current.Unbounded || (w.previous != nil && w.previous.Unbounded) {
		matches, err = s.matchRepo.ListByGroup(ctx, groupID)
	} else {
		start, end := w.current.Start, w.current.End
		if w.previous != nil {
			if w.previous.Start.Before(start) {
				start = w.previous.Start
			}
			if w.previous.End.After(end) {
				end = w.previous.End
			}
		}
		matches, err = s.matchRepo.ListByGroupBetween(ctx, groupID, start, end)
	}
	if err != nil {
		return ranking.Totals{}, nil, fmt.Errorf("list matches: %w", err)
	}

	var current ranking.Totals
	var previous *ranking.Totals
	// Profile samples taken during the fold carry the group label.
	pyroscope.TagWrapper(ctx, pyroscope.Labels("group_id", groupID), func(context.Context) {
		current = ranking.AggregateSharded(w.current, matches, s.cfg.ShardWorkers)
		if w.previous != nil {
			p := ranking.AggregateSharded(*w.previous, matches, s.cfg.ShardWorkers)
			previous = &p
		}
	})
	s.reportAnomalies(ctx, groupID, current.Anomalies)
	return current, previous, nil
}

func (s *RankingService) reportAnomalies(ctx context.Context, groupID string, anomalies []ranking.Anomaly) {
	for _, a := range anomalies {
		s.observer.ObserveAnomaly(string(a.Reason))
		s.logger.WarnContext(ctx, "skipped data anomaly",
			"group_id", groupID,
			"match_id", a.MatchID,
			"athlete_id", a.AthleteID,
			"team_id", a.TeamID,
			"reason", string(a.Reason),
		)
	}
}

func (s *RankingService) ensureGroup(ctx context.Context, groupID string) (string, error) {
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return "", fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}

	_, exists, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return "", fmt.Errorf("get group: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: group=%s", ErrNotFound, groupID)
	}
	return groupID, nil
}

// dataVersion reports false when the version store is unreachable; callers
// then compute without the cache instead of failing.
func (s *RankingService) dataVersion(ctx context.Context, groupID string) (int64, bool) {
	if s.versions == nil {
		return 0, false
	}
	version, err := s.versions.Current(ctx, groupID)
	if err != nil {
		s.logger.WarnContext(ctx, "data version unavailable, bypassing ranking cache", "group_id", groupID, "error", err)
		return 0, false
	}
	return version, true
}

func cachePrefix(groupID string) string {
	return "ranking:" + groupID + ":"
}

// rangeKey keys on the resolved range, so selectors defaulting to the current
// year roll over with the clock.
func rangeKey(r period.Range) string {
	if r.Unbounded {
		return "all"
	}
	return fmt.Sprintf("%d-%d", r.Start.UnixNano(), r.End.UnixNano())
}

func cached[V any](
	ctx context.Context,
	s *RankingService,
	store *cache.Store[V],
	kind string,
	key string,
	cacheable bool,
	load func(context.Context) (V, error),
) (V, error) {
	if store == nil || !cacheable {
		return load(ctx)
	}
	value, hit, err := store.GetOrLoad(ctx, key, load)
	if err != nil {
		var zero V
		return zero, err
	}
	s.observer.ObserveCache(kind, hit)
	return value, nil
}
