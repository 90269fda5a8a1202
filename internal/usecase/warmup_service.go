package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/racha-league/internal/domain/group"
	"github.com/riskibarqy/racha-league/internal/domain/period"
	"github.com/riskibarqy/racha-league/internal/domain/ranking"
	"github.com/riskibarqy/racha-league/internal/platform/logging"
)

const (
	warmupStatusSuccess = "success"
	warmupStatusFailed  = "failed"

	defaultWarmupWorkers = 4
	maxWarmupWorkers     = 32
)

type WarmupInput struct {
	// GroupIDs narrows the job; empty means every group.
	GroupIDs   []string
	MaxWorkers int
}

type WarmupResult struct {
	GroupCount   int                `json:"group_count"`
	TaskCount    int                `json:"task_count"`
	SuccessCount int                `json:"success_count"`
	FailedCount  int                `json:"failed_count"`
	WorkerCount  int                `json:"worker_count"`
	Tasks        []WarmupTaskResult `json:"tasks"`
}

type WarmupTaskResult struct {
	GroupID    string `json:"group_id"`
	Period     string `json:"period"`
	Target     string `json:"target"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type warmupTask struct {
	groupID string
	period  period.Selector
	target  string
}

// warmupTargets are the rankings precomputed for every period.
var warmupTargets = []string{
	string(ranking.MetricPoints),
	string(ranking.MetricGoals),
	string(ranking.MetricAssists),
	"teams",
}

// WarmupService precomputes the current year, quarter and month rankings of
// every group so the first page view after a result upload hits the cache.
type WarmupService struct {
	groupRepo group.Repository
	rankings  *RankingService
	logger    *logging.Logger
	observer  WarmupObserver
	now       func() time.Time
	workers   int
}

// WarmupObserver counts finished warm-up tasks.
type WarmupObserver interface {
	ObserveWarmupTask(ok bool)
}

type WarmupOption func(*WarmupService)

// WithDefaultWarmupWorkers sets the pool size used when a run does not ask
// for one.
func WithDefaultWarmupWorkers(workers int) WarmupOption {
	return func(s *WarmupService) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

func WithWarmupObserver(observer WarmupObserver) WarmupOption {
	return func(s *WarmupService) {
		s.observer = observer
	}
}

func NewWarmupService(groupRepo group.Repository, rankings *RankingService, logger *logging.Logger, opts ...WarmupOption) *WarmupService {
	if logger == nil {
		logger = logging.Default()
	}
	s := &WarmupService{
		groupRepo: groupRepo,
		rankings:  rankings,
		logger:    logger.Named("warmup"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *WarmupService) Run(ctx context.Context, input WarmupInput) (WarmupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WarmupService.Run")
	defer span.End()

	groupIDs, err := s.resolveGroups(ctx, input.GroupIDs)
	if err != nil {
		return WarmupResult{}, err
	}

	local := s.now().In(period.Location)
	periods := []period.Selector{
		period.Year(local.Year()),
		period.Quarter(local.Year(), period.QuarterOf(local.Month())),
		period.Month(local.Year(), int(local.Month())),
	}

	tasks := make([]warmupTask, 0, len(groupIDs)*len(periods)*len(warmupTargets))
	for _, groupID := range groupIDs {
		for _, sel := range periods {
			for _, target := range warmupTargets {
				tasks = append(tasks, warmupTask{groupID: groupID, period: sel, target: target})
			}
		}
	}

	requested := input.MaxWorkers
	if requested <= 0 {
		requested = s.workers
	}
	workerCount := normalizeWarmupWorkers(requested, len(tasks))
	result := WarmupResult{
		GroupCount:  len(groupIDs),
		TaskCount:   len(tasks),
		WorkerCount: workerCount,
		Tasks:       make([]WarmupTaskResult, 0, len(tasks)),
	}
	if len(tasks) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return WarmupResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan WarmupTaskResult, len(tasks))
	var successCount, failedCount atomic.Int32
	var workers sync.WaitGroup

	for _, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			started := time.Now()
			row := WarmupTaskResult{
				GroupID: task.groupID,
				Period:  task.period.Key(),
				Target:  task.target,
				Status:  warmupStatusSuccess,
			}
			err := s.runTask(ctx, task)
			if err != nil {
				row.Status = warmupStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				successCount.Add(1)
			}
			if s.observer != nil {
				s.observer.ObserveWarmupTask(err == nil)
			}
			row.DurationMs = time.Since(started).Milliseconds()
			results <- row
		}); err != nil {
			workers.Done()
			return WarmupResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)
	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}

	sort.SliceStable(result.Tasks, func(i, j int) bool {
		a, b := result.Tasks[i], result.Tasks[j]
		if a.GroupID != b.GroupID {
			return a.GroupID < b.GroupID
		}
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		return a.Target < b.Target
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	if result.FailedCount > 0 {
		s.logger.WarnContext(ctx, "ranking warm-up finished with failures",
			"groups", result.GroupCount,
			"failed", result.FailedCount,
			"tasks", result.TaskCount,
		)
	}
	return result, nil
}

func (s *WarmupService) runTask(ctx context.Context, task warmupTask) error {
	if task.target == "teams" {
		_, err := s.rankings.ListTeamStandings(ctx, TeamStandingsQuery{GroupID: task.groupID, Period: task.period})
		return err
	}
	_, err := s.rankings.ListAthleteRanking(ctx, AthleteRankingQuery{
		GroupID: task.groupID,
		Period:  task.period,
		Metric:  ranking.Metric(task.target),
	})
	return err
}

func (s *WarmupService) resolveGroups(ctx context.Context, requested []string) ([]string, error) {
	if len(requested) > 0 {
		seen := make(map[string]struct{}, len(requested))
		out := make([]string, 0, len(requested))
		for _, raw := range requested {
			groupID := strings.TrimSpace(raw)
			if groupID == "" {
				return nil, fmt.Errorf("%w: group id must not be blank", ErrInvalidInput)
			}
			if _, dup := seen[groupID]; dup {
				continue
			}
			seen[groupID] = struct{}{}
			out = append(out, groupID)
		}
		return out, nil
	}

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.ID)
	}
	return out, nil
}

func normalizeWarmupWorkers(requested, tasks int) int {
	workers := requested
	if workers <= 0 {
		workers = defaultWarmupWorkers
	}
	workers = min(workers, maxWarmupWorkers)
	if tasks > 0 {
		workers = min(workers, tasks)
	}
	return max(workers, 1)
}
