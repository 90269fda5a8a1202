package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/racha-league/internal/domain/highlight"
	"github.com/riskibarqy/racha-league/internal/domain/period"
)

type DailyHighlights struct {
	GroupID     string
	DataVersion int64
	Set         highlight.DailySet
}

// GetDailyHighlights computes the team and athletes of the day for a
// YYYY-MM-DD date in league time.
func (s *RankingService) GetDailyHighlights(ctx context.Context, groupID, date string) (DailyHighlights, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.GetDailyHighlights")
	defer span.End()

	day, err := period.ParseDay(date)
	if err != nil {
		return DailyHighlights{}, err
	}
	groupID, err = s.ensureGroup(ctx, groupID)
	if err != nil {
		return DailyHighlights{}, err
	}

	version, cacheable := s.dataVersion(ctx, groupID)
	key := fmt.Sprintf("%sv%d:highlights:%s", cachePrefix(groupID), version, day)

	return cached(ctx, s, s.highlightCache, "highlights", key, cacheable, func(ctx context.Context) (DailyHighlights, error) {
		started := time.Now()
		window := day.Range()
		matches, err := s.matchRepo.ListByGroupBetween(ctx, groupID, window.Start, window.End)
		if err != nil {
			return DailyHighlights{}, fmt.Errorf("list matches: %w", err)
		}
		roster, err := s.athleteRepo.ListByGroup(ctx, groupID)
		if err != nil {
			return DailyHighlights{}, fmt.Errorf("list athletes: %w", err)
		}

		set := highlight.ComputeDaily(day, matches, roster)
		s.reportAnomalies(ctx, groupID, set.Anomalies)
		s.observer.ObserveComputation("highlights", time.Since(started))

		return DailyHighlights{GroupID: groupID, DataVersion: version, Set: set}, nil
	})
}
