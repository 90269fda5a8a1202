package usecase

import "time"

// RankingObserver receives engine telemetry. observability.Metrics implements it.
type RankingObserver interface {
	ObserveAnomaly(reason string)
	ObserveCache(kind string, hit bool)
	ObserveComputation(kind string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveAnomaly(string)                    {}
func (nopObserver) ObserveCache(string, bool)                {}
func (nopObserver) ObserveComputation(string, time.Duration) {}
