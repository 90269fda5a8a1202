package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFlight_DoCollapsesConcurrentCalls(t *testing.T) {
	var f Flight[int]
	var counter atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			got, err, _ := f.Do("ranking:grp-1", func() (int, error) {
				counter.Add(1)
				time.Sleep(20 * time.Millisecond)
				return 42, nil
			})
			if err != nil || got != 42 {
				t.Errorf("unexpected flight result %d err=%v", got, err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := counter.Load(); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestFlight_DoReturnsZeroValueOnError(t *testing.T) {
	var f Flight[[]string]
	boom := errors.New("boom")

	got, err, _ := f.Do("k", func() ([]string, error) {
		return []string{"partial"}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected zero value on error, got %v", got)
	}
}
