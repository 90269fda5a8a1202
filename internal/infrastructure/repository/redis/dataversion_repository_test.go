package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/riskibarqy/racha-league/internal/platform/resilience"
)

type fakeClient struct {
	values map[string]int64
	raw    map[string]string
	err    error
	calls  int
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: map[string]int64{}, raw: map[string]string{}}
}

func (f *fakeClient) Get(_ context.Context, key string) *goredis.StringCmd {
	f.calls++
	if f.err != nil {
		return goredis.NewStringResult("", f.err)
	}
	if raw, ok := f.raw[key]; ok {
		return goredis.NewStringResult(raw, nil)
	}
	v, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(strconv.FormatInt(v, 10), nil)
}

func (f *fakeClient) Incr(_ context.Context, key string) *goredis.IntCmd {
	f.calls++
	if f.err != nil {
		return goredis.NewIntResult(0, f.err)
	}
	f.values[key]++
	return goredis.NewIntResult(f.values[key], nil)
}

func TestDataVersionRepository_CurrentAndBump(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newFakeClient()
	repo := NewDataVersionRepository(client, nil)

	v, err := repo.Current(ctx, "grp-1")
	if err != nil || v != 0 {
		t.Fatalf("expected missing key to read as 0, got %d err=%v", v, err)
	}
	if v, err = repo.Bump(ctx, "grp-1"); err != nil || v != 1 {
		t.Fatalf("expected bump to 1, got %d err=%v", v, err)
	}
	if v, err = repo.Bump(ctx, "grp-1"); err != nil || v != 2 {
		t.Fatalf("expected bump to 2, got %d err=%v", v, err)
	}
	if v, err = repo.Current(ctx, "grp-1"); err != nil || v != 2 {
		t.Fatalf("expected current 2, got %d err=%v", v, err)
	}
	if _, ok := client.values[defaultKeyPrefix+"grp-1"]; !ok {
		t.Fatalf("expected key with prefix %q, got %+v", defaultKeyPrefix, client.values)
	}
}

func TestDataVersionRepository_CurrentRejectsGarbage(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	client.raw[defaultKeyPrefix+"grp-1"] = "not-a-number"
	repo := NewDataVersionRepository(client, nil)

	if _, err := repo.Current(context.Background(), "grp-1"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDataVersionRepository_BreakerOpensOnFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newFakeClient()
	client.err = errors.New("connection refused")
	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})
	repo := NewDataVersionRepository(client, breaker)

	for i := 0; i < 2; i++ {
		if _, err := repo.Current(ctx, "grp-1"); err == nil {
			t.Fatalf("expected redis failure on call %d", i)
		}
	}
	if breaker.State() != resilience.CircuitStateOpen {
		t.Fatalf("expected open breaker, got %s", breaker.State())
	}

	_, err := repo.Bump(ctx, "grp-1")
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if client.calls != 2 {
		t.Fatalf("expected open breaker to short-circuit redis, got %d calls", client.calls)
	}
}
