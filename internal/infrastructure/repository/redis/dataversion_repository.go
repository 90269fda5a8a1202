// Package redis stores group data versions in Redis so every API replica sees
// the same cache generation.
package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/riskibarqy/racha-league/internal/platform/resilience"
)

const defaultKeyPrefix = "racha:data-version:"

// Client is the subset of the go-redis API the store uses.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Incr(ctx context.Context, key string) *goredis.IntCmd
}

type DataVersionRepository struct {
	client    Client
	breaker   *resilience.CircuitBreaker
	keyPrefix string
}

// NewDataVersionRepository wraps client. A nil breaker sends every call
// straight to Redis.
func NewDataVersionRepository(client Client, breaker *resilience.CircuitBreaker) *DataVersionRepository {
	return &DataVersionRepository{client: client, breaker: breaker, keyPrefix: defaultKeyPrefix}
}

func (r *DataVersionRepository) Current(ctx context.Context, groupID string) (int64, error) {
	var version int64
	err := r.execute(func() error {
		raw, err := r.client.Get(ctx, r.key(groupID)).Result()
		if errors.Is(err, goredis.Nil) {
			version = 0
			return nil
		}
		if err != nil {
			return err
		}
		version, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "parse data version %q", raw)
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "get data version of group %s", groupID)
	}
	return version, nil
}

func (r *DataVersionRepository) Bump(ctx context.Context, groupID string) (int64, error) {
	var version int64
	err := r.execute(func() error {
		var err error
		version, err = r.client.Incr(ctx, r.key(groupID)).Result()
		return err
	})
	if err != nil {
		return 0, errors.Wrapf(err, "bump data version of group %s", groupID)
	}
	return version, nil
}

func (r *DataVersionRepository) key(groupID string) string {
	return r.keyPrefix + groupID
}

func (r *DataVersionRepository) execute(fn func() error) error {
	if r.breaker == nil {
		return fn()
	}
	return r.breaker.Execute(fn)
}

// Open parses a redis:// URL and pings the server before handing back the client.
func Open(ctx context.Context, redisURL string) (*goredis.Client, error) {
	opt, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}

	client := goredis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}
	return client, nil
}
