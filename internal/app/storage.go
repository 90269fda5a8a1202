package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/racha-league/internal/config"
	"github.com/riskibarqy/racha-league/internal/domain/athlete"
	"github.com/riskibarqy/racha-league/internal/domain/dataversion"
	"github.com/riskibarqy/racha-league/internal/domain/group"
	"github.com/riskibarqy/racha-league/internal/domain/match"
	"github.com/riskibarqy/racha-league/internal/domain/team"
	repocache "github.com/riskibarqy/racha-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/racha-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/racha-league/internal/infrastructure/repository/postgres"
	redisrepo "github.com/riskibarqy/racha-league/internal/infrastructure/repository/redis"
	"github.com/riskibarqy/racha-league/internal/observability"
	"github.com/riskibarqy/racha-league/internal/platform/logging"
	"github.com/riskibarqy/racha-league/internal/platform/resilience"
)

const (
	dbMaxOpenConns    = 10
	dbMaxIdleConns    = 5
	dbConnMaxLifetime = 30 * time.Minute
	dbPingTimeout     = 5 * time.Second
)

type repositories struct {
	groups   group.Repository
	athletes athlete.Repository
	teams    team.Repository
	matches  match.Repository
	versions dataversion.Repository
	closers  []func() error
}

func (r *repositories) close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i]()
	}
	r.closers = nil
}

func openRepositories(ctx context.Context, cfg config.Config, metrics *observability.Metrics, logger *logging.Logger) (*repositories, error) {
	repos := &repositories{}

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repos.closers = append(repos.closers, db.Close)

		if cfg.BootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				repos.close()
				return nil, fmt.Errorf("bootstrap seed: %w", err)
			}
			logger.Info("postgres seed checked")
		}

		repos.groups = postgres.NewGroupRepository(db)
		repos.athletes = postgres.NewAthleteRepository(db)
		repos.teams = postgres.NewTeamRepository(db)
		repos.matches = postgres.NewMatchRepository(db)
		repos.versions = postgres.NewDataVersionRepository(db)
	default:
		groups, athletes, teams, matches := memory.SeedRepositories()
		repos.groups = groups
		repos.athletes = athletes
		repos.teams = teams
		repos.matches = matches
		repos.versions = memory.NewDataVersionRepository()
	}

	if cfg.VersionStore == config.VersionStoreRedis {
		client, err := redisrepo.Open(ctx, cfg.RedisURL)
		if err != nil {
			repos.close()
			return nil, err
		}
		repos.closers = append(repos.closers, client.Close)

		var breaker *resilience.CircuitBreaker
		if cfg.RedisCircuit.Enabled {
			breaker = resilience.NewCircuitBreaker(cfg.RedisCircuit)
			if metrics != nil {
				metrics.TrackCircuit("redis", breaker)
			}
		}
		repos.versions = redisrepo.NewDataVersionRepository(client, breaker)
	}

	// Matches stay uncached; ranking results are keyed on the data version.
	if cfg.CacheEnabled {
		repos.groups = repocache.NewGroupRepository(repos.groups, cfg.CacheTTL)
		repos.athletes = repocache.NewAthleteRepository(repos.athletes, cfg.CacheTTL)
		repos.teams = repocache.NewTeamRepository(repos.teams, cfg.CacheTTL)
	}

	logger.Info("repositories ready",
		"storage", cfg.StorageDriver,
		"version_store", cfg.VersionStore,
		"cache_enabled", cfg.CacheEnabled,
	)
	return repos, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBBinaryParameters),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
