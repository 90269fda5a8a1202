package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/racha-league/internal/config"
	"github.com/riskibarqy/racha-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/racha-league/internal/observability"
	idgen "github.com/riskibarqy/racha-league/internal/platform/id"
	"github.com/riskibarqy/racha-league/internal/platform/logging"
	"github.com/riskibarqy/racha-league/internal/usecase"
)

const matchIDPrefix = "mt_"

// Server is the assembled API process. Close releases the storage
// connections once the HTTP server has shut down.
type Server struct {
	HTTP    *http.Server
	Metrics *observability.Metrics
	repos   *repositories
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	repos, err := openRepositories(ctx, cfg, metrics, logger)
	if err != nil {
		return nil, err
	}

	rankingOpts := []usecase.RankingOption{}
	warmupOpts := []usecase.WarmupOption{usecase.WithDefaultWarmupWorkers(cfg.WarmupWorkers)}
	routerCfg := httpapi.RouterConfig{
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	}
	if metrics != nil {
		rankingOpts = append(rankingOpts, usecase.WithRankingObserver(metrics))
		warmupOpts = append(warmupOpts, usecase.WithWarmupObserver(metrics))
		routerCfg.Observer = metrics
		routerCfg.MetricsHandler = metrics.Handler()
	}

	rankingSvc := usecase.NewRankingService(
		repos.groups,
		repos.athletes,
		repos.teams,
		repos.matches,
		repos.versions,
		usecase.RankingServiceConfig{
			CacheEnabled: cfg.CacheEnabled,
			CacheTTL:     cfg.CacheTTL,
			ShardWorkers: cfg.RankingShardWorkers,
		},
		logger,
		rankingOpts...,
	)
	matchSvc := usecase.NewMatchService(
		repos.groups,
		repos.teams,
		repos.athletes,
		repos.matches,
		repos.versions,
		idgen.NewUUIDGenerator(matchIDPrefix),
		rankingSvc,
		logger,
	)
	warmupSvc := usecase.NewWarmupService(repos.groups, rankingSvc, logger, warmupOpts...)

	handler := httpapi.NewHandler(rankingSvc, matchSvc, warmupSvc, logger)
	router := httpapi.NewRouter(handler, routerCfg)

	return &Server{
		HTTP: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		Metrics: metrics,
		repos:   repos,
	}, nil
}

func (s *Server) Close() {
	if s == nil || s.repos == nil {
		return
	}
	s.repos.close()
}
