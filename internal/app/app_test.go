package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/racha-league/internal/config"
	"github.com/riskibarqy/racha-league/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:           config.EnvDev,
		HTTPAddr:         ":0",
		StorageDriver:    config.StorageMemory,
		VersionStore:     config.VersionStoreMemory,
		CacheEnabled:     true,
		CacheTTL:         time.Minute,
		WarmupWorkers:    2,
		InternalJobToken: "token",
		MetricsEnabled:   true,
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = " "

	_, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestNewHTTPServer_MemoryStack(t *testing.T) {
	srv, err := NewHTTPServer(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	defer srv.Close()
	require.NotNil(t, srv.Metrics)

	handler := srv.HTTP.Handler

	req := httptest.NewRequest(http.MethodGet, "/v1/groups/racha-quinta-meireles/rankings/athletes?period=year&year=2026", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/warm-rankings", nil)
	req.Header.Set("X-Internal-Job-Token", "token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.True(t, strings.Contains(body, "racha_http_requests_total"), "metrics body lacks http counter")
	require.True(t, strings.Contains(body, "racha_warmup_tasks_total"), "metrics body lacks warmup counter")
}

func TestNewHTTPServer_MetricsDisabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.MetricsEnabled = false

	srv, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer srv.Close()
	require.Nil(t, srv.Metrics)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.HTTP.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
