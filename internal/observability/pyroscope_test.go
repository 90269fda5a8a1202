package observability

import (
	"testing"

	"github.com/riskibarqy/racha-league/internal/config"
)

func TestPyroscopeConfig_ShardedFoldAddsMutexProfiles(t *testing.T) {
	cfg := config.Config{
		PyroscopeAppName:    "racha-league-api",
		StorageDriver:       config.StoragePostgres,
		VersionStore:        config.VersionStoreRedis,
		RankingShardWorkers: 4,
	}

	got := pyroscopeConfig(cfg)
	if got.Tags["storage"] != config.StoragePostgres || got.Tags["version_store"] != config.VersionStoreRedis {
		t.Fatalf("unexpected tags: %+v", got.Tags)
	}
	if len(got.ProfileTypes) != 6 {
		t.Fatalf("expected 6 profile types with sharding, got %d", len(got.ProfileTypes))
	}

	cfg.RankingShardWorkers = 0
	if n := len(pyroscopeConfig(cfg).ProfileTypes); n != 4 {
		t.Fatalf("expected 4 profile types without sharding, got %d", n)
	}
}
