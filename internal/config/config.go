// Package config defines service configuration structures and loading.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file, and environment.
// - External errors are wrapped via this package's sentinels.
package config

import (
	"time"

	"github.com/hooplens/prospectrank/internal/domain/scoring"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// DBPath points at the SQLite database holding prospects and
	// snapshot history.
	DBPath string `koanf:"db_path"`

	// DraftClass restricts fetches to one class; 0 fetches all.
	DraftClass int `koanf:"draft_class"`

	// BatchSize bounds how many evaluations run concurrently per batch.
	BatchSize int `koanf:"batch_size"`

	// CacheTTLMinutes is the evaluation cache freshness window.
	CacheTTLMinutes int `koanf:"cache_ttl_minutes"`

	// CacheMaxEntries bounds the evaluation cache.
	CacheMaxEntries int `koanf:"cache_max_entries"`

	// CacheSweepMinutes is the interval for the expired-entry sweep.
	CacheSweepMinutes int `koanf:"cache_sweep_minutes"`

	// MaxBoardLimit caps GET /board?limit.
	MaxBoardLimit int `koanf:"max_board_limit"`

	// RefreshMinutes is the interval between board refresh passes.
	RefreshMinutes int `koanf:"refresh_minutes"`

	// SnapshotHours is the interval between snapshot capture passes.
	SnapshotHours int `koanf:"snapshot_hours"`

	// TrendEpsilon is the stable band around a zero score delta.
	TrendEpsilon float64 `koanf:"trend_epsilon"`

	// TrendThresholds overrides per-metric highlight thresholds.
	TrendThresholds map[string]float64 `koanf:"trend_thresholds"`

	// TrendTopK is the default size of rising/falling lists.
	TrendTopK int `koanf:"trend_top_k"`

	// Scoring is the versioned weight/threshold table the engine scores
	// against. A product decision, not an algorithmic one; overridable
	// wholesale through file or env.
	Scoring scoring.Weights `koanf:"scoring"`
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// CacheSweepInterval returns the sweep interval as a duration.
func (c *Config) CacheSweepInterval() time.Duration {
	return time.Duration(c.CacheSweepMinutes) * time.Minute
}

// RefreshInterval returns the board refresh interval as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshMinutes) * time.Minute
}

// SnapshotInterval returns the snapshot capture interval as a duration.
func (c *Config) SnapshotInterval() time.Duration {
	return time.Duration(c.SnapshotHours) * time.Hour
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":8090",
		DBPath:            "prospectrank.db",
		DraftClass:        0,
		BatchSize:         10,
		CacheTTLMinutes:   30,
		CacheMaxEntries:   10_000,
		CacheSweepMinutes: 10,
		MaxBoardLimit:     100,
		RefreshMinutes:    15,
		SnapshotHours:     24,
		TrendEpsilon:      0.02,
		TrendTopK:         3,
		Scoring:           scoring.DefaultWeights(),
	}
}
