package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/policy-advisor/internal/domain/recommendation"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	unsetEnv(t, "DATABASE_URL")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Empty(t, cfg.Database.DSN)
	require.Equal(t, 10*time.Minute, cfg.Cache.CatalogTTL)
	require.Equal(t, recommendation.DefaultConfig(), cfg.Recommendation.EngineConfig())
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9000"
database:
  dsn: "postgres://file"
recommendation:
  baseRates:
    term: 0.9
  termFactors:
    10: 0.95
  coverage:
    cap: 3000000
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_URL=postgres://dotenv\n"), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HTTP_ADDRESS", ":7000")
	unsetEnv(t, "DATABASE_URL")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":7000", cfg.HTTP.Address)
	require.Equal(t, "postgres://dotenv", cfg.Database.DSN)

	engine := cfg.Recommendation.EngineConfig()
	require.Equal(t, 0.9, engine.Rates.BaseRates[recommendation.TermLife])
	require.Equal(t, 3.5, engine.Rates.BaseRates[recommendation.WholeLife])
	require.Equal(t, 0.95, engine.Rates.TermFactors[10])
	require.Equal(t, 1.1, engine.Rates.TermFactors[30])
	require.Equal(t, 3000000.0, engine.Coverage.Cap)
	require.Equal(t, 50000.0, engine.Coverage.RoundingStep)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Cache.Enabled = true
	require.Error(t, cfg.Validate())
	cfg.Cache.Addr = "localhost:6379"
	require.NoError(t, cfg.Validate())

	cfg.Recommendation.AgeBands = []AgeBandConfig{{Below: 40, Factor: 1}, {Below: 30, Factor: 1}}
	require.Error(t, cfg.Validate())
	cfg.Recommendation.AgeBands = nil

	cfg.Recommendation.BaseRates = map[string]float64{"term": -1}
	require.Error(t, cfg.Validate())
	cfg.Recommendation.BaseRates = nil

	cfg.HTTP.RateLimit.RequestsPerMinute = 0
	require.Error(t, cfg.Validate())
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"https://a.example", "https://b.example"}, splitList(" https://a.example, ,https://b.example "))
}

// unsetEnv removes key for the duration of the test; t.Setenv restores
// the previous value on cleanup.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
