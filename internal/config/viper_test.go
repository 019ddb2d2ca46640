package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestInitializeConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "expenses.json", cfg.Ledger.File)
	assert.True(t, cfg.Ledger.BackupEnabled)
	assert.Equal(t, "tasks.json", cfg.Tasks.File)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, "USD", cfg.Currency.Base)
	assert.Equal(t, "CHF", cfg.Currency.Secondary)
	assert.InDelta(t, 0.88, cfg.Currency.Rate, 0.0001)
	assert.False(t, cfg.Suggest.Enabled)
}

func TestInitializeConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
log:
  level: debug
ledger:
  file: /tmp/ledger.json
currency:
  base: EUR
  secondary: USD
  rate: 1.08
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))
	chdir(t, dir)

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/ledger.json", cfg.Ledger.File)
	assert.Equal(t, "EUR", cfg.Currency.Base)
	assert.InDelta(t, 1.08, cfg.Currency.Rate, 0.0001)
	// untouched values keep their defaults
	assert.Equal(t, ",", cfg.CSV.Delimiter)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("EXPENSE_LOG_LEVEL", "warn")
	t.Setenv("EXPENSE_LEDGER_FILE", "env.json")

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "env.json", cfg.Ledger.File)
}

func TestInitializeConfigGeminiKeyBinding(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.Suggest.APIKey)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Log.Level = "info"
		cfg.Log.Format = "text"
		cfg.Ledger.File = "expenses.json"
		cfg.CSV.Delimiter = ","
		cfg.Currency.Base = "USD"
		cfg.Currency.Secondary = "CHF"
		cfg.Currency.Rate = 0.88
		return cfg
	}

	require.NoError(t, validateConfig(valid()))

	cfg := valid()
	cfg.Log.Level = "verbose"
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Log.Format = "xml"
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.CSV.Delimiter = ";;"
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Currency.Rate = 0
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Suggest.Enabled = true
	assert.Error(t, validateConfig(cfg))
	cfg.Suggest.RulesFile = "rules.yaml"
	assert.NoError(t, validateConfig(cfg))
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, "debug", logger.GetLevel().String())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("EXPENSE_TEST_VAR", "set")
	assert.Equal(t, "set", GetEnv("EXPENSE_TEST_VAR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("EXPENSE_TEST_VAR_MISSING", "fallback"))
}
