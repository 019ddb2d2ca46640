// Package config: Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Ledger struct {
		File          string `mapstructure:"file" yaml:"file"`
		BackupEnabled bool   `mapstructure:"backup_enabled" yaml:"backup_enabled"`
	} `mapstructure:"ledger" yaml:"ledger"`

	Tasks struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"tasks" yaml:"tasks"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Currency struct {
		Base      string  `mapstructure:"base" yaml:"base"`
		Secondary string  `mapstructure:"secondary" yaml:"secondary"`
		Rate      float64 `mapstructure:"rate" yaml:"rate"`
	} `mapstructure:"currency" yaml:"currency"`

	Suggest struct {
		Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
		Model     string `mapstructure:"model" yaml:"model"`
		RulesFile string `mapstructure:"rules_file" yaml:"rules_file"`
		APIKey    string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"suggest" yaml:"suggest"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.expense-cli")
	v.AddConfigPath(".expense-cli")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("EXPENSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	// 5. The API key always comes from the unprefixed env var
	if err := v.BindEnv("suggest.api_key", "GEMINI_API_KEY"); err != nil {
		Logger.Warnf("Failed to bind GEMINI_API_KEY environment variable: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ledger.file", "expenses.json")
	v.SetDefault("ledger.backup_enabled", true)

	v.SetDefault("tasks.file", "tasks.json")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("currency.base", "USD")
	v.SetDefault("currency.secondary", "CHF")
	v.SetDefault("currency.rate", 0.88)

	v.SetDefault("suggest.enabled", false)
	v.SetDefault("suggest.model", "gemini-2.0-flash")
	v.SetDefault("suggest.rules_file", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Ledger.File == "" {
		return fmt.Errorf("ledger.file must not be empty")
	}

	if config.Currency.Base == "" || config.Currency.Secondary == "" {
		return fmt.Errorf("currency codes must not be empty")
	}
	if config.Currency.Rate <= 0 {
		return fmt.Errorf("currency.rate must be positive, got: %f", config.Currency.Rate)
	}

	if config.Suggest.Enabled && config.Suggest.APIKey == "" && config.Suggest.RulesFile == "" {
		return fmt.Errorf("suggest.enabled requires GEMINI_API_KEY or suggest.rules_file")
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
