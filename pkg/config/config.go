// Package config builds the run configuration from flags, environment,
// an optional config file and a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "LMFETCH"

	KeySpec      = "spec"
	KeyOutput    = "output"
	KeyAssetType = "asset_type"
	KeyLimit     = "limit"
	KeyTimeout   = "timeout"
	KeyLogLevel  = "log_level"
	KeyUserAgent   = "user_agent"
	KeyReleaseRepo = "release_repo"

	DefaultSpec      = "swagger.json"
	DefaultOutput    = "assets"
	DefaultAssetType = "data"
	DefaultLimit     = 10000
	DefaultLogLevel  = "info"
	DefaultUserAgent = "lmfetch"
	// DefaultReleaseRepo is the GitHub owner/name the update command checks.
	DefaultReleaseRepo = "blackcoderx/lmfetch"
)

// Config is the run configuration shared by every component.
type Config struct {
	SpecPath  string        `mapstructure:"spec"`
	OutputDir string        `mapstructure:"output"`
	AssetType string        `mapstructure:"asset_type"`
	Limit     int           `mapstructure:"limit"`
	Timeout   time.Duration `mapstructure:"timeout"`
	LogLevel  string        `mapstructure:"log_level"`
	UserAgent string        `mapstructure:"user_agent"`

	ReleaseRepo string `mapstructure:"release_repo"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeySpec, DefaultSpec)
	v.SetDefault(KeyOutput, DefaultOutput)
	v.SetDefault(KeyAssetType, DefaultAssetType)
	v.SetDefault(KeyLimit, DefaultLimit)
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyUserAgent, DefaultUserAgent)
	v.SetDefault(KeyReleaseRepo, DefaultReleaseRepo)
}

// Init prepares v: defaults, LMFETCH_* environment overrides and the config
// file. cfgFile may be empty, then lmfetch.{yaml,json,toml} in the working
// directory is used if present.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("lmfetch")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		SpecPath:  v.GetString(KeySpec),
		OutputDir: v.GetString(KeyOutput),
		AssetType: v.GetString(KeyAssetType),
		Limit:     v.GetInt(KeyLimit),
		Timeout:   v.GetDuration(KeyTimeout),
		LogLevel:  v.GetString(KeyLogLevel),
		UserAgent: v.GetString(KeyUserAgent),

		ReleaseRepo: v.GetString(KeyReleaseRepo),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the run cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.SpecPath == "":
		return fmt.Errorf("spec path is required")
	case c.OutputDir == "":
		return fmt.Errorf("output directory is required")
	case c.AssetType == "":
		return fmt.Errorf("asset type is required")
	case c.Limit < 1:
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	case c.Timeout < 0:
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// LoadDotEnv loads .env files into the process environment. A missing file
// is not an error; variables already set are not overridden.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load %s: %w", strings.Join(existing, ", "), err)
	}
	return nil
}
