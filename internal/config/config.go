package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/amehta/credlens/internal/analyzer"
)

// Config holds all runtime settings for the client.
type Config struct {
	// Endpoint is the base URL of the analysis service.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// SubmitTimeout bounds url and text analysis requests.
	SubmitTimeout time.Duration `yaml:"submit_timeout" mapstructure:"submit_timeout"`

	// UploadTimeout bounds document uploads, which carry file bodies.
	UploadTimeout time.Duration `yaml:"upload_timeout" mapstructure:"upload_timeout"`

	// CacheTTL controls how long identical inputs reuse a prior verdict.
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`

	// NoCache disables verdict reuse entirely.
	NoCache bool `yaml:"no_cache" mapstructure:"no_cache"`

	// HistoryPath is the JSON file successful verdicts are appended to.
	// Empty disables history.
	HistoryPath string `yaml:"history_path" mapstructure:"history_path"`

	// Debug enables verbose job logging to a file.
	Debug bool `yaml:"debug" mapstructure:"debug"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Endpoint:      analyzer.DefaultBaseURL,
		SubmitTimeout: analyzer.DefaultSubmitTimeout,
		UploadTimeout: analyzer.DefaultUploadTimeout,
		CacheTTL:      15 * time.Minute,
		HistoryPath:   defaultHistoryPath(),
	}
}

// Load layers viper-managed settings (config file, environment, bound flags)
// over the defaults. Unset keys keep their default values.
func Load(v *viper.Viper) Config {
	cfg := DefaultConfig()
	if v == nil {
		return cfg
	}
	if v.IsSet("endpoint") {
		cfg.Endpoint = v.GetString("endpoint")
	}
	if v.IsSet("submit_timeout") {
		cfg.SubmitTimeout = v.GetDuration("submit_timeout")
	}
	if v.IsSet("upload_timeout") {
		cfg.UploadTimeout = v.GetDuration("upload_timeout")
	}
	if v.IsSet("cache_ttl") {
		cfg.CacheTTL = v.GetDuration("cache_ttl")
	}
	if v.IsSet("no_cache") {
		cfg.NoCache = v.GetBool("no_cache")
	}
	if v.IsSet("history_path") {
		cfg.HistoryPath = v.GetString("history_path")
	}
	if v.IsSet("debug") {
		cfg.Debug = v.GetBool("debug")
	}
	return cfg
}

// MarshalYAML renders duration fields in their human-readable form ("45s")
// so shown and generated config files read the way they would be written by
// hand. The string form parses back into a duration on load.
func (c Config) MarshalYAML() (any, error) {
	return struct {
		Endpoint      string `yaml:"endpoint"`
		SubmitTimeout string `yaml:"submit_timeout"`
		UploadTimeout string `yaml:"upload_timeout"`
		CacheTTL      string `yaml:"cache_ttl"`
		NoCache       bool   `yaml:"no_cache"`
		HistoryPath   string `yaml:"history_path"`
		Debug         bool   `yaml:"debug"`
	}{
		Endpoint:      c.Endpoint,
		SubmitTimeout: c.SubmitTimeout.String(),
		UploadTimeout: c.UploadTimeout.String(),
		CacheTTL:      c.CacheTTL.String(),
		NoCache:       c.NoCache,
		HistoryPath:   c.HistoryPath,
		Debug:         c.Debug,
	}, nil
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".credlens", "history.json")
}
