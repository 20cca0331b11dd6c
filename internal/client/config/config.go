package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
)

// Config holds runtime settings for the ingestctl console.
//
// Units: PollInterval and RequestTimeout are time.Duration values. A zero
// RequestTimeout leaves the transport default in place.
type Config struct {
	APIBaseURL          string
	PollInterval        time.Duration
	RecentJobsLimit     int
	SessionDB           string
	RequestTimeout      time.Duration
	LogLevel            string
	UserID              string
	Token               string
	SimulateSubmissions bool
}

const (
	DefaultAPIBaseURL      = "http://localhost:8000"
	DefaultPollInterval    = 10 * time.Second
	DefaultRecentJobsLimit = 10
	DefaultLogLevel        = "info"
)

// DefaultSessionDB is relative to the working directory.
var DefaultSessionDB = filepath.Join(".ingestctl", "session.db")

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.PollInterval = DefaultPollInterval
	c.RecentJobsLimit = DefaultRecentJobsLimit
	c.SessionDB = DefaultSessionDB
	c.RequestTimeout = 0
	c.LogLevel = DefaultLogLevel
}

// Validate reports the first setting the console cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api base url %q must be an absolute http(s) url", c.APIBaseURL)
	}
	if c.PollInterval <= 0 {
		return errors.New("poll interval must be positive")
	}
	if c.RecentJobsLimit <= 0 {
		return errors.New("recent jobs limit must be positive")
	}
	if c.RequestTimeout < 0 {
		return errors.New("request timeout must not be negative")
	}
	if c.SessionDB == "" {
		return errors.New("session db path must not be empty")
	}
	return nil
}

// Load constructs a Config, applies defaults, then overlays values from
// the JSON file (when --config is set), the environment and finally the
// flags that were set explicitly. Later sources take precedence.
func Load(fs *pflag.FlagSet) (*Config, error) {
	return load(fs, os.LookupEnv)
}

func load(fs *pflag.FlagSet, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path, _ := fs.GetString(flagConfig); path != "" {
		if err := parseJSON(cfg, path); err != nil {
			return nil, err
		}
	}

	envFile, _ := fs.GetString(flagEnvFile)
	env, err := newEnvSource(lookup, envFile, fs.Changed(flagEnvFile))
	if err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, env); err != nil {
		return nil, err
	}

	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
