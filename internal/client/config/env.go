package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "INGEST_"

const (
	EnvAPIBaseURL          = envPrefix + "API_BASE_URL"
	EnvPollInterval        = envPrefix + "POLL_INTERVAL"
	EnvRecentJobsLimit     = envPrefix + "RECENT_JOBS_LIMIT"
	EnvSessionDB           = envPrefix + "SESSION_DB"
	EnvRequestTimeout      = envPrefix + "REQUEST_TIMEOUT"
	EnvLogLevel            = envPrefix + "LOG_LEVEL"
	EnvUserID              = envPrefix + "USER_ID"
	EnvToken               = envPrefix + "TOKEN"
	EnvSimulateSubmissions = envPrefix + "SIMULATE_SUBMISSIONS"
)

// DefaultEnvFile is read when present; a missing file is not an error
// unless it was named explicitly.
const DefaultEnvFile = ".env"

// envSource resolves a variable from the process environment first and
// the dotenv file second.
type envSource struct {
	lookup func(string) (string, bool)
	file   map[string]string
}

func newEnvSource(lookup func(string) (string, bool), path string, explicit bool) (*envSource, error) {
	src := &envSource{lookup: lookup}
	if path == "" {
		return src, nil
	}
	m, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return src, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	src.file = m
	return src, nil
}

func (e *envSource) get(key string) (string, bool) {
	if e.lookup != nil {
		if v, ok := e.lookup(key); ok {
			return v, true
		}
	}
	v, ok := e.file[key]
	return v, ok
}

// parseEnv overlays cfg with the INGEST_* variables that are set.
func parseEnv(cfg *Config, env *envSource) error {
	str := func(key string, dst *string) {
		if v, ok := env.get(key); ok {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := env.get(key)
		if !ok {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str(EnvAPIBaseURL, &cfg.APIBaseURL)
	str(EnvSessionDB, &cfg.SessionDB)
	str(EnvLogLevel, &cfg.LogLevel)
	str(EnvUserID, &cfg.UserID)
	str(EnvToken, &cfg.Token)

	if err := dur(EnvPollInterval, &cfg.PollInterval); err != nil {
		return err
	}
	if err := dur(EnvRequestTimeout, &cfg.RequestTimeout); err != nil {
		return err
	}

	if v, ok := env.get(EnvRecentJobsLimit); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRecentJobsLimit, err)
		}
		cfg.RecentJobsLimit = n
	}
	if v, ok := env.get(EnvSimulateSubmissions); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSimulateSubmissions, err)
		}
		cfg.SimulateSubmissions = b
	}
	return nil
}
