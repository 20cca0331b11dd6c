package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/ingestctl/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key from a zero value, so a file only overrides
// what it names. Durations use timex.Duration ("10s" or nanoseconds).
type JsonConfig struct {
	APIBaseURL          *string         `json:"api_base_url"`
	PollInterval        *timex.Duration `json:"poll_interval"`
	RecentJobsLimit     *int            `json:"recent_jobs_limit"`
	SessionDB           *string         `json:"session_db"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	LogLevel            *string         `json:"log_level"`
	UserID              *string         `json:"user_id"`
	Token               *string         `json:"token"`
	SimulateSubmissions *bool           `json:"simulate_submissions"`
}

// parseJSON overlays cfg with the file at path.
func parseJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.PollInterval != nil {
		cfg.PollInterval = jc.PollInterval.Duration
	}
	if jc.RecentJobsLimit != nil {
		cfg.RecentJobsLimit = *jc.RecentJobsLimit
	}
	if jc.SessionDB != nil {
		cfg.SessionDB = *jc.SessionDB
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.UserID != nil {
		cfg.UserID = *jc.UserID
	}
	if jc.Token != nil {
		cfg.Token = *jc.Token
	}
	if jc.SimulateSubmissions != nil {
		cfg.SimulateSubmissions = *jc.SimulateSubmissions
	}
	return nil
}
