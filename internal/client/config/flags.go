package config

import (
	"github.com/spf13/pflag"
)

const (
	flagConfig              = "config"
	flagEnvFile             = "env-file"
	flagAPIBaseURL          = "api-url"
	flagPollInterval        = "poll-interval"
	flagRecentJobsLimit     = "recent-jobs"
	flagSessionDB           = "session-db"
	flagRequestTimeout      = "timeout"
	flagLogLevel            = "log-level"
	flagUserID              = "user-id"
	flagToken               = "token"
	flagSimulateSubmissions = "simulate-submissions"
)

// BindFlags registers the configuration flags on fs, normally the root
// command's persistent flag set. Defaults shown in help are the built-in ones.
func BindFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(flagConfig, "c", "", "path to JSON config file")
	fs.String(flagEnvFile, DefaultEnvFile, "path to dotenv file with INGEST_* variables")
	fs.StringP(flagAPIBaseURL, "a", d.APIBaseURL, "base URL of the ingestion API")
	fs.DurationP(flagPollInterval, "i", d.PollInterval, "dashboard refresh interval")
	fs.Int(flagRecentJobsLimit, d.RecentJobsLimit, "number of recent jobs shown on the dashboard")
	fs.String(flagSessionDB, d.SessionDB, "path to the local session database")
	fs.Duration(flagRequestTimeout, d.RequestTimeout, "per-request timeout (0 = none)")
	fs.String(flagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	fs.String(flagUserID, "", "user id for URL submissions when the session has none")
	fs.String(flagToken, "", "bearer token to use instead of the stored session")
	fs.Bool(flagSimulateSubmissions, false, "answer failed URL submissions with mock data (demo only)")
}

// applyFlags copies the flags that were set on the command line.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err == nil && fs.Changed(name) {
			err = apply()
		}
	}

	set(flagAPIBaseURL, func() (e error) { cfg.APIBaseURL, e = fs.GetString(flagAPIBaseURL); return })
	set(flagPollInterval, func() (e error) { cfg.PollInterval, e = fs.GetDuration(flagPollInterval); return })
	set(flagRecentJobsLimit, func() (e error) { cfg.RecentJobsLimit, e = fs.GetInt(flagRecentJobsLimit); return })
	set(flagSessionDB, func() (e error) { cfg.SessionDB, e = fs.GetString(flagSessionDB); return })
	set(flagRequestTimeout, func() (e error) { cfg.RequestTimeout, e = fs.GetDuration(flagRequestTimeout); return })
	set(flagLogLevel, func() (e error) { cfg.LogLevel, e = fs.GetString(flagLogLevel); return })
	set(flagUserID, func() (e error) { cfg.UserID, e = fs.GetString(flagUserID); return })
	set(flagToken, func() (e error) { cfg.Token, e = fs.GetString(flagToken); return })
	set(flagSimulateSubmissions, func() (e error) { cfg.SimulateSubmissions, e = fs.GetBool(flagSimulateSubmissions); return })

	return err
}
