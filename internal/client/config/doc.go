// Package config loads runtime configuration for the ingestctl console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / --config.
//  3. Environment variables INGEST_*, read from the process environment and
//     then from a dotenv file (--env-file, default ".env" when present).
//  4. Command-line flags that were set explicitly (see BindFlags).
//
// Later sources override earlier ones; a source only overrides the keys it
// actually carries.
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://ingest.example.com",
//	  "poll_interval": "10s",
//	  "recent_jobs_limit": 10,
//	  "session_db": ".ingestctl/session.db",
//	  "request_timeout": "30s",
//	  "log_level": "info",
//	  "user_id": "",
//	  "simulate_submissions": false
//	}
//
// Environment variables take Go duration strings, integers and booleans:
// INGEST_API_BASE_URL, INGEST_POLL_INTERVAL, INGEST_RECENT_JOBS_LIMIT,
// INGEST_SESSION_DB, INGEST_REQUEST_TIMEOUT, INGEST_LOG_LEVEL,
// INGEST_USER_ID, INGEST_TOKEN, INGEST_SIMULATE_SUBMISSIONS.
package config
