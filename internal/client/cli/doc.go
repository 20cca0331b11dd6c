// Package cli provides the ingestctl command-line console.
//
// It wires configuration, the local session database, the API client and
// the application services, then exposes them as a cobra command tree:
// one-shot commands for every backend operation, a polling dashboard
// (watch) and an interactive console with a background connectivity
// watcher.
//
// Output is plain text tables. Reads that fall back to sample data while
// the backend is unreachable are rendered under a warning banner so they
// are never mistaken for live data.
//
// Entry point: Execute. See App, runREPL and StartOnlineStatusWatcher.
package cli
