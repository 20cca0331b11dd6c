package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/ingestctl/internal/client/auth"
	"github.com/dmitrijs2005/ingestctl/internal/client/client"
	"github.com/dmitrijs2005/ingestctl/internal/client/config"
	"github.com/dmitrijs2005/ingestctl/internal/client/poll"
	"github.com/dmitrijs2005/ingestctl/internal/client/services"
	"github.com/dmitrijs2005/ingestctl/internal/client/session"
	"github.com/dmitrijs2005/ingestctl/internal/filex"
	"github.com/dmitrijs2005/ingestctl/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = "connecting"
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// healthProbeTimeout bounds the background connectivity probe only.
const healthProbeTimeout = 3 * time.Second

type App struct {
	cfg *config.Config
	log logging.Logger
	db  *sql.DB

	session *session.Store
	api     client.Client

	authService      services.AuthService
	uploadService    services.UploadService
	submitService    services.SubmitService
	dashboardService services.DashboardService

	out    io.Writer
	reader *bufio.Reader

	modeMu sync.Mutex
	mode   Mode
}

// IO carries the streams the console talks to.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// NewApp opens the local session database and wires the API client and
// services for cfg. The caller must Close the App.
func NewApp(ctx context.Context, cfg *config.Config, streams IO) (*App, error) {
	log := logging.New(streams.Err, cfg.LogLevel)

	dbPath, err := filex.EnsureParentDir(cfg.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("session database: %w", err)
	}
	db, err := session.OpenDatabase(ctx, dbPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", dbPath, "error", err)
		return nil, err
	}

	store := session.NewStore(db, session.WithLogger(log))

	var accessor auth.SessionAccessor = store
	subject := services.SubjectFunc(store.Subject)
	if cfg.Token != "" {
		accessor = auth.StaticSession(cfg.Token)
		subject = func(context.Context) string { return session.TokenSubject(cfg.Token) }
	}

	api, err := client.NewHTTPClient(cfg.APIBaseURL,
		client.WithSession(accessor),
		client.WithLogger(log),
		client.WithTimeout(cfg.RequestTimeout),
		client.WithSimulatedSubmissions(cfg.SimulateSubmissions),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	store.SetRefresher(api)

	a := &App{
		cfg:     cfg,
		log:     log,
		db:      db,
		session: store,
		out:     streams.Out,
		reader:  bufio.NewReader(streams.In),
		mode:    ModeUnknown,
	}
	a.wire(api, store, subject)
	return a, nil
}

func (a *App) wire(api client.Client, s services.SessionStore, subject services.SubjectFunc) {
	a.api = api
	a.authService = services.NewAuthService(api, s)
	a.uploadService = services.NewUploadService(api, a.log)
	a.submitService = services.NewSubmitService(api, subject, a.cfg.UserID)
	a.dashboardService = services.NewDashboardService(api, a.cfg.RecentJobsLimit)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Mode returns the connectivity state last observed by the watcher.
func (a *App) Mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

// isLoggedIn reports whether calls will carry a bearer token: a token was
// configured or a session is stored.
func (a *App) isLoggedIn(ctx context.Context) bool {
	if a.cfg.Token != "" {
		return true
	}
	return a.username(ctx) != ""
}

// username is empty when a configured token is in use.
func (a *App) username(ctx context.Context) string {
	if a.cfg.Token != "" || a.session == nil {
		return ""
	}
	return a.session.Username(ctx)
}

// StartOnlineStatusWatcher probes /health every interval and flips the
// connectivity mode accordingly. Stop the returned handle when done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration, opts ...poll.Option) *poll.Handle {
	probe := func(ctx context.Context) (struct{}, error) {
		ctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
		defer cancel()
		_, err := a.authService.Ping(ctx)
		return struct{}{}, err
	}
	return poll.Start(ctx, interval, probe, func(_ struct{}, err error) {
		if err != nil {
			a.setMode(ctx, ModeOffline)
			return
		}
		a.setMode(ctx, ModeOnline)
	}, opts...)
}
