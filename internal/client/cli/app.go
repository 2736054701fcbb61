package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/teamfinder/internal/client/auth"
	"github.com/dmitrijs2005/teamfinder/internal/client/client"
	"github.com/dmitrijs2005/teamfinder/internal/client/config"
	"github.com/dmitrijs2005/teamfinder/internal/client/router"
	"github.com/dmitrijs2005/teamfinder/internal/client/services"
	"github.com/dmitrijs2005/teamfinder/internal/client/session"
	"github.com/dmitrijs2005/teamfinder/internal/logging"
)

// Mode is the reachability of the backend as last seen by the health
// watcher.
type Mode int32

const (
	ModeUnknown Mode = iota
	ModeOnline
	ModeOffline
)

func (m Mode) String() string {
	switch m {
	case ModeOnline:
		return "online"
	case ModeOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// App holds what outlives a single shell load: configuration, the local
// database and session store, the cookie jar and the backend client.
type App struct {
	config *config.Config
	logger logging.Logger

	db    *sql.DB
	store *session.Store
	jar   *session.CookieJar
	api   client.Client

	account services.AccountService
	posts   services.PostService
	profile services.ProfileService

	in  *bufio.Reader
	out io.Writer

	mode atomic.Int32
}

// NewApp opens the local database, restores the saved cookies and builds
// the HTTP client.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	store := session.NewStore(db, logger)
	store.PurgeExpired(ctx)

	jar, err := session.NewCookieJar(store, cfg.APIBaseURL)
	if err != nil {
		db.Close()
		return nil, err
	}
	jar.Load(ctx)

	api, err := client.NewHTTPClient(cfg.APIBaseURL, jar, logger, client.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		db.Close()
		return nil, err
	}

	return newApp(cfg, logger, db, store, jar, api, in, out), nil
}

func newApp(cfg *config.Config, logger logging.Logger, db *sql.DB, store *session.Store, jar *session.CookieJar,
	api client.Client, in io.Reader, out io.Writer) *App {
	return &App{
		config:  cfg,
		logger:  logger,
		db:      db,
		store:   store,
		jar:     jar,
		api:     api,
		account: services.NewAccountService(api),
		posts:   services.NewPostService(api),
		profile: services.NewProfileService(api),
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Close releases the local database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Mode returns the last observed backend reachability.
func (a *App) Mode() Mode {
	return Mode(a.mode.Load())
}

func (a *App) setMode(ctx context.Context, m Mode) {
	old := Mode(a.mode.Swap(int32(m)))
	if old != m {
		a.logger.Info(ctx, "backend reachability changed", "mode", m.String())
	}
}

// checkHealth pings the backend once and records the result.
func (a *App) checkHealth(ctx context.Context) {
	if err := a.account.Ping(ctx); err != nil {
		a.logger.Debug(ctx, "health check failed", "error", err)
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher pings the backend every interval until ctx is
// done. It does not retry failed requests; it only keeps Mode current.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	a.checkHealth(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.checkHealth(ctx)
		}
	}
}

// newShell builds one application load: a fresh resolver and router over
// the shared store.
func (a *App) newShell() *Shell {
	sh := &Shell{app: a}
	sh.resolver = auth.NewResolver(a.store, a.api, a.logger,
		auth.WithTTL(a.config.SessionTTL),
		auth.WithCookieJar(a.jar),
		auth.WithReload(sh.requestReload),
	)
	sh.router = router.New(sh.resolver, router.DefaultRoutes())
	sh.states, sh.unsubscribe = sh.resolver.Subscribe()
	return sh
}

// Run starts the interactive shell and blocks until the user exits, input
// ends or ctx is done. A logout ends the current load and starts a new one.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		a.StartOnlineStatusWatcher(ctx, a.config.HealthCheckInterval)
	}()
	defer func() {
		cancel()
		<-watcherDone
	}()

	fmt.Fprintln(a.out, "TeamFinder. Type 'help' for commands.")
	for {
		sh := a.newShell()
		reload := sh.Run(ctx)
		sh.Close()
		if !reload || ctx.Err() != nil {
			return nil
		}
		fmt.Fprintln(a.out, "Reloading...")
	}
}
