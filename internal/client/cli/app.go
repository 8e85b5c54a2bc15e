package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"github.com/dvelez2005/civicwatch/internal/client/api"
	"github.com/dvelez2005/civicwatch/internal/client/config"
	"github.com/dvelez2005/civicwatch/internal/client/credstore"
	"github.com/dvelez2005/civicwatch/internal/client/feed"
	"github.com/dvelez2005/civicwatch/internal/client/form"
	"github.com/dvelez2005/civicwatch/internal/client/pins"
	"github.com/dvelez2005/civicwatch/internal/client/services"
	"github.com/dvelez2005/civicwatch/internal/client/session"
	"github.com/dvelez2005/civicwatch/internal/logging"
)

// App bundles every client-side component behind the REPL commands.
type App struct {
	config  *config.Config
	log     logging.Logger
	client  api.Client
	sess    *session.Session
	auth    *services.AuthService
	reports *services.ReportService
	feed    *feed.Synchronizer
	pins    *pins.Reconciler
	form    *form.Form
	reader  *bufio.Reader
}

// NewApp wires the full client: credential database, session, API client,
// services, feed synchronizer, pin reconciler and report form.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	db, err := credstore.InitDatabase(ctx, c.CredentialDBPath)
	if err != nil {
		return nil, fmt.Errorf("init credential database: %w", err)
	}

	store := credstore.NewSQLiteStore(db, []byte(c.SecretPassphrase))
	sess := session.New(store, log)
	if err := sess.Init(ctx); err != nil {
		return nil, err
	}

	client := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, sess, log)

	return &App{
		config:  c,
		log:     log,
		client:  client,
		sess:    sess,
		auth:    services.NewAuthService(client, sess, log),
		reports: services.NewReportService(client, sess, log),
		feed:    feed.New(client, log, c.PageSize, c.DebounceInterval),
		pins:    pins.New(client, sess, log),
		form:    form.New(client, sess, log, c.ImageUploadBase),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.feed.Close()

	if a.isLoggedIn() {
		if err := a.pins.Load(ctx); err != nil {
			a.log.Warn(ctx, "initial pin load failed", "error", err)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	printlnFn("Welcome to CivicWatch CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.sess.Current()
	return ok
}

func (a *App) isAdmin() bool {
	return a.sess.IsAdmin()
}

func (a *App) getStatus() string {
	creds, ok := a.sess.Current()
	if !ok {
		return ""
	}
	s := creds.Email
	if creds.Admin {
		s += " admin"
	}
	return fmt.Sprintf("(%s)", s)
}

// handleErr funnels command failures through the 401 handler (a rejected
// token clears the session and the user is told to log in again) and maps
// the remaining backend status errors to user-facing messages.
func (a *App) handleErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if a.auth.HandleAuthError(ctx, err) {
		a.pins.Reset()
		return fmt.Errorf("session expired, please login again")
	}
	switch {
	case api.IsForbidden(err):
		return fmt.Errorf("not allowed: %w", err)
	case api.IsNotFound(err):
		return fmt.Errorf("not found: %w", err)
	case api.IsServerError(err):
		return fmt.Errorf("server error, try again later: %w", err)
	}
	return err
}
