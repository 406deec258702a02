package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/dmitrijs2005/nutritrack/internal/client/client"
	"github.com/dmitrijs2005/nutritrack/internal/client/config"
	"github.com/dmitrijs2005/nutritrack/internal/client/services"
	"github.com/dmitrijs2005/nutritrack/internal/filex"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
)

// App is the interactive NutriTrack client. Per-user services live in
// session, which is nil while nobody is signed in.
type App struct {
	config *config.Config
	logger logging.Logger

	db      *sql.DB
	api     client.Client
	auth    services.AuthService
	meals   services.MealService
	session *services.Session

	reader *bufio.Reader
	out    io.Writer
}

var _ execIface = (*App)(nil)

// NewApp opens the local database and builds the API client and the
// account-level services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if _, err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "err", err)
		return nil, err
	}

	tokens := services.NewTokenStore(db)
	api, err := client.NewHTTPClient(c.APIURL, tokens, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return newApp(c, db, api, tokens, logger), nil
}

func newApp(c *config.Config, db *sql.DB, api client.Client, tokens *services.TokenStore, logger logging.Logger) *App {
	return &App{
		config: c,
		logger: logger,
		db:     db,
		api:    api,
		auth:   services.NewAuthService(api, tokens, logger),
		meals:  services.NewMealService(api, logger),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run resumes a saved login, if any, and blocks in the REPL until the user
// exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	if a.auth.LoggedIn(ctx) {
		a.openSession(ctx)
		a.println("Welcome back!")
	}
	a.println("Welcome to NutriTrack CLI (type 'help' for commands)")

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) getStatus() string {
	if a.session == nil {
		return ""
	}
	if target, ok := a.session.Chat.Editing(); ok {
		return fmt.Sprintf("(editing %s)", target.MealRecordID)
	}
	return "(" + strings.TrimPrefix(a.session.Namespace, services.UserNamespacePrefix) + ")"
}

// openSession builds the services of the signed-in user and loads today's
// chat.
func (a *App) openSession(ctx context.Context) {
	a.session = services.NewSession(ctx, a.db, a.api, a.auth, a.meals, a.config.RequestTimeout, a.logger)
	a.session.Chat.Open(ctx)
	a.session.Assistant.Open(ctx)
}

func (a *App) closeSession() {
	if a.session == nil {
		return
	}
	a.session.Chat.Cancel()
	a.session.Assistant.Cancel()
	a.session = nil
}

// requestContext bounds one backend call by the configured timeout. Ctrl+C
// while it runs cancels the call instead of killing the program.
func (a *App) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	if a.config.RequestTimeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

// check turns a rejected session into a logout so the user is asked to
// sign in again.
func (a *App) check(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) && a.session != nil {
		a.logger.Info(ctx, "session rejected by the server, logging out")
		_ = a.auth.Logout(ctx)
		a.closeSession()
		return errors.New("your session has expired, please login again")
	}
	return err
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
