package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/tablebook/tablebook/internal/client/api"
	"github.com/tablebook/tablebook/internal/client/config"
	"github.com/tablebook/tablebook/internal/client/credstore"
	"github.com/tablebook/tablebook/internal/client/services"
	"github.com/tablebook/tablebook/internal/client/session"
	"github.com/tablebook/tablebook/internal/cryptox"
	"github.com/tablebook/tablebook/internal/logging"
)

// App wires the tablebook CLI together: one gateway, the session manager and
// the domain services, plus the terminal I/O.
type App struct {
	config  *config.Config
	log     logging.Logger
	session *session.Manager

	restaurants  *services.RestaurantService
	reservations *services.ReservationService
	admin        *services.AdminService

	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the full client stack from configuration: device key and
// credential database under cfg.DataDir, gateway against cfg.BaseURL, then
// services and the session manager on top.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	key, err := cryptox.LoadOrCreateKey(filepath.Join(cfg.DataDir, "device.key"))
	if err != nil {
		return nil, fmt.Errorf("load device key: %w", err)
	}

	db, err := credstore.OpenDatabase(ctx, filepath.Join(cfg.DataDir, "tablebook.db"))
	if err != nil {
		return nil, err
	}

	store, err := credstore.NewSQLiteStore(db, key)
	if err != nil {
		return nil, err
	}

	gw, err := api.New(cfg.BaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(log),
		api.WithSnapshotClearer(store),
	)
	if err != nil {
		return nil, err
	}

	auth := services.NewAuthService(gw)

	return &App{
		config:       cfg,
		log:          log,
		session:      session.NewManager(auth, gw, store, session.WithLogger(log)),
		restaurants:  services.NewRestaurantService(gw),
		reservations: services.NewReservationService(gw),
		admin:        services.NewAdminService(gw),
		db:           db,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}, nil
}

// Run restores the session from disk and hands control to the REPL. It
// returns when the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	a.session.Bootstrap(ctx)

	snap := a.session.Snapshot()
	if snap.Status == session.StatusAuthenticated {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", snap.User.Name)
	} else {
		fmt.Fprintln(a.out, "Welcome to tablebook (type 'help' for commands)")
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin), a.out)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Status == session.StatusAuthenticated
}

func (a *App) isAdmin() bool {
	snap := a.session.Snapshot()
	return snap.User != nil && snap.User.IsAdmin()
}

// status renders the prompt suffix: the signed-in user's name and, for
// admins, their role.
func (a *App) status() string {
	snap := a.session.Snapshot()
	if snap.User == nil {
		return ""
	}
	s := snap.User.Name
	if snap.User.IsAdmin() {
		s += " admin"
	}
	return fmt.Sprintf("(%s)", s)
}

// fail prints the message of a failed session operation, falling back to the
// session's LastError when the result carries none.
func (a *App) fail(msg string) {
	if msg == "" {
		msg = a.session.Snapshot().LastError
	}
	fmt.Fprintln(a.out, "Error:", msg)
}

// printError shows a gateway error to the user, including per-field
// validation messages when the backend sent them.
func (a *App) printError(err error) {
	var serverErr *api.ServerError
	if errors.As(err, &serverErr) {
		fmt.Fprintln(a.out, "Error:", serverErr.Message)
		for field, msgs := range serverErr.FieldErrors {
			for _, msg := range msgs {
				fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
			}
		}
		return
	}
	fmt.Fprintln(a.out, "Error:", err.Error())
}
