package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	admin    bool
	calls    []string
	args     map[string][]string
}

func newStubExec() *stubExec {
	return &stubExec{args: map[string][]string{}}
}

func (s *stubExec) record(name string, args []string) error {
	s.calls = append(s.calls, name)
	s.args[name] = args
	return nil
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }
func (s *stubExec) isAdmin() bool    { return s.admin }

func (s *stubExec) Register(ctx context.Context) error { return s.record("register", nil) }
func (s *stubExec) Login(ctx context.Context) error    { return s.record("login", nil) }
func (s *stubExec) Logout(ctx context.Context) error   { return s.record("logout", nil) }
func (s *stubExec) Profile(ctx context.Context) error  { return s.record("profile", nil) }

func (s *stubExec) Restaurants(ctx context.Context, args []string) error {
	return s.record("restaurants", args)
}
func (s *stubExec) Restaurant(ctx context.Context, args []string) error {
	return s.record("restaurant", args)
}
func (s *stubExec) Tables(ctx context.Context, args []string) error { return s.record("tables", args) }

func (s *stubExec) Book(ctx context.Context) error { return s.record("book", nil) }
func (s *stubExec) Reservations(ctx context.Context, args []string) error {
	return s.record("reservations", args)
}
func (s *stubExec) CancelReservation(ctx context.Context, args []string) error {
	return s.record("cancel", args)
}

func (s *stubExec) AdminTables(ctx context.Context) error   { return s.record("admin-tables", nil) }
func (s *stubExec) AdminAddTable(ctx context.Context) error { return s.record("admin-addtable", nil) }
func (s *stubExec) AdminEditTable(ctx context.Context, args []string) error {
	return s.record("admin-edittable", args)
}
func (s *stubExec) AdminDeleteTable(ctx context.Context, args []string) error {
	return s.record("admin-deltable", args)
}
func (s *stubExec) AdminReservations(ctx context.Context, args []string) error {
	return s.record("admin-reservations", args)
}
func (s *stubExec) AdminSetStatus(ctx context.Context, args []string) error {
	return s.record("admin-setstatus", args)
}
func (s *stubExec) AdminStats(ctx context.Context, args []string) error {
	return s.record("admin-stats", args)
}

func runScript(t *testing.T, exec *stubExec, script string) string {
	t.Helper()
	var out bytes.Buffer
	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), exec, func() string { return "" }, scanner, &out)
	return out.String()
}

func TestREPL_DispatchesCommandsWithArgs(t *testing.T) {
	exec := newStubExec()
	runScript(t, exec, "restaurants pizza\nrestaurant 7\ntables 7 2026-09-01 4\ncancel 11\nexit\n")

	assert.Equal(t, []string{"restaurants", "restaurant", "tables", "cancel"}, exec.calls)
	assert.Equal(t, []string{"pizza"}, exec.args["restaurants"])
	assert.Equal(t, []string{"7", "2026-09-01", "4"}, exec.args["tables"])
}

func TestREPL_UnknownCommand(t *testing.T) {
	exec := newStubExec()
	out := runScript(t, exec, "frobnicate\nexit\n")

	assert.Contains(t, out, "Unknown command: frobnicate")
	assert.Empty(t, exec.calls)
}

func TestREPL_EmptyLinesSkipped(t *testing.T) {
	exec := newStubExec()
	runScript(t, exec, "\n   \nlogin\nexit\n")

	assert.Equal(t, []string{"login"}, exec.calls)
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	exec := newStubExec()
	out := runScript(t, exec, "login\n")

	assert.Equal(t, []string{"login"}, exec.calls)
	assert.NotContains(t, out, "Bye!")
}

func TestREPL_HelpVariesByRole(t *testing.T) {
	exec := newStubExec()
	out := runScript(t, exec, "help\nexit\n")
	assert.Contains(t, out, "register, login")

	exec = newStubExec()
	exec.loggedIn = true
	out = runScript(t, exec, "help\nexit\n")
	assert.Contains(t, out, "book")
	assert.NotContains(t, out, "admin-stats")

	exec = newStubExec()
	exec.loggedIn = true
	exec.admin = true
	out = runScript(t, exec, "help\nexit\n")
	assert.Contains(t, out, "admin-stats")
}
