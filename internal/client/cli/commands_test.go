package cli

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablebook/tablebook/internal/client/api"
	"github.com/tablebook/tablebook/internal/client/credstore"
	"github.com/tablebook/tablebook/internal/client/services"
	"github.com/tablebook/tablebook/internal/client/session"
	"github.com/tablebook/tablebook/internal/common"
	"github.com/tablebook/tablebook/internal/cryptox"
)

// newTestApp builds an App against a canned-response backend, with an
// in-memory credential store and a scripted stdin.
func newTestApp(t *testing.T, responses map[string]string, stdin string) (*App, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, ok := responses[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"success":false,"message":"not found"}`))
			return
		}
		w.Write([]byte(resp))
	}))
	t.Cleanup(srv.Close)

	db, err := credstore.OpenDatabase(ctx, "file:cli_"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := credstore.NewSQLiteStore(db, common.GenerateRandByteArray(cryptox.KeySize))
	require.NoError(t, err)

	gw, err := api.New(srv.URL, api.WithSnapshotClearer(store))
	require.NoError(t, err)

	auth := services.NewAuthService(gw)
	var out bytes.Buffer
	return &App{
		session:      session.NewManager(auth, gw, store),
		restaurants:  services.NewRestaurantService(gw),
		reservations: services.NewReservationService(gw),
		admin:        services.NewAdminService(gw),
		db:           db,
		reader:       bufio.NewReader(strings.NewReader(stdin)),
		out:          &out,
	}, &out
}

func TestApp_Restaurants(t *testing.T) {
	app, out := newTestApp(t, map[string]string{
		"GET /client/restaurants": `{"success":true,"data":{"restaurants":[
			{"id":1,"name":"La Piazza","cuisine":"italian","rating":4.5},
			{"id":2,"name":"Sakura"}]}}`,
	}, "")

	require.NoError(t, app.Restaurants(context.Background(), nil))
	assert.Contains(t, out.String(), "#1  La Piazza  [italian]  4.5")
	assert.Contains(t, out.String(), "#2  Sakura")
}

func TestApp_Restaurant_UsageOnBadID(t *testing.T) {
	app, out := newTestApp(t, nil, "")

	require.NoError(t, app.Restaurant(context.Background(), nil))
	assert.Contains(t, out.String(), "Usage: restaurant <id>")

	out.Reset()
	require.NoError(t, app.Restaurant(context.Background(), []string{"abc"}))
	assert.Contains(t, out.String(), "Usage: restaurant <id>")
}

func TestApp_Reservations_RequiresLogin(t *testing.T) {
	app, out := newTestApp(t, nil, "")

	require.NoError(t, app.Reservations(context.Background(), nil))
	assert.Contains(t, out.String(), "Log in first.")
}

func TestApp_Login_ThenReservations(t *testing.T) {
	app, out := newTestApp(t, map[string]string{
		"POST /auth/login": `{"success":true,"data":{"token":"T1","user":{"id":1,"name":"Anna","email":"a@b.com","role":"customer"}}}`,
		"GET /client/reservations": `{"success":true,"data":{"reservations":[
			{"id":11,"restaurant_id":7,"restaurant_name":"La Piazza","date":"2026-09-01","time":"19:00","party_size":4,"status":"confirmed"}]}}`,
	}, "a@b.com\n")

	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) { return []byte("12345678"), nil }

	require.NoError(t, app.Login(context.Background()))
	assert.Contains(t, out.String(), "Logged in as Anna")
	assert.Equal(t, "(Anna)", app.status())

	out.Reset()
	require.NoError(t, app.Reservations(context.Background(), nil))
	assert.Contains(t, out.String(), "#11  La Piazza  2026-09-01 19:00  party of 4  confirmed")
}

func TestApp_Login_InvalidCredentials(t *testing.T) {
	app, out := newTestApp(t, map[string]string{}, "a@b.com\n")

	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) { return []byte("wrong"), nil }

	require.NoError(t, app.Login(context.Background()))
	assert.Contains(t, out.String(), "Error:")
	assert.False(t, app.isLoggedIn())
}

func TestApp_AdminCommands_GatedByRole(t *testing.T) {
	app, out := newTestApp(t, map[string]string{
		"POST /auth/login": `{"success":true,"data":{"token":"T1","user":{"id":1,"name":"Anna","role":"customer"}}}`,
	}, "a@b.com\n")

	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) { return []byte("pw"), nil }
	require.NoError(t, app.Login(context.Background()))

	out.Reset()
	require.NoError(t, app.AdminTables(context.Background()))
	assert.Contains(t, out.String(), "Admin access required.")
}

func TestApp_AdminStats(t *testing.T) {
	app, out := newTestApp(t, map[string]string{
		"POST /auth/login": `{"success":true,"data":{"token":"T1","user":{"id":1,"name":"Boss","role":"admin"}}}`,
		"GET /admin/stats": `{"success":true,"data":{"stats":{"total_reservations":40,"pending_reservations":5,"confirmed_reservations":30,"cancelled_reservations":5,"total_tables":12,"occupied_tables":7,"total_guests":96,"occupancy_rate":0.58}}}`,
	}, "boss@b.com\n")

	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) { return []byte("pw"), nil }
	require.NoError(t, app.Login(context.Background()))
	assert.Equal(t, "(Boss admin)", app.status())

	out.Reset()
	require.NoError(t, app.AdminStats(context.Background(), []string{"2026-08-01", "2026-08-31"}))
	assert.Contains(t, out.String(), "Reservations: 40 total, 5 pending, 30 confirmed, 5 cancelled")
	assert.Contains(t, out.String(), "Occupancy:    58%")
}
