package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablebook/tablebook/internal/client/api"
)

// recordedRequest captures what the fake backend saw.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
	Auth   string
}

// newBackend serves canned envelope responses keyed by METHOD PATH and
// records every request.
func newBackend(t *testing.T, responses map[string]string) (*api.Gateway, *[]recordedRequest) {
	t.Helper()
	var seen []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen = append(seen, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   body,
			Auth:   r.Header.Get("Authorization"),
		})

		resp, ok := responses[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"success":false,"message":"not found"}`))
			return
		}
		w.Write([]byte(resp))
	}))
	t.Cleanup(srv.Close)

	gw, err := api.New(srv.URL)
	require.NoError(t, err)
	return gw, &seen
}

func TestAuthService_Login(t *testing.T) {
	gw, seen := newBackend(t, map[string]string{
		"POST /auth/login": `{"success":true,"data":{"token":"T1","user":{"id":1,"name":"A","email":"a@b.com","role":"customer"}}}`,
	})

	result, err := NewAuthService(gw).Login(context.Background(), "a@b.com", "12345678")
	require.NoError(t, err)
	require.Equal(t, "T1", result.Token)
	require.Equal(t, int64(1), result.User.ID)

	var body map[string]string
	require.NoError(t, json.Unmarshal((*seen)[0].Body, &body))
	assert.Equal(t, "a@b.com", body["email"])
	assert.Equal(t, "12345678", body["password"])
}

func TestAuthService_Register_SendsConfirmation(t *testing.T) {
	gw, seen := newBackend(t, map[string]string{
		"POST /auth/register": `{"success":true,"data":{"token":"T2","user":{"id":2,"name":"B","email":"b@c.com","role":"customer"}}}`,
	})

	result, err := NewAuthService(gw).Register(context.Background(), RegisterInput{
		Name:                 "B",
		Email:                "b@c.com",
		Password:             "12345678",
		PasswordConfirmation: "12345678",
	})
	require.NoError(t, err)
	require.Equal(t, "T2", result.Token)

	var body map[string]any
	require.NoError(t, json.Unmarshal((*seen)[0].Body, &body))
	assert.Equal(t, "12345678", body["password_confirmation"])
	assert.NotContains(t, body, "phone", "empty phone omitted")
}

func TestAuthService_Me(t *testing.T) {
	gw, seen := newBackend(t, map[string]string{
		"GET /auth/me": `{"success":true,"data":{"user":{"id":1,"name":"A","email":"a@b.com","role":"admin"}}}`,
	})
	gw.SetAuthToken("T1")

	user, err := NewAuthService(gw).Me(context.Background())
	require.NoError(t, err)
	require.True(t, user.IsAdmin())
	assert.Equal(t, "Bearer T1", (*seen)[0].Auth)
}

func TestAuthService_Refresh(t *testing.T) {
	gw, _ := newBackend(t, map[string]string{
		"POST /auth/refresh": `{"success":true,"data":{"token":"T9"}}`,
	})

	token, err := NewAuthService(gw).Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "T9", token)
}

func TestAuthService_Logout_PropagatesServerError(t *testing.T) {
	gw, _ := newBackend(t, map[string]string{})

	err := NewAuthService(gw).Logout(context.Background())
	var serverErr *api.ServerError
	require.ErrorAs(t, err, &serverErr)
}
