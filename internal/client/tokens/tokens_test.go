package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestExpiresAt_ReadsClaim(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, ok := ExpiresAt(signedToken(t, exp))
	require.True(t, ok)
	require.WithinDuration(t, exp, got, time.Second)
}

func TestExpiresAt_OpaqueToken(t *testing.T) {
	_, ok := ExpiresAt("not-a-jwt")
	require.False(t, ok)
}

func TestExpiresWithin(t *testing.T) {
	soon := signedToken(t, time.Now().Add(30*time.Second))
	far := signedToken(t, time.Now().Add(24*time.Hour))
	expired := signedToken(t, time.Now().Add(-time.Minute))

	require.True(t, ExpiresWithin(soon, time.Minute))
	require.False(t, ExpiresWithin(far, time.Minute))
	require.True(t, ExpiresWithin(expired, time.Minute))
	require.False(t, ExpiresWithin("opaque", time.Minute))
}
