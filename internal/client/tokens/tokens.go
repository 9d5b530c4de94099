// Package tokens inspects bearer tokens issued by the backend. The deployed
// backend issues JWTs; the client treats the token as opaque everywhere
// except here, where the exp claim is peeked (without signature
// verification — the client holds no key and the server remains the
// authority) to decide whether a proactive refresh is worthwhile.
package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var parser = jwt.NewParser()

// ExpiresAt returns the token's expiry claim. ok is false when the token is
// not a JWT or carries no exp claim; such tokens are used as-is until the
// server rejects them.
func ExpiresAt(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// ExpiresWithin reports whether the token expires within d (or already has).
// False for opaque tokens.
func ExpiresWithin(token string, d time.Duration) bool {
	exp, ok := ExpiresAt(token)
	if !ok {
		return false
	}
	return time.Until(exp) < d
}
