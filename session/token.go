package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when the access token carries no exp claim.
var ErrNoExpiry = errors.New("session: token has no expiry claim")

// TokenExpiry reads the exp claim from a bearer token without verifying the
// signature. The client holds no server key, so the claim is informational
// only; callers use it to pre-empt a guaranteed 401, never to grant access.
func TokenExpiry(accessToken string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}

// TokenExpired reports whether the session's access token is past its exp
// claim. Tokens without a parseable expiry are treated as live.
func (s Session) TokenExpired(now time.Time) bool {
	if s.AccessToken == "" {
		return true
	}
	exp, err := TokenExpiry(s.AccessToken)
	if err != nil {
		return false
	}
	return now.After(exp)
}
