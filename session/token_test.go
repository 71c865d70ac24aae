package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestTokenExpiryReadsClaim(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{"exp": exp.Unix(), "sub": "7"})

	got, err := TokenExpiry(token)
	if err != nil {
		t.Fatalf("token expiry: %v", err)
	}
	if !got.Equal(exp) {
		t.Fatalf("expiry = %v, want %v", got, exp)
	}
}

func TestTokenExpiryMissingClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "7"})
	if _, err := TokenExpiry(token); !errors.Is(err, ErrNoExpiry) {
		t.Fatalf("expected ErrNoExpiry, got %v", err)
	}
}

func TestTokenExpiryGarbage(t *testing.T) {
	if _, err := TokenExpiry("not-a-jwt"); err == nil {
		t.Fatal("expected parse failure")
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	live := signedToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})
	stale := signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()})

	if (Session{AccessToken: live}).TokenExpired(now) {
		t.Fatal("live token reported expired")
	}
	if !(Session{AccessToken: stale}).TokenExpired(now) {
		t.Fatal("stale token reported live")
	}
	if !(Session{}).TokenExpired(now) {
		t.Fatal("empty token must read as expired")
	}
	// No parseable expiry: treated as live, the server is the authority.
	if (Session{AccessToken: "opaque"}).TokenExpired(now) {
		t.Fatal("opaque token must read as live")
	}
}
