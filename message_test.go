package loomclient

import (
	"errors"
	"net/http"
	"testing"

	"github.com/loomlane/loomclient/gateway"
)

func apiErr(status int, body string) error {
	return &gateway.APIError{Status: status, Body: []byte(body)}
}

func TestErrorMessageExtractionOrder(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"message key", apiErr(400, `{"message":"Account pending approval"}`), "Account pending approval"},
		{"detail key", apiErr(401, `{"detail":"Invalid credentials"}`), "Invalid credentials"},
		{"message beats detail regardless of position", apiErr(400, `{"detail":"second","message":"first"}`), "first"},
		{"first field error array", apiErr(400, `{"email":["Enter a valid email address.","too short"],"phone":["bad"]}`), "Enter a valid email address."},
		{"first field error string", apiErr(400, `{"company":"This field is required."}`), "This field is required."},
		{"document order decides first field", apiErr(400, `{"zeta":["z wins"],"alpha":["a loses"]}`), "z wins"},
		{"plain string body", apiErr(500, `"upstream exploded"`), "upstream exploded"},
		{"html body falls through to error text", apiErr(502, `<html>bad gateway</html>`), "gateway: api error: status 502"},
		{"empty body falls through", apiErr(500, ``), "gateway: api error: status 500"},
		{"non-api error uses its text", errors.New("dial tcp: connection refused"), "dial tcp: connection refused"},
		{"nil error", nil, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ErrorMessage(c.err); got != c.want {
				t.Fatalf("message = %q, want %q", got, c.want)
			}
		})
	}
}

func TestErrorMessageNetworkError(t *testing.T) {
	err := &gateway.NetworkError{Err: errors.New("connection reset")}
	got := ErrorMessage(err)
	if got == "" || got == genericErrorMessage {
		t.Fatalf("network failures keep their transport text, got %q", got)
	}
}

func TestErrorMessageUnauthorizedSentinel(t *testing.T) {
	err := apiErr(http.StatusUnauthorized, `{"detail":"Token expired"}`)
	if !errors.Is(err, gateway.ErrUnauthorized) {
		t.Fatal("401 api error must match ErrUnauthorized")
	}
	if got := ErrorMessage(err); got != "Token expired" {
		t.Fatalf("message = %q", got)
	}
}
