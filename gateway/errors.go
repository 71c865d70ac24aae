package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is matched by errors.Is against any *APIError carrying a
// 401 status, so callers can branch on authorization failures without
// inspecting status codes themselves.
var ErrUnauthorized = errors.New("unauthorized")

// NetworkError wraps a transport-level failure: the request never produced
// an HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "gateway: network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a non-2xx response. Body holds the raw response payload so the
// caller's message-extraction policy can run against it.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: api error: status %d", e.Status)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// UploadMismatchError reports an upload whose response acknowledged a
// different number of files than were sent.
type UploadMismatchError struct {
	Sent     int
	Received int
}

func (e *UploadMismatchError) Error() string {
	return fmt.Sprintf("gateway: upload mismatch: sent %d files, server returned %d urls", e.Sent, e.Received)
}
