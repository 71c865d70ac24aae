// Package gateway is the single HTTP boundary of the loomclient library.
// It injects the bearer token into outbound requests, collapses concurrent
// identical reads into one network call, and translates failures into the
// typed errors the rest of the library branches on.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// TokenSource exposes the current bearer token to the gateway. An empty
// string means no session exists and the request goes out unauthenticated.
type TokenSource interface {
	AccessToken() string
}

// Config carries the construction parameters for a Gateway.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// Gateway performs all outbound HTTP for the client. It is safe for
// concurrent use: the pending-request cache performs an atomic
// check-and-insert, so at most one network call is outstanding per dedupe
// key at any instant.
type Gateway struct {
	baseURL   string
	client    *http.Client
	tokens    TokenSource
	userAgent string
	flight    singleflight.Group

	// OnCoalesced, when set, is invoked once per caller that joined an
	// already in-flight read instead of issuing its own request.
	OnCoalesced func(key string)
}

// New builds a Gateway. A nil HTTPClient falls back to a client with a
// 30-second timeout; tokens may be nil for a purely unauthenticated gateway.
func New(cfg Config, tokens TokenSource) *Gateway {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Gateway{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		client:    client,
		tokens:    tokens,
		userAgent: cfg.UserAgent,
	}
}

// Do performs an authenticated JSON request and decodes the response body
// into out when out is non-nil. It fails with *NetworkError when the
// transport fails and *APIError on a non-2xx response.
func (g *Gateway) Do(ctx context.Context, method, path string, body any, query url.Values, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	data, err := g.roundTrip(ctx, method, path, query, reader, contentType)
	if err != nil {
		return err
	}
	return decodeInto(data, out)
}

// Get performs a deduplicated authenticated read. Concurrent calls sharing
// the same canonical key (see DedupeKey) collapse into one network call and
// every caller observes the same settlement, success or failure. The cache
// entry is removed when the call settles, so a subsequent Get always issues
// a fresh request.
func (g *Gateway) Get(ctx context.Context, path string, query url.Values, out any) error {
	key := DedupeKey(path, query)
	v, err, shared := g.flight.Do(key, func() (any, error) {
		return g.roundTrip(ctx, http.MethodGet, path, query, nil, "")
	})
	if shared && g.OnCoalesced != nil {
		g.OnCoalesced(key)
	}
	if err != nil {
		return err
	}
	// Each caller decodes its own copy from the shared bytes; callers never
	// alias decoded values.
	return decodeInto(v.([]byte), out)
}

// MultipartForm accumulates fields and files for a multipart request. The
// writer owns the boundary, so the gateway never sets Content-Type for
// multipart calls itself.
type MultipartForm struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	files  int
	closed bool
}

// NewMultipartForm returns an empty form ready for fields and files.
func NewMultipartForm() *MultipartForm {
	f := &MultipartForm{}
	f.writer = multipart.NewWriter(&f.buf)
	return f
}

// AddField appends a plain form field.
func (f *MultipartForm) AddField(name, value string) error {
	return f.writer.WriteField(name, value)
}

// AddFile appends a file part read from r.
func (f *MultipartForm) AddFile(field, filename string, r io.Reader) error {
	part, err := f.writer.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	f.files++
	return nil
}

// FileCount reports how many file parts were added.
func (f *MultipartForm) FileCount() int { return f.files }

func (f *MultipartForm) finish() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.writer.Close()
}

// DoMultipart sends a multipart request with only the bearer and request-id
// headers attached; the multipart writer supplies the Content-Type with its
// boundary. The decoded response lands in out when out is non-nil.
func (g *Gateway) DoMultipart(ctx context.Context, method, path string, form *MultipartForm, out any) error {
	if err := form.finish(); err != nil {
		return fmt.Errorf("gateway: finalize multipart form: %w", err)
	}
	data, err := g.roundTrip(ctx, method, path, nil, bytes.NewReader(form.buf.Bytes()), form.writer.FormDataContentType())
	if err != nil {
		return err
	}
	return decodeInto(data, out)
}

// UploadMultipart posts a multipart form and verifies that the server
// acknowledged exactly as many URLs as files were sent, failing with
// *UploadMismatchError otherwise.
func (g *Gateway) UploadMultipart(ctx context.Context, path string, form *MultipartForm) ([]string, error) {
	var resp struct {
		URLs []string `json:"urls"`
	}
	if err := g.DoMultipart(ctx, http.MethodPost, path, form, &resp); err != nil {
		return nil, err
	}
	if len(resp.URLs) != form.FileCount() {
		return nil, &UploadMismatchError{Sent: form.FileCount(), Received: len(resp.URLs)}
	}
	return resp.URLs, nil
}

func (g *Gateway) roundTrip(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	target := g.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}
	if g.tokens != nil {
		if token := g.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: data}
	}

	return data, nil
}

func decodeInto(data []byte, out any) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("gateway: decode response: %w", err)
	}
	return nil
}
