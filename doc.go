// Package loomclient is the Go client for the Loomlane B2B apparel
// storefront API: authentication, durable sessions, profile and password
// management, password recovery, and the lead/product/admin catalog surface.
//
// The package is designed for concurrent callers: Client methods are safe to
// call from multiple goroutines after initialization through [Builder.Build].
// Identical in-flight reads are coalesced into a single network request, and
// each logical operation (auth, profile, password) tracks its outcome in an
// independent status slot.
//
// # Architecture boundaries
//
// loomclient is the public surface. It exposes [Client], [Builder], [Config],
// and value types (OperationStatus, MetricsSnapshot, AuditEvent, etc.). The
// request gateway, session model, and recovery state machine live in the
// gateway, session, and recovery sub-packages; metric exporters live under
// metrics/export.
//
// # What this package must NOT do
//
//   - Verify token signatures or make authorization decisions — the server
//     owns both; the client only reads the unverified expiry claim.
//   - Store credentials. Only the issued tokens and profile payload are
//     persisted, never a password.
//   - Import any sub-package that re-imports loomclient (no import cycles).
package loomclient
