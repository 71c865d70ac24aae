// Package otel provides OpenTelemetry metric exporter bindings for loomclient
// counters.
//
// [NewOTelExporter] registers an Int64ObservableCounter instrument for each
// loomclient metric. A single callback reads [loomclient.Client.MetricsSnapshot]
// on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate client state.
package otel
