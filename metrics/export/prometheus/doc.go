// Package prometheus provides Prometheus collectors for loomclient metrics.
//
// [NewPrometheusExporter] accepts a [loomclient.Client] and exposes an
// [http.Handler] that renders all loomclient counters in Prometheus text
// exposition format. Counter names are prefixed loomclient_*_total.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate client state.
package prometheus
