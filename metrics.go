package loomclient

import "sync/atomic"

// MetricID defines a public type used by loomclient APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricLoginSuccess is an exported constant or variable used by the storefront client.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure is an exported constant or variable used by the storefront client.
	MetricLoginFailure
	// MetricRegisterSuccess is an exported constant or variable used by the storefront client.
	MetricRegisterSuccess
	// MetricRegisterFailure is an exported constant or variable used by the storefront client.
	MetricRegisterFailure
	// MetricLogout is an exported constant or variable used by the storefront client.
	MetricLogout
	// MetricProfileRefreshSuccess is an exported constant or variable used by the storefront client.
	MetricProfileRefreshSuccess
	// MetricProfileRefreshFailure is an exported constant or variable used by the storefront client.
	MetricProfileRefreshFailure
	// MetricProfileUpdateSuccess is an exported constant or variable used by the storefront client.
	MetricProfileUpdateSuccess
	// MetricProfileUpdateFailure is an exported constant or variable used by the storefront client.
	MetricProfileUpdateFailure
	// MetricPasswordChangeSuccess is an exported constant or variable used by the storefront client.
	MetricPasswordChangeSuccess
	// MetricPasswordChangeFailure is an exported constant or variable used by the storefront client.
	MetricPasswordChangeFailure
	// MetricSessionCleared is an exported constant or variable used by the storefront client.
	MetricSessionCleared
	// MetricDedupeCoalesced is an exported constant or variable used by the storefront client.
	MetricDedupeCoalesced
	// MetricUploadMismatch is an exported constant or variable used by the storefront client.
	MetricUploadMismatch
	// MetricRecoveryRequest is an exported constant or variable used by the storefront client.
	MetricRecoveryRequest
	// MetricRecoveryVerifySuccess is an exported constant or variable used by the storefront client.
	MetricRecoveryVerifySuccess
	// MetricRecoveryVerifyFailure is an exported constant or variable used by the storefront client.
	MetricRecoveryVerifyFailure
	// MetricRecoveryConfirmSuccess is an exported constant or variable used by the storefront client.
	MetricRecoveryConfirmSuccess
	// MetricRecoveryConfirmFailure is an exported constant or variable used by the storefront client.
	MetricRecoveryConfirmFailure

	metricCount
)

// Metrics defines a public type used by loomclient APIs.
//
// Metrics is a fixed set of atomic counters; Snapshot copies them without
// stopping writers.
type Metrics struct {
	enabled  bool
	counters [metricCount]atomic.Uint64
}

// MetricsSnapshot defines a public type used by loomclient APIs.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// NewMetrics describes the newmetrics operation and its observable behavior.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc describes the inc operation and its observable behavior.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

// Snapshot describes the snapshot operation and its observable behavior.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snapshot := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricCount)}
	if m == nil || !m.enabled {
		return snapshot
	}
	for id := MetricID(0); id < metricCount; id++ {
		if v := m.counters[id].Load(); v > 0 {
			snapshot.Counters[id] = v
		}
	}
	return snapshot
}
