package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSubmissionsAccepted()
	IncSubmissionsRejected()
	ObserveRebuildDuration(duration float64)
	AddReconciliationSkips(count int)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
