package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SubmissionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pingpong_submissions_accepted_total",
			Help: "The total number of match submissions accepted into the event log.",
		}),
		SubmissionsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pingpong_submissions_rejected_total",
			Help: "The total number of match submissions rejected by validation.",
		}),
		RebuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pingpong_rating_rebuild_duration_seconds",
			Help:    "The duration of full rating rebuilds.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ReconciliationSkips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pingpong_reconciliation_skipped_events_total",
			Help: "The total number of logged events dropped during ledger reconciliation.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pingpong_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pingpong_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pingpong_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SubmissionsAccepted,
		s.SubmissionsRejected,
		s.RebuildDuration,
		s.ReconciliationSkips,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSubmissionsAccepted() {
	s.SubmissionsAccepted.Inc()
}

func (s *Service) IncSubmissionsRejected() {
	s.SubmissionsRejected.Inc()
}

func (s *Service) ObserveRebuildDuration(duration float64) {
	s.RebuildDuration.Observe(duration)
}

func (s *Service) AddReconciliationSkips(count int) {
	s.ReconciliationSkips.Add(float64(count))
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
