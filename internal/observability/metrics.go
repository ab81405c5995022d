package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects Prometheus metrics for top-up report runs.
type Metrics struct {
	registry      *prometheus.Registry
	runs          *prometheus.CounterVec
	duration      prometheus.Histogram
	usersToppedUp *prometheus.CounterVec
	tokensGranted *prometheus.CounterVec
}

// NewMetrics initialises a private registry with the run metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "topup_runs_total",
		Help: "Total report runs partitioned by status.",
	}, []string{"status"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "topup_run_duration_seconds",
		Help:    "Duration in seconds of report runs.",
		Buckets: prometheus.DefBuckets,
	})
	users := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "topup_users_topped_up_total",
		Help: "Users whose balance was topped up, per company.",
	}, []string{"company"})
	tokens := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "topup_tokens_granted_total",
		Help: "Tokens granted through top-ups, per company.",
	}, []string{"company"})
	registry.MustRegister(runs, duration, users, tokens)
	return &Metrics{
		registry:      registry,
		runs:          runs,
		duration:      duration,
		usersToppedUp: users,
		tokensGranted: tokens,
	}
}

// Registerer exposes the registry for custom metric registration.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

// Tracker provides lifecycle instrumentation helpers for a single run.
type Tracker struct {
	metrics *Metrics
	start   time.Time
}

// Track starts timing a run.
func (m *Metrics) Track() *Tracker {
	return &Tracker{metrics: m, start: time.Now()}
}

// End finalises the tracker, recording duration and status and returning the
// provided error untouched.
func (t *Tracker) End(err error) error {
	if t == nil || t.metrics == nil {
		return err
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	t.metrics.runs.WithLabelValues(status).Inc()
	t.metrics.duration.Observe(time.Since(t.start).Seconds())
	return err
}

// AddTopUps records the users and tokens granted for one company block.
func (m *Metrics) AddTopUps(companyID int64, users int, tokens float64) {
	if m == nil || users <= 0 {
		return
	}
	company := strconv.FormatInt(companyID, 10)
	m.usersToppedUp.WithLabelValues(company).Add(float64(users))
	if tokens > 0 {
		m.tokensGranted.WithLabelValues(company).Add(tokens)
	}
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
