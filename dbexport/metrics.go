package dbexport

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects per-run counters in a private registry so they can be
// written to a node-exporter textfile when the run ends. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	rows     *prometheus.CounterVec
	pages    *prometheus.CounterVec
	tables   *prometheus.CounterVec
	duration prometheus.Gauge
	lastRun  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "getsupabase_export_rows_total",
				Help: "Rows written per table",
			},
			[]string{"table"},
		),
		pages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "getsupabase_export_pages_total",
				Help: "Page requests issued per table",
			},
			[]string{"table"},
		),
		tables: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "getsupabase_export_tables_total",
				Help: "Tables processed by outcome",
			},
			[]string{"status"},
		),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "getsupabase_export_duration_seconds",
			Help: "Wall time of the last run",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "getsupabase_export_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		}),
	}
	m.registry.MustRegister(m.rows, m.pages, m.tables, m.duration, m.lastRun)
	return m
}

// ObserveTable records one table result.
func (m *Metrics) ObserveTable(res TableResult) {
	if m == nil {
		return
	}
	m.rows.WithLabelValues(res.Table).Add(float64(res.Rows))
	m.pages.WithLabelValues(res.Table).Add(float64(res.Pages))
	status := string(res.Status)
	if res.OK() && res.Rows == 0 {
		status = "empty"
	}
	m.tables.WithLabelValues(status).Inc()
}

// ObserveRun records the run timing.
func (m *Metrics) ObserveRun(s *Summary) {
	if m == nil || s == nil {
		return
	}
	m.duration.Set(s.Duration().Seconds())
	if !s.Finished.IsZero() {
		m.lastRun.Set(float64(s.Finished.Unix()))
	}
}

// Registry exposes the collectors, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the metrics in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
