package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	registry               *prometheus.Registry
	ExchangesIngestedTotal prometheus.Counter
	AnalysisRunsTotal      *prometheus.CounterVec
	RecordsRetained        *prometheus.GaugeVec
	ExchangesSkippedTotal  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	r := prometheus.NewRegistry()
	m := &Metrics{
		registry: r,
		ExchangesIngestedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "unique_request",
			Name:      "exchanges_ingested_total",
			Help:      "Total exchanges accepted into the traffic store",
		}),
		AnalysisRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unique_request",
			Name:      "analysis_runs_total",
			Help:      "Total analysis runs by mode",
		}, []string{"mode"}),
		RecordsRetained: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "unique_request",
			Name:      "records_retained",
			Help:      "Unique records retained by the last run, by mode",
		}, []string{"mode"}),
		ExchangesSkippedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unique_request",
			Name:      "exchanges_skipped_total",
			Help:      "Exchanges excluded during runs by mode and reason",
		}, []string{"mode", "reason"}),
	}
	r.MustRegister(m.ExchangesIngestedTotal, m.AnalysisRunsTotal, m.RecordsRetained, m.ExchangesSkippedTotal)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
