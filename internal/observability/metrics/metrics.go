package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "explainer_"

	resultSuccess = "success"
)

var (
	registerOnce sync.Once

	analysesTotal  *prometheus.CounterVec
	analyzeLatency *prometheus.HistogramVec

	guidanceTotal *prometheus.CounterVec

	narrativeSourceTotal *prometheus.CounterVec
	narrativeLatency     prometheus.Histogram

	reportExportTotal   *prometheus.CounterVec
	reportExportLatency *prometheus.HistogramVec
)

// Init registers explainer metrics.
func Init() {
	registerOnce.Do(func() {
		analysesTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "analyses_total",
				Help: "Total scenario analyses by detected pattern",
			},
			[]string{"pattern"},
		)
		analyzeLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "analyze_latency_seconds",
				Help:    "Scenario analysis latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		guidanceTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "guidance_total",
				Help: "Total guidance resolutions by tier",
			},
			[]string{"tier"},
		)

		narrativeSourceTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "narrative_source_total",
				Help: "Total narratives by answering source",
			},
			[]string{"source"},
		)
		narrativeLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "narrative_latency_seconds",
				Help:    "Narrative generation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		)

		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)
		reportExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			analysesTotal,
			analyzeLatency,
			guidanceTotal,
			narrativeSourceTotal,
			narrativeLatency,
			reportExportTotal,
			reportExportLatency,
		)
	})
}

// ObserveAnalysis records one analysis with its latency.
func ObserveAnalysis(pattern, result string, duration time.Duration) {
	if pattern == "" {
		pattern = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if analysesTotal != nil {
		analysesTotal.WithLabelValues(pattern).Inc()
	}
	if analyzeLatency != nil {
		analyzeLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncGuidance increments the guidance tier counter.
func IncGuidance(tier string) {
	if tier == "" {
		tier = "unknown"
	}
	if guidanceTotal != nil {
		guidanceTotal.WithLabelValues(tier).Inc()
	}
}

// ObserveNarrative records the answering source and latency.
func ObserveNarrative(source string, duration time.Duration) {
	if source == "" {
		source = "unknown"
	}
	if narrativeSourceTotal != nil {
		narrativeSourceTotal.WithLabelValues(source).Inc()
	}
	if narrativeLatency != nil {
		narrativeLatency.Observe(duration.Seconds())
	}
}

// ObserveReportExport records export latency and result.
func ObserveReportExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format, result).Inc()
	}
	if reportExportLatency != nil {
		reportExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}
