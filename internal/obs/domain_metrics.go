package obs

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// ReportsGeneratedTotal counts report computations by outcome.
	ReportsGeneratedTotal *prometheus.CounterVec
	// ReportComputeDuration records report computation latency in milliseconds.
	ReportComputeDuration prometheus.Histogram
	// ReportCacheTotal counts cache lookups for rendered reports.
	ReportCacheTotal *prometheus.CounterVec
	// ReportRowsSkippedTotal counts input rows dropped for unknown references.
	ReportRowsSkippedTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		ReportsGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "Count of seller report computations by outcome.",
		}, []string{"result"})
		ReportComputeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_compute_duration_ms",
			Help:      "Latency of seller report computations in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		})
		ReportCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_total",
			Help:      "Count of rendered-report cache lookups by status.",
		}, []string{"status"})
		ReportRowsSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_rows_skipped_total",
			Help:      "Input rows skipped during aggregation for unknown references.",
		}, []string{"kind"})

		mustRegisterCollector(reg, ReportsGeneratedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ReportsGeneratedTotal = v
			}
		})
		mustRegisterCollector(reg, ReportComputeDuration, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				ReportComputeDuration = v
			}
		})
		mustRegisterCollector(reg, ReportCacheTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ReportCacheTotal = v
			}
		})
		mustRegisterCollector(reg, ReportRowsSkippedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ReportRowsSkippedTotal = v
			}
		})
	})
}

// ObserveReportGenerated records one computation outcome. Safe to call before
// registration; it then does nothing.
func ObserveReportGenerated(result string, elapsed time.Duration) {
	if ReportsGeneratedTotal != nil {
		ReportsGeneratedTotal.WithLabelValues(result).Inc()
	}
	if result == "ok" && ReportComputeDuration != nil {
		ReportComputeDuration.Observe(DurationMillis(elapsed))
	}
}

// ObserveReportCache records one cache lookup ("hit" or "miss").
func ObserveReportCache(status string) {
	if ReportCacheTotal != nil {
		ReportCacheTotal.WithLabelValues(status).Inc()
	}
}

// ObserveReportSkips records rows dropped during one aggregation pass.
func ObserveReportSkips(records, items int) {
	if ReportRowsSkippedTotal == nil {
		return
	}
	if records > 0 {
		ReportRowsSkippedTotal.WithLabelValues("record").Add(float64(records))
	}
	if items > 0 {
		ReportRowsSkippedTotal.WithLabelValues("item").Add(float64(items))
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register collector: %w", err))
	}
}
