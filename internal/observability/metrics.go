package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	persistGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fitlog",
		Subsystem: "persistence",
		Name:      "last_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful write, labeled by store.",
	}, []string{"store"})

	persistFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitlog",
		Subsystem: "persistence",
		Name:      "write_failures_total",
		Help:      "Number of store writes that failed, labeled by store.",
	}, []string{"store"})

	loadFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitlog",
		Subsystem: "persistence",
		Name:      "load_fallbacks_total",
		Help:      "Number of loads that fell back to empty or default state, labeled by store and reason.",
	}, []string{"store", "reason"})

	workoutMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitlog",
		Subsystem: "workouts",
		Name:      "mutations_total",
		Help:      "Number of workouts appended, edited or deleted, labeled by operation.",
	}, []string{"op"})

	validationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitlog",
		Subsystem: "workouts",
		Name:      "validation_failures_total",
		Help:      "Number of rejected workout inputs, labeled by offending field.",
	}, []string{"field"})

	importedRows = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitlog",
		Subsystem: "interchange",
		Name:      "imported_rows_total",
		Help:      "Number of CSV rows imported into workout logs.",
	})

	exportedRows = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitlog",
		Subsystem: "interchange",
		Name:      "exported_rows_total",
		Help:      "Number of workouts written to CSV exports.",
	})
)

func init() {
	prometheus.MustRegister(persistGauge, persistFailures, loadFallbacks, workoutMutations, validationFailures, importedRows, exportedRows)
}

// RecordPersisted updates the write watermark for store.
func RecordPersisted(store string, ts time.Time) {
	if ts.IsZero() {
		return
	}
	persistGauge.WithLabelValues(store).Set(float64(ts.Unix()))
}

// RecordPersistFailure counts a failed write of store.
func RecordPersistFailure(store string) {
	persistFailures.WithLabelValues(store).Inc()
}

// RecordLoadFallback counts a load of store that fell back to defaults.
func RecordLoadFallback(store, reason string) {
	loadFallbacks.WithLabelValues(store, reason).Inc()
}

// RecordWorkoutMutation counts n workouts changed by op.
func RecordWorkoutMutation(op string, n int) {
	if n <= 0 {
		return
	}
	workoutMutations.WithLabelValues(op).Add(float64(n))
}

// RecordValidationFailure counts a rejected input.
func RecordValidationFailure(field string) {
	validationFailures.WithLabelValues(field).Inc()
}

// RecordImportedRows counts rows accepted by an import.
func RecordImportedRows(n int) {
	if n > 0 {
		importedRows.Add(float64(n))
	}
}

// RecordExportedRows counts rows written by an export.
func RecordExportedRows(n int) {
	if n > 0 {
		exportedRows.Add(float64(n))
	}
}

// WriteTextfile dumps every registered metric to path in the text exposition
// format, for collection by a node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
