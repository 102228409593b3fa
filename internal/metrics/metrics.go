package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Santoryu-0niGiri/CV-Scanner/internal/db"
)

// Scan outcome labels recorded by the handlers.
const (
	OutcomeScanned    = "scanned"
	OutcomeRescanned  = "rescanned"
	OutcomeNoEmail    = "no_email"
	OutcomeNotCV      = "not_cv"
	OutcomeBatch      = "batch"
	OutcomeBatchError = "batch_error"
)

var scanOutcomeDesc = prometheus.NewDesc(
	"cvscanner_scans_total",
	"Total CV scan count by outcome",
	[]string{"outcome"},
	nil,
)

// OutcomeCollector is a custom Prometheus collector that reads scan outcome
// counts from the database on each scrape.
type OutcomeCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *OutcomeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- scanOutcomeDesc
}

// Collect queries the database for all scan outcomes and emits them as counters.
func (c *OutcomeCollector) Collect(ch chan<- prometheus.Metric) {
	outcomes, err := c.db.GetAllScanOutcomes(context.Background())
	if err != nil {
		slog.Error("failed to collect scan outcome metrics", "error", err)
		return
	}
	for _, o := range outcomes {
		ch <- prometheus.MustNewConstMetric(
			scanOutcomeDesc,
			prometheus.CounterValue,
			float64(o.Count),
			o.Outcome,
		)
	}
}

// Recorder provides async scan outcome recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(database *db.DB) {
	recorderOnce.Do(func() {
		recorder = &Recorder{db: database}
		prometheus.MustRegister(&OutcomeCollector{db: database})
	})
}

// RecordScanOutcome asynchronously records a scan outcome.
func RecordScanOutcome(outcome string) {
	if recorder == nil {
		return
	}
	go func() {
		if err := recorder.db.IncrementScanOutcome(context.Background(), outcome); err != nil {
			slog.Error("failed to record scan outcome", "outcome", outcome, "error", err)
		}
	}()
}
