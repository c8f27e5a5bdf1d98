package poller

import (
	"context"
	"time"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/KonishchevDmitry/diskstats-metrics/internal/metrics"
)

var pollDurationMetric = prometheus.NewHistogram(prometheus.HistogramOpts{
	Namespace: metrics.Namespace,
	Subsystem: "diskstats",
	Name:      "poll_duration_seconds",
	Help:      "Time spent on a /proc/diskstats poll.",
	Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
})

var pollFailuresMetric = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: metrics.Namespace,
	Subsystem: "diskstats",
	Name:      "poll_failures",
	Help:      "Number of failed /proc/diskstats polls.",
})

func init() {
	prometheus.MustRegister(pollDurationMetric)
	prometheus.MustRegister(pollFailuresMetric)
}

type PollFunc func(ctx context.Context) error

// Run polls immediately and then on every interval tick until the context is cancelled. Polls never overlap: a
// tick which comes during a slow poll is dropped. A failed poll is logged and doesn't stop the loop.
func Run(ctx context.Context, interval time.Duration, poll PollFunc) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		runPoll(ctx, poll)
		if ctx.Err() != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func runPoll(ctx context.Context, poll PollFunc) {
	startTime := time.Now()
	defer func() {
		pollDurationMetric.Observe(time.Since(startTime).Seconds())
	}()

	if err := poll(ctx); err != nil {
		pollFailuresMetric.Inc()
		logging.L(ctx).Errorf("Failed to poll disk statistics: %s.", err)
	}
}
