// Package metrics exposes counting and bench activity as Prometheus metrics.
// Collectors live on a private registry so tests and multiple commands in
// one process never collide on the default registry.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder records scans and bench runs.
type Recorder struct {
	registry *prometheus.Registry

	scans         *prometheus.CounterVec
	scanDuration  *prometheus.HistogramVec
	scannedBytes  *prometheus.CounterVec
	matches       *prometheus.CounterVec
	benchAverage  *prometheus.GaugeVec
	automatonSize prometheus.Gauge
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		scans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kwcount_scans_total",
				Help: "Total number of texts counted",
			},
			[]string{"strategy"},
		),
		scanDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kwcount_scan_duration_seconds",
				Help:    "Duration of one counting pass in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 100µs to ~3s
			},
			[]string{"strategy"},
		),
		scannedBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kwcount_scanned_bytes_total",
				Help: "Total bytes of text counted",
			},
			[]string{"strategy"},
		),
		matches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kwcount_matches_total",
				Help: "Total keyword occurrences found",
			},
			[]string{"strategy"},
		),
		benchAverage: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kwcount_bench_average_seconds",
				Help: "Average run time of the latest bench per strategy",
			},
			[]string{"strategy"},
		),
		automatonSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "kwcount_automaton_nodes",
				Help: "Node count of the most recently built automaton",
			},
		),
	}
	r.registry.MustRegister(r.scans, r.scanDuration, r.scannedBytes, r.matches, r.benchAverage, r.automatonSize)
	return r
}

// ObserveScan records one counting pass.
func (r *Recorder) ObserveScan(strategy string, textBytes, matches int, d time.Duration) {
	r.scans.WithLabelValues(strategy).Inc()
	r.scanDuration.WithLabelValues(strategy).Observe(d.Seconds())
	r.scannedBytes.WithLabelValues(strategy).Add(float64(textBytes))
	r.matches.WithLabelValues(strategy).Add(float64(matches))
}

// ObserveBench records the average of one strategy in a bench run.
func (r *Recorder) ObserveBench(strategy string, avg time.Duration) {
	r.benchAverage.WithLabelValues(strategy).Set(avg.Seconds())
}

// SetAutomatonNodes records the size of the latest automaton.
func (r *Recorder) SetAutomatonNodes(n int) {
	r.automatonSize.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
