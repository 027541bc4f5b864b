package metrics

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/armadaproject/bucketcheck/internal/bucketcheck/analyzer"
)

const MetricPrefix = "bucketcheck_"

type Metrics struct {
	registry          *prometheus.Registry
	stringsGenerated  prometheus.Counter
	stringsHashed     *prometheus.CounterVec
	trialsCompleted   *prometheus.CounterVec
	phaseDuration     *prometheus.HistogramVec
	lastTrialOccupied *prometheus.GaugeVec
}

// New creates the benchmark metrics on a fresh registry, so that several runs in one process (e.g. in tests) don't
// collide.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stringsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricPrefix + "strings_generated_total",
			Help: "Number of strings generated across all trials",
		}),
		stringsHashed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPrefix + "strings_hashed_total",
			Help: "Number of strings hashed and assigned to a bucket",
		}, []string{"hasher"}),
		trialsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPrefix + "trials_completed_total",
			Help: "Number of trials that ran to completion",
		}, []string{"hasher", "strategy"}),
		phaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricPrefix + "phase_duration_seconds",
			Help:    "Time taken by each phase of a trial",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		}, []string{"phase"}),
		lastTrialOccupied: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: MetricPrefix + "last_trial_bucket_occupancy",
			Help: "Bucket occupancy statistics of the most recently completed trial",
		}, []string{"hasher", "statistic"}),
	}
	m.registry.MustRegister(
		m.stringsGenerated,
		m.stringsHashed,
		m.trialsCompleted,
		m.phaseDuration,
		m.lastTrialOccupied,
	)
	return m
}

// Registry is where the benchmark metrics, and anything else worth exposing alongside them, are registered.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordGenerated(n int, duration time.Duration) {
	m.stringsGenerated.Add(float64(n))
	m.phaseDuration.WithLabelValues("generate").Observe(duration.Seconds())
}

func (m *Metrics) RecordDistributed(hasher string, n int, duration time.Duration) {
	m.stringsHashed.WithLabelValues(hasher).Add(float64(n))
	m.phaseDuration.WithLabelValues("distribute").Observe(duration.Seconds())
}

func (m *Metrics) RecordTrial(hasher, strategy string, s analyzer.Summary) {
	m.trialsCompleted.WithLabelValues(hasher, strategy).Inc()
	for i, column := range analyzer.Columns {
		m.lastTrialOccupied.WithLabelValues(hasher, column).Set(float64(s.Row()[i]))
	}
}

// ListenAndServe exposes the registry on /metrics at the given port until the returned stop function is called.
func (m *Metrics) ListenAndServe(port uint16, log *logrus.Entry) (func(), error) {
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(int(port)))
	if err != nil {
		return nil, errors.Wrapf(err, "listening for metrics on port %d", port)
	}
	return m.Serve(listener, log), nil
}

// Serve exposes the registry on /metrics through listener until the returned stop function is called.
func (m *Metrics) Serve(listener net.Listener, log *logrus.Entry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server stopped")
		}
	}()
	log.Infof("serving metrics on %s/metrics", listener.Addr())
	return func() {
		_ = srv.Close()
	}
}
