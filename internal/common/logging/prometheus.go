package logging

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// PrometheusHook implements logrus.Hook, counting log lines by level.
type PrometheusHook struct {
	counter *prometheus.CounterVec
}

// NewPrometheusHook creates the log line counter and registers it with reg.
func NewPrometheusHook(reg prometheus.Registerer, prefix string) (*PrometheusHook, error) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prefix + "log_messages",
		Help: "Total number of log lines logged by level",
	}, []string{"level"})
	if err := reg.Register(counter); err != nil {
		return nil, err
	}
	return &PrometheusHook{counter: counter}, nil
}

func (h *PrometheusHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.DebugLevel,
		logrus.InfoLevel,
		logrus.WarnLevel,
		logrus.ErrorLevel,
	}
}

func (h *PrometheusHook) Fire(entry *logrus.Entry) error {
	h.counter.WithLabelValues(entry.Level.String()).Inc()
	return nil
}
