package synapserl

import "github.com/sirupsen/logrus"

// A Sink consumes scalar training metrics as time series
// keyed by tag, with a monotonically increasing step
// index per tag.
type Sink interface {
	Scalar(tag string, value float64, step int)
}

// A LogrusSink emits every metric sample as a structured
// log entry.
type LogrusSink struct {
	// Logger is the destination logger.
	// If nil, the standard logger is used.
	Logger *logrus.Logger
}

// Scalar logs one metric sample.
func (l *LogrusSink) Scalar(tag string, value float64, step int) {
	logger := l.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.WithFields(logrus.Fields{
		"tag":   tag,
		"value": value,
		"step":  step,
	}).Info("metric")
}

// A NopSink discards all metrics.
type NopSink struct{}

// Scalar does nothing.
func (NopSink) Scalar(tag string, value float64, step int) {}
