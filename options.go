package gimgen

import (
	"log/slog"
	"sync/atomic"

	"github.com/hashicorp/go-metrics"
)

type options struct {
	name         string
	logger       *slog.Logger
	metricSink   metrics.MetricSink
	metricLabels []metrics.Label
}

// Option configures a [Coroutine] when passed to [NewWithOptions],
// [RunWithOptions] or [InvokableWithOptions].
type Option func(*options)

// WithName names the coroutine. The name shows up in log records and as the
// value of the "coroutine" metric label.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger specifies which logger the coroutine reports to.
// A nil logger falls back to the package logger (see [SetLogger]).
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetricSink specifies where the coroutine emits its metrics.
func WithMetricSink(ms metrics.MetricSink) Option {
	return func(o *options) {
		if ms == nil {
			ms = &metrics.BlackholeSink{}
		}
		o.metricSink = ms
	}
}

// WithMetricLabels adds static labels to all metrics produced by the
// coroutine.
func WithMetricLabels(labels []metrics.Label) Option {
	return func(o *options) {
		o.metricLabels = append(o.metricLabels, labels...)
	}
}

func buildOptions(opts []Option) options {
	o := options{name: "gimgen"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// log returns the logger given with WithLogger, or the package logger
// at the time of the call.
func (o *options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return packageLogger()
}

func (o *options) sink() metrics.MetricSink {
	if o.metricSink != nil {
		return o.metricSink
	}
	return packageMetricSink()
}

var (
	loggerSlot     atomic.Pointer[slog.Logger]
	metricSinkSlot atomic.Pointer[metrics.MetricSink]
)

// SetLogger replaces the package logger, which is used by coroutines that
// are not given one with [WithLogger].
// Passing nil restores the default, which is [slog.Default].
func SetLogger(logger *slog.Logger) {
	loggerSlot.Store(logger)
}

func packageLogger() *slog.Logger {
	if l := loggerSlot.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// SetMetricSink replaces the package metric sink, which is used by
// coroutines that are not given one with [WithMetricSink].
// Passing nil restores the default, which is [metrics.Default].
func SetMetricSink(ms metrics.MetricSink) {
	if ms == nil {
		metricSinkSlot.Store(nil)
		return
	}
	metricSinkSlot.Store(&ms)
}

func packageMetricSink() metrics.MetricSink {
	if p := metricSinkSlot.Load(); p != nil {
		return *p
	}
	return metrics.Default()
}
