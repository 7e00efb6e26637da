package gimgen

import (
	"log/slog"

	"github.com/hashicorp/go-metrics"
)

// Metric keys emitted by coroutines and signals.
var (
	MetricCoroutineStarted = []string{"gimgen", "coroutine", "started"}
	MetricCoroutineResumed = []string{"gimgen", "coroutine", "resumed"}
	MetricCoroutineDone    = []string{"gimgen", "coroutine", "done"}
	MetricCoroutineFailed  = []string{"gimgen", "coroutine", "failed"}
	MetricSignalTriggered  = []string{"gimgen", "signal", "triggered"}
	MetricInvocationCount  = []string{"gimgen", "invocation", "count"}
)

// TelemetryLabel is the name of a label attached to metrics and log records.
type TelemetryLabel string

var (
	LabelCoroutine TelemetryLabel = "coroutine"
	LabelSignal    TelemetryLabel = "signal"
	LabelState     TelemetryLabel = "state"
	LabelError     TelemetryLabel = "error"
)

// M returns a metric label.
func (lab TelemetryLabel) M(val string) metrics.Label {
	return metrics.Label{Name: string(lab), Value: val}
}

// L returns a log attribute.
func (lab TelemetryLabel) L(val any) slog.Attr {
	return slog.Attr{
		Key:   string(lab),
		Value: slog.AnyValue(val),
	}
}
