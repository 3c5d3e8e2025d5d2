// Package telemetry provides the error-capture collaborator used across the
// onboarding pipeline. Reporting is strictly fire-and-forget: a reporter
// must never panic, block, or otherwise interfere with the user-facing
// response it is called from.
package telemetry

import (
	"go.uber.org/zap"
)

// Reporter receives errors and notable events together with contextual tags
// (stage name, relevant identifiers). Implementations must swallow their own
// failures.
type Reporter interface {
	CaptureError(err error, tags map[string]string)
	Event(name string, tags map[string]string)
}

// zapReporter writes captures to a structured log. It stands in for an
// external error-tracking sink; the call sites do not care which.
type zapReporter struct {
	log *zap.Logger
}

// New returns a Reporter backed by the given zap logger. A nil logger
// degrades to a no-op reporter rather than failing.
func New(log *zap.Logger) Reporter {
	if log == nil {
		return NewNop()
	}
	return &zapReporter{log: log}
}

func (r *zapReporter) CaptureError(err error, tags map[string]string) {
	defer func() { _ = recover() }()
	if err == nil {
		return
	}
	fields := make([]zap.Field, 0, len(tags)+1)
	fields = append(fields, zap.Error(err))
	for k, v := range tags {
		fields = append(fields, zap.String(k, v))
	}
	r.log.Error("captured error", fields...)
}

func (r *zapReporter) Event(name string, tags map[string]string) {
	defer func() { _ = recover() }()
	fields := make([]zap.Field, 0, len(tags))
	for k, v := range tags {
		fields = append(fields, zap.String(k, v))
	}
	r.log.Info("event: "+name, fields...)
}

// nopReporter discards everything. Useful for tests and for components that
// are constructed before logging is available.
type nopReporter struct{}

// NewNop returns a Reporter that discards all captures.
func NewNop() Reporter { return nopReporter{} }

func (nopReporter) CaptureError(error, map[string]string) {}
func (nopReporter) Event(string, map[string]string)       {}
