package typeconv

import (
	"log/slog"

	"github.com/randalmurphal/typeconv/pkg/typeconv/config"
	"github.com/randalmurphal/typeconv/pkg/typeconv/observability"
)

// Option configures a Converter.
type Option func(*Converter)

// WithSettings sets the conversion policy.
// Default: config.DefaultSettings()
func WithSettings(s config.Settings) Option {
	return func(c *Converter) {
		c.settings = s
	}
}

// WithLogger sets the logger. A nil logger disables logging.
// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics{}
//
// Example:
//
//	conv := typeconv.New(reg, typeconv.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *Converter) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager enables tracing of conversions.
// Default: observability.NoopSpanManager{}
func WithSpanManager(s observability.SpanManager) Option {
	return func(c *Converter) {
		if s != nil {
			c.spans = s
		}
	}
}

// CallOption configures a single conversion.
type CallOption func(*call)

type call struct {
	arg    any
	alias  string
	strict bool
}

func newCall(opts []CallOption) call {
	var cl call
	for _, opt := range opts {
		opt(&cl)
	}
	return cl
}

// WithArgument passes arg to the converter. Converters whose argument type
// equals arg's dynamic type outrank argument-less converters.
func WithArgument(arg any) CallOption {
	return func(cl *call) {
		cl.arg = arg
	}
}

// WithAlias selects converters registered under name.
func WithAlias(name string) CallOption {
	return func(cl *call) {
		cl.alias = name
	}
}

// WithStrictTypes disables assignable matching: only converters whose
// From and To equal the requested types are considered.
func WithStrictTypes() CallOption {
	return func(cl *call) {
		cl.strict = true
	}
}
