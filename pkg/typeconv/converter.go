package typeconv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/typeconv/pkg/typeconv/builtin"
	"github.com/randalmurphal/typeconv/pkg/typeconv/config"
	"github.com/randalmurphal/typeconv/pkg/typeconv/numfmt"
	"github.com/randalmurphal/typeconv/pkg/typeconv/observability"
	"github.com/randalmurphal/typeconv/pkg/typeconv/record"
	"github.com/randalmurphal/typeconv/pkg/typeconv/registry"
	"github.com/randalmurphal/typeconv/pkg/typeconv/resolve"
)

// Outcomes recorded on the conversion metric.
const (
	outcomeConverted = "converted"
	outcomeIdentity  = "identity"
	outcomeNotFound  = "not_found"
	outcomeAmbiguous = "ambiguous"
	outcomeFailed    = "failed"
)

// Converter resolves and invokes converters from a registry.
// It never mutates the registry and is safe for concurrent use.
type Converter struct {
	reg      *registry.Registry
	engine   *resolve.Engine
	settings config.Settings
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
}

// New creates a Converter over reg. New panics if reg is nil.
func New(reg *registry.Registry, opts ...Option) *Converter {
	if reg == nil {
		panic("typeconv: nil registry")
	}
	c := newConverter(opts)
	c.reg = reg
	return c
}

// NewDefault creates a Converter over a new registry seeded with the
// built-in converters, formatted for settings.Culture. When
// settings.AutoReset is false the registry starts empty and the built-ins
// are only registered by an explicit Reset.
//
// Hosts call NewDefault once at startup to obtain their process-lifetime
// instance.
func NewDefault(settings config.Settings, opts ...Option) (*Converter, error) {
	p, err := numfmt.ForCulture(settings.Culture)
	if err != nil {
		return nil, fmt.Errorf("numeric provider: %w", err)
	}
	c := newConverter(append([]Option{WithSettings(settings)}, opts...))
	c.reg = registry.New(
		registry.WithLogger(c.logger),
		registry.WithMetrics(c.metrics),
		registry.WithSeed(builtin.Seed(p)),
		registry.WithAutoReset(settings.AutoReset),
	)
	return c, nil
}

func newConverter(opts []Option) *Converter {
	c := &Converter{
		engine:   resolve.NewEngine(),
		settings: config.DefaultSettings(),
		logger:   slog.Default(),
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the registry conversions are resolved against.
func (c *Converter) Registry() *registry.Registry { return c.reg }

// Settings returns the conversion policy.
func (c *Converter) Settings() config.Settings { return c.settings }

// CastTo converts v to type to.
//
// When v already has type to, or to is an interface v implements, v is
// returned unchanged. Otherwise the converter is resolved and invoked.
// A missing converter yields a *ConversionNotFoundError and a failing one
// a *ConversionInvocationError;
// under config.PolicyDefault both yield the zero value of to instead.
// Ambiguity always yields an *AmbiguousConverterError.
func (c *Converter) CastTo(ctx context.Context, v any, to reflect.Type, opts ...CallOption) (any, error) {
	out, err := c.convert(ctx, v, to, nil, newCall(opts))
	if err == nil {
		return out, nil
	}
	if c.settings.Lenient() && !errors.Is(err, ErrAmbiguousConverter) {
		return zero(to), nil
	}
	return nil, err
}

// ConvertTo converts v to type to, returning def when no converter
// applies, the converters are ambiguous, or the converter fails.
// def is also handed to converters that accept a result seed.
func (c *Converter) ConvertTo(ctx context.Context, v any, to reflect.Type, def any, opts ...CallOption) any {
	out, err := c.convert(ctx, v, to, def, newCall(opts))
	if err != nil {
		var ambErr *AmbiguousConverterError
		if errors.As(err, &ambErr) {
			observability.LogAmbiguous(c.logger, record.TypeName(ambErr.From), record.TypeName(ambErr.To), len(ambErr.Candidates))
		}
		return def
	}
	return out
}

// TryConvert converts v to type to. It reports false, with the zero value
// of to, on any failure.
func (c *Converter) TryConvert(ctx context.Context, v any, to reflect.Type, opts ...CallOption) (any, bool) {
	out, err := c.convert(ctx, v, to, nil, newCall(opts))
	if err != nil {
		return zero(to), false
	}
	return out, true
}

// CanConvertTo reports whether CastTo would find exactly one converter for
// v's type. Nothing is invoked.
func (c *Converter) CanConvertTo(v any, to reflect.Type, opts ...CallOption) bool {
	return c.CanConvert(reflect.TypeOf(v), to, opts...)
}

// CanConvert reports whether exactly one converter serves from -> to.
func (c *Converter) CanConvert(from, to reflect.Type, opts ...CallOption) bool {
	if from == nil || to == nil {
		return false
	}
	cl := newCall(opts)
	if identity(from, to, cl) {
		return true
	}
	return c.resolve(from, to, cl).Outcome == resolve.Found
}

// Resolve exposes the resolution for from -> to without invoking anything.
func (c *Converter) Resolve(from, to reflect.Type, opts ...CallOption) resolve.Result {
	return c.resolve(from, to, newCall(opts))
}

func (c *Converter) resolve(from, to reflect.Type, cl call) resolve.Result {
	req := resolve.Request{
		From:       from,
		To:         to,
		Name:       cl.alias,
		Assignable: !cl.strict,
	}
	if cl.arg != nil {
		req.Argument = reflect.TypeOf(cl.arg)
	}
	res := c.engine.Resolve(c.reg.Snapshot(), req)
	observability.LogResolution(c.logger, record.TypeName(from), record.TypeName(to), res.Outcome.String(), len(res.Candidates))
	return res
}

// convert resolves and invokes, always reporting failures as errors.
// The public operations apply their fallback policy on top.
func (c *Converter) convert(ctx context.Context, v any, to reflect.Type, seed any, cl call) (out any, err error) {
	from := reflect.TypeOf(v)
	fromName, toName := record.TypeName(from), record.TypeName(to)

	ctx, span := c.spans.StartConversionSpan(ctx, fromName, toName)
	elapsed := observability.TimedOperation()
	outcome := outcomeConverted
	defer func() {
		c.metrics.RecordConversion(ctx, fromName, toName, outcome, elapsed())
		c.spans.EndSpanWithError(span, err)
	}()

	if from == nil || to == nil {
		outcome = outcomeNotFound
		return nil, c.notFound(from, to, cl)
	}
	if identity(from, to, cl) {
		outcome = outcomeIdentity
		return v, nil
	}

	res := c.resolve(from, to, cl)
	switch res.Outcome {
	case resolve.NotFound:
		outcome = outcomeNotFound
		return nil, c.notFound(from, to, cl)
	case resolve.Ambiguous:
		outcome = outcomeAmbiguous
		return nil, &AmbiguousConverterError{
			From:       from,
			To:         to,
			Argument:   argType(cl),
			Candidates: res.Candidates,
		}
	}

	rec := res.Record
	c.spans.AddSpanEvent(ctx, "converter.resolved",
		attribute.String("converter.signature", rec.String()),
		attribute.String("resolve.stage", res.Stage.String()),
	)

	out, err = rec.Invoke(v, seed, cl.arg)
	if err == nil && !assignableResult(out, to) {
		err = fmt.Errorf("%w: want %s, got %T", ErrResultType, to, out)
	}
	if err != nil {
		outcome = outcomeFailed
		logger := observability.EnrichLogger(c.logger, fromName, toName, record.TypeName(rec.Argument()))
		observability.LogInvocationError(logger, rec.String(), err)
		return nil, &ConversionInvocationError{
			From:     from,
			To:       to,
			Argument: rec.Argument(),
			Name:     rec.Name(),
			Err:      err,
		}
	}
	return out, nil
}

func (c *Converter) notFound(from, to reflect.Type, cl call) error {
	return &ConversionNotFoundError{From: from, To: to, Argument: argType(cl)}
}

// identity reports whether the request is satisfied by the value itself:
// the source has the target type, or the target is an interface the source
// implements. A requested argument or alias asks for a specific converter,
// so it disables the shortcut.
func identity(from, to reflect.Type, cl call) bool {
	if cl.arg != nil || cl.alias != "" {
		return false
	}
	return from == to || (to.Kind() == reflect.Interface && from.Implements(to))
}

func argType(cl call) reflect.Type {
	if cl.arg == nil {
		return nil
	}
	return reflect.TypeOf(cl.arg)
}

func assignableResult(out any, to reflect.Type) bool {
	if out == nil {
		switch to.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return true
		}
		return false
	}
	return reflect.TypeOf(out).AssignableTo(to)
}

func zero(t reflect.Type) any {
	if t == nil {
		return nil
	}
	return reflect.Zero(t).Interface()
}
