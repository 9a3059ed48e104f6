package typeconv

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/randalmurphal/typeconv/pkg/typeconv/config"
	"github.com/randalmurphal/typeconv/pkg/typeconv/record"
	"github.com/randalmurphal/typeconv/pkg/typeconv/registry"
)

// Point is a coordinate pair with an "x,y" text form.
type Point struct {
	X, Y int
}

func parsePoint(s string) (Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, fmt.Errorf("point %q: missing comma", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Point{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

func formatPoint(p Point) (string, error) {
	return fmt.Sprintf("%d,%d", p.X, p.Y), nil
}

// UnitValue is implemented by physical quantities.
type UnitValue interface {
	Value() float64
	Unit() string
}

type Meters float64

func (m Meters) Value() float64 { return float64(m) }
func (m Meters) Unit() string    { return "m" }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestConverter creates a converter over an empty registry holding recs.
func newTestConverter(recs []*record.Record, opts ...Option) *Converter {
	reg := registry.New(registry.WithLogger(quietLogger()))
	if err := reg.AddAll(context.Background(), recs...); err != nil {
		panic(err)
	}
	return New(reg, append([]Option{WithLogger(quietLogger())}, opts...)...)
}

func lenient() Option {
	s := config.DefaultSettings()
	s.NotFound = config.PolicyDefault
	return WithSettings(s)
}

// recordingMetrics captures conversion outcomes.
type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *recordingMetrics) RecordConversion(_ context.Context, _, _, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *recordingMetrics) RecordRegistration(context.Context, string, error) {}

func (m *recordingMetrics) RecordRegistrySize(context.Context, string, int64) {}

func (m *recordingMetrics) snapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.outcomes...)
}

// recordingSpans captures span starts, events and end errors.
type recordingSpans struct {
	mu      sync.Mutex
	started []string
	events  []string
	ended   []error
}

func (s *recordingSpans) StartConversionSpan(ctx context.Context, from, to string) (context.Context, trace.Span) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = append(s.started, from+" -> "+to)
	return ctx, noop.Span{}
}

func (s *recordingSpans) EndSpanWithError(_ trace.Span, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = append(s.ended, err)
}

func (s *recordingSpans) AddSpanEvent(_ context.Context, name string, _ ...attribute.KeyValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, name)
}
