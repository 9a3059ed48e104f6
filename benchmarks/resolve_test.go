package benchmarks

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"github.com/randalmurphal/typeconv/pkg/typeconv"
	"github.com/randalmurphal/typeconv/pkg/typeconv/config"
	"github.com/randalmurphal/typeconv/pkg/typeconv/record"
	"github.com/randalmurphal/typeconv/pkg/typeconv/resolve"
)

// UnitValue is implemented by the benchmark quantity types.
type UnitValue interface{ Value() float64 }

type Meters float64

func (m Meters) Value() float64 { return float64(m) }

func newConverter(b *testing.B) *typeconv.Converter {
	b.Helper()
	c, err := typeconv.NewDefault(config.DefaultSettings(), typeconv.WithLogger(nil))
	if err != nil {
		b.Fatal(err)
	}
	err = c.Registry().Add(context.Background(), record.New(func(s string) (Meters, error) {
		f, err := strconv.ParseFloat(s, 64)
		return Meters(f), err
	}))
	if err != nil {
		b.Fatal(err)
	}
	return c
}

// BenchmarkCastTo_Exact measures a cached exact resolution plus invocation.
func BenchmarkCastTo_Exact(b *testing.B) {
	c := newConverter(b)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = typeconv.CastTo[int](ctx, c, "42")
	}
}

// BenchmarkCastTo_Assignable measures an interface-target conversion.
func BenchmarkCastTo_Assignable(b *testing.B) {
	c := newConverter(b)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = typeconv.CastTo[UnitValue](ctx, c, "1.5")
	}
}

// BenchmarkCastTo_Identity measures the same-type shortcut.
func BenchmarkCastTo_Identity(b *testing.B) {
	c := newConverter(b)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = typeconv.CastTo[int](ctx, c, 42)
	}
}

// BenchmarkCastTo_Parallel measures concurrent conversions.
func BenchmarkCastTo_Parallel(b *testing.B) {
	c := newConverter(b)
	ctx := context.Background()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = typeconv.CastTo[int](ctx, c, "42")
		}
	})
}

// BenchmarkResolve_Uncached measures the staged search without the engine cache.
func BenchmarkResolve_Uncached(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("records=%d", n), func(b *testing.B) {
			c := newConverter(b)
			ctx := context.Background()
			for i := range n {
				rec := record.New(func(s string) (Meters, error) { return 0, nil }, record.WithName("v"+strconv.Itoa(i)))
				if err := c.Registry().Add(ctx, rec); err != nil {
					b.Fatal(err)
				}
			}
			snap := c.Registry().Snapshot()
			req := resolve.Request{
				From:       reflect.TypeFor[string](),
				To:         reflect.TypeFor[UnitValue](),
				Assignable: true,
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = resolve.Resolve(snap, req)
			}
		})
	}
}
