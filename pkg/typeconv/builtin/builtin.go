// Package builtin provides the converters a registry is seeded with on reset.
package builtin

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/spf13/cast"

	"github.com/randalmurphal/typeconv/pkg/typeconv/numfmt"
	"github.com/randalmurphal/typeconv/pkg/typeconv/record"
)

// Declaring types used to group the built-in records.
type (
	// Numeric declares number <-> string and number <-> number conversions.
	Numeric struct{}
	// Text declares string <-> bool, bytes and Stringer conversions.
	Text struct{}
	// Temporal declares duration conversions.
	Temporal struct{}
)

// Seed returns a registry seed function producing Records(p).
func Seed(p numfmt.Provider) func() []*record.Record {
	return func() []*record.Record {
		return Records(p)
	}
}

// Records returns fresh built-in records using p for numeric text.
// A nil provider selects numfmt.Invariant().
func Records(p numfmt.Provider) []*record.Record {
	if p == nil {
		p = numfmt.Invariant()
	}
	return append(append(numeric(p), text()...), temporal()...)
}

func numeric(p numfmt.Provider) []*record.Record {
	opts := []record.Option{record.DeclaredBy[Numeric](), record.Static()}

	return []*record.Record{
		record.New(func(s string) (int, error) {
			n, err := p.ParseInt(s)
			if err != nil {
				return 0, err
			}
			if n > math.MaxInt || n < math.MinInt {
				return 0, fmt.Errorf("value %d overflows int", n)
			}
			return int(n), nil
		}, opts...),
		record.New(func(v int) (string, error) { return p.FormatInt(int64(v)), nil }, opts...),
		record.New(p.ParseInt, opts...),
		record.New(func(v int64) (string, error) { return p.FormatInt(v), nil }, opts...),
		record.New(p.ParseFloat, opts...),
		record.New(func(v float64) (string, error) { return p.FormatFloat(v), nil }, opts...),

		// Radix variants take the base as argument.
		record.NewWithArg(func(s string, base int) (int, error) {
			n, err := strconv.ParseInt(s, base, 0)
			return int(n), err
		}, opts...),
		record.NewWithArg(func(v int, base int) (string, error) {
			return strconv.FormatInt(int64(v), base), nil
		}, opts...),

		record.New(func(v int) (int64, error) { return int64(v), nil }, opts...),
		record.New(func(v int64) (int, error) {
			if v > math.MaxInt || v < math.MinInt {
				return 0, fmt.Errorf("value %d overflows int", v)
			}
			return int(v), nil
		}, opts...),
		record.New(func(v int) (float64, error) { return float64(v), nil }, opts...),
		record.New(func(v float64) (int, error) {
			// -math.MinInt is the first value past the int range.
			if math.IsNaN(v) || math.IsInf(v, 0) || v < math.MinInt || v >= -math.MinInt {
				return 0, fmt.Errorf("value %v overflows int", v)
			}
			return cast.ToIntE(v)
		}, opts...),
	}
}

func text() []*record.Record {
	opts := []record.Option{record.DeclaredBy[Text](), record.Static()}

	return []*record.Record{
		record.New(func(s string) (bool, error) { return cast.ToBoolE(s) }, opts...),
		record.New(func(b bool) (string, error) { return strconv.FormatBool(b), nil }, opts...),
		record.New(func(s string) ([]byte, error) { return []byte(s), nil }, opts...),
		record.New(func(b []byte) (string, error) { return string(b), nil }, opts...),
		record.New(func(s fmt.Stringer) (string, error) { return cast.ToStringE(s) }, opts...),
	}
}

func temporal() []*record.Record {
	opts := []record.Option{record.DeclaredBy[Temporal](), record.Static()}

	return []*record.Record{
		record.New(time.ParseDuration, opts...),
		record.New(func(d time.Duration) (string, error) { return d.String(), nil }, opts...),
	}
}
