package typeconv

import (
	"context"
	"reflect"
)

// CastTo converts v to T using c. See Converter.CastTo.
//
// Example:
//
//	n, err := typeconv.CastTo[int](ctx, conv, "42")
func CastTo[T any](ctx context.Context, c *Converter, v any, opts ...CallOption) (T, error) {
	var zero T
	out, err := c.CastTo(ctx, v, reflect.TypeFor[T](), opts...)
	if err != nil {
		return zero, err
	}
	t, ok := out.(T)
	if !ok {
		return zero, nil
	}
	return t, nil
}

// ConvertTo converts v to T using c, returning def on any failure.
func ConvertTo[T any](ctx context.Context, c *Converter, v any, def T, opts ...CallOption) T {
	out := c.ConvertTo(ctx, v, reflect.TypeFor[T](), def, opts...)
	t, ok := out.(T)
	if !ok {
		return def
	}
	return t
}

// TryConvert converts v to T using c, reporting false on any failure.
func TryConvert[T any](ctx context.Context, c *Converter, v any, opts ...CallOption) (T, bool) {
	var zero T
	out, ok := c.TryConvert(ctx, v, reflect.TypeFor[T](), opts...)
	if !ok {
		return zero, false
	}
	t, ok := out.(T)
	if !ok {
		return zero, out == nil
	}
	return t, true
}

// CanConvert reports whether c resolves exactly one converter from F to T.
func CanConvert[F, T any](c *Converter, opts ...CallOption) bool {
	return c.CanConvert(reflect.TypeFor[F](), reflect.TypeFor[T](), opts...)
}
