package record

import (
	"fmt"
	"reflect"
)

// Option configures a Record during construction.
type Option func(*Record)

// WithName sets the alias used to distinguish records sharing a signature.
func WithName(name string) Option {
	return func(r *Record) {
		r.name = name
	}
}

// WithDeclaringType sets the owning type.
func WithDeclaringType(t reflect.Type) Option {
	return func(r *Record) {
		r.declaring = t
	}
}

// DeclaredBy sets the owning type to T.
//
// Example:
//
//	rec := record.New(parsePoint, record.DeclaredBy[Point]())
func DeclaredBy[T any]() Option {
	return WithDeclaringType(reflect.TypeFor[T]())
}

// Static marks the record as declared without a receiver.
func Static() Option {
	return func(r *Record) {
		r.static = true
	}
}

// AllowDisambiguation lets the record coexist with others of the same signature.
func AllowDisambiguation() Option {
	return func(r *Record) {
		r.disambiguates = true
	}
}

// New creates a record converting F to T.
//
// Example:
//
//	rec := record.New(strconv.Atoi)
//
// New panics if fn is nil; the types come from F and T and are never nil.
func New[F, T any](fn func(F) (T, error), opts ...Option) *Record {
	if fn == nil {
		panic(ErrNilFunc)
	}
	r, _ := NewFunc(reflect.TypeFor[F](), reflect.TypeFor[T](), nil, func(src, _, _ any) (any, error) {
		s, err := as[F](src, ErrSourceType)
		if err != nil {
			return nil, err
		}
		return fn(s)
	}, opts...)
	return r
}

// NewWithArg creates a record converting F to T that takes an argument of type A.
func NewWithArg[F, T, A any](fn func(F, A) (T, error), opts ...Option) *Record {
	if fn == nil {
		panic(ErrNilFunc)
	}
	r, _ := NewFunc(reflect.TypeFor[F](), reflect.TypeFor[T](), reflect.TypeFor[A](), func(src, _, arg any) (any, error) {
		s, err := as[F](src, ErrSourceType)
		if err != nil {
			return nil, err
		}
		a, err := as[A](arg, ErrArgumentType)
		if err != nil {
			return nil, err
		}
		return fn(s, a)
	}, opts...)
	return r
}

// NewWithResult creates a record converting F to T whose function also
// receives the caller's default/result seed. The seed is the zero T when
// the caller supplies none.
func NewWithResult[F, T any](fn func(F, T) (T, error), opts ...Option) *Record {
	if fn == nil {
		panic(ErrNilFunc)
	}
	r, _ := NewFunc(reflect.TypeFor[F](), reflect.TypeFor[T](), nil, func(src, result, _ any) (any, error) {
		s, err := as[F](src, ErrSourceType)
		if err != nil {
			return nil, err
		}
		seed, _ := result.(T)
		return fn(s, seed)
	}, opts...)
	return r
}

// as asserts v to T. A nil v yields the zero T.
func as[T any](v any, mismatch error) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: want %s, got %T", mismatch, reflect.TypeFor[T](), v)
	}
	return t, nil
}
