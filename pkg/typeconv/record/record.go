// Package record defines the immutable descriptor of one registered conversion.
package record

import (
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"

	"github.com/google/uuid"
)

// Sentinel errors for record construction and invocation.
var (
	// ErrNilType indicates a From or To type was not provided.
	ErrNilType = errors.New("record: nil type")

	// ErrNilFunc indicates the conversion function was not provided.
	ErrNilFunc = errors.New("record: nil conversion function")

	// ErrSourceType indicates the source value does not have the record's From type.
	ErrSourceType = errors.New("record: source value has wrong type")

	// ErrArgumentType indicates the argument value does not have the record's Argument type.
	ErrArgumentType = errors.New("record: argument value has wrong type")
)

// Func is the untyped form of a conversion. It receives the source value,
// the caller's default/result seed (may be nil) and the argument (may be nil).
type Func func(src, result, arg any) (any, error)

// Key identifies the (From, To) pair a record converts between.
// The registry indexes records by Key.
type Key struct {
	From reflect.Type
	To   reflect.Type
}

// Signature is the uniqueness tuple of a record within a registry.
type Signature struct {
	From     reflect.Type
	To       reflect.Type
	Argument reflect.Type
	Name     string
}

// String renders the signature for error messages.
func (s Signature) String() string {
	out := TypeName(s.From) + " -> " + TypeName(s.To)
	if s.Argument != nil {
		out += " [" + TypeName(s.Argument) + "]"
	}
	if s.Name != "" {
		out += " (" + s.Name + ")"
	}
	return out
}

// Record describes one conversion capability. Records are created once
// and never modified; all fields are exposed through accessors.
type Record struct {
	id            uuid.UUID
	from          reflect.Type
	to            reflect.Type
	arg           reflect.Type
	fn            Func
	declaring     reflect.Type
	static        bool
	disambiguates bool
	name          string
}

// NewFunc creates a record from an untyped function.
// This is the entry point for discovery code that only knows types at runtime.
// arg may be nil when the conversion takes no argument.
func NewFunc(from, to, arg reflect.Type, fn Func, opts ...Option) (*Record, error) {
	if from == nil || to == nil {
		return nil, ErrNilType
	}
	if fn == nil {
		return nil, ErrNilFunc
	}
	r := &Record{
		id:   uuid.New(),
		from: from,
		to:   to,
		arg:  arg,
		fn:   fn,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ID returns the unique identifier assigned at construction.
func (r *Record) ID() uuid.UUID { return r.id }

// From returns the source type.
func (r *Record) From() reflect.Type { return r.from }

// To returns the target type.
func (r *Record) To() reflect.Type { return r.to }

// Argument returns the argument type, or nil if the conversion takes none.
func (r *Record) Argument() reflect.Type { return r.arg }

// Func returns the conversion function.
func (r *Record) Func() Func { return r.fn }

// DeclaringType returns the owning type, or nil.
func (r *Record) DeclaringType() reflect.Type { return r.declaring }

// IsStatic reports whether the conversion was declared without a receiver.
func (r *Record) IsStatic() bool { return r.static }

// AllowsDisambiguation reports whether records with the same signature may coexist.
func (r *Record) AllowsDisambiguation() bool { return r.disambiguates }

// Name returns the alias, or "".
func (r *Record) Name() string { return r.name }

// Key returns the (From, To) index key.
func (r *Record) Key() Key { return Key{From: r.from, To: r.to} }

// Signature returns the uniqueness tuple.
func (r *Record) Signature() Signature {
	return Signature{From: r.from, To: r.to, Argument: r.arg, Name: r.name}
}

// String implements fmt.Stringer.
func (r *Record) String() string {
	return r.Signature().String()
}

// Invoke calls the conversion function. A panic inside the function is
// recovered and returned as a *PanicError.
func (r *Record) Invoke(src, result, arg any) (out any, err error) {
	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = &PanicError{
				Signature: r.Signature(),
				Value:     p,
				Stack:     string(debug.Stack()),
			}
		}
	}()
	return r.fn(src, result, arg)
}

// PanicError captures a panic raised by a conversion function.
type PanicError struct {
	// Signature identifies the record whose function panicked.
	Signature Signature
	// Value is the value passed to panic().
	Value any
	// Stack is the stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("converter %s panicked: %v", e.Signature, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// TypeName returns a printable name for t, or "<none>" for nil.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<none>"
	}
	return t.String()
}
