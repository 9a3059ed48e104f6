package typeconv

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/randalmurphal/typeconv/pkg/typeconv/record"
	"github.com/randalmurphal/typeconv/pkg/typeconv/registry"
)

// Sentinel errors for conversions.
var (
	// ErrConversionNotFound indicates no converter applies to the requested shape.
	ErrConversionNotFound = errors.New("no converter found")

	// ErrAmbiguousConverter indicates several equally ranked converters apply.
	ErrAmbiguousConverter = errors.New("ambiguous converter")

	// ErrConversionInvocation indicates the selected converter failed.
	ErrConversionInvocation = errors.New("converter failed")

	// ErrResultType indicates a converter returned a value not assignable to the target type.
	ErrResultType = errors.New("converter returned wrong type")

	// ErrDuplicateConverter indicates a registration collided with an existing signature.
	ErrDuplicateConverter = registry.ErrDuplicateConverter
)

// ConversionNotFoundError reports a request no converter could serve.
type ConversionNotFoundError struct {
	// From is the source type, nil when the source value was nil.
	From reflect.Type
	// To is the requested target type.
	To reflect.Type
	// Argument is the requested argument type, or nil.
	Argument reflect.Type
}

// Error implements the error interface.
func (e *ConversionNotFoundError) Error() string {
	return fmt.Sprintf("no converter from %s to %s%s",
		record.TypeName(e.From), record.TypeName(e.To), withArgument(e.Argument))
}

// Unwrap returns ErrConversionNotFound for errors.Is support.
func (e *ConversionNotFoundError) Unwrap() error {
	return ErrConversionNotFound
}

// AmbiguousConverterError reports a request several converters could serve
// equally well.
type AmbiguousConverterError struct {
	From     reflect.Type
	To       reflect.Type
	Argument reflect.Type
	// Candidates are the tied records in registration order.
	Candidates []*record.Record
}

// Error implements the error interface.
func (e *AmbiguousConverterError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.String()
	}
	return fmt.Sprintf("ambiguous converter from %s to %s%s: %d candidates [%s]",
		record.TypeName(e.From), record.TypeName(e.To), withArgument(e.Argument),
		len(e.Candidates), strings.Join(names, "; "))
}

// Unwrap returns ErrAmbiguousConverter for errors.Is support.
func (e *AmbiguousConverterError) Unwrap() error {
	return ErrAmbiguousConverter
}

// ConversionInvocationError wraps a failure of the selected converter.
type ConversionInvocationError struct {
	From     reflect.Type
	To       reflect.Type
	Argument reflect.Type
	// Name is the alias of the converter that failed, or "".
	Name string
	// Err is the error returned by the converter.
	Err error
}

// Error implements the error interface.
func (e *ConversionInvocationError) Error() string {
	name := ""
	if e.Name != "" {
		name = " (" + e.Name + ")"
	}
	return fmt.Sprintf("converter %s to %s%s%s failed: %v",
		record.TypeName(e.From), record.TypeName(e.To), withArgument(e.Argument), name, e.Err)
}

// Unwrap returns ErrConversionInvocation and the underlying cause.
func (e *ConversionInvocationError) Unwrap() []error {
	return []error{ErrConversionInvocation, e.Err}
}

func withArgument(t reflect.Type) string {
	if t == nil {
		return ""
	}
	return " with argument " + t.String()
}

// Category classifies conversion errors so callers can branch or log.
type Category int

const (
	// CategoryNotFound means no converter applied.
	CategoryNotFound Category = iota

	// CategoryAmbiguous means the registry holds tied converters.
	// This is a configuration problem and retrying will not help.
	CategoryAmbiguous

	// CategoryInvocation means the converter itself failed.
	CategoryInvocation

	// CategoryDuplicate means a registration collided.
	CategoryDuplicate

	// CategoryCancelled means the context was cancelled or timed out.
	CategoryCancelled

	// CategoryUnknown covers everything else.
	CategoryUnknown
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryNotFound:
		return "not_found"
	case CategoryAmbiguous:
		return "ambiguous"
	case CategoryInvocation:
		return "invocation"
	case CategoryDuplicate:
		return "duplicate"
	case CategoryCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Categorize determines the category of err.
func Categorize(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	// Invocation first: a converter may itself fail with a nested conversion error.
	switch {
	case errors.Is(err, ErrConversionInvocation):
		return CategoryInvocation
	case errors.Is(err, ErrConversionNotFound):
		return CategoryNotFound
	case errors.Is(err, ErrAmbiguousConverter):
		return CategoryAmbiguous
	case errors.Is(err, ErrDuplicateConverter):
		return CategoryDuplicate
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CategoryCancelled
	}
	return CategoryUnknown
}

// IsNotFound reports whether err means no converter applied.
func IsNotFound(err error) bool {
	return Categorize(err) == CategoryNotFound
}

// IsAmbiguous reports whether err means several converters tied.
func IsAmbiguous(err error) bool {
	return Categorize(err) == CategoryAmbiguous
}
