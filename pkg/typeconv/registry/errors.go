package registry

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/typeconv/pkg/typeconv/record"
)

// Sentinel errors for registry operations.
var (
	// ErrDuplicateConverter indicates a record with the same signature is already registered.
	ErrDuplicateConverter = errors.New("duplicate converter")

	// ErrNilRecord indicates Add was called with a nil record.
	ErrNilRecord = errors.New("nil converter record")
)

// DuplicateConverterError reports a rejected registration.
type DuplicateConverterError struct {
	// Signature is the colliding (From, To, Argument, Name) tuple.
	Signature record.Signature
	// Existing is the record already holding the signature.
	Existing *record.Record
}

// Error implements the error interface.
func (e *DuplicateConverterError) Error() string {
	return fmt.Sprintf("duplicate converter %s", e.Signature)
}

// Unwrap returns ErrDuplicateConverter for errors.Is support.
func (e *DuplicateConverterError) Unwrap() error {
	return ErrDuplicateConverter
}
