package pave

import (
	"errors"
	"fmt"
)

///////////////////////////////////////////////////////////////////////////////
// Error builder capabilities
///////////////////////////////////////////////////////////////////////////////

// ErrorBuilder is the capability an Env uses to construct every error the
// core reports. Applications plug in their own builder to control the
// payload of errors; DefaultErrors is used otherwise.
type ErrorBuilder interface {
	// PathMissing builds the error for an absent required value.
	PathMissing() error
	// InvalidType builds the error for a value of an unexpected kind.
	InvalidType(expected []Kind, actual Kind) error
	// AdditionalItems builds the error for an array element beyond the
	// declared prefix readers.
	AdditionalItems(index int) error
}

// DepthErrorBuilder is an optional ErrorBuilder upgrade used when a read
// exceeds the Env's maximum nesting depth.
type DepthErrorBuilder interface {
	DepthExceeded(maxDepth int) error
}

// ConversionErrorBuilder is an optional ErrorBuilder upgrade used when a leaf
// of the right kind cannot be converted to the requested Go type, e.g. a
// fractional number read as an int.
type ConversionErrorBuilder interface {
	Conversion(target string, cause error) error
}

///////////////////////////////////////////////////////////////////////////////
// Default errors
///////////////////////////////////////////////////////////////////////////////

var (
	ErrPathMissing     = errors.New("path missing")
	ErrInvalidType     = errors.New("invalid type")
	ErrAdditionalItems = errors.New("additional items are not allowed")
	ErrDepthExceeded   = errors.New("maximum nesting depth exceeded")
	ErrConversion      = errors.New("conversion failed")
	ErrValidation      = errors.New("validation failed")
)

// PathMissingError is the default path-missing error.
type PathMissingError struct{}

func (*PathMissingError) Error() string        { return ErrPathMissing.Error() }
func (*PathMissingError) Is(target error) bool { return target == ErrPathMissing }

// InvalidTypeError is the default invalid-type error.
type InvalidTypeError struct {
	Expected []Kind
	Actual   Kind
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", ErrInvalidType, FormatKinds(e.Expected), e.Actual)
}

func (*InvalidTypeError) Is(target error) bool { return target == ErrInvalidType }

// AdditionalItemsError is the default additional-items error.
type AdditionalItemsError struct {
	Index int
}

func (e *AdditionalItemsError) Error() string {
	return fmt.Sprintf("%s: item %d", ErrAdditionalItems, e.Index)
}

func (*AdditionalItemsError) Is(target error) bool { return target == ErrAdditionalItems }

// DepthError is the default depth error.
type DepthError struct {
	MaxDepth int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("%s: limit %d", ErrDepthExceeded, e.MaxDepth)
}

func (*DepthError) Is(target error) bool { return target == ErrDepthExceeded }

// ConversionError is the default conversion error.
type ConversionError struct {
	Target string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: to %s: %v", ErrConversion, e.Target, e.Err)
}

func (e *ConversionError) Unwrap() error      { return e.Err }
func (*ConversionError) Is(target error) bool { return target == ErrConversion }

// ValidationError is the error returned by the validators this package ships.
type ValidationError struct {
	Rule   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Rule, e.Reason)
}

func (*ValidationError) Is(target error) bool { return target == ErrValidation }

type defaultErrors struct{}

// DefaultErrors builds the error types declared in this file.
var DefaultErrors ErrorBuilder = defaultErrors{}

func (defaultErrors) PathMissing() error { return &PathMissingError{} }

func (defaultErrors) InvalidType(expected []Kind, actual Kind) error {
	return &InvalidTypeError{Expected: append([]Kind(nil), expected...), Actual: actual}
}

func (defaultErrors) AdditionalItems(index int) error {
	return &AdditionalItemsError{Index: index}
}

func (defaultErrors) DepthExceeded(maxDepth int) error {
	return &DepthError{MaxDepth: maxDepth}
}

func (defaultErrors) Conversion(target string, cause error) error {
	return &ConversionError{Target: target, Err: cause}
}
