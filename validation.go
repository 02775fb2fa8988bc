package pave

import "fmt"

///////////////////////////////////////////////////////////////////////////////
// Validator contract
///////////////////////////////////////////////////////////////////////////////

// Validator checks a successfully read value. It returns nil when the value
// is valid.
//
// A returned Failure is reported as is, keeping the validator's own
// locations. Any other error is reported at loc.
type Validator[T any] func(env Env, loc Location, value T) error

// Validatable marks a type that checks itself once every field has been
// read. Struct readers call Validate on *T after their own validators pass.
type Validatable interface {
	// Validate returns an error if the populated value is invalid.
	Validate() error
}

// ValidatorFunc lifts a plain predicate-style check into a Validator.
func ValidatorFunc[T any](check func(T) error) Validator[T] {
	return func(_ Env, _ Location, value T) error {
		return check(value)
	}
}

// AllOf runs every validator in order and reports their errors together.
// Under fail-fast it stops at the first invalid result.
func AllOf[T any](validators ...Validator[T]) Validator[T] {
	return func(env Env, loc Location, value T) error {
		var acc failureBuilder
		for _, v := range validators {
			err := v(env, loc, value)
			if err == nil {
				continue
			}
			f := failureFromError(loc, err)
			if env.FailFast() {
				return f
			}
			acc.add(f)
		}
		if !acc.failed() {
			return nil
		}
		return acc.failure()
	}
}

///////////////////////////////////////////////////////////////////////////////
// Array arity
///////////////////////////////////////////////////////////////////////////////

// MinItems rejects arrays with fewer than n elements.
func MinItems(n int) Validator[ArrayValue] {
	return func(_ Env, _ Location, arr ArrayValue) error {
		if len(arr) < n {
			return &ValidationError{
				Rule:   "minItems",
				Reason: fmt.Sprintf("expected at least %d items, got %d", n, len(arr)),
			}
		}
		return nil
	}
}

// MaxItems rejects arrays with more than n elements.
func MaxItems(n int) Validator[ArrayValue] {
	return func(_ Env, _ Location, arr ArrayValue) error {
		if len(arr) > n {
			return &ValidationError{
				Rule:   "maxItems",
				Reason: fmt.Sprintf("expected at most %d items, got %d", n, len(arr)),
			}
		}
		return nil
	}
}
