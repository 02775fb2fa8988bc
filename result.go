package pave

import "fmt"

// Result is the outcome of a read: a success carrying the value and the
// location it was read from, or a Failure.
//
// The zero Result is not meaningful; build results with Success and Fail.
type Result[T any] struct {
	loc     Location
	value   T
	failure Failure
	ok      bool
}

// Success returns a successful result at loc.
func Success[T any](loc Location, value T) Result[T] {
	return Result[T]{loc: loc, value: value, ok: true}
}

// Fail returns a failed result.
func Fail[T any](f Failure) Result[T] {
	return Result[T]{failure: f}
}

// FailAt returns a one-cause failed result at loc.
func FailAt[T any](loc Location, err error, more ...error) Result[T] {
	return Fail[T](NewFailure(loc, err, more...))
}

// IsSuccess reports whether r holds a value.
func (r Result[T]) IsSuccess() bool { return r.ok }

// IsFailure reports whether r holds a Failure.
func (r Result[T]) IsFailure() bool { return !r.ok }

// Location returns the location of a success. It is Root for failures.
func (r Result[T]) Location() Location { return r.loc }

// Value returns the value and true on success.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.ok
}

// Failure returns the failure and true on failure.
func (r Result[T]) Failure() (Failure, bool) {
	return r.failure, !r.ok
}

// Get returns the value, or the Failure as an error.
func (r Result[T]) Get() (T, error) {
	if !r.ok {
		var zero T
		return zero, r.failure
	}
	return r.value, nil
}

// MustGet returns the value and panics on failure.
func (r Result[T]) MustGet() T {
	if !r.ok {
		panic(fmt.Sprintf("pave: MustGet on failed result: %v", r.failure))
	}
	return r.value
}

// GetOrElse returns the value, or def on failure.
func (r Result[T]) GetOrElse(def T) T {
	if !r.ok {
		return def
	}
	return r.value
}

// GetOrZero returns the value, or the zero value of T on failure.
func (r Result[T]) GetOrZero() T {
	var zero T
	return r.GetOrElse(zero)
}

// Recover replaces a failure by the result of f. Successes are returned
// unchanged and f is not called.
func (r Result[T]) Recover(f func(Failure) Result[T]) Result[T] {
	if r.ok {
		return r
	}
	return f(r.failure)
}

// OrElse returns r if it succeeded. Otherwise it evaluates alt; if that also
// fails the causes of both failures are reported together, r's first.
func (r Result[T]) OrElse(alt func() Result[T]) Result[T] {
	if r.ok {
		return r
	}
	other := alt()
	if other.ok {
		return other
	}
	return Fail[T](r.failure.Merge(other.failure))
}

// Fold collapses r into a single value.
func Fold[T, R any](r Result[T], onSuccess func(Location, T) R, onFailure func(Failure) R) R {
	if r.ok {
		return onSuccess(r.loc, r.value)
	}
	return onFailure(r.failure)
}

// MapResult transforms the value of a success.
func MapResult[T, U any](r Result[T], f func(T) U) Result[U] {
	if !r.ok {
		return Fail[U](r.failure)
	}
	return Success(r.loc, f(r.value))
}

// BindResult sequences f after a success. Failures short-circuit.
func BindResult[T, U any](r Result[T], f func(Location, T) Result[U]) Result[U] {
	if !r.ok {
		return Fail[U](r.failure)
	}
	return f(r.loc, r.value)
}

// FilterResult keeps a non-nil success value only if pred holds, replacing
// it by nil otherwise. Nil values and failures do not reach pred.
func FilterResult[T any](env Env, r Result[*T], pred func(Env, T) bool) Result[*T] {
	if !r.ok || r.value == nil {
		return r
	}
	if pred(env, *r.value) {
		return r
	}
	return Success[*T](r.loc, nil)
}

// ValidateResult runs validator on a success. A non-nil error replaces the
// result by a Failure; failures never reach the validator.
func ValidateResult[T any](env Env, r Result[T], validator Validator[T]) Result[T] {
	if !r.ok {
		return r
	}
	if err := validator(env, r.loc, r.value); err != nil {
		return Fail[T](failureFromError(r.loc, err))
	}
	return r
}

// WithCatching runs block and turns a panic into a one-cause Failure at loc
// when env has a PanicHandler. Without a handler the panic propagates.
func WithCatching[T any](env Env, loc Location, block func() Result[T]) (res Result[T]) {
	if env.panicHandler == nil {
		return block()
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			err := env.panicHandler(loc, recovered)
			env.log().Warn("recovered panic during read",
				"location", loc.String(),
				"panic", fmt.Sprint(recovered),
			)
			res = FailAt[T](loc, err)
		}
	}()
	return block()
}

func failureFromError(loc Location, err error) Failure {
	switch f := err.(type) {
	case Failure:
		if f.Len() > 0 {
			return f
		}
	case *Failure:
		if f != nil && f.Len() > 0 {
			return *f
		}
	}
	return NewFailure(loc, err)
}
