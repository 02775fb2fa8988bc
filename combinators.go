package pave

import "sync"

// Map transforms the value of every successful read.
func Map[T, U any](r Reader[T], f func(T) U) Reader[U] {
	return ReaderFunc[U](func(env Env, loc Location, value Value) Result[U] {
		return MapResult(r.Read(env, loc, value), f)
	})
}

// Bind sequences f after every successful read of r. f receives the
// location of the success and may fail.
func Bind[T, U any](r Reader[T], f func(env Env, loc Location, value T) Result[U]) Reader[U] {
	return ReaderFunc[U](func(env Env, loc Location, value Value) Result[U] {
		return BindResult(r.Read(env, loc, value), func(l Location, v T) Result[U] {
			return f(env, l, v)
		})
	})
}

// Or tries readers left to right and returns the first success. Readers
// after a success are never invoked. When all fail, their causes are
// reported together in order.
func Or[T any](left, right Reader[T], more ...Reader[T]) Reader[T] {
	alternatives := append([]Reader[T]{left, right}, more...)
	return ReaderFunc[T](func(env Env, loc Location, value Value) Result[T] {
		res := alternatives[0].Read(env, loc, value)
		for _, alt := range alternatives[1:] {
			res = res.OrElse(func() Result[T] {
				return alt.Read(env, loc, value)
			})
		}
		return res
	})
}

// Recover replaces failures of r by the result of f.
func Recover[T any](r Reader[T], f func(env Env, failure Failure) Result[T]) Reader[T] {
	return ReaderFunc[T](func(env Env, loc Location, value Value) Result[T] {
		return r.Read(env, loc, value).Recover(func(failure Failure) Result[T] {
			return f(env, failure)
		})
	})
}

// Filter turns non-nil values rejected by pred into nil. It never fails.
func Filter[T any](r Reader[*T], pred func(env Env, value T) bool) Reader[*T] {
	return ReaderFunc[*T](func(env Env, loc Location, value Value) Result[*T] {
		return FilterResult(env, r.Read(env, loc, value), pred)
	})
}

// Validate runs validators on every successful read of r.
func Validate[T any](r Reader[T], validators ...Validator[T]) Reader[T] {
	validator := AllOf(validators...)
	return ReaderFunc[T](func(env Env, loc Location, value Value) Result[T] {
		return ValidateResult(env, r.Read(env, loc, value), validator)
	})
}

// IfNullValue reads an explicit null as the value returned by supplier.
// Every other input goes to r unchanged.
func IfNullValue[T any](r Reader[T], supplier func() T) Reader[T] {
	return ReaderFunc[T](func(env Env, loc Location, value Value) Result[T] {
		if KindOf(value) == NullKind {
			return Success(loc, supplier())
		}
		return r.Read(env, loc, value)
	})
}

// Nullable reads an explicit null as nil instead of handing it to r.
func Nullable[T any](r Reader[T]) Reader[*T] {
	return ReaderFunc[*T](func(env Env, loc Location, value Value) Result[*T] {
		if KindOf(value) == NullKind {
			return Success[*T](loc, nil)
		}
		return MapResult(r.Read(env, loc, value), func(v T) *T { return &v })
	})
}

// Catching converts panics raised by r into failures when the Env has a
// PanicHandler. Without one the panic propagates to the caller.
func Catching[T any](r Reader[T]) Reader[T] {
	return ReaderFunc[T](func(env Env, loc Location, value Value) Result[T] {
		return WithCatching(env, loc, func() Result[T] {
			return r.Read(env, loc, value)
		})
	})
}

// Lazy defers building a reader until its first use. It allows recursive
// readers, e.g. a tree node whose children are tree nodes.
func Lazy[T any](build func() Reader[T]) Reader[T] {
	var (
		once sync.Once
		r    Reader[T]
	)
	return ReaderFunc[T](func(env Env, loc Location, value Value) Result[T] {
		once.Do(func() { r = build() })
		return r.Read(env, loc, value)
	})
}

// AsAny widens a reader's result to any, e.g. to mix kinds in prefix items.
func AsAny[T any](r Reader[T]) Reader[any] {
	return Map(r, func(v T) any { return v })
}
