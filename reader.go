package pave

// Reader turns a value found at a location into a typed Result.
//
// Readers are pure: the same (env, loc, value) always yields the same
// Result, so one Reader may be shared by any number of goroutines.
type Reader[T any] interface {
	Read(env Env, loc Location, value Value) Result[T]
}

// ReaderFunc adapts a plain function to the Reader interface.
type ReaderFunc[T any] func(env Env, loc Location, value Value) Result[T]

// Read implements Reader.
func (f ReaderFunc[T]) Read(env Env, loc Location, value Value) Result[T] {
	return f(env, loc, value)
}

// Read runs r on value at Root.
func Read[T any](env Env, r Reader[T], value Value) Result[T] {
	res := r.Read(env, Root, value)
	if f, failed := res.Failure(); failed {
		env.logFailure("read failed", Root, f)
	}
	return res
}

// ReadAt runs r on the value found by path below value. The resolution
// follows the required-field rules: a missing path or a mistyped container
// is a failure.
func ReadAt[T any](env Env, r Reader[T], path Path, value Value) Result[T] {
	return ReadRequired(env, Lookup(path, Root, value), r)
}
