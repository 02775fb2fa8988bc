package pave

import "fmt"

// ReadRequired reads a looked-up value that must be present.
//
// A Defined lookup is handed to r. PathMissing and InvalidType become
// failures at the lookup's location.
func ReadRequired[T any](env Env, lookup LookupResult, r Reader[T]) Result[T] {
	switch l := lookup.(type) {
	case Defined:
		return r.Read(env, l.Loc, l.Value)
	case PathMissing:
		return Fail[T](env.pathMissing(l.Loc))
	case InvalidType:
		return Fail[T](env.invalidType(l.Loc, l.Actual, l.Expected...))
	default:
		panic(fmt.Sprintf("pave: unknown lookup result %T", lookup))
	}
}

// ReadOptional reads a looked-up value that may be absent. A missing path
// succeeds with nil; a mistyped container is still a failure.
func ReadOptional[T any](env Env, lookup LookupResult, r Reader[T]) Result[*T] {
	switch l := lookup.(type) {
	case Defined:
		return MapResult(r.Read(env, l.Loc, l.Value), func(v T) *T { return &v })
	case PathMissing:
		return Success[*T](l.Loc, nil)
	case InvalidType:
		return Fail[*T](env.invalidType(l.Loc, l.Actual, l.Expected...))
	default:
		panic(fmt.Sprintf("pave: unknown lookup result %T", lookup))
	}
}

// ReadOptionalOrDefault is ReadOptional with a missing path read as def().
func ReadOptionalOrDefault[T any](env Env, lookup LookupResult, r Reader[T], def func() T) Result[T] {
	switch l := lookup.(type) {
	case Defined:
		return r.Read(env, l.Loc, l.Value)
	case PathMissing:
		return Success(l.Loc, def())
	case InvalidType:
		return Fail[T](env.invalidType(l.Loc, l.Actual, l.Expected...))
	default:
		panic(fmt.Sprintf("pave: unknown lookup result %T", lookup))
	}
}

// Predicate decides, from the enclosing value, whether a conditionally
// required field is required for this read.
type Predicate func(env Env, value Value) bool

// ReadRequiredIf reads a field that is required only when pred holds for
// the enclosing value from. When pred is false the field is read as
// optional, so an absent value succeeds with nil.
func ReadRequiredIf[T any](env Env, lookup LookupResult, from Value, pred Predicate, r Reader[T]) Result[*T] {
	if pred(env, from) {
		return MapResult(ReadRequired(env, lookup, r), func(v T) *T { return &v })
	}
	return ReadOptional(env, lookup, r)
}
