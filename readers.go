package pave

import (
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
)

///////////////////////////////////////////////////////////////////////////////
// Leaf readers
///////////////////////////////////////////////////////////////////////////////

// String reads a string leaf.
func String() Reader[string] {
	return ReaderFunc[string](func(env Env, loc Location, value Value) Result[string] {
		s, ok := value.(StringValue)
		if !ok {
			return Fail[string](env.invalidType(loc, KindOf(value), StringKind))
		}
		return Success(loc, string(s))
	})
}

// Bool reads a boolean leaf.
func Bool() Reader[bool] {
	return ReaderFunc[bool](func(env Env, loc Location, value Value) Result[bool] {
		b, ok := value.(BoolValue)
		if !ok {
			return Fail[bool](env.invalidType(loc, KindOf(value), BoolKind))
		}
		return Success(loc, bool(b))
	})
}

// Number reads a number leaf as its literal.
func Number() Reader[NumberValue] {
	return ReaderFunc[NumberValue](func(env Env, loc Location, value Value) Result[NumberValue] {
		n, ok := value.(NumberValue)
		if !ok {
			return Fail[NumberValue](env.invalidType(loc, KindOf(value), NumberKind))
		}
		return Success(loc, n)
	})
}

// Int64 reads an integral number leaf.
func Int64() Reader[int64] {
	return Bind(Number(), func(env Env, loc Location, n NumberValue) Result[int64] {
		i, err := n.Int64()
		if err != nil {
			return Fail[int64](env.conversion(loc, "int64", err))
		}
		return Success(loc, i)
	})
}

// Int reads an integral number leaf that fits in an int.
func Int() Reader[int] {
	return Bind(Int64(), func(env Env, loc Location, i int64) Result[int] {
		if strconv.IntSize == 32 && (i < math.MinInt32 || i > math.MaxInt32) {
			return Fail[int](env.conversion(loc, "int", fmt.Errorf("%d overflows int", i)))
		}
		return Success(loc, int(i))
	})
}

// Float64 reads a number leaf as a float64.
func Float64() Reader[float64] {
	return Bind(Number(), func(env Env, loc Location, n NumberValue) Result[float64] {
		f, err := n.Float64()
		if err != nil {
			return Fail[float64](env.conversion(loc, "float64", err))
		}
		return Success(loc, f)
	})
}

// UUID reads a string leaf holding a UUID.
func UUID() Reader[uuid.UUID] {
	return Bind(String(), func(env Env, loc Location, s string) Result[uuid.UUID] {
		id, err := uuid.Parse(s)
		if err != nil {
			return Fail[uuid.UUID](env.conversion(loc, "uuid", err))
		}
		return Success(loc, id)
	})
}

// Any reads any value as is.
func Any() Reader[Value] {
	return ReaderFunc[Value](func(_ Env, loc Location, value Value) Result[Value] {
		if value == nil {
			value = NullValue{}
		}
		return Success(loc, value)
	})
}

// Struct reads a struct node as is.
func Struct() Reader[*StructValue] {
	return ReaderFunc[*StructValue](func(env Env, loc Location, value Value) Result[*StructValue] {
		s, ok := value.(*StructValue)
		if !ok || s == nil {
			return Fail[*StructValue](env.invalidType(loc, KindOf(value), StructKind))
		}
		return Success(loc, s)
	})
}
