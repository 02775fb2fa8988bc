package pave

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

var (
	ErrUnsupportedNative = errors.New("unsupported native value")
)

// FromNative converts Go values shaped like the output of encoding/json
// (nil, bool, string, numbers, json.Number, []any, map[string]any) into a
// value tree. Map keys are sorted since Go maps carry no order. A Value is
// returned as is.
func FromNative(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case []any:
		arr := make(ArrayValue, 0, len(x))
		for i, elem := range x {
			ev, err := FromNative(elem)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			arr = append(arr, ev)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, 0, len(keys))
		for _, k := range keys {
			fv, err := FromNative(x[k])
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			fields = append(fields, Field{Name: k, Value: fv})
		}
		obj, err := NewStruct(fields...)
		if err != nil {
			return nil, err
		}
		return obj, nil
	default:
		return scalarToValue(v)
	}
}

// MustNative is FromNative that panics on error. Intended for literals in
// tests and examples.
func MustNative(v any) Value {
	out, err := FromNative(v)
	if err != nil {
		panic(err)
	}
	return out
}

// scalarToValue converts leaf Go values shared by every native source.
func scalarToValue(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return NullValue{}, nil
	case bool:
		return BoolValue(x), nil
	case string:
		return StringValue(x), nil
	case json.Number:
		n, err := NewNumber(x.String())
		if err != nil {
			return nil, err
		}
		return n, nil
	case int:
		return NumberValue(strconv.FormatInt(int64(x), 10)), nil
	case int8:
		return NumberValue(strconv.FormatInt(int64(x), 10)), nil
	case int16:
		return NumberValue(strconv.FormatInt(int64(x), 10)), nil
	case int32:
		return NumberValue(strconv.FormatInt(int64(x), 10)), nil
	case int64:
		return NumberValue(strconv.FormatInt(x, 10)), nil
	case uint:
		return NumberValue(strconv.FormatUint(uint64(x), 10)), nil
	case uint8:
		return NumberValue(strconv.FormatUint(uint64(x), 10)), nil
	case uint16:
		return NumberValue(strconv.FormatUint(uint64(x), 10)), nil
	case uint32:
		return NumberValue(strconv.FormatUint(uint64(x), 10)), nil
	case uint64:
		return NumberValue(strconv.FormatUint(x, 10)), nil
	case float32:
		return floatToValue(float64(x), 32)
	case float64:
		return floatToValue(x, 64)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedNative, v)
	}
}

func floatToValue(f float64, bitSize int) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %v", ErrNotANumber, f)
	}
	return NumberValue(strconv.FormatFloat(f, 'g', -1, bitSize)), nil
}
