package pave

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

var (
	ErrUnsupportedType = errors.New("unsupported field type")
	ErrInvalidDefault  = errors.New("invalid default value")
)

///////////////////////////////////////////////////////////////////////////////
// Leaf conversions for reflective readers
///////////////////////////////////////////////////////////////////////////////

// leafReader returns the reader for types read from a single leaf node, or
// false when t is not a leaf type.
//
// Currently supports:
//   - Value, NumberValue, uuid.UUID, time.Time and []byte (raw string bytes)
//   - encoding.TextUnmarshaler implementations, read from strings
//   - string, bool, ints, uints and floats, named types included
//   - interface{}, set to the Value found
func leafReader(t reflect.Type) (Reader[reflect.Value], bool) {
	switch t {
	case ValueType:
		return reflectedLeaf(t, Any()), true
	case NumberType:
		return reflectedLeaf(t, Number()), true
	case UUIDType:
		return reflectedLeaf(t, UUID()), true
	case TimeType:
		return reflectedLeaf(t, timeReader()), true
	case ByteSliceType:
		return reflectedLeaf(t, Map(String(), func(s string) []byte { return []byte(s) })), true
	}

	if reflect.PointerTo(t).Implements(TextUnmarshalerType) {
		return textReader(t), true
	}

	switch t.Kind() {
	case reflect.String:
		return reflectedLeaf(t, String()), true
	case reflect.Bool:
		return reflectedLeaf(t, Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return numberReader(t, setIntValue), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return numberReader(t, setUintValue), true
	case reflect.Float32, reflect.Float64:
		return numberReader(t, setFloatValue), true
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return reflectedLeaf(t, Any()), true
		}
	}
	return nil, false
}

// reflectedLeaf adapts a typed reader to t, converting named types.
func reflectedLeaf[T any](t reflect.Type, r Reader[T]) Reader[reflect.Value] {
	return Map(r, func(v T) reflect.Value {
		out := reflect.New(t).Elem()
		out.Set(reflect.ValueOf(v).Convert(t))
		return out
	})
}

func timeReader() Reader[time.Time] {
	return Bind(String(), func(env Env, loc Location, s string) Result[time.Time] {
		ts, err := time.Parse(DefaultTimeTextLayout, s)
		if err != nil {
			return Fail[time.Time](env.conversion(loc, "time", err))
		}
		return Success(loc, ts)
	})
}

func textReader(t reflect.Type) Reader[reflect.Value] {
	return Bind(String(), func(env Env, loc Location, s string) Result[reflect.Value] {
		out := reflect.New(t)
		if err := out.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return Fail[reflect.Value](env.conversion(loc, t.String(), err))
		}
		return Success(loc, out.Elem())
	})
}

func numberReader(t reflect.Type, set func(field reflect.Value, n NumberValue) error) Reader[reflect.Value] {
	return Bind(Number(), func(env Env, loc Location, n NumberValue) Result[reflect.Value] {
		out := reflect.New(t).Elem()
		if err := set(out, n); err != nil {
			return Fail[reflect.Value](env.conversion(loc, t.String(), err))
		}
		return Success(loc, out)
	})
}

// setIntValue sets integer field values with overflow checking
func setIntValue(field reflect.Value, n NumberValue) error {
	intValue, err := n.Int64()
	if err != nil {
		return err
	}

	if field.OverflowInt(intValue) {
		return fmt.Errorf("value %d overflows %s", intValue, field.Type())
	}

	field.SetInt(intValue)
	return nil
}

// setUintValue sets unsigned integer field values with overflow checking
func setUintValue(field reflect.Value, n NumberValue) error {
	uintValue, err := strconv.ParseUint(string(n), 10, 64)
	if err != nil {
		// Exponent and fraction forms go through the integral check
		intValue, ierr := n.Int64()
		if ierr != nil {
			return ierr
		}
		if intValue < 0 {
			return fmt.Errorf("value %d is negative for %s", intValue, field.Type())
		}
		uintValue = uint64(intValue)
	}

	if field.OverflowUint(uintValue) {
		return fmt.Errorf("value %d overflows %s", uintValue, field.Type())
	}

	field.SetUint(uintValue)
	return nil
}

// setFloatValue sets float field values with overflow checking
func setFloatValue(field reflect.Value, n NumberValue) error {
	floatValue, err := n.Float64()
	if err != nil {
		return err
	}

	if field.OverflowFloat(floatValue) {
		return fmt.Errorf("value %g overflows %s", floatValue, field.Type())
	}

	field.SetFloat(floatValue)
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// Default values
///////////////////////////////////////////////////////////////////////////////

// defaultTree turns the text of a default subtag into the value tree the
// field's reader is run over. Leaves take Go literal text, everything else
// takes JSON.
func defaultTree(t reflect.Type, text string) (Value, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t {
	case ValueType:
		return parseDefaultJSON(text)
	case NumberType:
		return defaultNumber(text)
	case UUIDType, TimeType, ByteSliceType:
		return StringValue(text), nil
	}
	if reflect.PointerTo(t).Implements(TextUnmarshalerType) {
		return StringValue(text), nil
	}

	switch t.Kind() {
	case reflect.String:
		return StringValue(text), nil
	case reflect.Bool:
		return defaultBool(text)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return defaultNumber(text)
	default:
		return parseDefaultJSON(text)
	}
}

// defaultBool accepts the common boolean spellings:
//   - "true", "1", "yes", "on" (case variants included)
//   - "false", "0", "no", "off" (case variants included)
//   - anything else strconv.ParseBool accepts
func defaultBool(text string) (Value, error) {
	switch text {
	case "true", "1", "yes", "on", "True", "TRUE", "YES", "ON":
		return BoolValue(true), nil
	case "false", "0", "no", "off", "False", "FALSE", "NO", "OFF":
		return BoolValue(false), nil
	}
	b, err := strconv.ParseBool(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefault, err)
	}
	return BoolValue(b), nil
}

func defaultNumber(text string) (Value, error) {
	n, err := NewNumber(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefault, err)
	}
	return n, nil
}

func parseDefaultJSON(text string) (Value, error) {
	v, err := ParseJSONString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefault, err)
	}
	return v, nil
}
