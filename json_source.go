package pave

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	ErrInvalidJSON = errors.New("invalid JSON document")
)

// ParseJSON parses a JSON document into a value tree. Object keys keep their
// document order and numbers keep their literal text.
func ParseJSON(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return FromGJSON(gjson.ParseBytes(data))
}

// ParseJSONString is ParseJSON for string input.
func ParseJSONString(data string) (Value, error) {
	if !gjson.Valid(data) {
		return nil, ErrInvalidJSON
	}
	return FromGJSON(gjson.Parse(data))
}

// FromGJSON converts an already parsed gjson result into a value tree.
func FromGJSON(res gjson.Result) (Value, error) {
	switch res.Type {
	case gjson.Null:
		return NullValue{}, nil
	case gjson.False:
		return BoolValue(false), nil
	case gjson.True:
		return BoolValue(true), nil
	case gjson.Number:
		n, err := NewNumber(res.Raw)
		if err != nil {
			return nil, err
		}
		return n, nil
	case gjson.String:
		return StringValue(res.Str), nil
	case gjson.JSON:
		if res.IsArray() {
			return fromGJSONArray(res)
		}
		if res.IsObject() {
			return fromGJSONObject(res)
		}
	}
	return nil, fmt.Errorf("%w: unexpected token %q", ErrInvalidJSON, res.Raw)
}

func fromGJSONArray(res gjson.Result) (Value, error) {
	var (
		arr ArrayValue
		err error
	)
	res.ForEach(func(_, elem gjson.Result) bool {
		var v Value
		v, err = FromGJSON(elem)
		if err != nil {
			err = fmt.Errorf("item %d: %w", len(arr), err)
			return false
		}
		arr = append(arr, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	if arr == nil {
		arr = ArrayValue{}
	}
	return arr, nil
}

func fromGJSONObject(res gjson.Result) (Value, error) {
	var (
		fields []Field
		err    error
	)
	res.ForEach(func(key, elem gjson.Result) bool {
		var v Value
		v, err = FromGJSON(elem)
		if err != nil {
			err = fmt.Errorf("field %q: %w", key.Str, err)
			return false
		}
		fields = append(fields, Field{Name: key.Str, Value: v})
		return true
	})
	if err != nil {
		return nil, err
	}
	obj, err := NewStruct(fields...)
	if err != nil {
		return nil, err
	}
	return obj, nil
}
