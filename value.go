package pave

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// Kinds
///////////////////////////////////////////////////////////////////////////////

// Kind names the six node kinds of a value tree.
type Kind string

const (
	NullKind   = Kind("null")
	BoolKind   = Kind("boolean")
	NumberKind = Kind("number")
	StringKind = Kind("string")
	ArrayKind  = Kind("array")
	StructKind = Kind("struct")
)

var (
	ErrDuplicateKey = errors.New("duplicate key in struct")
	ErrNotANumber   = errors.New("invalid number literal")
)

///////////////////////////////////////////////////////////////////////////////
// Value
///////////////////////////////////////////////////////////////////////////////

// Value is a node of an immutable, already parsed value tree.
//
// The set of implementations is closed: NullValue, BoolValue, NumberValue,
// StringValue, ArrayValue and *StructValue. Use a type switch over those when
// a reader needs to look at the concrete node.
type Value interface {
	Kind() Kind
	isValue()
}

// NullValue is the null leaf.
type NullValue struct{}

// BoolValue is the boolean leaf.
type BoolValue bool

// NumberValue is a numeric leaf. It keeps the literal text produced by the
// upstream parser so no precision is lost before a reader asks for a
// concrete Go type.
type NumberValue string

// StringValue is the string leaf.
type StringValue string

// ArrayValue is an ordered sequence of values.
type ArrayValue []Value

func (NullValue) Kind() Kind   { return NullKind }
func (BoolValue) Kind() Kind   { return BoolKind }
func (NumberValue) Kind() Kind { return NumberKind }
func (StringValue) Kind() Kind { return StringKind }
func (ArrayValue) Kind() Kind  { return ArrayKind }

func (NullValue) isValue()   {}
func (BoolValue) isValue()   {}
func (NumberValue) isValue() {}
func (StringValue) isValue() {}
func (ArrayValue) isValue()  {}

// NewNumber validates a decimal literal and returns it as a NumberValue.
// Hexadecimal, NaN and infinity spellings are rejected.
func NewNumber(literal string) (NumberValue, error) {
	if strings.Trim(literal, "0123456789+-.eE") != "" {
		return "", fmt.Errorf("%w: %q", ErrNotANumber, literal)
	}
	if _, err := strconv.ParseFloat(literal, 64); err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || numErr.Err != strconv.ErrRange {
			return "", fmt.Errorf("%w: %q", ErrNotANumber, literal)
		}
	}
	return NumberValue(literal), nil
}

// Int64 returns the number as an int64 if it is an integral value in range.
func (n NumberValue) Int64() (int64, error) {
	i, err := strconv.ParseInt(string(n), 10, 64)
	if err == nil {
		return i, nil
	}
	// Integral values written with an exponent or a zero fraction, e.g. 1e3 or 2.0
	f, ferr := strconv.ParseFloat(string(n), 64)
	if ferr != nil || f < math.MinInt64 || f >= math.MaxInt64 || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %q is not an int64", ErrNotANumber, string(n))
	}
	return int64(f), nil
}

// Float64 returns the number as a float64.
func (n NumberValue) Float64() (float64, error) {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, string(n))
	}
	return f, nil
}

// String returns the literal text.
func (n NumberValue) String() string {
	return string(n)
}

///////////////////////////////////////////////////////////////////////////////
// Struct
///////////////////////////////////////////////////////////////////////////////

// Field is a single key/value entry of a StructValue.
type Field struct {
	Name  string
	Value Value
}

// StructValue is an ordered mapping of unique string keys to values.
//
// A StructValue is built once by NewStruct and never mutated afterwards.
type StructValue struct {
	fields []Field
	index  map[string]int
}

// NewStruct builds a StructValue keeping the given field order. Duplicate keys
// are rejected.
func NewStruct(fields ...Field) (*StructValue, error) {
	s := &StructValue{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if _, exists := s.index[f.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, f.Name)
		}
		if f.Value == nil {
			f.Value = NullValue{}
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustStruct is NewStruct that panics on duplicate keys. Intended for
// literals in tests and examples.
func MustStruct(fields ...Field) *StructValue {
	s, err := NewStruct(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (*StructValue) Kind() Kind { return StructKind }
func (*StructValue) isValue()   {}

// Get returns the value stored under name.
func (s *StructValue) Get(name string) (Value, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i].Value, true
}

// Len returns the number of fields.
func (s *StructValue) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// FieldAt returns the i-th field in declaration order.
func (s *StructValue) FieldAt(i int) Field {
	return s.fields[i]
}

// Keys returns the field names in declaration order.
func (s *StructValue) Keys() []string {
	keys := make([]string, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		keys = append(keys, s.fields[i].Name)
	}
	return keys
}

// KindOf returns the kind of v, treating a nil Value as null.
func KindOf(v Value) Kind {
	if v == nil {
		return NullKind
	}
	return v.Kind()
}

// FormatKinds renders a kind set as "string|number".
func FormatKinds(kinds []Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, "|")
}
