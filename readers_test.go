package pave

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeafReaders(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		res := String().Read(Env{}, Root.Key("id"), StringValue("abc"))
		assert.Equal(t, "abc", res.MustGet())
		assert.Equal(t, "/id", res.Location().String())
	})

	t.Run("Bool", func(t *testing.T) {
		assert.True(t, Bool().Read(Env{}, Root, BoolValue(true)).MustGet())
	})

	t.Run("Number", func(t *testing.T) {
		assert.Equal(t, NumberValue("1.50"), Number().Read(Env{}, Root, NumberValue("1.50")).MustGet())
	})

	t.Run("Int64", func(t *testing.T) {
		assert.Equal(t, int64(1000), Int64().Read(Env{}, Root, NumberValue("1e3")).MustGet())
	})

	t.Run("Int", func(t *testing.T) {
		assert.Equal(t, 7, Int().Read(Env{}, Root, NumberValue("7")).MustGet())
	})

	t.Run("Float64", func(t *testing.T) {
		assert.Equal(t, 2.5, Float64().Read(Env{}, Root, NumberValue("2.5")).MustGet())
	})

	t.Run("UUID", func(t *testing.T) {
		id := uuid.New()
		assert.Equal(t, id, UUID().Read(Env{}, Root, StringValue(id.String())).MustGet())
	})

	t.Run("Any", func(t *testing.T) {
		assert.Equal(t, NullValue{}, Any().Read(Env{}, Root, nil).MustGet())
		assert.Equal(t, NumberValue("1"), Any().Read(Env{}, Root, NumberValue("1")).MustGet())
	})

	t.Run("Struct", func(t *testing.T) {
		s := MustStruct(Field{Name: "a", Value: NullValue{}})
		assert.Same(t, s, Struct().Read(Env{}, Root, s).MustGet())
	})
}

func TestLeafReaderInvalidType(t *testing.T) {
	tests := []struct {
		name     string
		read     func() (Failure, bool)
		expected Kind
		actual   Kind
	}{
		{"string_from_number", func() (Failure, bool) { return String().Read(Env{}, Root, NumberValue("1")).Failure() }, StringKind, NumberKind},
		{"bool_from_string", func() (Failure, bool) { return Bool().Read(Env{}, Root, StringValue("true")).Failure() }, BoolKind, StringKind},
		{"number_from_null", func() (Failure, bool) { return Number().Read(Env{}, Root, NullValue{}).Failure() }, NumberKind, NullKind},
		{"int_from_bool", func() (Failure, bool) { return Int().Read(Env{}, Root, BoolValue(false)).Failure() }, NumberKind, BoolKind},
		{"struct_from_array", func() (Failure, bool) { return Struct().Read(Env{}, Root, ArrayValue{}).Failure() }, StructKind, ArrayKind},
		{"uuid_from_number", func() (Failure, bool) { return UUID().Read(Env{}, Root, NumberValue("1")).Failure() }, StringKind, NumberKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, failed := tt.read()
			require.True(t, failed)
			var invalid *InvalidTypeError
			require.ErrorAs(t, f, &invalid)
			assert.Equal(t, []Kind{tt.expected}, invalid.Expected)
			assert.Equal(t, tt.actual, invalid.Actual)
		})
	}
}

func TestLeafReaderConversion(t *testing.T) {
	_, err := Int64().Read(Env{}, Root, NumberValue("1.5")).Get()
	assert.ErrorIs(t, err, ErrConversion)
	assert.ErrorIs(t, err, ErrNotANumber)

	_, err = UUID().Read(Env{}, Root, StringValue("not-a-uuid")).Get()
	assert.ErrorIs(t, err, ErrConversion)

	var conv *ConversionError
	require.True(t, errors.As(err, &conv))
	assert.Equal(t, "uuid", conv.Target)
}

// The first cause of a leaf failure is at the location the reader was given.
func TestLeafReaderFailureLocation(t *testing.T) {
	loc := Root.Key("a").Index(2)
	f, failed := String().Read(Env{}, loc, BoolValue(true)).Failure()
	require.True(t, failed)
	assert.Equal(t, "/a/2", f.First().Location.String())
}
