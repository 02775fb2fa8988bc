package pave

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestParseJSON(t *testing.T) {
	t.Run("AllKinds", func(t *testing.T) {
		v, err := ParseJSON([]byte(`{"n":null,"b":true,"f":false,"num":1.50,"s":"x","a":[1,"y"],"o":{}}`))
		require.NoError(t, err)

		obj, ok := v.(*StructValue)
		require.True(t, ok)
		assert.Equal(t, []string{"n", "b", "f", "num", "s", "a", "o"}, obj.Keys())

		get := func(name string) Value {
			field, _ := obj.Get(name)
			return field
		}
		assert.Equal(t, NullValue{}, get("n"))
		assert.Equal(t, BoolValue(true), get("b"))
		assert.Equal(t, BoolValue(false), get("f"))
		assert.Equal(t, NumberValue("1.50"), get("num"))
		assert.Equal(t, StringValue("x"), get("s"))
		assert.Equal(t, ArrayValue{NumberValue("1"), StringValue("y")}, get("a"))
		assert.Equal(t, 0, get("o").(*StructValue).Len())
	})

	t.Run("Escapes", func(t *testing.T) {
		v, err := ParseJSONString(`{"a\"b":"line\nbreak"}`)
		require.NoError(t, err)
		field, ok := v.(*StructValue).Get(`a"b`)
		require.True(t, ok)
		assert.Equal(t, StringValue("line\nbreak"), field)
	})

	t.Run("Scalars", func(t *testing.T) {
		v, err := ParseJSONString(`"top"`)
		require.NoError(t, err)
		assert.Equal(t, StringValue("top"), v)

		v, err = ParseJSONString(`[]`)
		require.NoError(t, err)
		assert.Equal(t, ArrayValue{}, v)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := ParseJSONString(`{"a":`)
		assert.ErrorIs(t, err, ErrInvalidJSON)
		_, err = ParseJSON([]byte(`nope`))
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})

	t.Run("DuplicateKeys", func(t *testing.T) {
		_, err := ParseJSONString(`{"a":1,"a":2}`)
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("FromGJSON", func(t *testing.T) {
		res := gjson.Get(`{"user":{"tags":["a","b"]}}`, "user.tags")
		v, err := FromGJSON(res)
		require.NoError(t, err)
		assert.Equal(t, ArrayValue{StringValue("a"), StringValue("b")}, v)
	})
}

func TestParseYAML(t *testing.T) {
	t.Run("Mapping", func(t *testing.T) {
		v, err := ParseYAML([]byte("name: app\nport: 8080\nratio: 0.5\ndebug: true\nnothing: null\ntags:\n  - a\n  - b\n"))
		require.NoError(t, err)

		obj, ok := v.(*StructValue)
		require.True(t, ok)
		assert.Equal(t, []string{"name", "port", "ratio", "debug", "nothing", "tags"}, obj.Keys())

		port, _ := obj.Get("port")
		assert.Equal(t, NumberKind, KindOf(port))
		ratio, _ := obj.Get("ratio")
		assert.Equal(t, NumberValue("0.5"), ratio)
		debug, _ := obj.Get("debug")
		assert.Equal(t, BoolValue(true), debug)
		nothing, _ := obj.Get("nothing")
		assert.Equal(t, NullValue{}, nothing)
		tags, _ := obj.Get("tags")
		assert.Equal(t, ArrayValue{StringValue("a"), StringValue("b")}, tags)
	})

	t.Run("Nested", func(t *testing.T) {
		v, err := ParseYAML([]byte("server:\n  host: localhost\n  port: 1\n"))
		require.NoError(t, err)
		assert.Equal(t, "localhost", ReadAt(Env{}, String(), KeyPath("server", "host"), v).MustGet())
		assert.Equal(t, 1, ReadAt(Env{}, Int(), KeyPath("server", "port"), v).MustGet())
	})

	t.Run("NumericKeys", func(t *testing.T) {
		v, err := ParseYAML([]byte("1: one\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, v.(*StructValue).Keys())
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := ParseYAML([]byte("a: [1, 2\n"))
		assert.ErrorIs(t, err, ErrInvalidYAML)
	})
}

func TestFromNative(t *testing.T) {
	t.Run("EncodingJSONOutput", func(t *testing.T) {
		var native any
		dec := json.NewDecoder(strings.NewReader(`{"b":[1,2.5],"a":{"x":null},"c":"s"}`))
		dec.UseNumber()
		require.NoError(t, dec.Decode(&native))

		v, err := FromNative(native)
		require.NoError(t, err)
		obj := v.(*StructValue)
		// Keys are sorted since Go maps carry no order.
		assert.Equal(t, []string{"a", "b", "c"}, obj.Keys())
		b, _ := obj.Get("b")
		assert.Equal(t, ArrayValue{NumberValue("1"), NumberValue("2.5")}, b)
	})

	t.Run("Scalars", func(t *testing.T) {
		tests := []struct {
			name string
			in   any
			want Value
		}{
			{"nil", nil, NullValue{}},
			{"bool", true, BoolValue(true)},
			{"int", 42, NumberValue("42")},
			{"int8", int8(-3), NumberValue("-3")},
			{"uint64", uint64(math.MaxUint64), NumberValue("18446744073709551615")},
			{"float64", 0.25, NumberValue("0.25")},
			{"float32", float32(1.5), NumberValue("1.5")},
			{"string", "s", StringValue("s")},
			{"value", StringValue("v"), StringValue("v")},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				v, err := FromNative(tt.in)
				require.NoError(t, err)
				assert.Equal(t, tt.want, v)
			})
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := FromNative(struct{}{})
		assert.ErrorIs(t, err, ErrUnsupportedNative)
		_, err = FromNative([]any{math.NaN()})
		assert.ErrorIs(t, err, ErrNotANumber)
		assert.Panics(t, func() { MustNative(map[string]any{"x": make(chan int)}) })
	})
}
