package pave

import (
	"encoding"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// constants for the struct tag read by TagCompiler
const (
	ReadTagName           = "read"
	ReadTagSkip           = "-"
	TagScopeDelimiter     = byte('\'')
	TagKeyValueDelimiter  = byte(':')
	PathKeyDelimiter      = byte('.')
	PathIndexOpen         = byte('[')
	PathIndexClose        = byte(']')
	PathSubTagPrefix      = "path"
	DefaultSubTagPrefix   = "default"
	OmitEmptyTagModifier  = "omitempty"
	NullableTagModifier   = "nullable"
	DefaultTimeTextLayout = time.RFC3339Nano
)

// reflect.TypeOf constants for type checks
var (
	UUIDType            = reflect.TypeOf(uuid.UUID{})
	TimeType            = reflect.TypeOf(time.Time{})
	NumberType          = reflect.TypeOf(NumberValue(""))
	ValueType           = reflect.TypeOf((*Value)(nil)).Elem()
	ByteSliceType       = reflect.TypeOf([]byte(nil))
	TextUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	ValidatableType     = reflect.TypeOf((*Validatable)(nil)).Elem()
)
