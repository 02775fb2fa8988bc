package pave

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

var (
	ErrInvalidYAML = errors.New("invalid YAML document")
)

// ParseYAML parses a single YAML document into a value tree. Mapping keys
// keep their document order; scalar keys are rendered as strings.
func ParseYAML(data []byte) (Value, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}
	return fromYAML(doc)
}

func fromYAML(v any) (Value, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		fields := make([]Field, 0, len(x))
		for _, item := range x {
			name, err := yamlKey(item.Key)
			if err != nil {
				return nil, err
			}
			fv, err := fromYAML(item.Value)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			fields = append(fields, Field{Name: name, Value: fv})
		}
		obj, err := NewStruct(fields...)
		if err != nil {
			return nil, err
		}
		return obj, nil
	case []any:
		arr := make(ArrayValue, 0, len(x))
		for i, elem := range x {
			ev, err := fromYAML(elem)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			arr = append(arr, ev)
		}
		return arr, nil
	case map[string]any:
		// Only reached for documents decoded without ordered maps.
		return FromNative(x)
	default:
		return scalarToValue(v)
	}
}

func yamlKey(key any) (string, error) {
	switch k := key.(type) {
	case string:
		return k, nil
	case nil:
		return "", fmt.Errorf("%w: null mapping key", ErrInvalidYAML)
	case yaml.MapSlice, []any:
		return "", fmt.Errorf("%w: non-scalar mapping key", ErrInvalidYAML)
	default:
		return fmt.Sprint(k), nil
	}
}
