package pave

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Base Error types for tag parsing errors
var (
	ErrUnterminatedSubTag = errors.New("unterminated subtag value")
	ErrUnknownSubTag      = errors.New("unknown subtag")
	ErrUnknownTagModifier = errors.New("unknown tag modifier")
	ErrDuplicateDefault   = errors.New("default subtag given more than once")
	ErrEmptyPath          = errors.New("path cannot be empty")
	ErrInvalidPath        = errors.New("invalid path expression")
)

// This file contains the decoder for the `read` struct tag used by
// TagCompiler. It supports the following grammar:
//
// tag:
//     read:"<item_list>" | read:"-"
// item_list:
//     [<item>]^* // Space Separated
// item:
//     <path_tag> | <default_tag> | <modifier>
//
// path_tag:
//     path:'<path_expr>' // repeatable, tried in declaration order
// default_tag:
//     default:'<default_value>'
// modifier:
//     omitempty | nullable
//
// path_expr:
//     <segment>[.<segment> | [<index>]]^*
// segment:
//     <string> // '.' and '[' must be escaped with '\'
// default_value:
//     <Go Literal> for leaves, <JSON> for structs, slices and maps
//
// A quote inside a quoted value is escaped with '\'. Unquoted values end at
// the next space.

// ReadTag is the decoded form of a `read` struct tag.
// Example: Port int `read:"path:'port' path:'server.port' default:'8080'"`
type ReadTag struct {
	Paths      []Path
	Default    string
	HasDefault bool
	OmitEmpty  bool
	Nullable   bool
}

// DecodeReadTag decodes the content of a `read` tag.
func DecodeReadTag(tag string) (ReadTag, error) {
	var rt ReadTag

	i := 0
	for i < len(tag) {
		// Skip whitespace
		for i < len(tag) && (tag[i] == ' ' || tag[i] == '\t') {
			i++
		}
		if i >= len(tag) {
			break
		}

		// Read the key, or a bare modifier
		start := i
		for i < len(tag) && tag[i] != ' ' && tag[i] != '\t' && tag[i] != TagKeyValueDelimiter {
			i++
		}
		key := tag[start:i]

		if i >= len(tag) || tag[i] != TagKeyValueDelimiter {
			switch key {
			case OmitEmptyTagModifier:
				rt.OmitEmpty = true
			case NullableTagModifier:
				rt.Nullable = true
			default:
				return ReadTag{}, fmt.Errorf("%w: %q", ErrUnknownTagModifier, key)
			}
			continue
		}

		i++ // skip ':'
		value, next, err := subTagValue(tag, i)
		if err != nil {
			return ReadTag{}, fmt.Errorf("subtag %q: %w", key, err)
		}
		i = next

		switch key {
		case PathSubTagPrefix:
			path, err := ParsePath(value)
			if err != nil {
				return ReadTag{}, err
			}
			rt.Paths = append(rt.Paths, path)
		case DefaultSubTagPrefix:
			if rt.HasDefault {
				return ReadTag{}, ErrDuplicateDefault
			}
			rt.Default = value
			rt.HasDefault = true
		default:
			return ReadTag{}, fmt.Errorf("%w: %q", ErrUnknownSubTag, key)
		}
	}

	return rt, nil
}

// subTagValue reads a quoted or bare value starting at i and returns it with
// the index right after it.
func subTagValue(tag string, i int) (string, int, error) {
	if i >= len(tag) || tag[i] != TagScopeDelimiter {
		// It's a simple value, find the next space
		end := i
		for end < len(tag) && tag[end] != ' ' && tag[end] != '\t' {
			end++
		}
		return tag[i:end], end, nil
	}

	var builder strings.Builder
	escaped := false
	for j := i + 1; j < len(tag); j++ {
		c := tag[j]
		if escaped {
			builder.WriteByte(c)
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case TagScopeDelimiter:
			return builder.String(), j + 1, nil
		default:
			builder.WriteByte(c)
		}
	}
	return "", len(tag), ErrUnterminatedSubTag
}

// ParsePath parses a path expression such as "items[0].name".
// Example: ParsePath(`a\.b[2]`) returns the path /a.b/2
func ParsePath(expr string) (Path, error) {
	if expr == "" {
		return Path{}, ErrEmptyPath
	}

	var (
		steps   []Step
		segment strings.Builder
		pending bool // a key segment is being built
	)
	flush := func() {
		if pending {
			steps = append(steps, Key(segment.String()))
			segment.Reset()
			pending = false
		}
	}

	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch c {
		case '\\':
			if i+1 >= len(expr) {
				return Path{}, fmt.Errorf("%w: trailing escape in %q", ErrInvalidPath, expr)
			}
			i++
			segment.WriteByte(expr[i])
			pending = true
		case PathKeyDelimiter:
			if !pending && (i == 0 || expr[i-1] != PathIndexClose) {
				return Path{}, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, expr)
			}
			flush()
			if i == len(expr)-1 {
				return Path{}, fmt.Errorf("%w: trailing '.' in %q", ErrInvalidPath, expr)
			}
		case PathIndexOpen:
			flush()
			end := strings.IndexByte(expr[i:], PathIndexClose)
			if end < 0 {
				return Path{}, fmt.Errorf("%w: unclosed index in %q", ErrInvalidPath, expr)
			}
			index, err := strconv.Atoi(expr[i+1 : i+end])
			if err != nil || index < 0 {
				return Path{}, fmt.Errorf("%w: bad index in %q", ErrInvalidPath, expr)
			}
			steps = append(steps, Index(index))
			i += end
		default:
			segment.WriteByte(c)
			pending = true
		}
	}
	flush()

	return Path{steps: steps}, nil
}
