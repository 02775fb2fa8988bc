package pave

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrFailedToParseTag   = errors.New("failed to parse tag for field")
	ErrFailedToBuildField = errors.New("failed to build reader for field")
)

// TagOpts configures a TagCompiler.
type TagOpts struct {
	// TagName is the struct tag key read by the compiler. Defaults to
	// ReadTagName.
	TagName string
}

// TagCompiler builds readers for Go types from their struct tags.
//
// Struct fields are read using a `read` tag (see tag.go for the grammar):
//
//	type Server struct {
//		Host string     `read:"path:'host'"`
//		Port int        `read:"path:'port' path:'legacy.port' default:'8080'"`
//		Tags []string   `read:"path:'tags' omitempty"`
//		TLS  *TLSConfig `read:"path:'tls'"`
//		Skip string     `read:"-"`
//	}
//
// A field with a default is defaultable, a field marked omitempty or of
// pointer type is optional, and every other tagged field is required.
// Untagged and unexported fields are left alone. The nullable modifier makes
// an explicit null count as an absent value.
//
// Compiled readers are cached per type and safe for concurrent use.
type TagCompiler struct {
	tagName string
	cache   *ReaderCache[reflect.Type, Reader[reflect.Value]]
}

// NewTagCompiler creates a compiler with an empty cache.
func NewTagCompiler(opts TagOpts) *TagCompiler {
	name := opts.TagName
	if name == "" {
		name = ReadTagName
	}
	return &TagCompiler{
		tagName: name,
		cache:   NewReaderCache[reflect.Type, Reader[reflect.Value]](),
	}
}

var defaultCompiler = NewTagCompiler(TagOpts{})

// ReaderFor returns a reader for T compiled from its `read` tags.
func ReaderFor[T any]() (Reader[T], error) {
	return ReaderForWith[T](defaultCompiler)
}

// MustReaderFor is ReaderFor that panics if T cannot be compiled.
func MustReaderFor[T any]() Reader[T] {
	r, err := ReaderFor[T]()
	if err != nil {
		panic(err)
	}
	return r
}

// ReaderForWith is ReaderFor using compiler c.
func ReaderForWith[T any](c *TagCompiler) (Reader[T], error) {
	rv, err := c.Compile(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return Map(rv, func(v reflect.Value) T {
		out, _ := v.Interface().(T)
		return out
	}), nil
}

// Compile returns the reader for t, building and caching it on first use.
func (c *TagCompiler) Compile(t reflect.Type) (Reader[reflect.Value], error) {
	return c.cache.GetOrCreate(t, func() (Reader[reflect.Value], error) {
		return c.compile(t, map[reflect.Type]*typeRef{})
	})
}

// typeRef stands in for a struct reader still being built, so recursive
// types refer to themselves.
type typeRef struct {
	reader Reader[reflect.Value]
}

func (ref *typeRef) Read(env Env, loc Location, value Value) Result[reflect.Value] {
	return ref.reader.Read(env, loc, value)
}

func (c *TagCompiler) compile(t reflect.Type, building map[reflect.Type]*typeRef) (Reader[reflect.Value], error) {
	if r, ok := leafReader(t); ok {
		return r, nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		return c.compilePointer(t, building)
	case reflect.Slice:
		return c.compileSlice(t, building)
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: %s (map keys must be strings)", ErrUnsupportedType, t)
		}
		return c.compileMap(t, building)
	case reflect.Struct:
		if ref, ok := building[t]; ok {
			return ref, nil
		}
		if r, ok := c.cache.Get(t); ok {
			return r, nil
		}
		return c.compileStruct(t, building)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
}

// compilePointer reads an explicit null as a nil pointer.
func (c *TagCompiler) compilePointer(t reflect.Type, building map[reflect.Type]*typeRef) (Reader[reflect.Value], error) {
	elem, err := c.compile(t.Elem(), building)
	if err != nil {
		return nil, err
	}
	return Map(Nullable(elem), func(v *reflect.Value) reflect.Value {
		if v == nil {
			return reflect.Zero(t)
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(*v)
		return ptr
	}), nil
}

func (c *TagCompiler) compileSlice(t reflect.Type, building map[reflect.Type]*typeRef) (Reader[reflect.Value], error) {
	elem, err := c.compile(t.Elem(), building)
	if err != nil {
		return nil, err
	}
	return Map[[]reflect.Value](ItemsOf(elem), func(items []reflect.Value) reflect.Value {
		out := reflect.MakeSlice(t, len(items), len(items))
		for i, item := range items {
			out.Index(i).Set(item)
		}
		return out
	}), nil
}

// compileMap reads every field of a struct node into a map keyed by field
// name.
func (c *TagCompiler) compileMap(t reflect.Type, building map[reflect.Type]*typeRef) (Reader[reflect.Value], error) {
	elem, err := c.compile(t.Elem(), building)
	if err != nil {
		return nil, err
	}
	return Bind(Struct(), func(env Env, loc Location, obj *StructValue) Result[reflect.Value] {
		if f, exceeded := env.checkDepth(loc); exceeded {
			return Fail[reflect.Value](f)
		}
		out := reflect.MakeMapWithSize(t, obj.Len())
		var acc failureBuilder
		for i := 0; i < obj.Len(); i++ {
			field := obj.FieldAt(i)
			res := elem.Read(env, loc.Key(field.Name), field.Value)
			v, ok := res.Value()
			if !ok {
				f, _ := res.Failure()
				if env.FailFast() {
					return Fail[reflect.Value](f)
				}
				acc.add(f)
				continue
			}
			out.SetMapIndex(reflect.ValueOf(field.Name).Convert(t.Key()), v)
		}
		if acc.failed() {
			return Fail[reflect.Value](acc.failure())
		}
		return Success(loc, out)
	}), nil
}

func (c *TagCompiler) compileStruct(t reflect.Type, building map[reflect.Type]*typeRef) (Reader[reflect.Value], error) {
	ref := &typeRef{}
	building[t] = ref
	defer delete(building, t)

	b := newStructBuilder(func() reflect.Value { return reflect.New(t).Elem() })
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		raw, ok := sf.Tag.Lookup(c.tagName)
		if !ok || raw == ReadTagSkip {
			continue
		}
		tag, err := DecodeReadTag(raw)
		if err != nil {
			return nil, fmt.Errorf("%w %s.%s: %w", ErrFailedToParseTag, t.Name(), sf.Name, err)
		}
		if err := c.bindField(b, i, sf, tag, building); err != nil {
			return nil, fmt.Errorf("%w %s.%s: %w", ErrFailedToBuildField, t.Name(), sf.Name, err)
		}
	}

	if reflect.PointerTo(t).Implements(ValidatableType) {
		b.Validate(func(_ Env, _ Location, v reflect.Value) error {
			return v.Addr().Interface().(Validatable).Validate()
		})
	}

	ref.reader = b.Build()
	return ref.reader, nil
}

// bindField declares the property for the struct field at index.
func (c *TagCompiler) bindField(
	b *StructBuilder[reflect.Value],
	index int,
	sf reflect.StructField,
	tag ReadTag,
	building map[reflect.Type]*typeRef,
) error {
	r, err := c.compile(sf.Type, building)
	if err != nil {
		return err
	}

	paths := tag.Paths
	if len(paths) == 0 {
		paths = []Path{KeyPath(sf.Name)}
	}
	nulls := NullReadByInner
	if tag.Nullable {
		nulls = NullAsAbsent
	}
	set := func(dest *reflect.Value, v reflect.Value) {
		dest.Field(index).Set(v)
	}

	switch {
	case tag.HasDefault:
		def, err := c.defaultSupplier(sf.Type, tag.Default, r)
		if err != nil {
			return err
		}
		Prop(b, Defaultable(r, def, paths[0], paths[1:]...).WithNullPolicy(nulls), set)
	case tag.OmitEmpty || sf.Type.Kind() == reflect.Pointer:
		Prop(b, Optional(r, paths[0], paths[1:]...).WithNullPolicy(nulls), func(dest *reflect.Value, v *reflect.Value) {
			if v != nil {
				set(dest, *v)
			}
		})
	default:
		Prop(b, Required(r, paths[0], paths[1:]...).WithNullPolicy(nulls), set)
	}
	return nil
}

// defaultSupplier checks the default text once and re-reads it on every use
// so values holding references are never shared between reads.
func (c *TagCompiler) defaultSupplier(t reflect.Type, text string, r Reader[reflect.Value]) (func() reflect.Value, error) {
	tree, err := defaultTree(t, text)
	if err != nil {
		return nil, err
	}
	env := NewEnv(EnvOpts{FailFast: true})
	if _, err := Read(env, r, tree).Get(); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidDefault, text, err)
	}
	return func() reflect.Value {
		return Read(env, r, tree).MustGet()
	}, nil
}
