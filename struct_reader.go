package pave

// PropertyInfo describes a declared property for introspection.
type PropertyInfo struct {
	Kind  PropertyKind
	Paths []Path
}

type boundProperty[T any] struct {
	info  PropertyInfo
	apply func(env Env, loc Location, from Value, dest *T) (Failure, bool)
}

// StructBuilder accumulates property specs for a struct type T and compiles
// them into a StructReader.
//
//	b := pave.NewStructBuilder[User]()
//	pave.Prop(b, pave.Required(pave.String(), pave.KeyPath("id")), func(u *User, v string) { u.ID = v })
//	users := b.Build()
type StructBuilder[T any] struct {
	init       func() T
	props      []boundProperty[T]
	validators []Validator[T]
}

// NewStructBuilder returns an empty builder.
func NewStructBuilder[T any]() *StructBuilder[T] {
	return &StructBuilder[T]{}
}

// newStructBuilder returns a builder whose reads start from init() instead of
// the zero T.
func newStructBuilder[T any](init func() T) *StructBuilder[T] {
	return &StructBuilder[T]{init: init}
}

// Prop declares a property of T read by spec and stored by set.
func Prop[T, F any](b *StructBuilder[T], spec PropertySpec[F], set func(dest *T, value F)) *StructBuilder[T] {
	b.props = append(b.props, boundProperty[T]{
		info: PropertyInfo{Kind: spec.Kind(), Paths: spec.Paths()},
		apply: func(env Env, loc Location, from Value, dest *T) (Failure, bool) {
			res := spec.Read(env, loc, from)
			v, ok := res.Value()
			if !ok {
				f, _ := res.Failure()
				return f, true
			}
			set(dest, v)
			return Failure{}, false
		},
	})
	return b
}

// Validate adds whole-struct validators. They run, in order, once every
// property has been read successfully.
func (b *StructBuilder[T]) Validate(validators ...Validator[T]) *StructBuilder[T] {
	b.validators = append(b.validators, validators...)
	return b
}

// Build compiles the declared properties into a reader. The builder may be
// reused afterwards without affecting the returned reader.
func (b *StructBuilder[T]) Build() *StructReader[T] {
	return &StructReader[T]{
		init:      b.init,
		props:     append([]boundProperty[T](nil), b.props...),
		validator: AllOf(b.validators...),
	}
}

// StructReader reads a struct node into a T.
type StructReader[T any] struct {
	init      func() T
	props     []boundProperty[T]
	validator Validator[T]
}

// Properties returns the declared properties in declaration order.
func (r *StructReader[T]) Properties() []PropertyInfo {
	out := make([]PropertyInfo, len(r.props))
	for i, p := range r.props {
		out[i] = PropertyInfo{Kind: p.info.Kind, Paths: append([]Path(nil), p.info.Paths...)}
	}
	return out
}

// Read implements Reader.
//
// Properties are read in declaration order. Under fail-fast the first
// failing property is returned alone; otherwise every property is read and
// all failures are merged in order. Struct validators, then *T's Validate
// method if it has one, run only when every property succeeded.
func (r *StructReader[T]) Read(env Env, loc Location, value Value) Result[T] {
	if f, exceeded := env.checkDepth(loc); exceeded {
		return Fail[T](f)
	}
	obj, ok := value.(*StructValue)
	if !ok || obj == nil {
		return Fail[T](env.invalidType(loc, KindOf(value), StructKind))
	}

	var (
		dest T
		acc  failureBuilder
	)
	if r.init != nil {
		dest = r.init()
	}
	for _, p := range r.props {
		f, bad := p.apply(env, loc, obj, &dest)
		if !bad {
			continue
		}
		env.logFailure("property read failed", loc, f)
		if env.FailFast() {
			return Fail[T](f)
		}
		acc.add(f)
	}
	if acc.failed() {
		return Fail[T](acc.failure())
	}

	if err := r.validator(env, loc, dest); err != nil {
		return Fail[T](failureFromError(loc, err))
	}
	if v, ok := any(&dest).(Validatable); ok {
		if err := v.Validate(); err != nil {
			return Fail[T](failureFromError(loc, err))
		}
	}
	return Success(loc, dest)
}
