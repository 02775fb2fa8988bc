package pave

// ArrayBuilder configures how the elements of an array node are read.
//
// Elements at positions covered by PrefixItems use the matching prefix
// reader; the rest use the Items reader. Without an Items reader the rest
// are dropped, or reported as additional items once ForbidAdditionalItems
// is set.
type ArrayBuilder[T any] struct {
	prefix           []Reader[T]
	items            Reader[T]
	forbidAdditional bool
	validators       []Validator[ArrayValue]
}

// NewArrayBuilder returns an empty builder.
func NewArrayBuilder[T any]() *ArrayBuilder[T] {
	return &ArrayBuilder[T]{}
}

// PrefixItems appends positional readers.
func (b *ArrayBuilder[T]) PrefixItems(readers ...Reader[T]) *ArrayBuilder[T] {
	b.prefix = append(b.prefix, readers...)
	return b
}

// Items sets the reader for every element past the prefix.
func (b *ArrayBuilder[T]) Items(r Reader[T]) *ArrayBuilder[T] {
	b.items = r
	return b
}

// ForbidAdditionalItems makes elements past the prefix an error when no
// Items reader is set.
func (b *ArrayBuilder[T]) ForbidAdditionalItems() *ArrayBuilder[T] {
	b.forbidAdditional = true
	return b
}

// Validate adds array-level validators, e.g. MinItems. They see the raw
// array and run before any element is read.
func (b *ArrayBuilder[T]) Validate(validators ...Validator[ArrayValue]) *ArrayBuilder[T] {
	b.validators = append(b.validators, validators...)
	return b
}

// Build compiles the configuration into a reader.
func (b *ArrayBuilder[T]) Build() *ArrayReader[T] {
	return &ArrayReader[T]{
		prefix:           append([]Reader[T](nil), b.prefix...),
		items:            b.items,
		forbidAdditional: b.forbidAdditional,
		validator:        AllOf(b.validators...),
	}
}

// ItemsOf is shorthand for an array whose every element is read by r.
func ItemsOf[T any](r Reader[T]) *ArrayReader[T] {
	return NewArrayBuilder[T]().Items(r).Build()
}

// ArrayReader reads an array node into a []T.
type ArrayReader[T any] struct {
	prefix           []Reader[T]
	items            Reader[T]
	forbidAdditional bool
	validator        Validator[ArrayValue]
}

// Read implements Reader.
//
// The array-level validators run first, then elements are read in index
// order. Under fail-fast the first failure is returned alone; otherwise
// validator failures come first, followed by element failures.
func (r *ArrayReader[T]) Read(env Env, loc Location, value Value) Result[[]T] {
	if f, exceeded := env.checkDepth(loc); exceeded {
		return Fail[[]T](f)
	}
	arr, ok := value.(ArrayValue)
	if !ok {
		return Fail[[]T](env.invalidType(loc, KindOf(value), ArrayKind))
	}

	var acc failureBuilder
	if err := r.validator(env, loc, arr); err != nil {
		f := failureFromError(loc, err)
		if env.FailFast() {
			return Fail[[]T](f)
		}
		acc.add(f)
	}

	out := make([]T, 0, len(arr))
	for i, elem := range arr {
		elemLoc := loc.Index(i)

		var res Result[T]
		switch {
		case i < len(r.prefix):
			res = r.prefix[i].Read(env, elemLoc, elem)
		case r.items != nil:
			res = r.items.Read(env, elemLoc, elem)
		case r.forbidAdditional:
			res = Fail[T](env.additionalItems(elemLoc, i))
		default:
			// Additional items are dropped; nothing left to read.
			return r.finish(loc, out, &acc)
		}

		v, ok := res.Value()
		if ok {
			out = append(out, v)
			continue
		}
		f, _ := res.Failure()
		env.logFailure("item read failed", elemLoc, f)
		if env.FailFast() {
			return Fail[[]T](f)
		}
		acc.add(f)
	}
	return r.finish(loc, out, &acc)
}

func (r *ArrayReader[T]) finish(loc Location, out []T, acc *failureBuilder) Result[[]T] {
	if acc.failed() {
		return Fail[[]T](acc.failure())
	}
	return Success(loc, out)
}
