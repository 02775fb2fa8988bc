package pave

// PropertyKind tells how a property treats an absent value.
type PropertyKind int

const (
	// RequiredProperty fails with a path-missing error when absent.
	RequiredProperty PropertyKind = iota
	// OptionalProperty reads an absent value as nil.
	OptionalProperty
	// DefaultableProperty reads an absent value as its default.
	DefaultableProperty
	// ConditionalProperty is required only when its predicate holds.
	ConditionalProperty
)

func (k PropertyKind) String() string {
	switch k {
	case RequiredProperty:
		return "required"
	case OptionalProperty:
		return "optional"
	case DefaultableProperty:
		return "defaultable"
	case ConditionalProperty:
		return "conditional"
	default:
		return "unknown"
	}
}

// NullPolicy decides what an explicit null found at a property's path means.
type NullPolicy int

const (
	// NullReadByInner hands an explicit null to the inner reader, which
	// fails with an invalid-type error unless it is Nullable or IfNullValue.
	NullReadByInner NullPolicy = iota
	// NullAsAbsent treats an explicit null like a missing path: nil for
	// optional properties, the default for defaultable ones and a
	// path-missing error for required ones.
	NullAsAbsent
)

// PropertySpec describes how one property of a struct is read: where to
// look, how to read what is found, and what to do when nothing is found.
//
// A PropertySpec is itself a Reader of the enclosing struct value.
type PropertySpec[T any] struct {
	kind       PropertyKind
	paths      []Path
	nulls      NullPolicy
	resolve    func(env Env, loc Location, from Value, nulls NullPolicy) Result[T]
	composed   func(env Env, loc Location, from Value) Result[T]
	validators []Validator[T]
}

// Required declares a property that must be present at path or, failing
// that, at one of the alternative paths, tried in order.
func Required[T any](r Reader[T], path Path, alternatives ...Path) PropertySpec[T] {
	return PropertySpec[T]{
		kind:  RequiredProperty,
		paths: joinPaths(path, alternatives),
		resolve: func(env Env, loc Location, from Value, nulls NullPolicy) Result[T] {
			return ReadRequired(env, firstDefined(path, alternatives, loc, from, nulls), r)
		},
	}
}

// Optional declares a property read as nil when it is absent at every path.
func Optional[T any](r Reader[T], path Path, alternatives ...Path) PropertySpec[*T] {
	return PropertySpec[*T]{
		kind:  OptionalProperty,
		paths: joinPaths(path, alternatives),
		resolve: func(env Env, loc Location, from Value, nulls NullPolicy) Result[*T] {
			return ReadOptional(env, firstDefined(path, alternatives, loc, from, nulls), r)
		},
	}
}

// Defaultable declares a property read as def() when it is absent at every
// path.
func Defaultable[T any](r Reader[T], def func() T, path Path, alternatives ...Path) PropertySpec[T] {
	return PropertySpec[T]{
		kind:  DefaultableProperty,
		paths: joinPaths(path, alternatives),
		resolve: func(env Env, loc Location, from Value, nulls NullPolicy) Result[T] {
			return ReadOptionalOrDefault(env, firstDefined(path, alternatives, loc, from, nulls), r, def)
		},
	}
}

// RequiredIf declares a property that is required when pred holds for the
// enclosing struct and optional otherwise.
func RequiredIf[T any](pred Predicate, r Reader[T], path Path, alternatives ...Path) PropertySpec[*T] {
	return PropertySpec[*T]{
		kind:  ConditionalProperty,
		paths: joinPaths(path, alternatives),
		resolve: func(env Env, loc Location, from Value, nulls NullPolicy) Result[*T] {
			return ReadRequiredIf(env, firstDefined(path, alternatives, loc, from, nulls), from, pred, r)
		},
	}
}

// Kind returns the property kind. Or keeps the kind of the primary spec.
func (p PropertySpec[T]) Kind() PropertyKind { return p.kind }

// Paths returns every declared path, alternatives included, in order.
func (p PropertySpec[T]) Paths() []Path {
	return append([]Path(nil), p.paths...)
}

// WithNullPolicy returns a copy of p using policy for explicit nulls.
// Specs built by Or keep the policies of their parts.
func (p PropertySpec[T]) WithNullPolicy(policy NullPolicy) PropertySpec[T] {
	p.nulls = policy
	return p
}

// Validate returns a copy of p that runs validators after a successful read.
func (p PropertySpec[T]) Validate(validators ...Validator[T]) PropertySpec[T] {
	p.validators = append(append([]Validator[T](nil), p.validators...), validators...)
	return p
}

// Or returns a spec that reads p and, only if p fails, alt. When both fail
// their causes are reported together. The declared paths are the union of
// both specs' paths.
func (p PropertySpec[T]) Or(alt PropertySpec[T]) PropertySpec[T] {
	primary := p
	return PropertySpec[T]{
		kind:  p.kind,
		paths: unionPaths(p.paths, alt.paths),
		composed: func(env Env, loc Location, from Value) Result[T] {
			return primary.Read(env, loc, from).OrElse(func() Result[T] {
				return alt.Read(env, loc, from)
			})
		},
	}
}

// Read implements Reader; from is the enclosing struct found at loc.
func (p PropertySpec[T]) Read(env Env, loc Location, from Value) Result[T] {
	var res Result[T]
	if p.composed != nil {
		res = p.composed(env, loc, from)
	} else {
		res = p.resolve(env, loc, from, p.nulls)
	}
	for _, v := range p.validators {
		res = ValidateResult(env, res, v)
	}
	return res
}

// FilterProperty returns a copy of p that turns values rejected by pred
// into nil.
func FilterProperty[T any](p PropertySpec[*T], pred func(env Env, value T) bool) PropertySpec[*T] {
	inner := p
	return PropertySpec[*T]{
		kind:  p.kind,
		paths: p.Paths(),
		composed: func(env Env, loc Location, from Value) Result[*T] {
			return FilterResult(env, inner.Read(env, loc, from), pred)
		},
	}
}

// firstDefined resolves path and its alternatives in order. The first
// Defined lookup wins. Otherwise the first InvalidType is reported, since a
// mistyped container outranks a missing value, and failing that the
// PathMissing of the primary path.
func firstDefined(path Path, alternatives []Path, loc Location, from Value, nulls NullPolicy) LookupResult {
	var fallback LookupResult
	for i := -1; i < len(alternatives); i++ {
		p := path
		if i >= 0 {
			p = alternatives[i]
		}
		lookup := Lookup(p, loc, from)
		switch l := lookup.(type) {
		case Defined:
			if nulls == NullAsAbsent && KindOf(l.Value) == NullKind {
				lookup = PathMissing{Loc: l.Loc}
				break
			}
			return l
		case InvalidType:
			if _, seen := fallback.(InvalidType); !seen {
				fallback = l
			}
			continue
		}
		if fallback == nil {
			fallback = lookup
		}
	}
	return fallback
}

func joinPaths(path Path, alternatives []Path) []Path {
	return append([]Path{path}, alternatives...)
}

func unionPaths(a, b []Path) []Path {
	out := append([]Path(nil), a...)
	for _, p := range b {
		dup := false
		for _, q := range out {
			if q.Equal(p) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}
