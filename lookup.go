package pave

// LookupResult is the outcome of resolving a Path against a Value. It is
// always exactly one of Defined, PathMissing or InvalidType.
type LookupResult interface {
	// Location is where the lookup stopped.
	Location() Location
	isLookupResult()
}

// Defined is a lookup that reached a value.
type Defined struct {
	Loc   Location
	Value Value
}

// PathMissing is a lookup that hit an absent key or element.
type PathMissing struct {
	Loc Location
}

// InvalidType is a lookup that could not descend because the container at
// Loc has the wrong kind.
type InvalidType struct {
	Loc      Location
	Expected []Kind
	Actual   Kind
}

func (d Defined) Location() Location     { return d.Loc }
func (m PathMissing) Location() Location { return m.Loc }
func (t InvalidType) Location() Location { return t.Loc }

func (Defined) isLookupResult()     {}
func (PathMissing) isLookupResult() {}
func (InvalidType) isLookupResult() {}

// Lookup walks path from value, whose own position is loc.
//
// A field step on a Struct descends when the key exists and yields
// PathMissing at the child location otherwise. A field step on anything else
// yields InvalidType anchored at the parent. An index step descends only
// into an Array holding that index; an out-of-range index or a non-Array
// yields InvalidType at the parent.
func Lookup(path Path, loc Location, value Value) LookupResult {
	current := value
	if current == nil {
		current = NullValue{}
	}
	for _, step := range path.steps {
		if step.isIndex {
			arr, ok := current.(ArrayValue)
			if !ok {
				return InvalidType{Loc: loc, Expected: []Kind{ArrayKind}, Actual: current.Kind()}
			}
			if step.index < 0 || step.index >= len(arr) {
				return InvalidType{Loc: loc, Expected: []Kind{ArrayKind}, Actual: ArrayKind}
			}
			loc = loc.Append(step)
			current = arr[step.index]
		} else {
			obj, ok := current.(*StructValue)
			if !ok || obj == nil {
				return InvalidType{Loc: loc, Expected: []Kind{StructKind}, Actual: KindOf(current)}
			}
			loc = loc.Append(step)
			child, found := obj.Get(step.name)
			if !found {
				return PathMissing{Loc: loc}
			}
			current = child
		}
		if current == nil {
			current = NullValue{}
		}
	}
	return Defined{Loc: loc, Value: current}
}
