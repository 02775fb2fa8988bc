package pave

import (
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// Step
///////////////////////////////////////////////////////////////////////////////

// Step is a single navigation coordinate: a field name or an array index.
type Step struct {
	name    string
	index   int
	isIndex bool
}

// Key returns a field-name step.
func Key(name string) Step {
	return Step{name: name}
}

// Index returns an array-index step.
func Index(i int) Step {
	return Step{index: i, isIndex: true}
}

// IsIndex reports whether the step addresses an array element.
func (s Step) IsIndex() bool { return s.isIndex }

// Name returns the field name of a key step.
func (s Step) Name() string { return s.name }

// Idx returns the index of an index step.
func (s Step) Idx() int { return s.index }

// String renders the step as a single RFC 6901 reference token.
func (s Step) String() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return pointerEscaper.Replace(s.name)
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

///////////////////////////////////////////////////////////////////////////////
// Location
///////////////////////////////////////////////////////////////////////////////

// Location is a resolved position in a value tree. The zero value is Root.
//
// Locations are immutable: Append and friends always return a new Location
// that does not share its step storage with the receiver.
type Location struct {
	steps []Step
}

// Root is the empty location.
var Root = Location{}

// LocationOf builds a location from steps.
func LocationOf(steps ...Step) Location {
	return Location{steps: cloneSteps(steps, 0)}
}

// Append returns the child location one step below l.
func (l Location) Append(step Step) Location {
	steps := cloneSteps(l.steps, 1)
	return Location{steps: append(steps, step)}
}

// Key is shorthand for l.Append(Key(name)).
func (l Location) Key(name string) Location {
	return l.Append(Key(name))
}

// Index is shorthand for l.Append(Index(i)).
func (l Location) Index(i int) Location {
	return l.Append(Index(i))
}

// Concat appends every step of path below l.
func (l Location) Concat(path Path) Location {
	steps := cloneSteps(l.steps, len(path.steps))
	return Location{steps: append(steps, path.steps...)}
}

// Depth returns the number of steps.
func (l Location) Depth() int { return len(l.steps) }

// IsRoot reports whether l has no steps.
func (l Location) IsRoot() bool { return len(l.steps) == 0 }

// Steps returns a copy of the steps.
func (l Location) Steps() []Step { return cloneSteps(l.steps, 0) }

// Equal reports whether both locations have the same step sequence.
func (l Location) Equal(other Location) bool {
	return stepsEqual(l.steps, other.steps)
}

// String renders the location as a JSON pointer, with "/" for Root.
func (l Location) String() string {
	return renderSteps(l.steps)
}

///////////////////////////////////////////////////////////////////////////////
// Path
///////////////////////////////////////////////////////////////////////////////

// Path describes where to look for a value, independently of any tree.
type Path struct {
	steps []Step
}

// PathOf builds a path from steps.
func PathOf(steps ...Step) Path {
	return Path{steps: cloneSteps(steps, 0)}
}

// KeyPath builds a path made only of field-name steps.
func KeyPath(names ...string) Path {
	steps := make([]Step, len(names))
	for i, n := range names {
		steps[i] = Key(n)
	}
	return Path{steps: steps}
}

// Append returns a new path with step added at the end.
func (p Path) Append(step Step) Path {
	steps := cloneSteps(p.steps, 1)
	return Path{steps: append(steps, step)}
}

// Len returns the number of steps.
func (p Path) Len() int { return len(p.steps) }

// Steps returns a copy of the steps.
func (p Path) Steps() []Step { return cloneSteps(p.steps, 0) }

// Equal reports whether both paths have the same step sequence.
func (p Path) Equal(other Path) bool {
	return stepsEqual(p.steps, other.steps)
}

func (p Path) String() string {
	return renderSteps(p.steps)
}

func cloneSteps(steps []Step, extra int) []Step {
	out := make([]Step, len(steps), len(steps)+extra)
	copy(out, steps)
	return out
}

func stepsEqual(a, b []Step) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func renderSteps(steps []Step) string {
	if len(steps) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, s := range steps {
		sb.WriteByte('/')
		sb.WriteString(s.String())
	}
	return sb.String()
}
