package pave

import (
	"fmt"
	"strconv"
	"strings"
)

// Cause groups one or more errors found at a single location.
type Cause struct {
	Location Location
	Errors   []error
}

func (c Cause) String() string {
	msgs := make([]string, len(c.Errors))
	for i, err := range c.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s: %s", c.Location, strings.Join(msgs, "; "))
}

// Failure is the error side of a Result: a non-empty, ordered list of
// causes. Order is encounter order.
//
// Failure implements error so it can leave the library through ordinary
// Go error returns.
type Failure struct {
	causes []Cause
}

// NewFailure returns a one-cause failure at loc. Nil errors are dropped; if
// none is left the cause carries ErrValidation.
func NewFailure(loc Location, err error, more ...error) Failure {
	errs := make([]error, 0, 1+len(more))
	if err != nil {
		errs = append(errs, err)
	}
	for _, e := range more {
		if e != nil {
			errs = append(errs, e)
		}
	}
	if len(errs) == 0 {
		errs = append(errs, ErrValidation)
	}
	return Failure{causes: []Cause{{Location: loc, Errors: errs}}}
}

// FailureOf builds a failure from causes, dropping nil errors and causes
// left without errors. It returns false if nothing is left.
func FailureOf(causes ...Cause) (Failure, bool) {
	var b failureBuilder
	for _, c := range causes {
		errs := make([]error, 0, len(c.Errors))
		for _, err := range c.Errors {
			if err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) == 0 {
			continue
		}
		b.addCause(Cause{Location: c.Location, Errors: errs})
	}
	return b.failure(), b.failed()
}

// Causes returns a copy of the causes.
func (f Failure) Causes() []Cause {
	out := make([]Cause, len(f.causes))
	for i, c := range f.causes {
		out[i] = Cause{Location: c.Location, Errors: append([]error(nil), c.Errors...)}
	}
	return out
}

// First returns the first cause.
func (f Failure) First() Cause {
	return f.causes[0]
}

// Len returns the number of causes.
func (f Failure) Len() int {
	return len(f.causes)
}

// Merge returns f followed by the causes of other. Errors of a cause whose
// location is already present are appended to the existing cause. Neither
// input is modified.
func (f Failure) Merge(other Failure) Failure {
	var b failureBuilder
	b.grow(len(f.causes) + len(other.causes))
	b.add(f)
	b.add(other)
	return b.failure()
}

///////////////////////////////////////////////////////////////////////////////
// Accumulation
///////////////////////////////////////////////////////////////////////////////

// failureBuilder accumulates causes in encounter order, grouping causes at
// the same location. Adding a cause costs O(len(cause.Errors)).
//
// The zero value is ready to use.
type failureBuilder struct {
	causes []Cause
	owned  []bool // causes[i].Errors is private to the builder
	index  map[string]int
}

func (b *failureBuilder) grow(n int) {
	if b.index == nil {
		b.index = make(map[string]int, n)
	}
	if cap(b.causes)-len(b.causes) < n {
		causes := make([]Cause, len(b.causes), len(b.causes)+n)
		copy(causes, b.causes)
		b.causes = causes
	}
}

// add appends every cause of f.
func (b *failureBuilder) add(f Failure) {
	for _, c := range f.causes {
		b.addCause(c)
	}
}

// addCause never writes to c.Errors or to a slice shared with any Failure.
func (b *failureBuilder) addCause(c Cause) {
	if b.index == nil {
		b.index = make(map[string]int)
	}
	key := locationKey(c.Location)
	i, found := b.index[key]
	if !found {
		b.index[key] = len(b.causes)
		b.causes = append(b.causes, Cause{Location: c.Location, Errors: c.Errors})
		b.owned = append(b.owned, false)
		return
	}
	if !b.owned[i] {
		errs := make([]error, len(b.causes[i].Errors), len(b.causes[i].Errors)+len(c.Errors))
		copy(errs, b.causes[i].Errors)
		b.causes[i].Errors = errs
		b.owned[i] = true
	}
	b.causes[i].Errors = append(b.causes[i].Errors, c.Errors...)
}

func (b *failureBuilder) failed() bool { return len(b.causes) > 0 }

// failure returns the accumulated causes. The builder must not be used
// afterwards.
func (b *failureBuilder) failure() Failure {
	return Failure{causes: b.causes}
}

// locationKey renders loc so that distinct step sequences never collide;
// a key step "0" and an index step 0 get different keys.
func locationKey(loc Location) string {
	var sb strings.Builder
	for _, step := range loc.steps {
		if step.isIndex {
			sb.WriteByte('#')
			sb.WriteString(strconv.Itoa(step.index))
		} else {
			sb.WriteByte('.')
			sb.WriteString(strconv.Quote(step.name))
		}
	}
	return sb.String()
}

// Errors returns every error at loc, or nil.
func (f Failure) Errors(loc Location) []error {
	for _, c := range f.causes {
		if c.Location.Equal(loc) {
			return append([]error(nil), c.Errors...)
		}
	}
	return nil
}

// Error implements the error interface.
func (f Failure) Error() string {
	parts := make([]string, len(f.causes))
	for i, c := range f.causes {
		parts[i] = c.String()
	}
	return "read failed: " + strings.Join(parts, ", ")
}

// Unwrap exposes every wrapped error to errors.Is and errors.As.
func (f Failure) Unwrap() []error {
	var errs []error
	for _, c := range f.causes {
		errs = append(errs, c.Errors...)
	}
	return errs
}
