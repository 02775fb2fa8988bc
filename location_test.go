package pave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationString(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want string
	}{
		{"root", Root, "/"},
		{"key", Root.Key("id"), "/id"},
		{"index", Root.Key("items").Index(0), "/items/0"},
		{"escaped", Root.Key("a/b").Key("c~d"), "/a~1b/c~0d"},
		{"of_steps", LocationOf(Index(2), Key("x")), "/2/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loc.String())
		})
	}
}

func TestLocationImmutable(t *testing.T) {
	parent := Root.Key("a")
	left := parent.Key("b")
	right := parent.Key("c")

	assert.Equal(t, "/a", parent.String())
	assert.Equal(t, "/a/b", left.String())
	assert.Equal(t, "/a/c", right.String())

	steps := left.Steps()
	steps[0] = Key("z")
	assert.Equal(t, "/a/b", left.String())
}

func TestLocationEqual(t *testing.T) {
	assert.True(t, Root.Equal(LocationOf()))
	assert.True(t, Root.Key("a").Index(1).Equal(LocationOf(Key("a"), Index(1))))
	assert.False(t, Root.Key("a").Equal(Root.Index(0)))
	assert.False(t, Root.Key("a").Equal(Root.Key("a").Key("b")))
}

func TestLocationConcat(t *testing.T) {
	loc := Root.Key("user").Concat(KeyPath("address", "city"))
	assert.Equal(t, "/user/address/city", loc.String())
	assert.Equal(t, 3, loc.Depth())
	assert.False(t, loc.IsRoot())
	assert.True(t, Root.IsRoot())
}

func TestPath(t *testing.T) {
	p := KeyPath("a").Append(Index(3))
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, "/a/3", p.String())
	assert.True(t, p.Equal(PathOf(Key("a"), Index(3))))

	steps := p.Steps()
	assert.True(t, steps[1].IsIndex())
	assert.Equal(t, 3, steps[1].Idx())
	assert.Equal(t, "a", steps[0].Name())
}
