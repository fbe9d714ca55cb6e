package interest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggle(t *testing.T) {
	set, on := Toggle([]string{"a1"}, "a2")
	assert.True(t, on)
	assert.Equal(t, []string{"a1", "a2"}, set)

	set, on = Toggle(set, "a1")
	assert.False(t, on)
	assert.Equal(t, []string{"a2"}, set)
}

func TestToggleTwiceRestoresMembership(t *testing.T) {
	orig := []string{"x", "y"}
	once, _ := Toggle(orig, "z")
	twice, on := Toggle(once, "z")
	assert.False(t, on)
	assert.ElementsMatch(t, orig, twice)
}

func TestToggleDoesNotAliasInput(t *testing.T) {
	orig := make([]string, 1, 4)
	orig[0] = "a"
	out, _ := Toggle(orig, "b")
	out[0] = "changed"
	assert.Equal(t, "a", orig[0])
}

func TestToggleRemovesDuplicates(t *testing.T) {
	set, on := Toggle([]string{"a", "b", "a"}, "a")
	assert.False(t, on)
	assert.Equal(t, []string{"b"}, set)
}

func TestAdd(t *testing.T) {
	set, added := Add(nil, "a")
	assert.True(t, added)
	assert.Equal(t, []string{"a"}, set)

	set, added = Add(set, "a")
	assert.False(t, added)
	assert.Equal(t, []string{"a"}, set)
}

func TestIndex(t *testing.T) {
	idx := Index([]string{"a", "b"})
	_, ok := idx["b"]
	assert.True(t, ok)
	_, ok = idx["c"]
	assert.False(t, ok)
}
