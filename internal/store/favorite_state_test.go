package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStateAdd(t *testing.T) {
	for _, current := range []FavoriteState{FavoriteNone, FavoriteActive, FavoriteInactive} {
		next, ok := NextState(OpAdd, current)
		assert.True(t, ok)
		assert.Equal(t, FavoriteActive, next)
	}
}

func TestNextStateRemove(t *testing.T) {
	next, ok := NextState(OpRemove, FavoriteActive)
	assert.True(t, ok)
	assert.Equal(t, FavoriteInactive, next)

	// Removing what was never added, or already removed, is invalid.
	_, ok = NextState(OpRemove, FavoriteNone)
	assert.False(t, ok)
	_, ok = NextState(OpRemove, FavoriteInactive)
	assert.False(t, ok)
}

func TestNextStateToggle(t *testing.T) {
	next, ok := NextState(OpToggle, FavoriteNone)
	assert.True(t, ok)
	assert.Equal(t, FavoriteActive, next)

	next, ok = NextState(OpToggle, FavoriteActive)
	assert.True(t, ok)
	assert.Equal(t, FavoriteInactive, next)

	next, ok = NextState(OpToggle, FavoriteInactive)
	assert.True(t, ok)
	assert.Equal(t, FavoriteActive, next)
}

func TestToggleSequenceFromNoRecord(t *testing.T) {
	state := FavoriteNone
	want := []FavoriteState{FavoriteActive, FavoriteInactive, FavoriteActive}

	for i, expected := range want {
		next, ok := NextState(OpToggle, state)
		assert.True(t, ok, "toggle %d", i)
		assert.Equal(t, expected, next, "toggle %d", i)
		state = next
	}
}

func TestAddThenRemoveEndsInactive(t *testing.T) {
	state := FavoriteNone

	state, ok := NextState(OpAdd, state)
	assert.True(t, ok)
	state, ok = NextState(OpRemove, state)
	assert.True(t, ok)
	assert.Equal(t, FavoriteInactive, state)
}
