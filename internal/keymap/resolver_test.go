package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testBindings() []Binding {
	return []Binding{
		{ActionQuit, []string{"q", "ctrl+c"}, "quit", ContextList},
		{ActionPlayPause, []string{"space", " "}, "pause", ContextList},
		{ActionMoveUp, []string{"k", "up"}, "up", ContextList},
		{ActionJumpStart, []string{"g g"}, "top", ContextList},
		{ActionQuit, []string{"ctrl+c"}, "exit", ContextFilter},
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(testBindings())

	tests := []struct {
		key      string
		expected Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{" ", ActionPlayPause},
		{"space", ActionPlayPause},
		{"k", ActionMoveUp},
		{"up", ActionMoveUp},
		{"g", ""},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Resolve(tt.key))
		})
	}
}

func TestResolver_Sequences(t *testing.T) {
	r := NewResolver(testBindings())

	assert.True(t, r.IsPrefix("g"))
	assert.False(t, r.IsPrefix("k"))
	assert.Equal(t, ActionJumpStart, r.ResolveSequence("g", "g"))
	assert.Equal(t, Action(""), r.ResolveSequence("g", "k"))
	assert.Equal(t, ActionMoveUp, r.ResolveSequence("", "k"))
}

func TestResolver_KeysFor(t *testing.T) {
	r := NewResolver(testBindings())

	assert.Equal(t, []string{"q", "ctrl+c"}, r.KeysFor(ActionQuit), "duplicates are dropped")
	assert.Equal(t, []string{"g g"}, r.KeysFor(ActionJumpStart))
	assert.Nil(t, r.KeysFor(ActionSeekBack))
}
