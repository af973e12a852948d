package keymap

import (
	"strings"

	"github.com/samber/lo"
)

// Contexts a binding can belong to.
const (
	ContextList   = "list"
	ContextFilter = "filter"
)

// Binding maps keys to an action. A key containing a space is a
// two-key sequence such as "g g".
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// All contains all key bindings.
var All = []Binding{
	// List
	{ActionQuit, []string{"q", "ctrl+c"}, "quit", ContextList},
	{ActionFilter, []string{"/"}, "filter", ContextList},
	{ActionSelect, []string{"enter"}, "play", ContextList},
	{ActionPlayPause, []string{"space", " ", "p"}, "pause", ContextList},
	{ActionPrevTrack, []string{"h"}, "prev", ContextList},
	{ActionNextTrack, []string{"l"}, "next", ContextList},
	{ActionSeekBack, []string{"H"}, "seek back", ContextList},
	{ActionSeekForward, []string{"L"}, "seek forward", ContextList},
	{ActionToggleShuffle, []string{"s"}, "shuffle", ContextList},
	{ActionCycleLoop, []string{"r"}, "loop", ContextList},
	{ActionMoveDown, []string{"j", "down"}, "down", ContextList},
	{ActionMoveUp, []string{"k", "up"}, "up", ContextList},
	{ActionJumpStart, []string{"g g"}, "top", ContextList},
	{ActionJumpEnd, []string{"G"}, "bottom", ContextList},
	{ActionJumpPlaying, []string{"z z"}, "now playing", ContextList},

	// Filter prompt
	{ActionQuit, []string{"ctrl+c"}, "quit", ContextFilter},
	{ActionClearFilter, []string{"esc"}, "clear", ContextFilter},
	{ActionSelect, []string{"enter"}, "play", ContextFilter},
	{ActionMoveDown, []string{"ctrl+j", "ctrl+n", "down"}, "down", ContextFilter},
	{ActionMoveUp, []string{"ctrl+k", "ctrl+p", "up"}, "up", ContextFilter},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	return lo.Filter(All, func(b Binding, _ int) bool {
		return b.Context == context
	})
}

// Help renders "key description" pairs for actions, using the first
// key bound to each. Unbound actions are left out.
func Help(r *Resolver, actions ...Action) string {
	parts := lo.FilterMap(actions, func(a Action, _ int) (string, bool) {
		keys := r.KeysFor(a)
		if len(keys) == 0 {
			return "", false
		}
		return strings.ReplaceAll(keys[0], " ", "") + " " + r.descriptions[a], true
	})
	return strings.Join(parts, " · ")
}
