package keymap

import (
	"strings"

	"github.com/samber/lo"
)

// Resolver maps key strings to actions.
type Resolver struct {
	bindings     map[string]Action   // key -> action
	byAction     map[Action][]string // action -> keys, in binding order
	descriptions map[Action]string
	prefixes     map[string]bool // first keys of sequences
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings:     make(map[string]Action),
		byAction:     make(map[Action][]string),
		descriptions: make(map[Action]string),
		prefixes:     make(map[string]bool),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
			if first, _, ok := strings.Cut(key, " "); ok {
				r.prefixes[first] = true
			}
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
		if _, ok := r.descriptions[b.Action]; !ok {
			r.descriptions[b.Action] = b.Description
		}
	}
	for action, keys := range r.byAction {
		r.byAction[action] = lo.Uniq(keys)
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// ResolveSequence resolves key typed after prefix. An empty prefix is
// a plain Resolve.
func (r *Resolver) ResolveSequence(prefix, key string) Action {
	if prefix == "" {
		return r.Resolve(key)
	}
	return r.bindings[prefix+" "+key]
}

// IsPrefix reports whether key starts a two-key sequence.
func (r *Resolver) IsPrefix(key string) bool {
	return r.prefixes[key]
}

// KeysFor returns the keys bound to an action (for help/documentation).
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}
