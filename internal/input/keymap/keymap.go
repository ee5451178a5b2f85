// Package keymap maps key presses to action names.
//
// A Keymap starts from Default and is then overlaid with the [keys] table
// of the user configuration. A configured action replaces all default
// keys for that action; actions not mentioned keep their defaults.
package keymap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/csve/internal/input/key"
)

// Binding ties one key to an action.
type Binding struct {
	Key    key.Event
	Action string
}

// Keymap resolves key events to action names.
type Keymap struct {
	mu       sync.RWMutex
	byKey    map[key.Event]string
	byAction map[string][]key.Event
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{
		byKey:    make(map[key.Event]string),
		byAction: make(map[string][]key.Event),
	}
}

// Bind adds a key for action. A key already bound to another action is
// moved to the new one.
func (km *Keymap) Bind(spec, action string) error {
	ev, err := key.Parse(spec)
	if err != nil {
		return fmt.Errorf("bind %s: %w", action, err)
	}
	km.mu.Lock()
	defer km.mu.Unlock()
	km.bind(ev, action)
	return nil
}

func (km *Keymap) bind(ev key.Event, action string) {
	if prev, ok := km.byKey[ev]; ok {
		if prev == action {
			return
		}
		km.byAction[prev] = remove(km.byAction[prev], ev)
		if len(km.byAction[prev]) == 0 {
			delete(km.byAction, prev)
		}
	}
	km.byKey[ev] = action
	km.byAction[action] = append(km.byAction[action], ev)
}

// BindAll overlays a set of bindings. Every action in overrides loses
// its existing keys first. Specs are validated before anything changes.
func (km *Keymap) BindAll(overrides map[string][]string) error {
	parsed := make(map[string][]key.Event, len(overrides))
	for action, specs := range overrides {
		for _, spec := range specs {
			ev, err := key.Parse(spec)
			if err != nil {
				return fmt.Errorf("keys.%s: %w", action, err)
			}
			parsed[action] = append(parsed[action], ev)
		}
	}

	km.mu.Lock()
	defer km.mu.Unlock()
	for _, action := range sortedKeys(parsed) {
		km.unbindAction(action)
	}
	for _, action := range sortedKeys(parsed) {
		for _, ev := range parsed[action] {
			km.bind(ev, action)
		}
	}
	return nil
}

// Unbind removes a single key.
func (km *Keymap) Unbind(spec string) error {
	ev, err := key.Parse(spec)
	if err != nil {
		return err
	}
	km.mu.Lock()
	defer km.mu.Unlock()
	if action, ok := km.byKey[ev]; ok {
		delete(km.byKey, ev)
		km.byAction[action] = remove(km.byAction[action], ev)
		if len(km.byAction[action]) == 0 {
			delete(km.byAction, action)
		}
	}
	return nil
}

func (km *Keymap) unbindAction(action string) {
	for _, ev := range km.byAction[action] {
		delete(km.byKey, ev)
	}
	delete(km.byAction, action)
}

// Lookup returns the action bound to ev.
func (km *Keymap) Lookup(ev key.Event) (string, bool) {
	km.mu.RLock()
	defer km.mu.RUnlock()
	action, ok := km.byKey[ev]
	return action, ok
}

// Keys returns the keys bound to action in binding order.
func (km *Keymap) Keys(action string) []key.Event {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return append([]key.Event(nil), km.byAction[action]...)
}

// Bindings returns every binding sorted by action name.
func (km *Keymap) Bindings() []Binding {
	km.mu.RLock()
	defer km.mu.RUnlock()
	var out []Binding
	for _, action := range sortedKeys(km.byAction) {
		for _, ev := range km.byAction[action] {
			out = append(out, Binding{Key: ev, Action: action})
		}
	}
	return out
}

// Len returns the number of bound keys.
func (km *Keymap) Len() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.byKey)
}

func remove(evs []key.Event, ev key.Event) []key.Event {
	out := evs[:0]
	for _, e := range evs {
		if e != ev {
			out = append(out, e)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
