package gocube

import (
	"fmt"
	"sort"
	"strings"
)

// KeyMap translates key presses into moves.
// Each bound key selects a layer; holding shift reverses the direction.
type KeyMap struct {
	name string
	keys map[string]Move
}

// NotationKeys binds each face letter to its own layer: u, d, l, r, f, b.
var NotationKeys = KeyMap{
	name: "notation",
	keys: map[string]Move{
		"u": U,
		"d": D,
		"l": L,
		"r": R,
		"f": F,
		"b": B,
	},
}

// WASDKeys binds the left-hand home keys: w/s for U/D, a/d for L/R,
// q/e for F/B.
var WASDKeys = KeyMap{
	name: "wasd",
	keys: map[string]Move{
		"w": U,
		"s": D,
		"a": L,
		"d": R,
		"q": F,
		"e": B,
	},
}

// KeyMaps lists the built-in key maps by name.
var KeyMaps = map[string]KeyMap{
	NotationKeys.name: NotationKeys,
	WASDKeys.name:     WASDKeys,
}

// ParseKeyMap returns the built-in key map with the given name.
func ParseKeyMap(name string) (KeyMap, error) {
	km, ok := KeyMaps[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return KeyMap{}, fmt.Errorf("%w: %q", ErrUnknownKeyMap, name)
	}
	return km, nil
}

// Name returns the key map name.
func (k KeyMap) Name() string {
	return k.name
}

// Lookup maps a key press to a move. Keys are matched case-insensitively;
// clockwise is !shift. Unbound keys return false.
func (k KeyMap) Lookup(key string, shift bool) (Move, bool) {
	m, ok := k.keys[strings.ToLower(key)]
	if !ok {
		return Move{}, false
	}
	m.Clockwise = !shift
	return m, true
}

// Bindings returns "key=move" pairs sorted by key, for help screens.
func (k KeyMap) Bindings() []string {
	out := make([]string, 0, len(k.keys))
	for key, m := range k.keys {
		out = append(out, key+"="+m.Face())
	}
	sort.Strings(out)
	return out
}
