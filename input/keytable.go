package input

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space": ' ',
}

// keyAliases name the special keys accepted in bindings
var keyAliases = map[string]Key{
	"esc":    KeyEscape,
	"ctrl+c": KeyCtrlC,
	"ctrl+q": KeyCtrlQ,
	"enter":  KeyEnter,
}

// KeyTable maps keys to intents
type KeyTable struct {
	Runes map[rune]IntentType
	Keys  map[Key]IntentType
}

// DefaultKeyTable returns the built-in bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			'p': IntentPause,
			'd': IntentToggleDebug,
			'm': IntentToggleMute,
		},
		Keys: map[Key]IntentType{
			KeyEscape: IntentQuit,
			KeyCtrlC:  IntentQuit,
			KeyCtrlQ:  IntentQuit,
		},
	}
}

// Lookup resolves a key event; r is only consulted for KeyRune
func (kt *KeyTable) Lookup(k Key, r rune) IntentType {
	if k == KeyRune {
		return kt.Runes[r]
	}
	return kt.Keys[k]
}

// Apply overrides bindings from a key -> action map, e.g. {"x": "quit", "esc": "none"}
// Ctrl+C always quits so a bad binding cannot trap the user
func (kt *KeyTable) Apply(bindings map[string]string) error {
	for key, action := range bindings {
		intent, ok := actionRegistry[strings.ToLower(action)]
		if !ok {
			return fmt.Errorf("key %q: unknown action %q", key, action)
		}

		name := strings.ToLower(key)
		if special, ok := keyAliases[name]; ok {
			if special == KeyCtrlC {
				continue
			}
			kt.set(kt.Keys, special, intent)
			continue
		}

		r, ok := runeAliases[name]
		if !ok {
			if utf8.RuneCountInString(key) != 1 {
				return fmt.Errorf("key %q: expected a single character or a named key", key)
			}
			r, _ = utf8.DecodeRuneInString(key)
		}
		kt.setRune(r, intent)
	}
	return nil
}

func (kt *KeyTable) set(m map[Key]IntentType, k Key, intent IntentType) {
	if intent == IntentNone {
		delete(m, k)
		return
	}
	m[k] = intent
}

func (kt *KeyTable) setRune(r rune, intent IntentType) {
	if intent == IntentNone {
		delete(kt.Runes, r)
		return
	}
	kt.Runes[r] = intent
}
