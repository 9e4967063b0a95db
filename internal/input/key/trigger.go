package key

import (
	"errors"
	"fmt"
	"strings"
)

// Trigger parse errors
var (
	ErrEmptyTrigger   = errors.New("empty trigger")
	ErrInvalidTrigger = errors.New("invalid trigger")
)

// Trigger is a key plus the binding modifiers a keybinding resolver
// compares against. It matches events; choosing what to do on a match is
// up to the resolver.
type Trigger struct {
	Key  Key
	Mods Mods
}

// modifierNameMap maps modifier names (lowercase) to Mods.
var modifierNameMap = map[string]Mods{
	"shift":   ModShift,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"opt":     ModAlt,
	"option":  ModAlt,
	"super":   ModSuper,
	"cmd":     ModSuper,
	"command": ModSuper,
}

// ParseTrigger parses a trigger string such as "ctrl+shift+a".
//
// Supported formats:
//   - Key names: "a", "enter", "kp_1", "F5" (case-insensitive)
//   - Single ASCII characters: "a", "[", "/"
//   - With modifiers: "ctrl+a", "Ctrl+Shift+P", "super+kp_add"
//
// "+" itself is written as the key name "plus", or as a trailing "+"
// after a separator, as in "ctrl++".
func ParseTrigger(text string) (Trigger, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Trigger{}, ErrEmptyTrigger
	}

	keyPart := text
	var mods Mods

	if idx := lastSeparator(text); idx >= 0 {
		keyPart = text[idx+1:]
		for _, p := range strings.Split(text[:idx], "+") {
			p = strings.ToLower(strings.TrimSpace(p))
			mod, ok := modifierNameMap[p]
			if !ok {
				return Trigger{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidTrigger, p)
			}
			mods = mods.With(mod)
		}
	}

	k, err := parseTriggerKey(keyPart)
	if err != nil {
		return Trigger{}, err
	}
	return Trigger{Key: k, Mods: mods}, nil
}

// MustParseTrigger parses a trigger and panics on error.
// Use only for known-valid specs in initialization code.
func MustParseTrigger(text string) Trigger {
	t, err := ParseTrigger(text)
	if err != nil {
		panic("invalid trigger: " + text + ": " + err.Error())
	}
	return t
}

// lastSeparator returns the index of the "+" that separates modifiers
// from the key, or -1 if there is none. A trailing "+" is the key.
func lastSeparator(text string) int {
	if strings.HasSuffix(text, "++") {
		return len(text) - 2
	}
	if strings.HasSuffix(text, "+") {
		return -1
	}
	return strings.LastIndexByte(text, '+')
}

func parseTriggerKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return KeyInvalid, fmt.Errorf("%w: missing key", ErrInvalidTrigger)
	}

	if k := KeyFromName(s); k != KeyInvalid {
		return k, nil
	}

	if len(s) == 1 {
		b := s[0]
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		if k, ok := FromASCII(b); ok {
			return k, nil
		}
	}

	return KeyInvalid, fmt.Errorf("%w: unknown key %q", ErrInvalidTrigger, s)
}

// Matches returns true if the event fires this trigger. Only effective
// binding modifiers are compared, so consumed and lock modifiers never
// prevent a match. When the event has no logical key, the unshifted
// codepoint is used to find one.
func (t Trigger) Matches(ev Event) bool {
	if ev.EffectiveMods().Binding() != t.Mods.Binding() {
		return false
	}

	k := ev.Key
	if k == KeyInvalid && ev.UnshiftedCodepoint > 0 && ev.UnshiftedCodepoint < 128 {
		k, _ = FromASCII(byte(ev.UnshiftedCodepoint))
	}
	return k != KeyInvalid && k == t.Key
}

// String returns the canonical form, e.g. "ctrl+shift+a".
func (t Trigger) String() string {
	if mods := t.Mods.Binding().String(); mods != "" {
		return mods + "+" + t.Key.String()
	}
	return t.Key.String()
}
