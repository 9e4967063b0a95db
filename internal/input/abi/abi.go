// Package abi projects the input types onto the stable integer layout
// exposed to embedders through the C header.
//
// Codes in this package must never change meaning. Key codes follow the
// key.Key enumeration order, except for keypad keys the header does not
// carry: those collapse onto the main-row key they duplicate.
package abi

import (
	"unicode/utf8"

	"github.com/dshills/keynorm/internal/input/key"
)

// Key is a key code as seen by embedders.
type Key int32

// Action is an action code as seen by embedders.
type Action int32

// Mods is the modifier bit field as seen by embedders. The layout is the
// same as key.Mods.
type Mods uint16

// collapsed lists keys that share a code with another key. The reverse
// direction always yields the target key.
var collapsed = map[key.Key]key.Key{
	key.KeyKPSeparator: key.KeyComma,
	key.KeyKPLeft:      key.KeyLeft,
	key.KeyKPRight:     key.KeyRight,
	key.KeyKPUp:        key.KeyUp,
	key.KeyKPDown:      key.KeyDown,
	key.KeyKPPageUp:    key.KeyPageUp,
	key.KeyKPPageDown:  key.KeyPageDown,
	key.KeyKPHome:      key.KeyHome,
	key.KeyKPEnd:       key.KeyEnd,
	key.KeyKPInsert:    key.KeyInsert,
	key.KeyKPDelete:    key.KeyDelete,
}

// FromKey returns the embedder code for k.
func FromKey(k key.Key) Key {
	if target, ok := collapsed[k]; ok {
		k = target
	}
	if !k.Valid() {
		return Key(key.KeyInvalid)
	}
	return Key(k)
}

// ToKey returns the key for an embedder code. Unknown codes and codes
// reserved by a collapsed key map to key.KeyInvalid.
func (c Key) ToKey() key.Key {
	if c <= 0 || c > Key(^uint16(0)) {
		return key.KeyInvalid
	}
	k := key.Key(c)
	if !k.Valid() {
		return key.KeyInvalid
	}
	if _, ok := collapsed[k]; ok {
		return key.KeyInvalid
	}
	return k
}

// FromAction returns the embedder code for a.
func FromAction(a key.Action) Action {
	return Action(a)
}

// ToAction returns the action for an embedder code. Unknown codes are
// treated as a press, the only phase every producer can report.
func (c Action) ToAction() key.Action {
	if c >= Action(key.ActionRelease) && c <= Action(key.ActionRepeat) {
		return key.Action(c)
	}
	return key.ActionPress
}

// FromMods returns the embedder bit field for m.
func FromMods(m key.Mods) Mods {
	return Mods(m.Int())
}

// ToMods returns the modifier state for an embedder bit field.
// Padding bits are cleared.
func (m Mods) ToMods() key.Mods {
	return key.ModsFromInt(uint16(m))
}

// KeyEvent mirrors the key event struct filled in by embedders.
type KeyEvent struct {
	Action             Action
	Mods               Mods
	ConsumedMods       Mods
	Keycode            Key // physical key
	Key                Key // logical key
	Text               string
	UnshiftedCodepoint uint32
	Composing          bool
}

// ToEvent converts the embedder struct into a key.Event. Values the
// embedder got wrong fall back to the documented defaults: unknown keys
// become key.KeyInvalid and out-of-range codepoints become 0.
func (e KeyEvent) ToEvent() key.Event {
	ev := key.Event{
		Action:       e.Action.ToAction(),
		Key:          e.Key.ToKey(),
		PhysicalKey:  e.Keycode.ToKey(),
		Mods:         e.Mods.ToMods(),
		ConsumedMods: e.ConsumedMods.ToMods(),
		Composing:    e.Composing,
		UTF8:         e.Text,
	}
	if cp := rune(e.UnshiftedCodepoint); e.UnshiftedCodepoint <= utf8.MaxRune && utf8.ValidRune(cp) {
		ev.UnshiftedCodepoint = cp
	}
	return ev
}

// FromEvent converts a key.Event into the embedder struct.
func FromEvent(ev key.Event) KeyEvent {
	var cp uint32
	if ev.UnshiftedCodepoint > 0 {
		cp = uint32(ev.UnshiftedCodepoint)
	}
	return KeyEvent{
		Action:             FromAction(ev.Action),
		Mods:               FromMods(ev.Mods),
		ConsumedMods:       FromMods(ev.ConsumedMods),
		Keycode:            FromKey(ev.PhysicalKey),
		Key:                FromKey(ev.Key),
		Text:               ev.UTF8,
		UnshiftedCodepoint: cp,
		Composing:          ev.Composing,
	}
}
