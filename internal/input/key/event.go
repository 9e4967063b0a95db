package key

import (
	"fmt"
	"strings"
)

// Action is the phase of a key event. The values are part of the
// embedding ABI.
type Action uint8

const (
	ActionRelease Action = iota
	ActionPress
	ActionRepeat
)

// String returns the lowercase action name.
func (a Action) String() string {
	switch a {
	case ActionRelease:
		return "release"
	case ActionPress:
		return "press"
	case ActionRepeat:
		return "repeat"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Event is the canonical key event handed from the apprt to keybinding
// resolution and terminal encoding.
//
// Producers must leave fields they cannot determine at their zero value,
// which is the documented default for every field except Action.
type Event struct {
	// Action is the key phase.
	Action Action

	// Key is the logical key, independent of layout.
	Key Key

	// PhysicalKey is the key position pressed. KeyInvalid when unknown.
	PhysicalKey Key

	// Mods is the raw modifier state.
	Mods Mods

	// ConsumedMods is the subset of Mods folded into UTF8, such as shift
	// producing an uppercase letter. Ignored when UTF8 is empty.
	ConsumedMods Mods

	// Composing marks UTF8 as provisional pre-edit text. The next event
	// in the sequence supersedes it.
	Composing bool

	// UTF8 is the text the key produced, or "" if none.
	UTF8 string

	// UnshiftedCodepoint is the codepoint the key produces with no
	// modifiers, or 0 when unknown.
	UnshiftedCodepoint rune
}

// NewEvent creates an event with every optional field at its default.
func NewEvent(action Action, k Key, mods Mods) Event {
	return Event{
		Action: action,
		Key:    k,
		Mods:   mods,
	}
}

// EffectiveMods returns the modifiers keybinding resolution should see.
// Modifiers consumed to produce text are removed, so shift+a producing
// "A" binds as plain "a". With no text nothing was consumed.
func (e Event) EffectiveMods() Mods {
	if e.UTF8 == "" {
		return e.Mods
	}
	return e.Mods.Unset(e.ConsumedMods)
}

// IsPress returns true for press and repeat events.
func (e Event) IsPress() bool {
	return e.Action == ActionPress || e.Action == ActionRepeat
}

// String returns a compact debug representation.
// Example: `press a mods=shift consumed=shift utf8="A" unshifted='a'`
func (e Event) String() string {
	var b strings.Builder
	b.WriteString(e.Action.String())
	b.WriteByte(' ')
	b.WriteString(e.Key.String())
	if e.PhysicalKey != KeyInvalid {
		fmt.Fprintf(&b, " physical=%s", e.PhysicalKey)
	}
	if mods := e.Mods.String(); mods != "" {
		fmt.Fprintf(&b, " mods=%s", mods)
	}
	if consumed := e.ConsumedMods.String(); consumed != "" && e.UTF8 != "" {
		fmt.Fprintf(&b, " consumed=%s", consumed)
	}
	if e.Composing {
		b.WriteString(" composing")
	}
	if e.UTF8 != "" {
		fmt.Fprintf(&b, " utf8=%q", e.UTF8)
	}
	if e.UnshiftedCodepoint != 0 {
		fmt.Fprintf(&b, " unshifted=%q", e.UnshiftedCodepoint)
	}
	return b.String()
}
