package key

import "strings"

// Mods is the modifier state of a key event, packed into 16 bits.
//
// The bit layout is part of the embedding ABI and must not change:
//
//	bit 0  shift
//	bit 1  ctrl
//	bit 2  alt
//	bit 3  super
//	bit 4  caps_lock
//	bit 5  num_lock
//	bit 6  side of shift (0 left, 1 right)
//	bit 7  side of ctrl
//	bit 8  side of alt
//	bit 9  side of super
//	bits 10-15 padding, always zero
//
// A side bit is only meaningful while its modifier is set.
type Mods uint16

// Modifier flags.
const (
	ModNone     Mods = 0
	ModShift    Mods = 1 << 0
	ModCtrl     Mods = 1 << 1
	ModAlt      Mods = 1 << 2
	ModSuper    Mods = 1 << 3
	ModCapsLock Mods = 1 << 4
	ModNumLock  Mods = 1 << 5
)

const (
	// sideShift is the distance from a modifier bit to its side bit.
	sideShift = 6

	bindingMask = ModShift | ModCtrl | ModAlt | ModSuper
	lockMask    = ModCapsLock | ModNumLock
	sideMask    = bindingMask << sideShift
	modsMask    = bindingMask | lockMask | sideMask
)

// Side identifies which physical instance of a two-sided modifier is held.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// ModsFromInt converts a raw 16-bit value into Mods. Padding bits are cleared.
func ModsFromInt(v uint16) Mods {
	return Mods(v) & modsMask
}

// Int returns the exact bit pattern of m.
func (m Mods) Int() uint16 {
	return uint16(m)
}

// Empty returns true if no bit is set, sides included.
func (m Mods) Empty() bool {
	return m.Int() == 0
}

// Equal returns true if both values have identical bits.
func (m Mods) Equal(other Mods) bool {
	return m.Int() == other.Int()
}

// Has returns true if every flag in mod is set.
func (m Mods) Has(mod Mods) bool {
	return mod != ModNone && m&mod == mod
}

// With returns m with the flags in mod set.
func (m Mods) With(mod Mods) Mods {
	return m | mod
}

// Without returns m with the flags in mod cleared.
func (m Mods) Without(mod Mods) Mods {
	return m &^ mod
}

// Set returns m with the flags in mod set or cleared.
func (m Mods) Set(mod Mods, on bool) Mods {
	if on {
		return m.With(mod)
	}
	return m.Without(mod)
}

func (m Mods) Shift() bool    { return m&ModShift != 0 }
func (m Mods) Ctrl() bool     { return m&ModCtrl != 0 }
func (m Mods) Alt() bool      { return m&ModAlt != 0 }
func (m Mods) Super() bool    { return m&ModSuper != 0 }
func (m Mods) CapsLock() bool { return m&ModCapsLock != 0 }
func (m Mods) NumLock() bool  { return m&ModNumLock != 0 }

// Side returns the recorded side for one of ModShift, ModCtrl, ModAlt or
// ModSuper. The result is only meaningful while that modifier is set.
func (m Mods) Side(mod Mods) Side {
	if m&((mod&bindingMask)<<sideShift) != 0 {
		return SideRight
	}
	return SideLeft
}

// WithSide returns m with the side recorded for the given two-sided
// modifiers. Lock flags have no side and are ignored.
func (m Mods) WithSide(mod Mods, s Side) Mods {
	bits := (mod & bindingMask) << sideShift
	if s == SideRight {
		return m | bits
	}
	return m &^ bits
}

// Binding returns only the shift, ctrl, alt and super flags. Lock and
// side state do not take part in keybinding matching.
func (m Mods) Binding() Mods {
	return m & bindingMask
}

// Unset returns m with every bit that is set in other cleared.
func (m Mods) Unset(other Mods) Mods {
	return m &^ other
}

// WithoutLocks returns m with caps lock and num lock cleared.
func (m Mods) WithoutLocks() Mods {
	return m &^ lockMask
}

// Translation returns the mods to use before layout translation.
//
// Off Darwin it is the identity. On Darwin the option key composes
// characters unless the option-as-alt policy claims it, so alt is
// cleared for the sides the policy covers and the OS sees a plain key.
// Only alt is ever changed.
func (m Mods) Translation(p Platform, opt OptionAsAlt) Mods {
	if p != PlatformDarwin {
		return m
	}

	switch opt {
	case OptionAsAltTrue:
	case OptionAsAltLeft:
		if m.Side(ModAlt) != SideLeft {
			return m
		}
	case OptionAsAltRight:
		if m.Side(ModAlt) != SideRight {
			return m
		}
	default:
		return m
	}

	return m.Without(ModAlt)
}

// CtrlOrSuper returns true if the platform's primary modifier is held:
// super on Darwin, ctrl elsewhere.
func (m Mods) CtrlOrSuper(p Platform) bool {
	if p == PlatformDarwin {
		return m.Super()
	}
	return m.Ctrl()
}

// String returns a representation like "ctrl+alt+shift". Sides are not
// included. Returns "" when no flag is set.
func (m Mods) String() string {
	var parts []string
	if m.Ctrl() {
		parts = append(parts, "ctrl")
	}
	if m.Alt() {
		parts = append(parts, "alt")
	}
	if m.Shift() {
		parts = append(parts, "shift")
	}
	if m.Super() {
		parts = append(parts, "super")
	}
	if m.CapsLock() {
		parts = append(parts, "caps_lock")
	}
	if m.NumLock() {
		parts = append(parts, "num_lock")
	}
	return strings.Join(parts, "+")
}
