package key

import (
	"fmt"
	"strings"
)

// Key is the logical identity of a keyboard key, independent of the
// physical layout. The numeric values are part of the embedding ABI:
// never reorder or insert variants, only append.
type Key uint16

const (
	// KeyInvalid is the sentinel for an unknown or unmapped key.
	KeyInvalid Key = iota

	// Letters
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Digits
	KeyZero
	KeyOne
	KeyTwo
	KeyThree
	KeyFour
	KeyFive
	KeySix
	KeySeven
	KeyEight
	KeyNine

	// Punctuation
	KeySemicolon
	KeySpace
	KeyApostrophe
	KeyComma
	KeyGraveAccent
	KeyPeriod
	KeySlash
	KeyMinus
	KeyPlus
	KeyEqual
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash

	// Control and navigation
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyPageUp
	KeyPageDown
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyPrintScreen
	KeyPause

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24
	KeyF25

	// Keypad
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPDecimal
	KeyKPDivide
	KeyKPMultiply
	KeyKPSubtract
	KeyKPAdd
	KeyKPEnter
	KeyKPEqual
	KeyKPSeparator
	KeyKPLeft
	KeyKPRight
	KeyKPUp
	KeyKPDown
	KeyKPPageUp
	KeyKPPageDown
	KeyKPHome
	KeyKPEnd
	KeyKPInsert
	KeyKPDelete
	KeyKPBegin

	// Special
	KeyContextMenu

	// Modifier keys
	KeyLeftShift
	KeyLeftControl
	KeyLeftAlt
	KeyLeftSuper
	KeyRightShift
	KeyRightControl
	KeyRightAlt
	KeyRightSuper

	keyCount
)

// keypadPrefix marks keypad keys in their canonical name.
const keypadPrefix = "kp_"

// keyNames holds the canonical name of every key, indexed by value.
var keyNames = [keyCount]string{
	KeyInvalid: "invalid",

	KeyA: "a", KeyB: "b", KeyC: "c", KeyD: "d", KeyE: "e", KeyF: "f",
	KeyG: "g", KeyH: "h", KeyI: "i", KeyJ: "j", KeyK: "k", KeyL: "l",
	KeyM: "m", KeyN: "n", KeyO: "o", KeyP: "p", KeyQ: "q", KeyR: "r",
	KeyS: "s", KeyT: "t", KeyU: "u", KeyV: "v", KeyW: "w", KeyX: "x",
	KeyY: "y", KeyZ: "z",

	KeyZero: "zero", KeyOne: "one", KeyTwo: "two", KeyThree: "three",
	KeyFour: "four", KeyFive: "five", KeySix: "six", KeySeven: "seven",
	KeyEight: "eight", KeyNine: "nine",

	KeySemicolon:    "semicolon",
	KeySpace:        "space",
	KeyApostrophe:   "apostrophe",
	KeyComma:        "comma",
	KeyGraveAccent:  "grave_accent",
	KeyPeriod:       "period",
	KeySlash:        "slash",
	KeyMinus:        "minus",
	KeyPlus:         "plus",
	KeyEqual:        "equal",
	KeyLeftBracket:  "left_bracket",
	KeyRightBracket: "right_bracket",
	KeyBackslash:    "backslash",

	KeyUp:          "up",
	KeyDown:        "down",
	KeyRight:       "right",
	KeyLeft:        "left",
	KeyHome:        "home",
	KeyEnd:         "end",
	KeyInsert:      "insert",
	KeyDelete:      "delete",
	KeyCapsLock:    "caps_lock",
	KeyScrollLock:  "scroll_lock",
	KeyNumLock:     "num_lock",
	KeyPageUp:      "page_up",
	KeyPageDown:    "page_down",
	KeyEscape:      "escape",
	KeyEnter:       "enter",
	KeyTab:         "tab",
	KeyBackspace:   "backspace",
	KeyPrintScreen: "print_screen",
	KeyPause:       "pause",

	KeyF1: "f1", KeyF2: "f2", KeyF3: "f3", KeyF4: "f4", KeyF5: "f5",
	KeyF6: "f6", KeyF7: "f7", KeyF8: "f8", KeyF9: "f9", KeyF10: "f10",
	KeyF11: "f11", KeyF12: "f12", KeyF13: "f13", KeyF14: "f14", KeyF15: "f15",
	KeyF16: "f16", KeyF17: "f17", KeyF18: "f18", KeyF19: "f19", KeyF20: "f20",
	KeyF21: "f21", KeyF22: "f22", KeyF23: "f23", KeyF24: "f24", KeyF25: "f25",

	KeyKP0: "kp_0", KeyKP1: "kp_1", KeyKP2: "kp_2", KeyKP3: "kp_3",
	KeyKP4: "kp_4", KeyKP5: "kp_5", KeyKP6: "kp_6", KeyKP7: "kp_7",
	KeyKP8: "kp_8", KeyKP9: "kp_9",
	KeyKPDecimal:   "kp_decimal",
	KeyKPDivide:    "kp_divide",
	KeyKPMultiply:  "kp_multiply",
	KeyKPSubtract:  "kp_subtract",
	KeyKPAdd:       "kp_add",
	KeyKPEnter:     "kp_enter",
	KeyKPEqual:     "kp_equal",
	KeyKPSeparator: "kp_separator",
	KeyKPLeft:      "kp_left",
	KeyKPRight:     "kp_right",
	KeyKPUp:        "kp_up",
	KeyKPDown:      "kp_down",
	KeyKPPageUp:    "kp_page_up",
	KeyKPPageDown:  "kp_page_down",
	KeyKPHome:      "kp_home",
	KeyKPEnd:       "kp_end",
	KeyKPInsert:    "kp_insert",
	KeyKPDelete:    "kp_delete",
	KeyKPBegin:     "kp_begin",

	KeyContextMenu: "context_menu",

	KeyLeftShift:    "left_shift",
	KeyLeftControl:  "left_control",
	KeyLeftAlt:      "left_alt",
	KeyLeftSuper:    "left_super",
	KeyRightShift:   "right_shift",
	KeyRightControl: "right_control",
	KeyRightAlt:     "right_alt",
	KeyRightSuper:   "right_super",
}

// keyAliases are accepted by KeyFromName in addition to canonical names.
var keyAliases = map[string]Key{
	"esc":       KeyEscape,
	"return":    KeyEnter,
	"cr":        KeyEnter,
	"bs":        KeyBackspace,
	"del":       KeyDelete,
	"ins":       KeyInsert,
	"pgup":      KeyPageUp,
	"pageup":    KeyPageUp,
	"pgdn":      KeyPageDown,
	"pagedown":  KeyPageDown,
	"backquote": KeyGraveAccent,
	"grave":     KeyGraveAccent,
	"menu":      KeyContextMenu,
}

// keyNameMap maps canonical names and aliases back to keys.
var keyNameMap = func() map[string]Key {
	m := make(map[string]Key, len(keyNames)+len(keyAliases))
	for k, name := range keyNames {
		m[name] = Key(k)
	}
	for alias, k := range keyAliases {
		m[alias] = k
	}
	return m
}()

// String returns the canonical snake_case name of the key.
func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// Valid reports whether k is a known key other than KeyInvalid.
func (k Key) Valid() bool {
	return k != KeyInvalid && k < keyCount
}

// KeyFromName returns the Key for a canonical name (case-insensitive).
// Returns KeyInvalid if the name is not recognized.
func KeyFromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	return KeyInvalid
}

// Keys returns every valid key in enumeration order.
func Keys() []Key {
	keys := make([]Key, 0, keyCount-1)
	for k := KeyInvalid + 1; k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// Printable returns true if the key maps to a printable codepoint.
// Keypad keys with a codepoint count as printable.
func (k Key) Printable() bool {
	_, ok := k.Codepoint()
	return ok
}

// Modifier returns true if the key is one of the left/right modifier keys.
func (k Key) Modifier() bool {
	switch k {
	case KeyLeftShift, KeyLeftControl, KeyLeftAlt, KeyLeftSuper,
		KeyRightShift, KeyRightControl, KeyRightAlt, KeyRightSuper:
		return true
	default:
		return false
	}
}

// Keypad returns true if the key is on the keypad. The check is done on
// the canonical name, so new kp_ keys are picked up without a table change.
func (k Key) Keypad() bool {
	return strings.HasPrefix(k.String(), keypadPrefix)
}

// CtrlOrSuper returns true if the key is the platform's primary modifier
// key on either side: super on Darwin, control everywhere else.
func (k Key) CtrlOrSuper(p Platform) bool {
	if p == PlatformDarwin {
		return k == KeyLeftSuper || k == KeyRightSuper
	}
	return k == KeyLeftControl || k == KeyRightControl
}

// LeftOrRightShift returns true for either shift key.
func (k Key) LeftOrRightShift() bool {
	return k == KeyLeftShift || k == KeyRightShift
}

// LeftOrRightAlt returns true for either alt key.
func (k Key) LeftOrRightAlt() bool {
	return k == KeyLeftAlt || k == KeyRightAlt
}
