package key

// codepointEntry pairs a codepoint with the key that produces it.
type codepointEntry struct {
	cp  rune
	key Key
}

// codepointTable is the ordered codepoint mapping. Forward lookups take
// the first entry for a key. Keypad entries must stay last: the reverse
// index skips them, and main-row keys have to win for shared characters.
var codepointTable = []codepointEntry{
	{'a', KeyA}, {'b', KeyB}, {'c', KeyC}, {'d', KeyD}, {'e', KeyE},
	{'f', KeyF}, {'g', KeyG}, {'h', KeyH}, {'i', KeyI}, {'j', KeyJ},
	{'k', KeyK}, {'l', KeyL}, {'m', KeyM}, {'n', KeyN}, {'o', KeyO},
	{'p', KeyP}, {'q', KeyQ}, {'r', KeyR}, {'s', KeyS}, {'t', KeyT},
	{'u', KeyU}, {'v', KeyV}, {'w', KeyW}, {'x', KeyX}, {'y', KeyY},
	{'z', KeyZ},

	{'0', KeyZero}, {'1', KeyOne}, {'2', KeyTwo}, {'3', KeyThree},
	{'4', KeyFour}, {'5', KeyFive}, {'6', KeySix}, {'7', KeySeven},
	{'8', KeyEight}, {'9', KeyNine},

	{';', KeySemicolon},
	{' ', KeySpace},
	{'\'', KeyApostrophe},
	{',', KeyComma},
	{'`', KeyGraveAccent},
	{'.', KeyPeriod},
	{'/', KeySlash},
	{'-', KeyMinus},
	{'+', KeyPlus},
	{'=', KeyEqual},
	{'[', KeyLeftBracket},
	{']', KeyRightBracket},
	{'\\', KeyBackslash},

	// Control characters
	{'\t', KeyTab},

	// Keypad
	{'0', KeyKP0}, {'1', KeyKP1}, {'2', KeyKP2}, {'3', KeyKP3},
	{'4', KeyKP4}, {'5', KeyKP5}, {'6', KeyKP6}, {'7', KeyKP7},
	{'8', KeyKP8}, {'9', KeyKP9},
	{'.', KeyKPDecimal},
	{'/', KeyKPDivide},
	{'*', KeyKPMultiply},
	{'-', KeyKPSubtract},
	{'+', KeyKPAdd},
	{'=', KeyKPEqual},
}

var (
	// keyCodepoints is the forward index, Key to codepoint.
	// A zero entry means the key is not printable.
	keyCodepoints [keyCount]rune

	// asciiKeys is the reverse index, ASCII byte to main-row Key.
	// KeyInvalid means the byte has no mapping.
	asciiKeys [256]Key
)

func init() {
	for _, e := range codepointTable {
		if keyCodepoints[e.key] == 0 {
			keyCodepoints[e.key] = e.cp
		}

		if e.key.Keypad() || e.cp >= 256 {
			continue
		}
		if asciiKeys[e.cp] == KeyInvalid {
			asciiKeys[e.cp] = e.key
		}
	}
}

// FromASCII returns the main-row key for an ASCII byte. It never
// returns a keypad key, even for characters the keypad can also type.
func FromASCII(b byte) (Key, bool) {
	k := asciiKeys[b]
	return k, k != KeyInvalid
}

// Codepoint returns the codepoint the key produces, if it is printable.
func (k Key) Codepoint() (rune, bool) {
	if k >= keyCount {
		return 0, false
	}
	cp := keyCodepoints[k]
	return cp, cp != 0
}
