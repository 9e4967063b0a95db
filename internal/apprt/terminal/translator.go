package terminal

import (
	"sync/atomic"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keynorm/internal/input/key"
)

// Translator converts tcell key events into normalized key events.
//
// The platform is fixed for the life of the translator. The option-as-alt
// policy can be swapped at any time, e.g. on config reload, and is safe
// to change while another goroutine translates.
type Translator struct {
	platform key.Platform
	option   atomic.Uint32
}

// NewTranslator creates a translator for the given platform and policy.
func NewTranslator(p key.Platform, opt key.OptionAsAlt) *Translator {
	t := &Translator{platform: p}
	t.option.Store(uint32(opt))
	return t
}

// Platform returns the platform the translator was built for.
func (t *Translator) Platform() key.Platform {
	return t.platform
}

// OptionAsAlt returns the current option-as-alt policy.
func (t *Translator) OptionAsAlt() key.OptionAsAlt {
	return key.OptionAsAlt(t.option.Load())
}

// SetOptionAsAlt replaces the option-as-alt policy.
func (t *Translator) SetOptionAsAlt(opt key.OptionAsAlt) {
	t.option.Store(uint32(opt))
}

// specialKeys maps tcell keys without text to logical keys.
// Control-letter aliases such as KeyCtrlI are handled separately.
var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyPrint:      key.KeyPrintScreen,
	tcell.KeyPause:      key.KeyPause,
}

// ctrlPunct maps the remaining C0 control keys to the key and modifiers
// that type them on a US layout.
var ctrlPunct = map[tcell.Key]struct {
	key  key.Key
	mods key.Mods
}{
	tcell.KeyCtrlBackslash:  {key.KeyBackslash, key.ModCtrl},
	tcell.KeyCtrlRightSq:    {key.KeyRightBracket, key.ModCtrl},
	tcell.KeyCtrlCarat:      {key.KeySix, key.ModCtrl | key.ModShift},
	tcell.KeyCtrlUnderscore: {key.KeyMinus, key.ModCtrl | key.ModShift},
}

// Translate converts a tcell key event. It returns false for keys with
// no logical mapping.
//
// Terminals report neither key release nor the physical key, so every
// event is a press with PhysicalKey left at KeyInvalid.
func (t *Translator) Translate(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertMods(ev.Modifiers())
	k := ev.Key()

	if k == tcell.KeyRune {
		return t.translateRune(ev.Rune(), mods)
	}

	out := key.Event{Action: key.ActionPress}

	if lk, ok := specialKeys[k]; ok {
		out.Key = lk
		out.Mods = mods
		if cp, ok := lk.Codepoint(); ok {
			out.UnshiftedCodepoint = cp
		}
		return out, true
	}

	switch {
	case k == tcell.KeyBacktab:
		out.Key = key.KeyTab
		out.Mods = mods.With(key.ModShift)
		out.UnshiftedCodepoint = '\t'

	case k == tcell.KeyCtrlSpace:
		out.Key = key.KeySpace
		out.Mods = mods.With(key.ModCtrl)
		out.UnshiftedCodepoint = ' '

	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		letter := 'a' + rune(k-tcell.KeyCtrlA)
		out.Key, _ = key.FromASCII(byte(letter))
		out.Mods = mods.With(key.ModCtrl)
		out.UnshiftedCodepoint = letter

	case k >= tcell.KeyF1 && k <= tcell.KeyF25:
		out.Key = key.KeyF1 + key.Key(k-tcell.KeyF1)
		out.Mods = mods

	default:
		p, ok := ctrlPunct[k]
		if !ok {
			return key.Event{}, false
		}
		out.Key = p.key
		out.Mods = mods.With(p.mods)
		out.UnshiftedCodepoint, _ = p.key.Codepoint()
	}

	return out, true
}

// translateRune builds the event for a key that produced a character.
// An uppercase ASCII letter implies a shift the terminal did not report;
// that shift is marked consumed since the text already carries it.
//
// On Darwin an option key the policy does not claim as alt composed the
// character, so alt is consumed too.
func (t *Translator) translateRune(r rune, mods key.Mods) (key.Event, bool) {
	if r < 0 || !utf8.ValidRune(r) {
		return key.Event{}, false
	}

	out := key.Event{
		Action: key.ActionPress,
		UTF8:   string(r),
	}

	if r >= 'A' && r <= 'Z' {
		mods = mods.With(key.ModShift)
		out.ConsumedMods = key.ModShift
		r += 'a' - 'A'
	}

	if t.platform == key.PlatformDarwin && mods.Translation(t.platform, t.OptionAsAlt()).Alt() {
		out.ConsumedMods = out.ConsumedMods.With(key.ModAlt)
	}

	if r < utf8.RuneSelf {
		if k, ok := key.FromASCII(byte(r)); ok {
			out.Key = k
			out.UnshiftedCodepoint = r
		}
	}

	// Control and command chords do not insert text.
	if mods.Ctrl() || mods.Super() {
		out.UTF8 = ""
		out.ConsumedMods = key.ModNone
	}

	out.Mods = mods
	return out, true
}

// convertMods converts tcell modifiers. Terminals do not report sides,
// so every modifier is recorded as left.
func convertMods(m tcell.ModMask) key.Mods {
	var mods key.Mods
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModSuper)
	}
	return mods
}
