// Package terminal is the terminal producer of key events.
//
// It reads tcell key events from the controlling terminal and normalizes
// them into key.Event values through a Translator. Terminals deliver far
// less than a windowing system: there are no release events, no physical
// key codes, and modifiers arrive without sides. The translator fills the
// gaps the same way for every terminal:
//
//   - every event is a press with PhysicalKey set to key.KeyInvalid
//   - an uppercase ASCII letter adds shift to both Mods and ConsumedMods
//   - control chords such as Ctrl+A produce no text; their unshifted
//     codepoint is the letter
//   - on Darwin, alt is consumed by the text unless the option-as-alt
//     policy claims that option key
//
// Terminal wraps a tcell.Screen, owns its lifecycle, and offers a small
// line-drawing surface for probe output.
package terminal
