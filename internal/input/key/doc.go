// Package key provides the canonical key event types for the input system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Layout-independent logical key (letters, digits, keypad, modifiers, ...)
//   - Mods: Packed 16-bit modifier state with left/right side tracking
//   - Action: Press, release or repeat
//   - Event: A normalized key event as produced by an apprt
//   - Trigger: A key plus binding modifiers, matched against events
//
// # Platform Policy
//
// Modifier reinterpretation that differs between OS families lives in
// Mods.Translation, Mods.CtrlOrSuper and the CtrlOrSuper function. They
// take a Platform value resolved once at startup, so the same rules can
// be exercised on any host.
//
// # Codepoint Table
//
// Keys that produce a printable ASCII character are listed in a single
// ordered table. FromASCII uses a reverse index built from that table
// with keypad keys filtered out, so typing "1" always yields KeyOne and
// never KeyKP1.
//
// All types are plain values and all tables are read-only after package
// initialization, so everything here is safe for concurrent use.
package key
