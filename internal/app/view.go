package app

import (
	"fmt"
	"time"

	"github.com/dshills/keynorm/internal/input/abi"
	"github.com/dshills/keynorm/internal/input/key"
)

// render redraws the whole screen.
func (a *App) render() {
	a.term.DrawLines(a.viewLines())
}

// viewLines builds the screen contents: a header, a metrics line, then
// the event history, newest first.
func (a *App) viewLines() []string {
	a.mu.Lock()
	cfg := a.cfg
	pendingQuit := a.pendingQuit
	history := make([]key.Event, len(a.history))
	copy(history, a.history)
	a.mu.Unlock()

	lines := make([]string, 0, len(history)+4)
	lines = append(lines, fmt.Sprintf("keynorm  platform=%s  option-as-alt=%s  quit: %s twice",
		a.translator.Platform(), a.translator.OptionAsAlt(), a.quitTriggers[0]))

	s := a.metrics.Snapshot()
	lines = append(lines, fmt.Sprintf("events=%d press=%d repeat=%d release=%d text=%.0f%% avg=%s reloads=%d failed=%d",
		s.EventCount, s.PressCount, s.RepeatCount, s.ReleaseCount, s.TextRate(),
		time.Duration(s.AvgInputTimeNs), s.ReloadCount, s.ReloadFailed))

	if cfg != nil && cfg.Path != "" {
		lines = append(lines, "config: "+cfg.Path)
	}
	if pendingQuit {
		lines = append(lines, "press again to quit")
	} else {
		lines = append(lines, "")
	}

	for _, ev := range history {
		lines = append(lines, formatEvent(ev))
	}
	return lines
}

// formatEvent renders one event with its effective modifiers and the
// integer codes an embedder would receive.
func formatEvent(ev key.Event) string {
	eff := ev.EffectiveMods().Binding().String()
	if eff == "" {
		eff = "none"
	}
	ke := abi.FromEvent(ev)
	return fmt.Sprintf("%s | effective=%s | abi key=%d mods=%#04x consumed=%#04x",
		ev, eff, ke.Key, uint16(ke.Mods), uint16(ke.ConsumedMods))
}
