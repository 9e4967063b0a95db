package terminal

import (
	"context"
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/keynorm/internal/input/key"
)

// ErrClosed is returned by Poll once the screen has been shut down.
var ErrClosed = errors.New("terminal closed")

// Terminal reads keyboard input from a tcell screen and draws plain
// text lines back to it.
type Terminal struct {
	screen        tcell.Screen
	translator    *Translator
	resizeHandler func(width, height int)
	mu            sync.Mutex
	closeOnce     sync.Once
}

// NewTerminal creates a terminal on the controlling tty.
func NewTerminal(tr *Translator) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen, tr), nil
}

// NewTerminalWithScreen wraps an existing screen. Tests pass a
// simulation screen here.
func NewTerminalWithScreen(screen tcell.Screen, tr *Translator) *Terminal {
	return &Terminal{screen: screen, translator: tr}
}

// Translator returns the translator used for key events.
func (t *Terminal) Translator() *Translator {
	return t.translator
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}

	// Enable bracketed paste
	t.screen.EnablePaste()
	t.screen.HideCursor()

	return nil
}

// Shutdown restores the terminal. It is safe to call more than once.
func (t *Terminal) Shutdown() {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		t.screen.Fini()
	})
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// OnResize registers a callback invoked from Poll when the screen size
// changes.
func (t *Terminal) OnResize(callback func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resizeHandler = callback
}

// Poll blocks until the next translatable key event. Keys with no
// logical mapping are skipped. It returns ctx.Err() when ctx is done and
// ErrClosed once the screen has been shut down.
func (t *Terminal) Poll(ctx context.Context) (key.Event, error) {
	if err := ctx.Err(); err != nil {
		return key.Event{}, err
	}

	stop := context.AfterFunc(ctx, func() {
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(ctx)) // best-effort; queue may be full
	})
	defer stop()

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return key.Event{}, ErrClosed
		}

		switch e := ev.(type) {
		case *tcell.EventKey:
			if out, ok := t.translator.Translate(e); ok {
				return out, nil
			}

		case *tcell.EventResize:
			w, h := e.Size()
			t.mu.Lock()
			handler := t.resizeHandler
			t.mu.Unlock()
			if handler != nil {
				handler(w, h)
			}

		case *tcell.EventInterrupt:
			// Interrupts left over from an earlier Poll carry a
			// different context and are dropped.
			if e.Data() == ctx && ctx.Err() != nil {
				return key.Event{}, ctx.Err()
			}
		}
	}
}

// DrawLines clears the screen and writes one line per row, top to
// bottom. Lines are split into grapheme clusters so combining marks and
// wide characters occupy the right number of cells. Anything past the
// screen edge is clipped.
func (t *Terminal) DrawLines(lines []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	width, height := t.screen.Size()

	for y, line := range lines {
		if y >= height {
			break
		}
		drawLine(t.screen, y, width, line)
	}

	t.screen.Show()
}

func drawLine(screen tcell.Screen, y, width int, line string) {
	x := 0
	state := -1
	rest := line

	for len(rest) > 0 && x < width {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if w == 0 {
			// control characters take no cell
			continue
		}
		if x+w > width {
			break
		}
		runes := []rune(cluster)
		screen.SetContent(x, y, runes[0], runes[1:], tcell.StyleDefault)
		x += w
	}
}
