package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keynorm/internal/config"
	"github.com/dshills/keynorm/internal/config/watcher"
	"github.com/dshills/keynorm/internal/input/abi"
	"github.com/dshills/keynorm/internal/input/key"
)

// syncBuffer is a bytes.Buffer safe for the logger and the test to share.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testApp struct {
	*App
	screen tcell.SimulationScreen
	logs   *syncBuffer
}

func newTestApp(t *testing.T, opts Options) *testApp {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	logs := &syncBuffer{}

	opts.Screen = screen
	opts.Logger = NewLogger(LoggerConfig{Output: logs, Prefix: "test"})
	if opts.Platform == "" {
		opts.Platform = "other"
	}
	opts.ConfigOptions = append(opts.ConfigOptions, config.WithEnv(nil))

	a, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = a.Shutdown() })
	return &testApp{App: a, screen: screen, logs: logs}
}

// start runs the app in the background and waits for the screen.
func (ta *testApp) start(t *testing.T, ctx context.Context) <-chan error {
	t.Helper()

	errCh := make(chan error, 1)
	go func() {
		errCh <- ta.Run(ctx)
	}()
	waitFor(t, "terminal init", ta.initialized.Load)
	return errCh
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func waitErr(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestNew_InvalidOverride(t *testing.T) {
	_, err := New(Options{
		Screen:        tcell.NewSimulationScreen("UTF-8"),
		Logger:        NullLogger,
		Platform:      "windows",
		ConfigOptions: []config.Option{config.WithEnv(nil)},
	})

	var ce *ComponentError
	if !errors.As(err, &ce) || ce.Component != "config" {
		t.Fatalf("New() error = %v, want config ComponentError", err)
	}
	if !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("New() error = %v, want ErrValidationFailed", err)
	}
}

func TestNew_Overrides(t *testing.T) {
	ta := newTestApp(t, Options{Platform: "darwin", OptionAsAlt: "left", LogLevel: "debug"})

	if got := ta.Translator().Platform(); got != key.PlatformDarwin {
		t.Errorf("Platform() = %v, want darwin", got)
	}
	if got := ta.Translator().OptionAsAlt(); got != key.OptionAsAltLeft {
		t.Errorf("OptionAsAlt() = %v, want left", got)
	}
	if got := ta.Logger().Level(); got != LogLevelDebug {
		t.Errorf("log level = %v, want DEBUG", got)
	}
	if got := ta.Config().Origin(config.PathOptionAsAlt); got != "flags" {
		t.Errorf("Origin = %q, want flags", got)
	}
}

func TestRun_RecordsEventsAndQuits(t *testing.T) {
	ta := newTestApp(t, Options{})
	errCh := ta.start(t, context.Background())

	ta.screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	ta.screen.InjectKey(tcell.KeyRune, 'A', tcell.ModNone)
	ta.screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	ta.screen.InjectKey(tcell.KeyRune, 'b', tcell.ModNone) // resets the quit request
	ta.screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	ta.screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	if err := waitErr(t, errCh); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() error = %v, want ErrQuit", err)
	}

	history := ta.History()
	if len(history) != 6 {
		t.Fatalf("history has %d events, want 6", len(history))
	}
	// newest first
	if history[2].UTF8 != "b" || history[5].UTF8 != "a" {
		t.Errorf("history out of order: %v", history)
	}
	if ctrlC := key.MustParseTrigger("ctrl+c"); !ctrlC.Matches(history[3]) {
		t.Errorf("history[3] = %v, want ctrl+c", history[3])
	}
	shifted := history[4]
	if shifted.Key != key.KeyA || shifted.UTF8 != "A" || !shifted.EffectiveMods().Empty() {
		t.Errorf("shifted event = %v, want a with text A and no effective mods", shifted)
	}

	if got := ta.Metrics().Snapshot().PressCount; got != 6 {
		t.Errorf("PressCount = %d, want 6", got)
	}
}

func TestRun_HistoryBounded(t *testing.T) {
	ta := newTestApp(t, Options{HistorySize: 2})
	errCh := ta.start(t, context.Background())

	for _, r := range "xyz" {
		ta.screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	waitFor(t, "three events", func() bool { return ta.Metrics().Snapshot().EventCount == 3 })

	history := ta.History()
	if len(history) != 2 || history[0].UTF8 != "z" || history[1].UTF8 != "y" {
		t.Errorf("history = %v, want [z y]", history)
	}

	_ = ta.Shutdown()
	if err := waitErr(t, errCh); err != nil {
		t.Errorf("Run() after Shutdown = %v, want nil", err)
	}
}

func TestRun_ContextCancel(t *testing.T) {
	ta := newTestApp(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	errCh := ta.start(t, ctx)

	if err := ta.Run(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() = %v, want ErrAlreadyRunning", err)
	}

	cancel()
	if err := waitErr(t, errCh); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if ta.IsRunning() {
		t.Error("IsRunning() = true after Run returned")
	}
}

func TestRun_DrawsEvents(t *testing.T) {
	ta := newTestApp(t, Options{})
	errCh := ta.start(t, context.Background())

	ta.screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	waitFor(t, "enter event", func() bool { return ta.Metrics().Snapshot().EventCount == 1 })

	lines := ta.viewLines()
	if !strings.HasPrefix(lines[0], "keynorm  platform=other") {
		t.Errorf("header = %q", lines[0])
	}
	if last := lines[len(lines)-1]; !strings.HasPrefix(last, "press enter") {
		t.Errorf("last line = %q, want the enter event", last)
	}

	_ = ta.Shutdown()
	_ = waitErr(t, errCh)
}

func TestFormatEvent(t *testing.T) {
	ev := key.NewEvent(key.ActionPress, key.KeyA, key.ModShift)
	ev.UTF8 = "A"
	ev.ConsumedMods = key.ModShift
	ev.UnshiftedCodepoint = 'a'

	got := formatEvent(ev)
	if !strings.Contains(got, "effective=none") {
		t.Errorf("formatEvent() = %q, want effective=none", got)
	}
	if want := fmt.Sprintf("abi key=%d ", abi.FromKey(key.KeyA)); !strings.Contains(got, want) {
		t.Errorf("formatEvent() = %q, want %q", got, want)
	}

	ctrl := key.NewEvent(key.ActionPress, key.KeyC, key.ModCtrl)
	if got := formatEvent(ctrl); !strings.Contains(got, "effective=ctrl") {
		t.Errorf("formatEvent() = %q, want effective=ctrl", got)
	}
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keynorm.toml")
	if err := os.WriteFile(path, []byte("[input]\nmacosOptionAsAlt = false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ta := newTestApp(t, Options{ConfigPath: path})
	if got := ta.Translator().OptionAsAlt(); got != key.OptionAsAltFalse {
		t.Fatalf("OptionAsAlt() = %v, want false", got)
	}

	if err := os.WriteFile(path, []byte("[input]\nmacosOptionAsAlt = \"right\"\n[logging]\nlevel = \"error\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ta.reload(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got := ta.Translator().OptionAsAlt(); got != key.OptionAsAltRight {
		t.Errorf("OptionAsAlt() = %v, want right", got)
	}
	if got := ta.Logger().Level(); got != LogLevelError {
		t.Errorf("log level = %v, want ERROR", got)
	}

	// a broken file keeps the previous settings
	if err := os.WriteFile(path, []byte("[input\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ta.reload(); err == nil {
		t.Fatal("reload of broken file succeeded")
	}
	if got := ta.Translator().OptionAsAlt(); got != key.OptionAsAltRight {
		t.Errorf("OptionAsAlt() = %v after failed reload, want right", got)
	}

	s := ta.Metrics().Snapshot()
	if s.ReloadCount != 2 || s.ReloadFailed != 1 {
		t.Errorf("reloads = %d failed = %d, want 2 and 1", s.ReloadCount, s.ReloadFailed)
	}
}

func TestRun_WatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keynorm.toml")
	if err := os.WriteFile(path, []byte("[input]\nmacosOptionAsAlt = false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ta := newTestApp(t, Options{ConfigPath: path, Watch: true})
	errCh := ta.start(t, context.Background())
	waitFor(t, "watcher", func() bool {
		ta.mu.Lock()
		defer ta.mu.Unlock()
		return ta.watcher != nil
	})

	if err := os.WriteFile(path, []byte("[input]\nmacosOptionAsAlt = true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "reload", func() bool {
		return ta.Translator().OptionAsAlt() == key.OptionAsAltTrue
	})

	if !strings.Contains(ta.logs.String(), "reloaded") {
		t.Errorf("reload not logged: %q", ta.logs.String())
	}

	_ = ta.Shutdown()
	_ = waitErr(t, errCh)
}

func TestStartWatcher_ClosesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keynorm.toml")
	if err := os.WriteFile(path, []byte("[input]\nmacosOptionAsAlt = false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ta := newTestApp(t, Options{ConfigPath: path, Watch: true})
	current := func() *watcher.Watcher {
		ta.mu.Lock()
		defer ta.mu.Unlock()
		return ta.watcher
	}

	ctx := context.Background()
	if err := ta.startWatcher(ctx); err != nil {
		t.Fatalf("startWatcher failed: %v", err)
	}
	first := current()
	if err := ta.startWatcher(ctx); err != nil {
		t.Fatalf("second startWatcher failed: %v", err)
	}
	second := current()

	if second == nil || second == first {
		t.Fatalf("watcher not replaced: first=%p second=%p", first, second)
	}
	if err := first.Start(ctx); !errors.Is(err, watcher.ErrWatcherClosed) {
		t.Errorf("first watcher Start() = %v, want ErrWatcherClosed", err)
	}
	if err := second.Start(ctx); !errors.Is(err, watcher.ErrAlreadyStarted) {
		t.Errorf("second watcher Start() = %v, want ErrAlreadyStarted", err)
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	ta := newTestApp(t, Options{})

	// never started
	if err := ta.Shutdown(); err != nil {
		t.Errorf("Shutdown() = %v", err)
	}
	if err := ta.Shutdown(); err != nil {
		t.Errorf("second Shutdown() = %v", err)
	}
}
