// Package app runs the interactive key inspector: it reads keys from the
// terminal, normalizes them and shows each event as the keybinding
// layer would see it.
package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keynorm/internal/apprt/terminal"
	"github.com/dshills/keynorm/internal/config"
	"github.com/dshills/keynorm/internal/config/watcher"
	"github.com/dshills/keynorm/internal/input/key"
)

// DefaultHistorySize is the number of events kept for display.
const DefaultHistorySize = 64

// Options configures the application.
type Options struct {
	// ConfigPath is the config file to load. Empty means defaults plus
	// environment only.
	ConfigPath string

	// Watch reloads the config file when it changes.
	Watch bool

	// LogLevel, Platform and OptionAsAlt override the config when set.
	LogLevel    string
	Platform    string
	OptionAsAlt string

	// Logger receives log output. Defaults to GetLogger().
	Logger *Logger

	// Screen replaces the tty screen, for tests.
	Screen tcell.Screen

	// HistorySize bounds the displayed event history.
	HistorySize int

	// ConfigOptions are passed to every config.Load call.
	ConfigOptions []config.Option
}

// App is the key inspector.
type App struct {
	opts Options

	logger  *Logger
	metrics *Metrics

	translator *terminal.Translator
	term       *terminal.Terminal
	watcher    *watcher.Watcher

	quitTriggers []key.Trigger

	mu          sync.Mutex
	cfg         *config.Config
	history     []key.Event
	pendingQuit bool

	running      atomic.Bool
	initialized  atomic.Bool
	shutdownOnce sync.Once
	shutdownErr  error
}

// New loads the configuration and prepares the terminal.
func New(opts Options) (*App, error) {
	if opts.HistorySize <= 0 {
		opts.HistorySize = DefaultHistorySize
	}

	a := &App{
		opts:    opts,
		logger:  opts.Logger,
		metrics: NewMetrics(),
	}
	if a.logger == nil {
		a.logger = GetLogger()
	}

	cfg, err := config.Load(opts.ConfigPath, a.configOptions()...)
	if err != nil {
		return nil, NewComponentError("config", "load", err)
	}
	a.cfg = cfg
	a.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))

	a.translator = terminal.NewTranslator(cfg.Input.Platform, cfg.Input.MacOSOptionAsAlt)
	if opts.Screen != nil {
		a.term = terminal.NewTerminalWithScreen(opts.Screen, a.translator)
	} else {
		a.term, err = terminal.NewTerminal(a.translator)
		if err != nil {
			return nil, NewComponentError("terminal", "create", err)
		}
	}

	a.quitTriggers = []key.Trigger{
		key.MustParseTrigger("ctrl+c"),
		{Key: key.KeyQ, Mods: key.CtrlOrSuper(cfg.Input.Platform, key.ModNone)},
	}

	a.logger.WithComponent("config").Info("platform=%s %s=%s (%s)",
		cfg.Input.Platform, config.PathOptionAsAlt, cfg.Input.MacOSOptionAsAlt,
		cfg.Origin(config.PathOptionAsAlt))

	return a, nil
}

// configOptions maps explicit overrides onto config.Load options.
func (a *App) configOptions() []config.Option {
	overrides := make(map[string]any)
	if a.opts.LogLevel != "" {
		overrides[config.PathLogLevel] = a.opts.LogLevel
	}
	if a.opts.Platform != "" {
		overrides[config.PathPlatform] = a.opts.Platform
	}
	if a.opts.OptionAsAlt != "" {
		overrides[config.PathOptionAsAlt] = a.opts.OptionAsAlt
	}

	opts := []config.Option{config.WithOverrides(overrides)}
	return append(opts, a.opts.ConfigOptions...)
}

// Config returns the active configuration.
func (a *App) Config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// Translator returns the key translator.
func (a *App) Translator() *terminal.Translator {
	return a.translator
}

// History returns the displayed events, newest first.
func (a *App) History() []key.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]key.Event, len(a.history))
	copy(out, a.history)
	return out
}

// Run shows key events until the user quits, ctx is done or the
// terminal is shut down. It returns ErrQuit when the user asked to exit.
func (a *App) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.term.Init(); err != nil {
		return NewComponentError("terminal", "init", err)
	}
	a.initialized.Store(true)

	a.term.OnResize(func(_, _ int) {
		a.render()
	})

	if a.opts.Watch && a.opts.ConfigPath != "" {
		if err := a.startWatcher(ctx); err != nil {
			a.logger.WithComponent("watcher").Warn("live reload disabled: %v", err)
		}
	}

	a.render()

	for {
		ev, err := a.term.Poll(ctx)
		if err != nil {
			if errors.Is(err, terminal.ErrClosed) {
				return nil
			}
			return err
		}
		if a.handleEvent(ev) {
			return ErrQuit
		}
	}
}

// IsRunning reports whether Run is active.
func (a *App) IsRunning() bool {
	return a.running.Load()
}

// handleEvent records ev and redraws. It returns true when ev completes
// a quit request.
func (a *App) handleEvent(ev key.Event) bool {
	timer := StartTimer()

	a.logger.WithComponent("input").Debug("%s", ev)

	quit := false
	a.mu.Lock()
	if ev.IsPress() && a.isQuit(ev) {
		quit = a.pendingQuit
		a.pendingQuit = true
	} else if ev.IsPress() {
		a.pendingQuit = false
	}

	a.history = append([]key.Event{ev}, a.history...)
	if len(a.history) > a.opts.HistorySize {
		a.history = a.history[:a.opts.HistorySize]
	}
	a.mu.Unlock()

	a.metrics.RecordEvent(ev, timer.Elapsed())

	if !quit {
		a.render()
	}
	return quit
}

func (a *App) isQuit(ev key.Event) bool {
	for _, t := range a.quitTriggers {
		if t.Matches(ev) {
			return true
		}
	}
	return false
}

func (a *App) startWatcher(ctx context.Context) error {
	log := a.logger.WithComponent("watcher")

	w, err := watcher.New(a.opts.ConfigPath, func(e watcher.Event) {
		log.Debug("%s %s", e.Op, e.Path)
		_ = a.reload()
	}, watcher.WithErrorHandler(func(err error) {
		log.Warn("watch error: %v", err)
	}))
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		_ = w.Close()
		return err
	}

	a.mu.Lock()
	prev := a.watcher
	a.watcher = w
	a.mu.Unlock()
	if prev != nil {
		if err := prev.Close(); err != nil {
			log.Warn("close previous watcher: %v", err)
		}
	}

	log.Info("watching %s", w.Path())
	return nil
}

// reload re-reads the configuration and applies what can change while
// running. A failed reload keeps the previous settings.
func (a *App) reload() error {
	log := a.logger.WithComponent("config")

	cfg, err := config.Load(a.opts.ConfigPath, a.configOptions()...)
	a.metrics.RecordReload(err)
	if err != nil {
		log.Warn("reload failed, keeping previous settings: %v", err)
		return err
	}

	a.translator.SetOptionAsAlt(cfg.Input.MacOSOptionAsAlt)
	a.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	if cfg.Input.Platform != a.translator.Platform() {
		log.Warn("platform changed to %s; restart to apply", cfg.Input.Platform)
	}

	a.mu.Lock()
	prev := a.cfg
	a.cfg = cfg
	a.mu.Unlock()

	log.WithField("changed", strings.Join(cfg.Changed(prev), ",")).Info("reloaded: %s=%s (%s)",
		config.PathOptionAsAlt, cfg.Input.MacOSOptionAsAlt, cfg.Origin(config.PathOptionAsAlt))

	if a.initialized.Load() {
		a.render()
	}
	return nil
}

// Shutdown stops the watcher and restores the terminal. It is safe to
// call more than once and from another goroutine than Run.
func (a *App) Shutdown() error {
	a.shutdownOnce.Do(func() {
		var errs ErrorList

		a.mu.Lock()
		w := a.watcher
		a.mu.Unlock()
		if w != nil {
			if err := w.Close(); err != nil {
				errs.Add(NewComponentError("watcher", "close", err))
			}
		}

		if a.initialized.Load() {
			a.term.Shutdown()
		}

		s := a.metrics.Snapshot()
		a.logger.Info("shutdown after %s: %d events, %d reloads",
			s.Uptime.Round(time.Millisecond), s.EventCount, s.ReloadCount)

		a.shutdownErr = errs.AsError()
	})
	return a.shutdownErr
}
