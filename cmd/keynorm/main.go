// Package main is the entry point for keynorm, an interactive key event
// inspector.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/keynorm/internal/app"
	"github.com/dshills/keynorm/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, logFile, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: keynorm needs an interactive terminal")
		return 1
	}

	// The screen owns the tty, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	logger := app.NewLogger(app.LoggerConfig{Output: logOut, Prefix: "keynorm"})
	app.SetLogger(logger)
	opts.Logger = logger

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, app.ErrQuit) || errors.Is(err, context.Canceled) {
			return 0
		}
		_ = application.Shutdown()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() (app.Options, string, error) {
	var opts app.Options
	var logFile string
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (default "+config.DefaultPath()+")")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the configuration file when it changes")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, warning, error)")
	flag.StringVar(&logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&opts.Platform, "platform", "", "Keyboard platform (auto, darwin, other)")
	flag.StringVar(&opts.OptionAsAlt, "option-as-alt", "", "macOS option key policy (true, false, left, right)")
	flag.IntVar(&opts.HistorySize, "history", app.DefaultHistorySize, "Number of events to keep on screen")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keynorm - show normalized keyboard events\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keynorm [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  KEYNORM_MACOS_OPTION_AS_ALT, KEYNORM_PLATFORM, KEYNORM_LOG_LEVEL\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keynorm                          Inspect keys with default settings\n")
		fmt.Fprintf(os.Stderr, "  keynorm -platform darwin         Apply macOS modifier rules\n")
		fmt.Fprintf(os.Stderr, "  keynorm -watch -log-file k.log   Reload config on save, log to k.log\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("keynorm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		return opts, "", fmt.Errorf("unexpected arguments: %v", flag.Args())
	}

	if err := checkLogLevel(opts.LogLevel); err != nil {
		return opts, "", err
	}

	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultPath()
	}

	return opts, logFile, nil
}

// checkLogLevel accepts an empty level or any level the config accepts.
func checkLogLevel(level string) error {
	if level == "" || config.ValidLogLevel(level) {
		return nil
	}
	return fmt.Errorf("invalid log level %q (must be debug, info, warn, warning, or error)", level)
}
