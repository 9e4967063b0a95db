// Package config loads keynorm settings.
//
// Settings come from four layers, lowest precedence first:
//
//  1. Built-in defaults
//  2. The config file (TOML or YAML, chosen by extension)
//  3. Environment variables with the KEYNORM_ prefix
//  4. Overrides, normally explicit command-line flags
//
// Recognized settings:
//
//	input.macosOptionAsAlt  bool, or "true", "false", "left", "right"
//	input.platform          "auto", "darwin" or "other"
//	logging.level           "debug", "info", "warn" or "error"
//
// Load returns an error wrapping ErrValidationFailed when a setting
// holds a value it cannot take, and a *loader.ParseError when the file
// cannot be parsed. A missing file is not an error.
//
// Basic usage:
//
//	cfg, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    return err
//	}
//	tr := terminal.NewTranslator(cfg.Input.Platform, cfg.Input.MacOSOptionAsAlt)
//
// The watcher subpackage reports edits to the config file so callers
// can reload.
package config
