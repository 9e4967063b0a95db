package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"Debug", LogLevelDebug},
		{" info ", LogLevelInfo},
		{"WARN", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"loud", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelDebug,
		Output: &buf,
		Prefix: "keynorm",
	})

	logger.WithFields(map[string]any{"key": "a", "action": "press"}).Info("event %d", 7)

	line := buf.String()
	if !strings.Contains(line, "[INFO] keynorm: event 7") {
		t.Errorf("unexpected line: %q", line)
	}
	// fields are sorted by name
	if !strings.HasSuffix(line, " {action=press, key=a}\n") {
		t.Errorf("fields not rendered in order: %q", line)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelWarn,
		Output: &buf,
	})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	if strings.Contains(output, "[DEBUG]") || strings.Contains(output, "[INFO]") {
		t.Errorf("messages below warn were written: %q", output)
	}
	if !strings.Contains(output, "[WARN]") || !strings.Contains(output, "[ERROR]") {
		t.Errorf("expected warn and error in output: %q", output)
	}
}

func TestLogger_SetLevelPropagates(t *testing.T) {
	var buf bytes.Buffer
	root := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})
	child := root.WithComponent("terminal")

	child.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug written at info level: %q", buf.String())
	}

	root.SetLevel(LogLevelDebug)
	if child.Level() != LogLevelDebug {
		t.Errorf("child Level() = %v, want DEBUG", child.Level())
	}

	child.Debug("shown")
	if !strings.Contains(buf.String(), "shown {component=terminal}") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	root := NewLogger(LoggerConfig{Output: &buf})
	_ = root.WithField("component", "config")

	root.Info("plain")
	if strings.Contains(buf.String(), "component") {
		t.Errorf("parent picked up child field: %q", buf.String())
	}
}

func TestLogger_DisableEnable(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Output: &buf})

	logger.Disable()
	logger.Error("dropped")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}

	logger.Enable()
	logger.Error("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("enabled logger wrote %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	// must not panic
	NullLogger.Error("nothing %d", 1)
	NullLogger.WithComponent("x").Info("nothing")
}

func TestGetSetLogger(t *testing.T) {
	prev := GetLogger()
	defer SetLogger(prev)

	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Output: &buf})
	SetLogger(l)
	if GetLogger() != l {
		t.Error("GetLogger() did not return the logger passed to SetLogger")
	}

	var a App
	if a.Logger() != l {
		t.Error("App.Logger() should fall back to the process logger")
	}
}
