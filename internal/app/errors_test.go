package app

import (
	"errors"
	"testing"
)

func TestComponentError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ComponentError
		expected string
	}{
		{"nil error", nil, ""},
		{"component only", &ComponentError{Component: "terminal"}, "terminal"},
		{"component and action", &ComponentError{Component: "config", Action: "load"}, "config: load"},
		{"component and err", &ComponentError{Component: "watcher", Err: errors.New("no such dir")}, "watcher: no such dir"},
		{"full", NewComponentError("terminal", "init", errors.New("no tty")), "terminal: init: no tty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestComponentError_Is(t *testing.T) {
	err := NewComponentError("config", "load", ErrNotRunning)

	if !errors.Is(err, ErrNotRunning) {
		t.Error("errors.Is should find the wrapped error")
	}
	if !errors.Is(err, err) {
		t.Error("errors.Is should match the same instance")
	}
	if errors.Is(err, NewComponentError("config", "load", ErrNotRunning)) {
		t.Error("errors.Is should not match a different instance")
	}

	var nilErr *ComponentError
	if nilErr.Is(ErrNotRunning) {
		t.Error("nil ComponentError matched")
	}
	if nilErr.Unwrap() != nil {
		t.Error("nil ComponentError unwrapped to non-nil")
	}
}

func TestErrorList(t *testing.T) {
	var list ErrorList
	if list.AsError() != nil {
		t.Error("empty list should produce nil error")
	}

	list.Add(nil)
	if list.Len() != 0 {
		t.Errorf("Len() = %d after adding nil", list.Len())
	}

	first := NewComponentError("watcher", "close", errors.New("bad fd"))
	list.Add(first)
	if got := list.Error(); got != "watcher: close: bad fd" {
		t.Errorf("Error() = %q", got)
	}

	list.Add(ErrNotRunning)
	err := list.AsError()
	if err == nil {
		t.Fatal("AsError() = nil with two errors")
	}
	if got := err.Error(); got != "2 errors: first: watcher: close: bad fd" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrNotRunning) {
		t.Error("errors.Is should see every collected error")
	}

	var ce *ComponentError
	if !errors.As(err, &ce) || ce != first {
		t.Error("errors.As should find the ComponentError")
	}
}
