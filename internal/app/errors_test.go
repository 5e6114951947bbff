package app

import (
	"errors"
	"testing"
)

func TestOperationError(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{"op only", NewOperationError("reload", "", nil), "reload"},
		{"with target", NewOperationError("open", "a.txt", base), "open a.txt: boom"},
		{"with context", NewOperationError("load", "x.lua", base).WithContext("hint.script"), "load x.lua (hint.script): boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	err := error(NewOperationError("open", "a.txt", base))
	if !errors.Is(err, base) {
		t.Error("OperationError should unwrap to its cause")
	}
}

func TestOperationError_Nil(t *testing.T) {
	var e *OperationError
	if e.WithContext("x") != nil {
		t.Error("WithContext on nil should return nil")
	}
	if e.Error() != "" {
		t.Errorf("Error() on nil = %q", e.Error())
	}
	if e.Unwrap() != nil {
		t.Error("Unwrap on nil should return nil")
	}
}

func TestInitError(t *testing.T) {
	err := error(&InitError{Component: "config", Err: ErrNoFiles})
	if err.Error() != "init config: no files to open" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrNoFiles) {
		t.Error("InitError should unwrap to its cause")
	}
	var ie *InitError
	if !errors.As(err, &ie) || ie.Component != "config" {
		t.Errorf("errors.As failed: %v", err)
	}
}
