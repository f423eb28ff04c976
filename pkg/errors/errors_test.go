package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewFormatsCodeAndMessage(t *testing.T) {
	err := New(ErrCodeInvalidLevel, "level must not be negative: %d", -3)

	if err.Code != ErrCodeInvalidLevel {
		t.Fatalf("Code = %q, want %q", err.Code, ErrCodeInvalidLevel)
	}
	if got, want := err.Error(), "INVALID_LEVEL: level must not be negative: -3"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapKeepsCauseInChain(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeStore, cause, "archive level %d", 4)

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if got, want := err.Error(), "STORE_ERROR: archive level 4: disk full"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorsAsFindsCodedError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", New(ErrCodeInvalidMap, "unknown map"))

	var e *Error
	if !errors.As(wrapped, &e) {
		t.Fatal("errors.As failed to find *Error in chain")
	}
	if e.Code != ErrCodeInvalidMap {
		t.Errorf("Code = %q, want %q", e.Code, ErrCodeInvalidMap)
	}
}

func TestIs(t *testing.T) {
	inner := New(ErrCodeInvalidLevel, "inner")

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeInvalidLevel, "bad"), ErrCodeInvalidLevel, true},
		{"different code", New(ErrCodeInvalidLevel, "bad"), ErrCodeStore, false},
		{"outer code wins", Wrap(ErrCodeStore, inner, "outer"), ErrCodeStore, true},
		{"inner code shadowed by outer", Wrap(ErrCodeStore, inner, "outer"), ErrCodeInvalidLevel, false},
		{"uncoded error", errors.New("plain"), ErrCodeInvalidLevel, false},
		{"nil", nil, ErrCodeInvalidLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidFigure, "bad figure")); got != ErrCodeInvalidFigure {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeInvalidFigure)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q, want empty", got)
	}
}

func TestUserMessageStripsCode(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "level is required")); got != "level is required" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
