package vmm

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSimErrorFormat tests error message formatting
func TestSimErrorFormat(t *testing.T) {
	err := NewSimError(ErrCodeTraceParse, "LoadTrace", "malformed trace record at line 3", nil)

	if !strings.Contains(err.Error(), "LoadTrace") {
		t.Errorf("Expected operation in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("Expected line number in message, got %q", err.Error())
	}
}

// TestSimErrorUnwrap tests unwrapping the underlying error
func TestSimErrorUnwrap(t *testing.T) {
	underlying := fmt.Errorf("bad virtual address")
	err := ErrTraceParse("LoadTrace", 7, underlying)

	if !errors.Is(err, underlying) {
		t.Error("Expected errors.Is to find the underlying error")
	}
}

// TestSimErrorIs tests matching by error code
func TestSimErrorIs(t *testing.T) {
	err := ErrUnknownPolicy("ParsePolicy", "mru")
	target := &SimError{Code: ErrCodeUnknownPolicy}

	if !errors.Is(err, target) {
		t.Error("Expected errors matching the same code")
	}

	other := &SimError{Code: ErrCodeTraceNotFound}
	if errors.Is(err, other) {
		t.Error("Did not expect errors with different codes to match")
	}
}

// TestErrorCodes tests code extraction helpers
func TestErrorCodes(t *testing.T) {
	err := ErrPIDRange("LoadTrace", 12, 9, 4)

	if !IsErrorCode(err, ErrCodePIDRange) {
		t.Error("Expected ErrCodePIDRange")
	}
	if GetErrorCode(err) != ErrCodePIDRange {
		t.Errorf("Expected code %d, got %d", ErrCodePIDRange, GetErrorCode(err))
	}

	if GetErrorCode(fmt.Errorf("plain error")) != ErrCodeUnknown {
		t.Error("Expected ErrCodeUnknown for a plain error")
	}
}

// TestErrorHelpers tests the constructor helpers carry context
func TestErrorHelpers(t *testing.T) {
	err := ErrPIDRange("LoadTrace", 12, 9, 4)
	msg := err.Error()

	for _, want := range []string{"9", "12", "4"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected %q in message %q", want, msg)
		}
	}

	if !strings.Contains(ErrUnknownPolicy("ParsePolicy", "mru").Error(), "mru") {
		t.Error("Expected offending policy name in message")
	}
}
