package lingo

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestProviderError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ProviderError{Message: "API call failed", Cause: cause, Retryable: true}

	if !strings.Contains(err.Error(), "API call failed") {
		t.Errorf("Error() = %q, missing message", err.Error())
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, missing cause", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap chain broken")
	}
}

func TestProviderError_NoCause(t *testing.T) {
	err := &ProviderError{Message: "no provider configured"}
	if err.Error() != "provider error: no provider configured" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Error("Unwrap() should be nil without a cause")
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("disk full")
	err := &StoreError{Message: "writing entry", Cause: cause}

	if !strings.Contains(err.Error(), "store error") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap chain broken")
	}
}

func TestProcessorError(t *testing.T) {
	err := &ProcessorError{Message: "parse failed", ContentType: "html"}

	if !strings.Contains(err.Error(), "html") {
		t.Errorf("Error() = %q, missing content type", err.Error())
	}

	wrapped := fmt.Errorf("processing: %w", err)
	var target *ProcessorError
	if !errors.As(wrapped, &target) {
		t.Error("errors.As failed through a wrap")
	}
}

func TestCountMismatchError(t *testing.T) {
	err := &CountMismatchError{Expected: 3, Got: 2}
	want := "translation count mismatch: expected 3, got 2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
