package encryption

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  CodedError
		code ErrorCode
	}{
		{"failed decryption", &FailedDecryptionError{Message: "failure in MAC check"}, CodeFailedDecryption},
		{"derivation", &DerivationError{Message: "iterations must be at least 1"}, CodeDerivation},
		{"invalid mnemonic", &InvalidMnemonicError{Message: "bad phrase"}, CodeInvalidMnemonic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.ErrorCode() != tt.code {
				t.Errorf("ErrorCode() = %q, want %q", tt.err.ErrorCode(), tt.code)
			}
			if code, ok := ErrorCodeOf(tt.err); !ok || code != tt.code {
				t.Errorf("ErrorCodeOf() = %q, %v; want %q, true", code, ok, tt.code)
			}
		})
	}
}

func TestErrorCodeOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", &DerivationError{Message: "inner"})
	if code, ok := ErrorCodeOf(err); !ok || code != CodeDerivation {
		t.Errorf("ErrorCodeOf(wrapped) = %q, %v; want %q, true", code, ok, CodeDerivation)
	}
}

func TestErrorCodeOf_ForeignError(t *testing.T) {
	if code, ok := ErrorCodeOf(errors.New("not ours")); ok || code != "" {
		t.Errorf("ErrorCodeOf(foreign) = %q, %v; want empty, false", code, ok)
	}
	if _, ok := ErrorCodeOf(nil); ok {
		t.Error("ErrorCodeOf(nil) = true, want false")
	}
}

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"failed decryption", &FailedDecryptionError{Message: "m"}, ErrFailedDecryption},
		{"derivation", &DerivationError{Message: "m"}, ErrDerivation},
		{"invalid mnemonic", &InvalidMnemonicError{Message: "m"}, ErrInvalidMnemonic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Error("errors.Is() = false, want true")
			}
			wrapped := fmt.Errorf("context: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Error("errors.Is() on wrapped error = false, want true")
			}
		})
	}
}

func TestFailedDecryptionError_Unwrap(t *testing.T) {
	cause := errors.New("the real cause")
	err := &FailedDecryptionError{Message: "legacy decryption failed", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is() does not reach the wrapped cause")
	}
	if !strings.Contains(err.Error(), "the real cause") {
		t.Errorf("Error() = %q, want it to include the cause", err.Error())
	}
}

func TestErrorMessages(t *testing.T) {
	err := &FailedDecryptionError{Message: "failure in MAC check"}
	if got := err.Error(); !strings.Contains(got, "failure in MAC check") {
		t.Errorf("Error() = %q, want MAC failure message", got)
	}

	derr := &DerivationError{Message: "unsupported digest algorithm \"md5\""}
	if got := derr.Error(); !strings.Contains(got, "md5") {
		t.Errorf("Error() = %q, want digest name", got)
	}
}
