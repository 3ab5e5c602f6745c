package encryption

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable, machine-readable error category. Codes are part of
// the public contract and never change between releases.
type ErrorCode string

const (
	// CodeFailedDecryption identifies MAC-check failures and legacy
	// decryption failures.
	CodeFailedDecryption ErrorCode = "FAILED_DECRYPTION_ERROR"

	// CodeDerivation identifies invalid key-derivation parameters.
	CodeDerivation ErrorCode = "DERIVATION_ERROR"

	// CodeInvalidMnemonic identifies malformed recovery phrases.
	CodeInvalidMnemonic ErrorCode = "INVALID_MNEMONIC_ERROR"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrFailedDecryption is returned when decryption fails integrity checks.
	ErrFailedDecryption = errors.New("failed to decrypt")

	// ErrDerivation is returned when key-derivation parameters are invalid.
	ErrDerivation = errors.New("key derivation failed")

	// ErrInvalidMnemonic is returned when a phrase is not a valid mnemonic.
	ErrInvalidMnemonic = errors.New("invalid mnemonic phrase")
)

// CodedError is implemented by all errors of this package. The code is the
// stable category; Error() carries the human-readable message.
type CodedError interface {
	error
	ErrorCode() ErrorCode
}

// ErrorCodeOf extracts the stable code from err. It returns an empty code
// and false if err does not originate from this package.
func ErrorCodeOf(err error) (ErrorCode, bool) {
	var coded CodedError
	if errors.As(err, &coded) {
		return coded.ErrorCode(), true
	}
	return "", false
}

// FailedDecryptionError reports that decryption could not proceed: a MAC
// mismatch on the current formats, or a failure from an injected legacy
// decrypter. No partial plaintext is ever returned alongside it.
type FailedDecryptionError struct {
	Message string
	Err     error
}

func (e *FailedDecryptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to decrypt: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("failed to decrypt: %s", e.Message)
}

// ErrorCode implements the CodedError interface.
func (e *FailedDecryptionError) ErrorCode() ErrorCode { return CodeFailedDecryption }

// Unwrap returns the underlying error.
func (e *FailedDecryptionError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *FailedDecryptionError) Is(target error) bool {
	return target == ErrFailedDecryption
}

// DerivationError reports invalid parameters to key derivation: a
// non-positive iteration count or key length, or an unsupported digest.
type DerivationError struct {
	Message string
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("key derivation failed: %s", e.Message)
}

// ErrorCode implements the CodedError interface.
func (e *DerivationError) ErrorCode() ErrorCode { return CodeDerivation }

// Is implements errors.Is for sentinel error matching.
func (e *DerivationError) Is(target error) bool {
	return target == ErrDerivation
}

// InvalidMnemonicError reports that the supplied phrase is not a
// syntactically valid recovery phrase. It is raised before any cryptography
// runs.
type InvalidMnemonicError struct {
	Message string
}

func (e *InvalidMnemonicError) Error() string {
	return fmt.Sprintf("invalid mnemonic phrase: %s", e.Message)
}

// ErrorCode implements the CodedError interface.
func (e *InvalidMnemonicError) ErrorCode() ErrorCode { return CodeInvalidMnemonic }

// Is implements errors.Is for sentinel error matching.
func (e *InvalidMnemonicError) Is(target error) bool {
	return target == ErrInvalidMnemonic
}
