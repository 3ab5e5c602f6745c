package crypto

import "errors"

var (
	// ErrInvalidKeySize is returned when a symmetric key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidIVSize is returned when the CBC IV size is invalid.
	ErrInvalidIVSize = errors.New("invalid iv size")

	// ErrInvalidCiphertext is returned when ciphertext is empty or not a
	// whole number of blocks.
	ErrInvalidCiphertext = errors.New("invalid ciphertext length")

	// ErrInvalidPadding is returned when PKCS#7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid pkcs7 padding")

	// ErrInvalidSharedSecret is returned when the shared secret is not the
	// fixed 32-byte width.
	ErrInvalidSharedSecret = errors.New("invalid shared secret size")
)
