package crypto

import (
	"crypto/sha512"
	"fmt"
)

// SplitSharedSecret derives the symmetric keys for the hybrid cipher from a
// fixed-width 32-byte ECDH shared secret. The secret is hashed once with
// SHA-512; the first half keys AES-256, the second half keys HMAC-SHA-256.
//
// The input must already be the left-zero-padded 32-byte x-coordinate
// encoding. Feeding a variable-width integer here would silently diverge
// from other implementations of the format.
func SplitSharedSecret(sharedSecret []byte) (encKey, macKey []byte, err error) {
	if len(sharedSecret) != SharedSecretSize {
		return nil, nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidSharedSecret, len(sharedSecret), SharedSecretSize)
	}
	digest := sha512.Sum512(sharedSecret)
	return digest[:32], digest[32:], nil
}
