package encryption

import (
	"crypto/rand"
	"fmt"
	"io"
)

// mnemonicConfig holds configuration for EncryptMnemonic.
type mnemonicConfig struct {
	salt   []byte
	random io.Reader
	pbkdf2 Pbkdf2
}

// MnemonicOption configures EncryptMnemonic.
type MnemonicOption func(*mnemonicConfig) error

// WithSalt fixes the 16-byte salt instead of drawing it from the randomness
// source. With a fixed salt the output is fully deterministic, which is what
// cross-implementation test vectors rely on.
func WithSalt(salt []byte) MnemonicOption {
	return func(cfg *mnemonicConfig) error {
		if len(salt) != mnemonicSaltSize {
			return fmt.Errorf("salt must be %d bytes, got %d", mnemonicSaltSize, len(salt))
		}
		cfg.salt = append([]byte(nil), salt...)
		return nil
	}
}

// WithRandom sets the source of cryptographically secure randomness used for
// salt generation. Defaults to crypto/rand.
func WithRandom(r io.Reader) MnemonicOption {
	return func(cfg *mnemonicConfig) error {
		if r == nil {
			return fmt.Errorf("randomness source must not be nil")
		}
		cfg.random = r
		return nil
	}
}

// WithPbkdf2 injects the derivation provider instead of selecting one per
// call. The vault's protocol parameters still apply; only the executing
// substrate changes.
func WithPbkdf2(p Pbkdf2) MnemonicOption {
	return func(cfg *mnemonicConfig) error {
		if p == nil {
			return fmt.Errorf("pbkdf2 provider must not be nil")
		}
		cfg.pbkdf2 = p
		return nil
	}
}

func newMnemonicConfig(opts []MnemonicOption) (*mnemonicConfig, error) {
	cfg := &mnemonicConfig{random: rand.Reader}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
