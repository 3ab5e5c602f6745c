package encryption

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/tyler-smith/go-bip39"

	"github.com/friedger/stacks.js/internal/crypto"
)

// Phrase vault protocol constants. They are fixed, not caller-configurable:
// every implementation producing the current format must agree on them.
const (
	// mnemonicSaltSize is the salt length of the current vault format.
	mnemonicSaltSize = 16
	// mnemonicIterations is the PBKDF2 iteration count of the current format.
	mnemonicIterations = 100000
	// mnemonicKeyLength is the PBKDF2 output length: a 16-byte AES-128 key,
	// a 16-byte MAC key, and a 16-byte IV.
	mnemonicKeyLength = 48
	// mnemonicDigest is the PBKDF2 digest of the current format.
	mnemonicDigest = DigestSHA512
)

// legacyFormatMagic is the 4-byte header that identifies the frozen legacy
// secret format. Blobs starting with it are opaque to this package and are
// delegated to the caller-supplied LegacyDecrypter.
var legacyFormatMagic = []byte{0x1c, 0x94, 0xd7, 0xde}

// LegacyDecrypter opens a legacy-format blob. The vault core carries no
// dependency on the legacy cipher; callers that still hold legacy records
// inject one.
type LegacyDecrypter func(ctx context.Context, data []byte, password string) (string, error)

// EncryptMnemonic encrypts a BIP-39 recovery phrase under a password.
//
// The phrase is validated first and reduced to its entropy bytes; the
// entropy is encrypted with AES-128-CBC under a PBKDF2-SHA-512 derived key
// (100000 iterations) and authenticated with HMAC-SHA-256. The result is
// salt(16) || mac(32) || ciphertext. Output is deterministic when a fixed
// salt is injected via [WithSalt] and random otherwise.
func EncryptMnemonic(ctx context.Context, phrase, password string, opts ...MnemonicOption) ([]byte, error) {
	cfg, err := newMnemonicConfig(opts)
	if err != nil {
		return nil, err
	}

	// Validate before any cryptography runs.
	entropy, err := bip39.EntropyFromMnemonic(phrase)
	if err != nil {
		return nil, &InvalidMnemonicError{Message: err.Error()}
	}

	salt := cfg.salt
	if salt == nil {
		salt = make([]byte, mnemonicSaltSize)
		if _, err := io.ReadFull(cfg.random, salt); err != nil {
			return nil, fmt.Errorf("generate salt: %w", err)
		}
	}

	encKey, macKey, iv, err := deriveMnemonicKeys(ctx, cfg.pbkdf2, password, salt)
	if err != nil {
		return nil, err
	}

	cipherText, err := crypto.EncryptCBC(encKey, iv, entropy)
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}
	mac := crypto.HMACSHA256(macKey, salt, cipherText)

	record := make([]byte, 0, len(salt)+len(mac)+len(cipherText))
	record = append(record, salt...)
	record = append(record, mac...)
	record = append(record, cipherText...)
	return record, nil
}

// DecryptMnemonic decrypts an encrypted recovery phrase and returns the
// phrase text.
//
// Blobs carrying the legacy format header are delegated entirely to
// legacyDecrypt. Current-format records are MAC-checked fail-closed before
// decryption; a wrong password therefore surfaces as a
// *FailedDecryptionError, never as wrong plaintext.
func DecryptMnemonic(ctx context.Context, data []byte, password string, legacyDecrypt LegacyDecrypter) (string, error) {
	if bytes.HasPrefix(data, legacyFormatMagic) {
		if legacyDecrypt == nil {
			return "", &FailedDecryptionError{Message: "legacy format requires a legacy decrypter"}
		}
		phrase, err := legacyDecrypt(ctx, data, password)
		if err != nil {
			return "", &FailedDecryptionError{Message: "legacy decryption failed", Err: err}
		}
		return phrase, nil
	}
	return decryptMnemonicRecord(ctx, data, password)
}

// DecryptMnemonicHex is [DecryptMnemonic] for hex-encoded input.
func DecryptMnemonicHex(ctx context.Context, encoded, password string, legacyDecrypt LegacyDecrypter) (string, error) {
	data, err := crypto.FromHex(encoded)
	if err != nil {
		return "", &FailedDecryptionError{Message: "input is not valid hex", Err: err}
	}
	return DecryptMnemonic(ctx, data, password, legacyDecrypt)
}

func decryptMnemonicRecord(ctx context.Context, data []byte, password string) (string, error) {
	if len(data) <= mnemonicSaltSize+crypto.MACSize {
		return "", &FailedDecryptionError{Message: "encrypted payload too short"}
	}
	salt := data[:mnemonicSaltSize]
	mac := data[mnemonicSaltSize : mnemonicSaltSize+crypto.MACSize]
	cipherText := data[mnemonicSaltSize+crypto.MACSize:]

	encKey, macKey, iv, err := deriveMnemonicKeys(ctx, nil, password, salt)
	if err != nil {
		return "", err
	}

	expected := crypto.HMACSHA256(macKey, salt, cipherText)
	if !crypto.EqualConstTime(expected, mac) {
		return "", &FailedDecryptionError{Message: "failure in MAC check, wrong password or corrupted payload"}
	}

	entropy, err := crypto.DecryptCBC(encKey, iv, cipherText)
	if err != nil {
		return "", &FailedDecryptionError{Message: "malformed ciphertext", Err: err}
	}

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", &FailedDecryptionError{Message: "decrypted payload is not valid entropy", Err: err}
	}
	return phrase, nil
}

// deriveMnemonicKeys stretches the password with the fixed vault parameters
// and splits the 48 derived bytes into the AES key, the MAC key, and the IV.
// The provider is chosen per call unless one was injected.
func deriveMnemonicKeys(ctx context.Context, provider Pbkdf2, password string, salt []byte) (encKey, macKey, iv []byte, err error) {
	if provider == nil {
		provider = CreatePbkdf2(nil)
	}
	derived, err := provider.Derive(ctx, []byte(password), salt, mnemonicIterations, mnemonicKeyLength, mnemonicDigest)
	if err != nil {
		return nil, nil, nil, err
	}
	return derived[0:16], derived[16:32], derived[32:48], nil
}
