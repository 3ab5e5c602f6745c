package encryption

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

const (
	testPhrase   = "march eager husband pilot waste rely exclude taste twist donkey actress scene"
	testPassword = "testtest"

	// Encryption of testPhrase under testPassword with the salt fixed to
	// sixteen 0xff bytes. Shared with the other implementations of the
	// format.
	testVaultRecordHex = "ffffffffffffffffffffffffffffffffca638cc39fc270e8be5cbf98347e42a5" +
		"2ee955e287ab589c571af5f7c80269295b0039e32ae13adf11bc6506f5ec32dd" +
		"a2f79df4c44276359c6bac178ae393de"
)

func fixedSalt() []byte { return bytes.Repeat([]byte{0xff}, 16) }

func TestEncryptMnemonic_DeterministicVector(t *testing.T) {
	ctx := context.Background()

	record, err := EncryptMnemonic(ctx, testPhrase, testPassword, WithSalt(fixedSalt()))
	if err != nil {
		t.Fatalf("EncryptMnemonic() error = %v", err)
	}
	if hexEncode(record) != testVaultRecordHex {
		t.Errorf("EncryptMnemonic() = %s, want %s", hexEncode(record), testVaultRecordHex)
	}
}

func TestDecryptMnemonic_KnownVector(t *testing.T) {
	ctx := context.Background()

	phrase, err := DecryptMnemonic(ctx, hexDecode(t, testVaultRecordHex), testPassword, nil)
	if err != nil {
		t.Fatalf("DecryptMnemonic() error = %v", err)
	}
	if phrase != testPhrase {
		t.Errorf("DecryptMnemonic() = %q, want %q", phrase, testPhrase)
	}
}

func TestDecryptMnemonicHex(t *testing.T) {
	ctx := context.Background()

	for _, encoded := range []string{testVaultRecordHex, "0x" + testVaultRecordHex} {
		phrase, err := DecryptMnemonicHex(ctx, encoded, testPassword, nil)
		if err != nil {
			t.Fatalf("DecryptMnemonicHex() error = %v", err)
		}
		if phrase != testPhrase {
			t.Errorf("DecryptMnemonicHex() = %q, want %q", phrase, testPhrase)
		}
	}

	if _, err := DecryptMnemonicHex(ctx, "not hex at all", testPassword, nil); !errors.Is(err, ErrFailedDecryption) {
		t.Errorf("DecryptMnemonicHex() with bad input error = %v, want ErrFailedDecryption", err)
	}
}

func TestEncryptMnemonic_RandomSaltRoundTrip(t *testing.T) {
	ctx := context.Background()

	record, err := EncryptMnemonic(ctx, testPhrase, testPassword)
	if err != nil {
		t.Fatalf("EncryptMnemonic() error = %v", err)
	}

	second, err := EncryptMnemonic(ctx, testPhrase, testPassword)
	if err != nil {
		t.Fatalf("EncryptMnemonic() error = %v", err)
	}
	if bytes.Equal(record, second) {
		t.Error("records with random salts are identical")
	}

	phrase, err := DecryptMnemonic(ctx, record, testPassword, nil)
	if err != nil {
		t.Fatalf("DecryptMnemonic() error = %v", err)
	}
	if phrase != testPhrase {
		t.Errorf("round trip = %q, want %q", phrase, testPhrase)
	}
}

func TestEncryptMnemonic_InjectedRandomness(t *testing.T) {
	ctx := context.Background()

	record, err := EncryptMnemonic(ctx, testPhrase, testPassword, WithRandom(bytes.NewReader(fixedSalt())))
	if err != nil {
		t.Fatalf("EncryptMnemonic() error = %v", err)
	}
	if hexEncode(record) != testVaultRecordHex {
		t.Errorf("EncryptMnemonic() with injected randomness = %s, want %s", hexEncode(record), testVaultRecordHex)
	}
}

func TestEncryptMnemonic_InjectedProvider(t *testing.T) {
	ctx := context.Background()

	record, err := EncryptMnemonic(ctx, testPhrase, testPassword,
		WithSalt(fixedSalt()), WithPbkdf2(NewSoftwarePbkdf2()))
	if err != nil {
		t.Fatalf("EncryptMnemonic() error = %v", err)
	}
	// Provider substrate must not change the bytes.
	if hexEncode(record) != testVaultRecordHex {
		t.Errorf("EncryptMnemonic() with software provider = %s, want %s", hexEncode(record), testVaultRecordHex)
	}
}

func TestEncryptMnemonic_RejectsInvalidPhrase(t *testing.T) {
	ctx := context.Background()

	tests := []string{
		"not a mnemonic phrase",
		"",
		// 11 words
		"march eager husband pilot waste rely exclude taste twist donkey actress",
		// valid words, bad checksum
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon",
	}

	for _, phrase := range tests {
		_, err := EncryptMnemonic(ctx, phrase, testPassword)
		if err == nil {
			t.Errorf("EncryptMnemonic(%q) expected error", phrase)
			continue
		}
		var invalid *InvalidMnemonicError
		if !errors.As(err, &invalid) {
			t.Errorf("EncryptMnemonic(%q) error = %T, want *InvalidMnemonicError", phrase, err)
		}
		if !errors.Is(err, ErrInvalidMnemonic) {
			t.Errorf("EncryptMnemonic(%q) error does not match ErrInvalidMnemonic", phrase)
		}
	}
}

func TestDecryptMnemonic_WrongPassword(t *testing.T) {
	ctx := context.Background()

	_, err := DecryptMnemonic(ctx, hexDecode(t, testVaultRecordHex), "wrongpassword", nil)
	if err == nil {
		t.Fatal("DecryptMnemonic() expected error for wrong password")
	}

	var failed *FailedDecryptionError
	if !errors.As(err, &failed) {
		t.Fatalf("DecryptMnemonic() error = %T, want *FailedDecryptionError", err)
	}
	if !strings.Contains(failed.Message, "MAC") {
		t.Errorf("error message %q does not reference the MAC check", failed.Message)
	}
}

func TestDecryptMnemonic_TamperedRecord(t *testing.T) {
	ctx := context.Background()

	record := hexDecode(t, testVaultRecordHex)
	record[len(record)-1] ^= 0x01 // flip a ciphertext bit

	if _, err := DecryptMnemonic(ctx, record, testPassword, nil); !errors.Is(err, ErrFailedDecryption) {
		t.Errorf("DecryptMnemonic() error = %v, want ErrFailedDecryption", err)
	}
}

func TestDecryptMnemonic_TooShort(t *testing.T) {
	ctx := context.Background()

	if _, err := DecryptMnemonic(ctx, make([]byte, 48), testPassword, nil); !errors.Is(err, ErrFailedDecryption) {
		t.Errorf("DecryptMnemonic() error = %v, want ErrFailedDecryption", err)
	}
}

func legacyBlob() []byte {
	return append(append([]byte(nil), legacyFormatMagic...), []byte("opaque legacy payload")...)
}

func TestDecryptMnemonic_LegacyDelegation(t *testing.T) {
	ctx := context.Background()
	blob := legacyBlob()

	var sawData []byte
	legacy := func(_ context.Context, data []byte, password string) (string, error) {
		sawData = data
		if password != testPassword {
			return "", fmt.Errorf("bad password")
		}
		return testPhrase, nil
	}

	phrase, err := DecryptMnemonic(ctx, blob, testPassword, legacy)
	if err != nil {
		t.Fatalf("DecryptMnemonic() error = %v", err)
	}
	if phrase != testPhrase {
		t.Errorf("DecryptMnemonic() = %q, want %q", phrase, testPhrase)
	}
	// The whole blob, header included, is handed to the legacy decrypter.
	if !bytes.Equal(sawData, blob) {
		t.Errorf("legacy decrypter received %x, want %x", sawData, blob)
	}
}

func TestDecryptMnemonic_LegacyWrongPassword(t *testing.T) {
	ctx := context.Background()

	legacy := func(_ context.Context, _ []byte, password string) (string, error) {
		return "", fmt.Errorf("bad password")
	}

	_, err := DecryptMnemonic(ctx, legacyBlob(), "wrongpassword", legacy)
	if !errors.Is(err, ErrFailedDecryption) {
		t.Errorf("DecryptMnemonic() error = %v, want ErrFailedDecryption", err)
	}
	if code, ok := ErrorCodeOf(err); !ok || code != CodeFailedDecryption {
		t.Errorf("ErrorCodeOf() = %q, %v; want %q, true", code, ok, CodeFailedDecryption)
	}
}

func TestDecryptMnemonic_LegacyWithoutDecrypter(t *testing.T) {
	ctx := context.Background()

	if _, err := DecryptMnemonic(ctx, legacyBlob(), testPassword, nil); !errors.Is(err, ErrFailedDecryption) {
		t.Errorf("DecryptMnemonic() error = %v, want ErrFailedDecryption", err)
	}
}

func TestEncryptMnemonic_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := EncryptMnemonic(ctx, testPhrase, testPassword); !errors.Is(err, context.Canceled) {
		t.Errorf("EncryptMnemonic() error = %v, want context.Canceled", err)
	}
}
