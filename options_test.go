package encryption

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestWithSalt_RejectsWrongLength(t *testing.T) {
	ctx := context.Background()

	for _, n := range []int{0, 8, 15, 17, 32} {
		_, err := EncryptMnemonic(ctx, testPhrase, testPassword, WithSalt(make([]byte, n)))
		if err == nil || !strings.Contains(err.Error(), "salt") {
			t.Errorf("EncryptMnemonic() with %d-byte salt error = %v, want salt length error", n, err)
		}
	}
}

func TestWithSalt_CopiesInput(t *testing.T) {
	salt := bytes.Repeat([]byte{0xff}, 16)
	cfg, err := newMnemonicConfig([]MnemonicOption{WithSalt(salt)})
	if err != nil {
		t.Fatalf("newMnemonicConfig() error = %v", err)
	}

	salt[0] = 0x00
	if cfg.salt[0] != 0xff {
		t.Error("WithSalt() aliases the caller's slice")
	}
}

func TestWithRandom_RejectsNil(t *testing.T) {
	if _, err := newMnemonicConfig([]MnemonicOption{WithRandom(nil)}); err == nil {
		t.Error("WithRandom(nil) expected error")
	}
}

func TestWithPbkdf2_RejectsNil(t *testing.T) {
	if _, err := newMnemonicConfig([]MnemonicOption{WithPbkdf2(nil)}); err == nil {
		t.Error("WithPbkdf2(nil) expected error")
	}
}

func TestNewMnemonicConfig_Defaults(t *testing.T) {
	cfg, err := newMnemonicConfig(nil)
	if err != nil {
		t.Fatalf("newMnemonicConfig() error = %v", err)
	}
	if cfg.salt != nil {
		t.Error("default config has a fixed salt")
	}
	if cfg.random == nil {
		t.Error("default config has no randomness source")
	}
	if cfg.pbkdf2 != nil {
		t.Error("default config pins a derivation provider")
	}
}
