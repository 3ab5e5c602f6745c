package encryption

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"hash"

	nativepbkdf2 "crypto/pbkdf2"

	xpbkdf2 "golang.org/x/crypto/pbkdf2"
)

// DigestAlgorithm selects the hash behind the PBKDF2 pseudorandom function.
type DigestAlgorithm string

const (
	// DigestSHA256 selects HMAC-SHA-256.
	DigestSHA256 DigestAlgorithm = "sha256"
	// DigestSHA384 selects HMAC-SHA-384.
	DigestSHA384 DigestAlgorithm = "sha384"
	// DigestSHA512 selects HMAC-SHA-512.
	DigestSHA512 DigestAlgorithm = "sha512"
)

// Pbkdf2 derives keys from passwords per RFC 8018.
//
// Every implementation in this package satisfies one contract: for any valid
// (password, salt, iterations, keyLength, digest) tuple, all providers return
// byte-identical output. Providers differ only in the substrate that executes
// the derivation.
type Pbkdf2 interface {
	// Derive stretches password into keyLength bytes. It fails with a
	// *DerivationError when iterations or keyLength is less than 1 or the
	// digest is unsupported. The call respects ctx: once abandoned, no
	// partial key is returned.
	Derive(ctx context.Context, password, salt []byte, iterations, keyLength int, digest DigestAlgorithm) ([]byte, error)
}

// Environment describes which cryptographic facilities the host offers.
// Probes are plain function values so tests can substitute capability sets
// without mutating process-wide state.
type Environment struct {
	// HasNativeCrypto reports whether the host-native crypto module is
	// usable.
	HasNativeCrypto func() bool
	// HasStandardCrypto reports whether the standards-based in-process
	// implementation is usable.
	HasStandardCrypto func() bool
}

// defaultEnvironment probes the facilities this build actually links.
// Both are compiled in unconditionally, so the probes answer true; the
// indirection exists for callers and tests that model restricted hosts.
func defaultEnvironment() *Environment {
	return &Environment{
		HasNativeCrypto:   func() bool { return true },
		HasStandardCrypto: func() bool { return true },
	}
}

// CreatePbkdf2 selects the best available derivation provider: the
// host-native facility first, the standards-based implementation second, and
// the always-available software fallback last.
//
// Selection is re-evaluated on every call, nothing is cached, so the
// result adapts if facility availability changes between calls. A nil env
// uses the default environment.
func CreatePbkdf2(env *Environment) Pbkdf2 {
	if env == nil {
		env = defaultEnvironment()
	}
	if env.HasNativeCrypto != nil && env.HasNativeCrypto() {
		return NewNativePbkdf2()
	}
	if env.HasStandardCrypto != nil && env.HasStandardCrypto() {
		return NewStandardPbkdf2()
	}
	return NewSoftwarePbkdf2()
}

// NewNativePbkdf2 returns the provider backed by the host-native crypto
// module (crypto/pbkdf2, which dispatches to the platform FIPS 140-3 module
// when one is active).
func NewNativePbkdf2() Pbkdf2 { return nativePbkdf2{} }

// NewStandardPbkdf2 returns the provider backed by the standards-based
// in-process implementation from golang.org/x/crypto.
func NewStandardPbkdf2() Pbkdf2 { return standardPbkdf2{} }

// NewSoftwarePbkdf2 returns the pure-software fallback provider. It is
// always available and is directly constructible so callers can cross-check
// results from the other facilities.
func NewSoftwarePbkdf2() Pbkdf2 { return softwarePbkdf2{} }

type nativePbkdf2 struct{}

func (nativePbkdf2) Derive(ctx context.Context, password, salt []byte, iterations, keyLength int, digest DigestAlgorithm) ([]byte, error) {
	newHash, err := checkDeriveParams(ctx, iterations, keyLength, digest)
	if err != nil {
		return nil, err
	}
	key, err := nativepbkdf2.Key(newHash, string(password), salt, iterations, keyLength)
	if err != nil {
		return nil, &DerivationError{Message: err.Error()}
	}
	return key, nil
}

type standardPbkdf2 struct{}

func (standardPbkdf2) Derive(ctx context.Context, password, salt []byte, iterations, keyLength int, digest DigestAlgorithm) ([]byte, error) {
	newHash, err := checkDeriveParams(ctx, iterations, keyLength, digest)
	if err != nil {
		return nil, err
	}
	return xpbkdf2.Key(password, salt, iterations, keyLength, newHash), nil
}

type softwarePbkdf2 struct{}

// Derive runs the RFC 8018 §5.2 iteration loop in-package. This provider is
// the reference against which the other substrates are checked, so it stays
// free of any facility the host could lack.
func (softwarePbkdf2) Derive(ctx context.Context, password, salt []byte, iterations, keyLength int, digest DigestAlgorithm) ([]byte, error) {
	newHash, err := checkDeriveParams(ctx, iterations, keyLength, digest)
	if err != nil {
		return nil, err
	}

	prf := hmac.New(newHash, password)
	hashLen := prf.Size()
	numBlocks := (keyLength + hashLen - 1) / hashLen

	var block [4]byte
	dk := make([]byte, 0, numBlocks*hashLen)
	u := make([]byte, hashLen)
	for i := 1; i <= numBlocks; i++ {
		// U_1 = PRF(password, salt || INT(i))
		prf.Reset()
		prf.Write(salt)
		binary.BigEndian.PutUint32(block[:], uint32(i))
		prf.Write(block[:])
		u = prf.Sum(u[:0])

		t := make([]byte, hashLen)
		copy(t, u)
		// U_j = PRF(password, U_{j-1}); T_i = U_1 ^ ... ^ U_c
		for j := 2; j <= iterations; j++ {
			prf.Reset()
			prf.Write(u)
			u = prf.Sum(u[:0])
			for k := range t {
				t[k] ^= u[k]
			}
		}
		dk = append(dk, t...)
	}
	return dk[:keyLength], nil
}

// checkDeriveParams validates the shared derivation contract and resolves
// the digest. All providers route through it so they agree on every error
// case as well as every success case.
func checkDeriveParams(ctx context.Context, iterations, keyLength int, digest DigestAlgorithm) (func() hash.Hash, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if iterations < 1 {
		return nil, &DerivationError{Message: fmt.Sprintf("iterations must be at least 1, got %d", iterations)}
	}
	if keyLength < 1 {
		return nil, &DerivationError{Message: fmt.Sprintf("key length must be at least 1, got %d", keyLength)}
	}
	switch digest {
	case DigestSHA256:
		return sha256.New, nil
	case DigestSHA384:
		return sha512.New384, nil
	case DigestSHA512:
		return sha512.New, nil
	default:
		return nil, &DerivationError{Message: fmt.Sprintf("unsupported digest algorithm %q", digest)}
	}
}
