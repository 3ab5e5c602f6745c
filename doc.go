// Package encryption implements the cryptographic operations layer used by
// Stacks applications: hybrid public-key encryption, digital signatures,
// portable password-based key derivation, and the versioned format for
// encrypted recovery phrases.
//
// # Algorithm Suite
//
// All public-key operations use the secp256k1 curve:
//
//   - ECIES: ECDH key agreement with a fresh ephemeral key pair per call,
//     SHA-512 key split, AES-256-CBC encryption, and HMAC-SHA-256 over
//     (iv, ephemeral public key, ciphertext). Decryption verifies the MAC in
//     constant time before touching the ciphertext.
//
//   - ECDSA: deterministic (RFC 6979) signatures in DER encoding over the
//     SHA-256 digest of the message. [VerifyECDSA] reports mismatches as
//     false and never returns an error.
//
//   - PBKDF2 (RFC 8018): three interchangeable providers (the host-native
//     crypto module, the golang.org/x/crypto implementation, and an
//     in-package software fallback) selected per call by [CreatePbkdf2].
//     The providers are byte-identical for every valid input.
//
//   - Phrase vault: BIP-39 phrases are encrypted as their entropy bytes
//     under PBKDF2-SHA-512 (100000 iterations) with AES-128-CBC and
//     HMAC-SHA-256, serialized as salt || mac || ciphertext. Blobs carrying
//     the frozen legacy header are delegated to a caller-supplied
//     [LegacyDecrypter].
//
// # Security Model
//
// Every operation is stateless, fail-fast, and fail-closed: an integrity
// failure terminates the call without partial plaintext. Private keys are
// supplied and consumed per call; the package never persists or transmits
// them.
//
// Errors carry stable codes (see [ErrorCode]) alongside sentinel errors for
// errors.Is checks:
//
//	_, err := encryption.DecryptECIES(priv, envelope)
//	if errors.Is(err, encryption.ErrFailedDecryption) {
//	    // tampered envelope or wrong key
//	}
package encryption
