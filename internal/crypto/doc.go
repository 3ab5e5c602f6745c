// Package crypto provides the shared symmetric primitives behind the
// encryption package: AES-CBC with strict PKCS#7 padding, HMAC-SHA-256
// authentication, the SHA-512 shared-secret key split, and hex encoding
// helpers.
//
// # Algorithm Suite
//
//   - AES-128-CBC / AES-256-CBC: block encryption for the phrase vault and
//     the hybrid cipher. CBC is retained because the wire formats are frozen;
//     integrity comes from the mandatory MAC-then-decrypt checks, never from
//     the cipher itself.
//
//   - HMAC-SHA-256: message authentication over (salt, ciphertext) for the
//     phrase vault and (iv, ephemeral public key, ciphertext) for the hybrid
//     cipher. Comparison is constant-time.
//
//   - SHA-512 split: the 32-byte ECDH shared secret is hashed once with
//     SHA-512 and split into a 32-byte encryption key and a 32-byte MAC key.
//
// # Critical Security Notes
//
// MAC verification MUST be performed BEFORE decryption. CBC ciphertext is
// malleable; decrypting unauthenticated input exposes padding oracles.
// Callers in the parent package always verify first and fail closed.
package crypto
