package encryption

import (
	"crypto/sha256"

	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// SignatureData pairs a DER-encoded ECDSA signature with the compressed
// public key it verifies under. The private key never appears in the output.
type SignatureData struct {
	// PublicKey is the signer's 33-byte compressed public key.
	PublicKey []byte
	// Signature is the DER-encoded ECDSA signature.
	Signature []byte
}

// SignECDSA signs the SHA-256 digest of message with the private scalar.
// Signing is deterministic (RFC 6979): the same key and message always yield
// the same signature.
func SignECDSA(privateKey, message []byte) (*SignatureData, error) {
	priv, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(message)
	sig := secpecdsa.Sign(priv, digest[:])

	return &SignatureData{
		PublicKey: priv.PubKey().SerializeCompressed(),
		Signature: sig.Serialize(),
	}, nil
}

// VerifyECDSA reports whether signature is a valid signature of message
// under publicKey. Any mismatch (wrong message, wrong key, malformed key or
// signature) returns false. Verification never returns an error: a
// non-matching signature is an expected outcome, not an exceptional one.
func VerifyECDSA(message, publicKey, signature []byte) bool {
	pub, err := parsePublicKey(publicKey)
	if err != nil {
		return false
	}
	sig, err := secpecdsa.ParseDERSignature(signature)
	if err != nil {
		return false
	}

	digest := sha256.Sum256(message)
	return sig.Verify(digest[:], pub)
}
