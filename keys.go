package encryption

import (
	"errors"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/friedger/stacks.js/internal/crypto"
)

// randReader is the random source used for key and IV generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

var (
	// ErrInvalidPrivateKey is returned when a private scalar is zero, not
	// reduced modulo the curve order, or the wrong size.
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrInvalidPublicKey is returned when a public key is not a valid
	// compressed point on the curve.
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// KeyPair holds a secp256k1 private scalar and its public point.
type KeyPair struct {
	// PrivateKey is the 32-byte private scalar, nonzero and less than the
	// curve order.
	PrivateKey []byte
	// PublicKey is the 33-byte compressed public point.
	PublicKey []byte
	// PublicKeyHex is the public key encoded as 66 lowercase hex characters.
	PublicKeyHex string
}

// MakeKeyPair generates a new secp256k1 key pair.
func MakeKeyPair() (*KeyPair, error) {
	priv, err := generatePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate private key: %w", err)
	}
	return keyPairFromScalar(priv), nil
}

// KeyPairFromPrivate builds a key pair from a 32-byte private scalar.
func KeyPairFromPrivate(privateKey []byte) (*KeyPair, error) {
	priv, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	return keyPairFromScalar(priv), nil
}

// KeyPairFromPrivateHex builds a key pair from a 64-character hex scalar.
// An optional 0x prefix is accepted.
func KeyPairFromPrivateHex(encoded string) (*KeyPair, error) {
	raw, err := crypto.FromHex(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return KeyPairFromPrivate(raw)
}

// GetPublicKeyFromPrivate returns the compressed public key for a private
// scalar.
func GetPublicKeyFromPrivate(privateKey []byte) ([]byte, error) {
	priv, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	return priv.PubKey().SerializeCompressed(), nil
}

func keyPairFromScalar(priv *secp256k1.PrivateKey) *KeyPair {
	pub := priv.PubKey().SerializeCompressed()
	return &KeyPair{
		PrivateKey:   priv.Serialize(),
		PublicKey:    pub,
		PublicKeyHex: crypto.ToHex(pub),
	}
}

func generatePrivateKey() (*secp256k1.PrivateKey, error) {
	if randReader != nil {
		return secp256k1.GeneratePrivateKeyFromRand(randReader)
	}
	return secp256k1.GeneratePrivateKey()
}

// parsePrivateKey validates and parses a 32-byte scalar. The scalar must be
// nonzero and already reduced modulo the curve order.
func parsePrivateKey(privateKey []byte) (*secp256k1.PrivateKey, error) {
	if len(privateKey) != crypto.PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPrivateKey, len(privateKey), crypto.PrivateKeySize)
	}

	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(privateKey); overflow {
		return nil, fmt.Errorf("%w: scalar not less than curve order", ErrInvalidPrivateKey)
	}
	if scalar.IsZero() {
		return nil, fmt.Errorf("%w: scalar is zero", ErrInvalidPrivateKey)
	}
	return secp256k1.NewPrivateKey(&scalar), nil
}

// parsePublicKey validates and parses a public point in compressed,
// uncompressed, or hybrid encoding.
func parsePublicKey(publicKey []byte) (*secp256k1.PublicKey, error) {
	pub, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return pub, nil
}
