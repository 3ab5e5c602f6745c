package encryption

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/friedger/stacks.js/internal/crypto"
)

// CipherEnvelope is the output of one [EncryptECIES] call and the input of
// exactly one matching [DecryptECIES] call. It is immutable after creation.
type CipherEnvelope struct {
	// EphemeralPublicKey is the 33-byte compressed public key generated for
	// this envelope.
	EphemeralPublicKey []byte
	// IV is the 16-byte CBC initialization vector.
	IV []byte
	// CipherText is the AES-256-CBC ciphertext.
	CipherText []byte
	// MAC is the HMAC-SHA-256 tag over (IV, EphemeralPublicKey, CipherText).
	MAC []byte
	// WasString records whether the plaintext was text rather than raw
	// bytes, so callers can honor the original type after decryption.
	WasString bool
}

// cipherEnvelopeJSON is the canonical serialization: lowercase hex values
// under the field names shared with the other implementations of the format.
type cipherEnvelopeJSON struct {
	IV          string `json:"iv"`
	EphemeralPK string `json:"ephemeralPK"`
	CipherText  string `json:"cipherText"`
	MAC         string `json:"mac"`
	WasString   bool   `json:"wasString"`
}

// MarshalJSON implements json.Marshaler.
func (e *CipherEnvelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(cipherEnvelopeJSON{
		IV:          crypto.ToHex(e.IV),
		EphemeralPK: crypto.ToHex(e.EphemeralPublicKey),
		CipherText:  crypto.ToHex(e.CipherText),
		MAC:         crypto.ToHex(e.MAC),
		WasString:   e.WasString,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *CipherEnvelope) UnmarshalJSON(data []byte) error {
	var aux cipherEnvelopeJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if e.IV, err = crypto.FromHex(aux.IV); err != nil {
		return fmt.Errorf("decode iv: %w", err)
	}
	if e.EphemeralPublicKey, err = crypto.FromHex(aux.EphemeralPK); err != nil {
		return fmt.Errorf("decode ephemeralPK: %w", err)
	}
	if e.CipherText, err = crypto.FromHex(aux.CipherText); err != nil {
		return fmt.Errorf("decode cipherText: %w", err)
	}
	if e.MAC, err = crypto.FromHex(aux.MAC); err != nil {
		return fmt.Errorf("decode mac: %w", err)
	}
	e.WasString = aux.WasString
	return nil
}

// EncryptECIES encrypts plaintext to the holder of recipientPublicKey.
//
// A fresh ephemeral key pair is generated per call; the ECDH shared secret
// with the recipient key is encoded as a fixed-width 32-byte x-coordinate,
// split into encryption and MAC keys, and used for AES-256-CBC plus
// HMAC-SHA-256. wasString is carried in the envelope so the caller's input
// type is honored on decryption.
func EncryptECIES(recipientPublicKey, plaintext []byte, wasString bool) (*CipherEnvelope, error) {
	pub, err := parsePublicKey(recipientPublicKey)
	if err != nil {
		return nil, err
	}

	ephemeral, err := generatePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate ephemeral key: %w", err)
	}
	ephemeralPub := ephemeral.PubKey().SerializeCompressed()

	encKey, macKey, err := crypto.SplitSharedSecret(sharedSecret(ephemeral, pub))
	if err != nil {
		return nil, err
	}

	iv := make([]byte, crypto.AESBlockSize)
	if _, err := io.ReadFull(randSource(), iv); err != nil {
		return nil, fmt.Errorf("generate iv: %w", err)
	}

	cipherText, err := crypto.EncryptCBC(encKey, iv, plaintext)
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}

	return &CipherEnvelope{
		EphemeralPublicKey: ephemeralPub,
		IV:                 iv,
		CipherText:         cipherText,
		MAC:                crypto.HMACSHA256(macKey, iv, ephemeralPub, cipherText),
		WasString:          wasString,
	}, nil
}

// DecryptECIES opens an envelope with the recipient's private key.
//
// The MAC is recomputed and compared in constant time before any
// decryption: on mismatch the call fails with a *FailedDecryptionError and
// the ciphertext is never touched.
func DecryptECIES(recipientPrivateKey []byte, envelope *CipherEnvelope) ([]byte, error) {
	priv, err := parsePrivateKey(recipientPrivateKey)
	if err != nil {
		return nil, err
	}
	ephemeralPub, err := parsePublicKey(envelope.EphemeralPublicKey)
	if err != nil {
		return nil, err
	}

	encKey, macKey, err := crypto.SplitSharedSecret(sharedSecret(priv, ephemeralPub))
	if err != nil {
		return nil, err
	}

	expected := crypto.HMACSHA256(macKey, envelope.IV, envelope.EphemeralPublicKey, envelope.CipherText)
	if !crypto.EqualConstTime(expected, envelope.MAC) {
		return nil, &FailedDecryptionError{Message: "failure in MAC check"}
	}

	plaintext, err := crypto.DecryptCBC(encKey, envelope.IV, envelope.CipherText)
	if err != nil {
		return nil, &FailedDecryptionError{Message: "malformed ciphertext", Err: err}
	}
	return plaintext, nil
}

// sharedSecret computes the ECDH shared point of priv and pub and returns
// its x-coordinate as a fixed-width 32-byte big-endian value. The
// left-zero-padding is a protocol contract: x-coordinates are
// variable-length integers, and any non-padded encoding diverges from the
// other implementations of the format.
func sharedSecret(priv *secp256k1.PrivateKey, pub *secp256k1.PublicKey) []byte {
	return secp256k1.GenerateSharedSecret(priv, pub)
}

func randSource() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}
