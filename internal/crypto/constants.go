package crypto

const (
	// AESBlockSize is the AES block size in bytes, also the CBC IV size.
	AESBlockSize = 16

	// AES128KeySize is the size of an AES-128 key in bytes.
	AES128KeySize = 16
	// AES256KeySize is the size of an AES-256 key in bytes.
	AES256KeySize = 32

	// MACSize is the size of an HMAC-SHA-256 tag in bytes.
	MACSize = 32

	// SharedSecretSize is the fixed width of the encoded ECDH shared-secret
	// x-coordinate in bytes. The x-coordinate is a variable-length integer;
	// it is always left-zero-padded to this width before key derivation so
	// that every implementation feeds identical bytes into the split.
	SharedSecretSize = 32

	// CompressedPublicKeySize is the size of a compressed secp256k1 point.
	CompressedPublicKeySize = 33

	// PrivateKeySize is the size of a secp256k1 private scalar in bytes.
	PrivateKeySize = 32
)
