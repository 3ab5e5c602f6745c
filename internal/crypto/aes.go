package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// EncryptCBC encrypts plaintext with AES-CBC and PKCS#7 padding.
// The key selects AES-128 or AES-256 by length; the IV must be one block.
func EncryptCBC(key, iv, plaintext []byte) ([]byte, error) {
	if len(key) != AES128KeySize && len(key) != AES256KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d or %d", ErrInvalidKeySize, len(key), AES128KeySize, AES256KeySize)
	}
	if len(iv) != AESBlockSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidIVSize, len(iv), AESBlockSize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	padded := padPKCS7(plaintext)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	return ciphertext, nil
}

// DecryptCBC decrypts AES-CBC ciphertext and strips PKCS#7 padding.
// Callers must authenticate the ciphertext before decryption.
func DecryptCBC(key, iv, ciphertext []byte) ([]byte, error) {
	if len(key) != AES128KeySize && len(key) != AES256KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d or %d", ErrInvalidKeySize, len(key), AES128KeySize, AES256KeySize)
	}
	if len(iv) != AESBlockSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidIVSize, len(iv), AESBlockSize)
	}
	if len(ciphertext) == 0 || len(ciphertext)%AESBlockSize != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCiphertext, len(ciphertext))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)
	return unpadPKCS7(padded)
}

func padPKCS7(data []byte) []byte {
	n := AESBlockSize - len(data)%AESBlockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func unpadPKCS7(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%AESBlockSize != 0 {
		return nil, ErrInvalidPadding
	}
	n := int(data[len(data)-1])
	if n < 1 || n > AESBlockSize || n > len(data) {
		return nil, ErrInvalidPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrInvalidPadding
		}
	}
	return data[:len(data)-n], nil
}
