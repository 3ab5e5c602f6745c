package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
)

// HMACSHA256 computes the HMAC-SHA-256 tag of data under key.
func HMACSHA256(key []byte, data ...[]byte) []byte {
	mac := hmac.New(sha256.New, key)
	for _, d := range data {
		mac.Write(d)
	}
	return mac.Sum(nil)
}

// EqualConstTime reports whether two MACs are equal without leaking the
// position of the first mismatch.
func EqualConstTime(a, b []byte) bool {
	return hmac.Equal(a, b)
}
