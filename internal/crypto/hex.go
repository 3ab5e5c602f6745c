package crypto

import (
	"encoding/hex"
	"strings"
)

// ToHex encodes bytes as lowercase hex.
func ToHex(data []byte) string {
	return hex.EncodeToString(data)
}

// FromHex decodes a hex string to bytes.
// This version is lenient: it accepts an optional 0x prefix and mixed case.
func FromHex(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	return hex.DecodeString(s)
}
