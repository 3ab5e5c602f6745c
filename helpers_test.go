package encryption

import (
	"encoding/hex"
	"io"
	"testing"
)

func hexEncode(data []byte) string {
	return hex.EncodeToString(data)
}

func hexDecode(t *testing.T, s string) []byte {
	t.Helper()
	data, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex fixture %q: %v", s, err)
	}
	return data
}

// setRandReaderForTesting overrides the package randomness source and
// returns a function restoring the original.
func setRandReaderForTesting(r io.Reader) func() {
	original := randReader
	randReader = r
	return func() { randReader = original }
}
