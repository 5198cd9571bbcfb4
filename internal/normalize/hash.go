package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Fingerprint identifies an input dataset by content.
type Fingerprint struct {
	SHA256 string
	Bytes  int64
}

// FingerprintFile hashes the file at path in a single pass.
func FingerprintFile(path string) (Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("open %s for hash: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("hash %s: %w", path, err)
	}
	return Fingerprint{SHA256: hex.EncodeToString(h.Sum(nil)), Bytes: n}, nil
}
