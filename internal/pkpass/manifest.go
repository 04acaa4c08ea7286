package pkpass

// manifest.go - manifest.json creation and checking
//
// Wallet requires the manifest to use SHA-1 hashes.

import (
	"crypto/sha1" // #nosec G505 -- the pass manifest format is defined with SHA-1
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Manifest maps each archive path to the lowercase hex SHA-1 of its content
type Manifest map[string]string

// CalculateSHA1Hex calculates the SHA-1 checksum of data and returns it as a hex string
func CalculateSHA1Hex(data []byte) string {
	sum := sha1.Sum(data) // #nosec G401
	return hex.EncodeToString(sum[:])
}

// NewManifest hashes every file.
func NewManifest(files []File) (Manifest, error) {
	m := make(Manifest, len(files))
	for _, f := range files {
		if _, exists := m[f.Name]; exists {
			return nil, NewAssetError(fmt.Sprintf("duplicate archive entry %s", f.Name))
		}
		m[f.Name] = CalculateSHA1Hex(f.Data)
	}
	return m, nil
}

// Marshal encodes the manifest as JSON with keys in sorted order.
func (m Manifest) Marshal() ([]byte, error) {
	data, err := json.Marshal(map[string]string(m))
	if err != nil {
		return nil, WrapInternalError(err, "failed to encode manifest")
	}
	return data, nil
}

// Verify checks that files match the manifest exactly: every file is listed with the
// correct hash and every manifest entry has a file.
func (m Manifest) Verify(files map[string][]byte) error {
	for name, data := range files {
		expected, ok := m[name]
		if !ok {
			return NewSigningError(fmt.Sprintf("%s is not listed in the manifest", name))
		}
		if CalculateSHA1Hex(data) != expected {
			return NewSigningError(fmt.Sprintf("checksum mismatch for %s", name))
		}
	}
	for name := range m {
		if _, ok := files[name]; !ok {
			return NewSigningError(fmt.Sprintf("manifest entry %s has no matching file", name))
		}
	}
	return nil
}
