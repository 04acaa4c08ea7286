package pkpass

import (
	"archive/zip"
	"bytes"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
)

// maxArchiveEntrySize limits the size of a single decompressed archive entry
const maxArchiveEntrySize = 10 << 20

// Archive is the decoded content of a .pkpass file
type Archive struct {
	Pass     Pass
	Manifest Manifest

	// Files holds every entry except manifest.json and signature
	Files     map[string][]byte
	Signature []byte

	manifestJSON []byte
}

// ReadArchive unzips a pass archive without checking the signature.
func ReadArchive(data []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, WrapValidationError(err, "archive is not a zip file")
	}

	a := &Archive{Files: make(map[string][]byte, len(zr.File))}

	for _, zf := range zr.File {
		content, err := readZipEntry(zf)
		if err != nil {
			return nil, err
		}

		switch zf.Name {
		case ManifestJSONName:
			a.manifestJSON = content
		case SignatureName:
			a.Signature = content
		default:
			if _, exists := a.Files[zf.Name]; exists {
				return nil, NewValidationError(fmt.Sprintf("duplicate archive entry %s", zf.Name))
			}
			a.Files[zf.Name] = content
		}
	}

	passJSON, ok := a.Files[PassJSONName]
	if !ok {
		return nil, NewValidationError("archive has no pass.json")
	}
	if err := json.Unmarshal(passJSON, &a.Pass); err != nil {
		return nil, WrapValidationError(err, "failed to decode pass.json")
	}

	if a.manifestJSON == nil {
		return nil, NewValidationError("archive has no manifest.json")
	}
	if err := json.Unmarshal(a.manifestJSON, &a.Manifest); err != nil {
		return nil, WrapValidationError(err, "failed to decode manifest.json")
	}

	return a, nil
}

func readZipEntry(zf *zip.File) ([]byte, error) {
	rc, err := zf.Open()
	if err != nil {
		return nil, WrapValidationError(err, fmt.Sprintf("failed to open archive entry %s", zf.Name))
	}
	defer rc.Close()

	content, err := io.ReadAll(io.LimitReader(rc, maxArchiveEntrySize+1))
	if err != nil {
		return nil, WrapValidationError(err, fmt.Sprintf("failed to read archive entry %s", zf.Name))
	}
	if len(content) > maxArchiveEntrySize {
		return nil, NewValidationError(fmt.Sprintf("archive entry %s is too large", zf.Name))
	}
	return content, nil
}

// VerifyArchive unzips a pass archive, checks every file against manifest.json and verifies
// the detached signature over manifest.json.
//
// Parameters:
//   - data: the .pkpass bytes
//   - roots: trusted roots for the signer chain (nil = check the signature only)
func VerifyArchive(data []byte, roots *x509.CertPool) (*Archive, error) {
	a, err := ReadArchive(data)
	if err != nil {
		return nil, err
	}

	if err := a.Manifest.Verify(a.Files); err != nil {
		return nil, err
	}

	if len(a.Signature) == 0 {
		return nil, NewSigningError("archive has no signature")
	}

	if err := VerifyManifestSignature(a.Signature, a.manifestJSON, roots); err != nil {
		return nil, err
	}

	return a, nil
}
