package pkpass

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/x509"
	"time"
)

// SignRequest describes a pass to sign
type SignRequest struct {
	// SigningKeyPath is the PKCS#12 file holding the pass type identity
	SigningKeyPath string

	// SigningKeyPassword protects the PKCS#12 file
	SigningKeyPassword string

	// TrustChainPath is the PEM or DER file holding the WWDR intermediate certificate
	TrustChainPath string

	Pass *Pass

	// Files are the template images to include, stored under their base names
	Files []string
}

// ArchiveSigner creates signed pass archives from files on disk
type ArchiveSigner struct {
	now func() time.Time
}

// NewArchiveSigner creates a signer that checks certificate validity against the current time
func NewArchiveSigner() *ArchiveSigner {
	return &ArchiveSigner{now: time.Now}
}

// CreateSignedArchive loads the signing material and assets, then returns the bytes of the .pkpass archive.
//
// The context is checked between steps; the signing itself is not interruptible.
func (s *ArchiveSigner) CreateSignedArchive(ctx context.Context, req SignRequest) ([]byte, error) {
	if err := req.Pass.Validate(); err != nil {
		return nil, err
	}

	identity, err := LoadSigningIdentity(req.SigningKeyPath, req.SigningKeyPassword)
	if err != nil {
		return nil, err
	}

	trustChain, err := LoadTrustChain(req.TrustChainPath)
	if err != nil {
		return nil, err
	}

	if err := ValidateSignerCertificate(identity.Certificate, req.Pass.PassTypeIdentifier, s.now()); err != nil {
		return nil, err
	}

	assets, err := LoadAssets(req.Files)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, WrapSigningError(err, "signing cancelled")
	}

	passJSON, err := EncodePass(req.Pass)
	if err != nil {
		return nil, err
	}

	return BuildArchive(passJSON, assets, identity, trustChain)
}

// BuildArchive hashes and signs the content and returns the zipped archive.
func BuildArchive(passJSON []byte, assets []File, identity *SigningIdentity, trustChain []*x509.Certificate) ([]byte, error) {
	files := make([]File, 0, len(assets)+3)
	files = append(files, File{Name: PassJSONName, Data: passJSON})
	files = append(files, assets...)

	manifest, err := NewManifest(files)
	if err != nil {
		return nil, err
	}

	manifestJSON, err := manifest.Marshal()
	if err != nil {
		return nil, err
	}

	signature, err := SignManifest(manifestJSON, identity, trustChain)
	if err != nil {
		return nil, err
	}

	files = append(files,
		File{Name: ManifestJSONName, Data: manifestJSON},
		File{Name: SignatureName, Data: signature},
	)

	return zipFiles(files)
}

func zipFiles(files []File) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate})
		if err != nil {
			return nil, WrapInternalError(err, "failed to add "+f.Name+" to archive")
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, WrapInternalError(err, "failed to write "+f.Name+" to archive")
		}
	}

	if err := zw.Close(); err != nil {
		return nil, WrapInternalError(err, "failed to close archive")
	}
	return buf.Bytes(), nil
}
