package pkpass

// identity.go - loads the pass type signing identity (private key + certificate) from a PKCS#12 file.
//
// Apple issues pass type identity certificates through the developer portal; they are normally
// exported from Keychain Access as a password protected .p12 file.

import (
	"crypto"
	"crypto/x509"
	"errors"
	"fmt"

	"software.sslmate.com/src/go-pkcs12"
)

// SigningIdentity is the private key and certificate used to sign pass manifests
type SigningIdentity struct {
	PrivateKey  crypto.Signer
	Certificate *x509.Certificate

	// CACerts are any additional certificates bundled in the PKCS#12 file
	CACerts []*x509.Certificate
}

// LoadSigningIdentity reads and decodes a PKCS#12 signing identity.
//
// Parameters:
//   - path: the .p12 file (e.g "./certificates/signerCert.p12")
//   - password: the password used to protect the file (may be empty)
func LoadSigningIdentity(path, password string) (*SigningIdentity, error) {
	if path == "" {
		return nil, NewKeyManagementError("signing key path is required")
	}

	pfxData, err := readScopedFile(path)
	if err != nil {
		return nil, WrapKeyManagementError(err, "failed to load signing key")
	}

	return ParseSigningIdentity(pfxData, password)
}

// ParseSigningIdentity decodes PKCS#12 data containing a private key and its certificate.
func ParseSigningIdentity(pfxData []byte, password string) (*SigningIdentity, error) {
	privateKey, cert, caCerts, err := pkcs12.DecodeChain(pfxData, password)
	if err != nil {
		if errors.Is(err, pkcs12.ErrIncorrectPassword) {
			return nil, WrapKeyManagementError(err, "incorrect signing key password")
		}
		return nil, WrapKeyManagementError(err, "failed to decode PKCS#12 signing key")
	}

	signer, ok := privateKey.(crypto.Signer)
	if !ok {
		return nil, NewKeyManagementError(fmt.Sprintf("unsupported signing key type %T", privateKey))
	}

	if !publicKeysEqual(signer.Public(), cert.PublicKey) {
		return nil, NewKeyManagementError("signing key does not match the signing certificate")
	}

	return &SigningIdentity{
		PrivateKey:  signer,
		Certificate: cert,
		CACerts:     caCerts,
	}, nil
}

func publicKeysEqual(a, b crypto.PublicKey) bool {
	k, ok := a.(interface{ Equal(crypto.PublicKey) bool })
	if !ok {
		return false
	}
	return k.Equal(b)
}
