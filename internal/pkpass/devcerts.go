package pkpass

// devcerts.go - generates a self-signed signing identity and template images for local development.
//
// The CA stands in for the Apple WWDR intermediate; the signer certificate stands in for a
// pass type identity certificate and carries the pass type identifier in its UID attribute.

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/big"
	"os"
	"time"

	"software.sslmate.com/src/go-pkcs12"
)

const devKeyBits = 2048

// DevCertificates is a generated CA and pass signer key pair
type DevCertificates struct {
	CA        *x509.Certificate
	CAKey     *rsa.PrivateKey
	Signer    *x509.Certificate
	SignerKey *rsa.PrivateKey
}

// TemplateImages are the template files written by WriteDevMaterial, with their pixel size
var TemplateImages = []struct {
	Name string
	Size int
}{
	{"icon.png", 29},
	{"icon@2x.png", 58},
	{"logo.png", 160},
}

// GenerateDevCertificates creates a CA and a signer certificate for passTypeID issued by it.
func GenerateDevCertificates(passTypeID, teamID string, validFor time.Duration) (*DevCertificates, error) {
	if passTypeID == "" || teamID == "" {
		return nil, NewValidationError("pass type identifier and team identifier are required")
	}

	caKey, err := rsa.GenerateKey(rand.Reader, devKeyBits)
	if err != nil {
		return nil, WrapKeyManagementError(err, "failed to generate CA key")
	}

	notBefore := time.Now().Add(-time.Hour)
	notAfter := notBefore.Add(validFor)

	caSerial, err := randomSerial()
	if err != nil {
		return nil, err
	}

	caTemplate := &x509.Certificate{
		SerialNumber: caSerial,
		Subject: pkix.Name{
			CommonName:         "Development Wallet Pass CA",
			Organization:       []string{"Development"},
			OrganizationalUnit: []string{teamID},
		},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	caDER, err := x509.CreateCertificate(rand.Reader, caTemplate, caTemplate, &caKey.PublicKey, caKey)
	if err != nil {
		return nil, WrapCertificateError(err, "failed to create CA certificate")
	}
	caCert, err := x509.ParseCertificate(caDER)
	if err != nil {
		return nil, WrapCertificateError(err, "failed to parse CA certificate")
	}

	signerKey, err := rsa.GenerateKey(rand.Reader, devKeyBits)
	if err != nil {
		return nil, WrapKeyManagementError(err, "failed to generate signer key")
	}

	signerSerial, err := randomSerial()
	if err != nil {
		return nil, err
	}

	signerTemplate := &x509.Certificate{
		SerialNumber: signerSerial,
		Subject: pkix.Name{
			CommonName:         "Pass Type ID: " + passTypeID,
			OrganizationalUnit: []string{teamID},
			ExtraNames: []pkix.AttributeTypeAndValue{
				{Type: oidUserID, Value: passTypeID},
			},
		},
		NotBefore:   notBefore,
		NotAfter:    notAfter,
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}

	signerDER, err := x509.CreateCertificate(rand.Reader, signerTemplate, caCert, &signerKey.PublicKey, caKey)
	if err != nil {
		return nil, WrapCertificateError(err, "failed to create signer certificate")
	}
	signerCert, err := x509.ParseCertificate(signerDER)
	if err != nil {
		return nil, WrapCertificateError(err, "failed to parse signer certificate")
	}

	return &DevCertificates{
		CA:        caCert,
		CAKey:     caKey,
		Signer:    signerCert,
		SignerKey: signerKey,
	}, nil
}

func randomSerial() (*big.Int, error) {
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, WrapInternalError(err, "failed to generate certificate serial number")
	}
	return serial, nil
}

// SigningIdentity returns the generated signer as a SigningIdentity
func (d *DevCertificates) SigningIdentity() *SigningIdentity {
	return &SigningIdentity{
		PrivateKey:  d.SignerKey,
		Certificate: d.Signer,
		CACerts:     []*x509.Certificate{d.CA},
	}
}

// PKCS12 encodes the signer key and certificate as a password protected PKCS#12 file
func (d *DevCertificates) PKCS12(password string) ([]byte, error) {
	pfxData, err := pkcs12.Modern.Encode(d.SignerKey, d.Signer, nil, password)
	if err != nil {
		return nil, WrapKeyManagementError(err, "failed to encode PKCS#12 signing key")
	}
	return pfxData, nil
}

// TrustChainPEM returns the CA certificate in PEM format
func (d *DevCertificates) TrustChainPEM() []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: d.CA.Raw})
}

// PlaceholderPNG renders a square PNG filled with c
func PlaceholderPNG(size int, c color.Color) ([]byte, error) {
	if size <= 0 {
		return nil, NewAssetError(fmt.Sprintf("invalid image size %d", size))
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, WrapAssetError(err, "failed to encode PNG")
	}
	return buf.Bytes(), nil
}

// DevMaterialOptions configures WriteDevMaterial
type DevMaterialOptions struct {
	CertificatesDir    string
	TemplateDir        string
	SigningKeyFile     string
	TrustChainFile     string
	Password           string
	PassTypeIdentifier string
	TeamIdentifier     string
	ValidFor           time.Duration
	Color              color.Color
}

// WriteDevMaterial generates development certificates and writes the PKCS#12 signing key,
// the trust chain PEM and the template images.
// Existing files are overwritten.
func WriteDevMaterial(opts DevMaterialOptions) (*DevCertificates, error) {
	if opts.CertificatesDir == "" || opts.TemplateDir == "" {
		return nil, NewValidationError("certificates and template directories are required")
	}
	if opts.SigningKeyFile == "" || opts.TrustChainFile == "" {
		return nil, NewValidationError("signing key and trust chain file names are required")
	}
	if opts.ValidFor <= 0 {
		opts.ValidFor = 365 * 24 * time.Hour
	}
	if opts.Color == nil {
		opts.Color = color.RGBA{R: 24, G: 76, B: 116, A: 255}
	}

	for _, dir := range []string{opts.CertificatesDir, opts.TemplateDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, WrapInternalError(err, fmt.Sprintf("failed to create directory %s", dir))
		}
	}

	certs, err := GenerateDevCertificates(opts.PassTypeIdentifier, opts.TeamIdentifier, opts.ValidFor)
	if err != nil {
		return nil, err
	}

	pfxData, err := certs.PKCS12(opts.Password)
	if err != nil {
		return nil, err
	}

	if err := writeScopedFile(opts.CertificatesDir, opts.SigningKeyFile, pfxData, 0o600); err != nil {
		return nil, WrapKeyManagementError(err, "failed to write signing key")
	}

	if err := writeScopedFile(opts.CertificatesDir, opts.TrustChainFile, certs.TrustChainPEM(), 0o644); err != nil {
		return nil, WrapCertificateError(err, "failed to write trust chain")
	}

	for _, img := range TemplateImages {
		data, err := PlaceholderPNG(img.Size, opts.Color)
		if err != nil {
			return nil, err
		}
		if err := writeScopedFile(opts.TemplateDir, img.Name, data, 0o644); err != nil {
			return nil, WrapAssetError(err, "failed to write template image")
		}
	}

	return certs, nil
}
