package pkpass

// certs.go - functions for loading and checking the signer certificate and its trust chain

import (
	"bytes"
	"crypto/x509"
	"encoding/asn1"
	"encoding/pem"
	"fmt"
	"time"
)

// oidUserID is the LDAP UID attribute. Apple pass type identity certificates carry the
// pass type identifier (e.g "pass.app.ratecard") in this subject attribute.
var oidUserID = asn1.ObjectIdentifier{0, 9, 2342, 19200300, 100, 1, 1}

// ParseCertificates parses one or more X.509 certificates.
// The data can be PEM (any number of CERTIFICATE blocks, other block types are skipped)
// or a single DER encoded certificate, which is how Apple distributes the WWDR certificate.
func ParseCertificates(data []byte) ([]*x509.Certificate, error) {
	if !bytes.Contains(data, []byte("-----BEGIN")) {
		cert, err := x509.ParseCertificate(data)
		if err != nil {
			return nil, WrapCertificateError(err, "failed to parse DER certificate")
		}
		return []*x509.Certificate{cert}, nil
	}

	var certs []*x509.Certificate
	var block *pem.Block
	remaining := data

	for {
		block, remaining = pem.Decode(remaining)
		if block == nil {
			break
		}

		if block.Type != "CERTIFICATE" {
			continue
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, WrapCertificateError(err, "failed to parse certificate")
		}

		certs = append(certs, cert)
	}

	if len(certs) == 0 {
		return nil, NewCertificateError("no certificates found in PEM data")
	}

	return certs, nil
}

// LoadTrustChain loads the trust chain certificates (the Apple WWDR intermediate) from a file.
func LoadTrustChain(path string) ([]*x509.Certificate, error) {
	if path == "" {
		return nil, NewCertificateError("trust chain path is required")
	}

	data, err := readScopedFile(path)
	if err != nil {
		return nil, WrapCertificateError(err, "failed to load trust chain")
	}

	return ParseCertificates(data)
}

// LoadCertPool loads the certificates in path into a cert pool.
// Use this to build the roots passed to VerifyArchive.
func LoadCertPool(path string) (*x509.CertPool, error) {
	certs, err := LoadTrustChain(path)
	if err != nil {
		return nil, err
	}

	pool := x509.NewCertPool()
	for _, cert := range certs {
		pool.AddCert(cert)
	}
	return pool, nil
}

// CertificateUID returns the UID subject attribute of cert, or "" when it has none.
func CertificateUID(cert *x509.Certificate) string {
	for _, name := range cert.Subject.Names {
		if name.Type.Equal(oidUserID) {
			if s, ok := name.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}

// ValidateSignerCertificate checks the signer certificate can be used to sign passes of passTypeID at time now.
//
// Returns error if:
//   - the certificate is not yet valid or has expired
//   - the certificate has a UID subject attribute that is not passTypeID
func ValidateSignerCertificate(cert *x509.Certificate, passTypeID string, now time.Time) error {
	if cert == nil {
		return NewCertificateError("signer certificate is required")
	}

	if now.Before(cert.NotBefore) {
		return NewCertificateError(fmt.Sprintf("signer certificate is not valid until %s", cert.NotBefore.UTC().Format(time.RFC3339)))
	}
	if now.After(cert.NotAfter) {
		return NewCertificateError(fmt.Sprintf("signer certificate expired at %s", cert.NotAfter.UTC().Format(time.RFC3339)))
	}

	if uid := CertificateUID(cert); uid != "" && uid != passTypeID {
		return NewCertificateError(fmt.Sprintf("signer certificate is issued for %q, not %q", uid, passTypeID))
	}

	return nil
}

// ValidateCertificateChain validates an X.509 certificate chain against a set of trusted roots.
//
// Parameters:
//   - certChain: Certificate chain (leaf first)
//   - roots: Root CA pool (nil = system roots, custom pool = testing/private CA)
func ValidateCertificateChain(certChain []*x509.Certificate, roots *x509.CertPool) error {
	if len(certChain) == 0 {
		return NewCertificateError("empty certificate chain")
	}

	intermediates := x509.NewCertPool()
	for _, cert := range certChain[1:] {
		intermediates.AddCert(cert)
	}

	chains, err := certChain[0].Verify(x509.VerifyOptions{
		Roots:         roots,
		Intermediates: intermediates,
		CurrentTime:   time.Now(),
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	})
	if err != nil {
		return WrapCertificateError(err, "certificate chain validation failed")
	}
	if len(chains) == 0 {
		return NewCertificateError("no valid certificate chains found")
	}

	return nil
}
