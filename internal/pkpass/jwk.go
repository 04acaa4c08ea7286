package pkpass

// jwk.go - renders the signer certificate public key as a JWK so that clients
// can check which pass type identity the service is signing with.

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

// SignerPublicJWK converts the public key of the signer certificate to JWK format.
// The key ID is the first 16 hex characters of the RFC 7638 SHA-256 thumbprint.
func SignerPublicJWK(cert *x509.Certificate) (jwk.Key, error) {
	if cert == nil {
		return nil, fmt.Errorf("certificate is nil")
	}

	var alg jwa.SignatureAlgorithm
	switch cert.PublicKey.(type) {
	case *rsa.PublicKey:
		alg = jwa.RS256()
	case *ecdsa.PublicKey:
		alg = jwa.ES256()
	default:
		return nil, fmt.Errorf("unsupported signer public key type %T", cert.PublicKey)
	}

	key, err := jwk.Import(cert.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWK from signer public key: %w", err)
	}

	thumbprint, err := key.Thumbprint(crypto.SHA256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate thumbprint: %w", err)
	}

	if err := key.Set(jwk.KeyIDKey, fmt.Sprintf("%x", thumbprint)[:16]); err != nil {
		return nil, fmt.Errorf("failed to set key ID: %w", err)
	}

	if err := key.Set(jwk.AlgorithmKey, alg); err != nil {
		return nil, fmt.Errorf("failed to set algorithm: %w", err)
	}

	if err := key.Set(jwk.KeyUsageKey, jwk.ForSignature); err != nil {
		return nil, fmt.Errorf("failed to set key usage: %w", err)
	}

	return key, nil
}

// SignerJWKSet returns a JWK set containing the signer public key
func SignerJWKSet(cert *x509.Certificate) (jwk.Set, error) {
	key, err := SignerPublicJWK(cert)
	if err != nil {
		return nil, err
	}

	set := jwk.NewSet()
	if err := set.AddKey(key); err != nil {
		return nil, fmt.Errorf("failed to add key to set: %w", err)
	}
	return set, nil
}
