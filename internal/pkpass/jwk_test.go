package pkpass

import (
	"crypto/x509"
	"testing"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

func TestSignerJWKSet(t *testing.T) {
	certs := testDevCertificates(t)

	set, err := SignerJWKSet(certs.Signer)
	if err != nil {
		t.Fatalf("SignerJWKSet() error: %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("set has %d keys, want 1", set.Len())
	}

	key, ok := set.Key(0)
	if !ok {
		t.Fatal("failed to get key from set")
	}

	kid, ok := key.KeyID()
	if !ok || len(kid) != 16 {
		t.Errorf("key ID = %q, want 16 hex characters", kid)
	}

	alg, ok := key.Algorithm()
	if !ok || alg.String() != jwa.RS256().String() {
		t.Errorf("algorithm = %v, want RS256", alg)
	}

	if _, isPrivate := key.(jwk.RSAPrivateKey); isPrivate {
		t.Error("signer JWK must not contain private key material")
	}
}

func TestSignerPublicJWK_Errors(t *testing.T) {
	if _, err := SignerPublicJWK(nil); err == nil {
		t.Error("expected error for nil certificate")
	}

	if _, err := SignerPublicJWK(&x509.Certificate{PublicKey: "not a key"}); err == nil {
		t.Error("expected error for unsupported key type")
	}
}
