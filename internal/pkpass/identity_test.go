package pkpass

import (
	"errors"
	"testing"

	"software.sslmate.com/src/go-pkcs12"
)

func TestLoadSigningIdentity(t *testing.T) {
	m := writeTestMaterial(t)

	t.Run("correct password", func(t *testing.T) {
		identity, err := LoadSigningIdentity(m.signingKeyPath, testPassword)
		if err != nil {
			t.Fatalf("LoadSigningIdentity() error: %v", err)
		}
		if !identity.Certificate.Equal(m.certs.Signer) {
			t.Error("loaded certificate does not match the signer certificate")
		}
		if !publicKeysEqual(identity.PrivateKey.Public(), m.certs.Signer.PublicKey) {
			t.Error("loaded key does not match the signer certificate")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := LoadSigningIdentity(m.signingKeyPath, "wrong")
		assertErrorCode(t, err, ErrCodeKeyManagement)
		if !errors.Is(err, pkcs12.ErrIncorrectPassword) {
			t.Errorf("expected ErrIncorrectPassword in chain, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSigningIdentity(m.signingKeyPath+".missing", testPassword)
		assertErrorCode(t, err, ErrCodeKeyManagement)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := LoadSigningIdentity("", testPassword)
		assertErrorCode(t, err, ErrCodeKeyManagement)
	})

	t.Run("not a PKCS#12 file", func(t *testing.T) {
		_, err := LoadSigningIdentity(m.trustChainPath, testPassword)
		assertErrorCode(t, err, ErrCodeKeyManagement)
	})
}
