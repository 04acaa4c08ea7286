package pkpass

// signature.go - detached PKCS#7 signatures over manifest.json

import (
	"crypto/x509"

	"github.com/smallstep/pkcs7"
)

// SignManifest creates the detached PKCS#7 signature stored as "signature" in the archive.
//
// The signer chain contains the trust chain certificates so that Wallet can build the path
// from the pass type certificate to the Apple root. When trustChain is empty the CA
// certificates bundled with the signing identity are used instead.
func SignManifest(manifestJSON []byte, identity *SigningIdentity, trustChain []*x509.Certificate) ([]byte, error) {
	if identity == nil || identity.Certificate == nil || identity.PrivateKey == nil {
		return nil, NewSigningError("signing identity is required")
	}

	parents := trustChain
	if len(parents) == 0 {
		parents = identity.CACerts
	}

	sd, err := pkcs7.NewSignedData(manifestJSON)
	if err != nil {
		return nil, WrapSigningError(err, "failed to initialise signed data")
	}
	sd.SetDigestAlgorithm(pkcs7.OIDDigestAlgorithmSHA256)

	if err := sd.AddSignerChain(identity.Certificate, identity.PrivateKey, parents, pkcs7.SignerInfoConfig{}); err != nil {
		return nil, WrapSigningError(err, "failed to add signer")
	}

	sd.Detach()

	signature, err := sd.Finish()
	if err != nil {
		return nil, WrapSigningError(err, "failed to create manifest signature")
	}
	return signature, nil
}

// VerifyManifestSignature checks a detached signature over manifestJSON.
// With a nil roots pool only the signature itself is checked, otherwise the signer
// certificate must also chain to one of roots.
func VerifyManifestSignature(signature, manifestJSON []byte, roots *x509.CertPool) error {
	p7, err := pkcs7.Parse(signature)
	if err != nil {
		return WrapSigningError(err, "failed to parse manifest signature")
	}
	p7.Content = manifestJSON

	if roots == nil {
		err = p7.Verify()
	} else {
		err = p7.VerifyWithChain(roots)
	}
	if err != nil {
		return WrapSigningError(err, "manifest signature verification failed")
	}
	return nil
}
