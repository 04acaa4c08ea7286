package pkpass

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

var testColor = color.RGBA{R: 24, G: 76, B: 116, A: 255}

const (
	testPassTypeID = "pass.app.ratecard.test"
	testTeamID     = "TEAM123456"
	testPassword   = "test-password"
)

var (
	devCertsOnce sync.Once
	devCerts     *DevCertificates
	devCertsErr  error
)

// testDevCertificates generates the test CA and signer once per test binary (RSA key generation is slow)
func testDevCertificates(t *testing.T) *DevCertificates {
	t.Helper()
	devCertsOnce.Do(func() {
		devCerts, devCertsErr = GenerateDevCertificates(testPassTypeID, testTeamID, 24*time.Hour)
	})
	if devCertsErr != nil {
		t.Fatalf("failed to generate dev certificates: %v", devCertsErr)
	}
	return devCerts
}

type testMaterial struct {
	certs          *DevCertificates
	signingKeyPath string
	trustChainPath string
	assetPaths     []string
}

// writeTestMaterial writes the signing key, trust chain and template images to a temp dir
func writeTestMaterial(t *testing.T) testMaterial {
	t.Helper()

	certs := testDevCertificates(t)
	dir := t.TempDir()

	pfxData, err := certs.PKCS12(testPassword)
	if err != nil {
		t.Fatalf("PKCS12() error: %v", err)
	}

	m := testMaterial{
		certs:          certs,
		signingKeyPath: filepath.Join(dir, "signerCert.p12"),
		trustChainPath: filepath.Join(dir, "wwdr.pem"),
	}
	writeFile(t, m.signingKeyPath, pfxData)
	writeFile(t, m.trustChainPath, certs.TrustChainPEM())

	for _, img := range TemplateImages {
		data, err := PlaceholderPNG(img.Size, testColor)
		if err != nil {
			t.Fatalf("PlaceholderPNG() error: %v", err)
		}
		path := filepath.Join(dir, img.Name)
		writeFile(t, path, data)
		m.assetPaths = append(m.assetPaths, path)
	}

	return m
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func testPass() *Pass {
	return &Pass{
		Description:         "Professional Rate Card",
		FormatVersion:       FormatVersion,
		OrganizationName:    "RateCard",
		PassTypeIdentifier:  testPassTypeID,
		SerialNumber:        "ratecard-p1-1700000000",
		TeamIdentifier:      testTeamID,
		WebServiceURL:       "https://ratecard.app",
		AuthenticationToken: "0123456789abcdef0123456789abcdef",
		RelevantDate:        "2023-11-14T22:13:20+00:00",
		BackgroundColor:     "rgb(24, 76, 116)",
		ForegroundColor:     "rgb(255, 255, 255)",
		Barcode: &Barcode{
			Format:          BarcodeFormatQR,
			Message:         "https://ratecard.app/u/demo",
			MessageEncoding: "iso-8859-1",
		},
		Generic: &Fields{
			PrimaryFields: []Field{{Key: "name", Label: "Professional", Value: "Ada"}},
		},
	}
}

func assertErrorCode(t *testing.T, err error, want ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	var passErr *PassError
	if !errors.As(err, &passErr) {
		t.Fatalf("expected PassError, got %T: %v", err, err)
	}
	if passErr.Code() != want {
		t.Errorf("error code = %q, want %q (%v)", passErr.Code(), want, err)
	}
}
