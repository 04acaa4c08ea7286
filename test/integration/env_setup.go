//go:build integration

package integration

// Test environment setup and server lifecycle management.
//
// The integration tests start the ratecard-server HTTP server with development signing material
// (a self-signed CA standing in for the Apple WWDR certificate) and run tests against it.
//
// By default the server logs are not included in the test output, you can enable them with:
//
//	ENABLE_SERVER_LOGS=true go test -tags=integration -v ./test/integration
//

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adspaceng/ratecard-wallet/internal/config"
	"github.com/adspaceng/ratecard-wallet/internal/logger"
	"github.com/adspaceng/ratecard-wallet/internal/metrics"
	"github.com/adspaceng/ratecard-wallet/internal/pkpass"
	"github.com/adspaceng/ratecard-wallet/internal/server"
	"github.com/adspaceng/ratecard-wallet/internal/services"
)

const testSigningKeyPassword = "integration-test"

// testEnv provides access to the running server and its signing material
type testEnv struct {
	baseURL  string
	cfg      *config.ServerEnvironment
	certs    *pkpass.DevCertificates
	shutdown func()
}

// startInProcessServer starts the ratecard-server in-process for testing.
// extraEnv overrides the default test environment variables.
func startInProcessServer(t *testing.T, extraEnv map[string]string) *testEnv {
	t.Helper()

	testEnv := &testEnv{}

	t.Log("Starting in-process server...")

	certificatesDir := t.TempDir()
	port := findFreePort(t)

	testEnvVars := map[string]string{
		"ENVIRONMENT":          "test",
		"HOST":                 "localhost",
		"PORT":                 fmt.Sprintf("%d", port),
		"LOG_LEVEL":            "none",
		"CERTIFICATES_DIR":     certificatesDir,
		"PASSWORD_SOURCE":      config.PasswordSourceEnv,
		"SIGNING_KEY_PASSWORD": testSigningKeyPassword,
		"RATE_LIMIT_RPS":       "0",
		"METRICS_NAMESPACE":    "ratecard",
	}
	for key, value := range extraEnv {
		testEnvVars[key] = value
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	cfg, err := config.NewServerConfig()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	// the signing material is always written with the test password so SIGNING_KEY_PASSWORD
	// can be overridden to exercise the wrong-password path
	certs, err := pkpass.WriteDevMaterial(pkpass.DevMaterialOptions{
		CertificatesDir:    filepath.Dir(cfg.SigningKeyPath),
		TemplateDir:        cfg.TemplateDir,
		SigningKeyFile:     filepath.Base(cfg.SigningKeyPath),
		TrustChainFile:     filepath.Base(cfg.WWDRCertPath),
		Password:           testSigningKeyPassword,
		PassTypeIdentifier: cfg.PassTypeIdentifier,
		TeamIdentifier:     cfg.TeamIdentifier,
		ValidFor:           time.Hour,
	})
	if err != nil {
		t.Fatalf("Failed to write signing material: %v", err)
	}
	testEnv.certs = certs

	logLevel := logger.ParseLogLevel("none")
	if os.Getenv("ENABLE_SERVER_LOGS") == "true" {
		logLevel = logger.ParseLogLevel("debug")
	}
	appLogger := logger.InitLogger(logLevel, "test")

	ctx := context.Background()

	passwordSource, err := services.NewPasswordSource(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to create password source: %v", err)
	}
	password, err := passwordSource.SigningKeyPassword(ctx)
	if err != nil {
		t.Fatalf("Failed to read signing key password: %v", err)
	}

	m := metrics.New(cfg.MetricsNamespace)
	serverInstance := server.NewServer(cfg, appLogger, server.NewGenerator(cfg, password, m), m, password)

	// Create a cancellable context for server shutdown
	serverCtx, serverCancel := context.WithCancel(ctx)

	// Start server
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := serverInstance.Start(serverCtx); err != nil {
			serverDone <- err
		}
	}()

	// Create shutdown function to be called by the test
	testEnv.shutdown = func() {
		t.Log("Stopping server...")

		// Cancel the server context to trigger graceful shutdown
		serverCancel()

		// Wait for server to shut down gracefully with timeout
		select {
		case err := <-serverDone:
			if err != nil {
				t.Logf("Server shutdown with error: %v", err)
			} else {
				t.Log("Server shut down gracefully")
			}
		case <-time.After(5 * time.Second):
			t.Log("Server shutdown timeout")
		}
	}

	testEnv.baseURL = fmt.Sprintf("http://localhost:%d", port)
	testEnv.cfg = cfg

	// Wait for server to be ready
	if !waitForServer(t, testEnv.baseURL+"/health", 30*time.Second) {
		t.Fatal("Server failed to start within timeout")
	}

	t.Log("Server started")
	return testEnv
}

func findFreePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("Failed to find free port: %v", err)
	}
	defer listener.Close()

	addr := listener.Addr().(*net.TCPAddr)
	return addr.Port
}

func waitForServer(t *testing.T, url string, timeout time.Duration) bool {
	t.Helper()

	client := &http.Client{Timeout: 1 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return true
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}
