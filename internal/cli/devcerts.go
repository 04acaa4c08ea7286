package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/adspaceng/ratecard-wallet/internal/config"
	"github.com/adspaceng/ratecard-wallet/internal/pkpass"
)

var devcertsCmd = &cobra.Command{
	Use:   "devcerts",
	Short: "Create development signing material",
	Long: `Create a self-signed CA, a pass type certificate and the template images.

The files are written to the configured locations (SIGNING_KEY_PATH, WWDR_CERT_PATH, TEMPLATE_DIR).
Passes signed with this material verify with passctl verify but are not accepted by Apple Wallet.

Example:
  CERTIFICATES_DIR=./certificates passctl devcerts --password dev`,
	RunE: runDevcerts,
}

var (
	devcertsPassword string
	devcertsValidFor time.Duration
)

func init() {
	rootCmd.AddCommand(devcertsCmd)

	devcertsCmd.Flags().StringVar(&devcertsPassword, "password", "", "PKCS#12 password (default: SIGNING_KEY_PASSWORD)")
	devcertsCmd.Flags().DurationVar(&devcertsValidFor, "valid-for", 365*24*time.Hour, "Certificate validity")
}

func runDevcerts(cmd *cobra.Command, args []string) error {
	password := devcertsPassword
	if password == "" {
		password = cfg.SigningKeyPassword
	}

	certs, err := writeDevMaterial(cfg, password, devcertsValidFor)
	if err != nil {
		return err
	}

	appLogger.Info("development signing material written",
		slog.String("signing_key", cfg.SigningKeyPath),
		slog.String("trust_chain", cfg.WWDRCertPath),
		slog.String("template_dir", cfg.TemplateDir),
		slog.String("subject", certs.Signer.Subject.CommonName),
		slog.Time("not_after", certs.Signer.NotAfter))
	return nil
}

func writeDevMaterial(cfg *config.ServerEnvironment, password string, validFor time.Duration) (*pkpass.DevCertificates, error) {
	if filepath.Dir(cfg.SigningKeyPath) != filepath.Dir(cfg.WWDRCertPath) {
		return nil, fmt.Errorf("SIGNING_KEY_PATH and WWDR_CERT_PATH must be in the same directory")
	}

	certs, err := pkpass.WriteDevMaterial(pkpass.DevMaterialOptions{
		CertificatesDir:    filepath.Dir(cfg.SigningKeyPath),
		TemplateDir:        cfg.TemplateDir,
		SigningKeyFile:     filepath.Base(cfg.SigningKeyPath),
		TrustChainFile:     filepath.Base(cfg.WWDRCertPath),
		Password:           password,
		PassTypeIdentifier: cfg.PassTypeIdentifier,
		TeamIdentifier:     cfg.TeamIdentifier,
		ValidFor:           validFor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write development material: %w", err)
	}
	return certs, nil
}
