package server

import (
	"github.com/adspaceng/ratecard-wallet/internal/config"
	"github.com/adspaceng/ratecard-wallet/internal/metrics"
	"github.com/adspaceng/ratecard-wallet/internal/pkpass"
	"github.com/adspaceng/ratecard-wallet/internal/ratecard"
)

// NewIssuer returns the issuer constants written into every pass
func NewIssuer(cfg *config.ServerEnvironment) ratecard.Issuer {
	return ratecard.Issuer{
		Description:        cfg.PassDescription,
		OrganizationName:   cfg.OrganizationName,
		PassTypeIdentifier: cfg.PassTypeIdentifier,
		TeamIdentifier:     cfg.TeamIdentifier,
		BackgroundColor:    cfg.BackgroundColor,
		ForegroundColor:    cfg.ForegroundColor,
		WebServiceURL:      cfg.WebServiceURL,
		ProfileURLBase:     cfg.ProfileURLBase,
	}
}

// NewGenerator creates a pass generator that signs with the configured material
func NewGenerator(cfg *config.ServerEnvironment, signingKeyPassword string, m *metrics.Metrics) *ratecard.Generator {
	material := ratecard.SigningMaterial{
		SigningKeyPath:     cfg.SigningKeyPath,
		SigningKeyPassword: signingKeyPassword,
		TrustChainPath:     cfg.WWDRCertPath,
		TemplateDir:        cfg.TemplateDir,
	}

	return ratecard.NewGenerator(
		pkpass.NewArchiveSigner(),
		NewIssuer(cfg),
		material,
		cfg.SigningTimeout,
		ratecard.WithMetrics(m),
	)
}
