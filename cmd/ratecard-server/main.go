package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adspaceng/ratecard-wallet/internal/config"
	"github.com/adspaceng/ratecard-wallet/internal/logger"
	"github.com/adspaceng/ratecard-wallet/internal/metrics"
	"github.com/adspaceng/ratecard-wallet/internal/server"
	"github.com/adspaceng/ratecard-wallet/internal/services"
	"github.com/adspaceng/ratecard-wallet/internal/version"
)

//	@title			ratecard-server
//	@description	ratecard-server issues signed Apple Wallet passes (.pkpass) for RateCard profiles.
//	@description
//	@description	## Common Error Responses
//	@description	All endpoints may return:
//	@description	- `413` Request body exceeds size limit
//	@description	- `429` Rate limit exceeded
//	@description	- `500` A fatal error occurred
//	@description
//	@description	## Request Limits
//	@description	All endpoints are protected by:
//	@description	- **Rate limiting**: Configurable requests per second per client (see env vars) - disabled by default
//	@description	- **Request size limits**: Configurable (see env vars) - default 64KB
//	@description
//	@description	Check the X-Max-Request-Size response header for the configured limit.
//	@description
//	@description	## Authentication
//	@description	The pass endpoint does not require credentials. Each pass carries its own authentication token
//	@description	for use with the Wallet web service.
//	@description
//	@license.name	MIT

//	@servers.url			https://ratecard.app
//	@servers.description	Production server
//	@servers.url			http://localhost:8080
//	@servers.description	Development server

//	@accept		json
//	@produce	json

//	@tag.name			Passes
//	@tag.description	Apple Wallet pass generation

//	@tag.name			Common
//	@tag.description	Server API endpoints (jwks, health, version, etc.)

func main() {
	cmd := &cobra.Command{
		Use:   "ratecard-server",
		Short: "RateCard Apple Wallet pass server",
		Long:  `ratecard-server builds, signs and returns Apple Wallet passes for RateCard profiles`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	v := version.Get()
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newPasswordSource is swapped out in tests
var newPasswordSource = services.NewPasswordSource

func run() error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	appLogger.Info("Configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("HOST", cfg.Host),
		slog.Int("PORT", cfg.Port),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.String("SIGNING_KEY_PATH", cfg.SigningKeyPath),
		slog.String("WWDR_CERT_PATH", cfg.WWDRCertPath),
		slog.String("TEMPLATE_DIR", cfg.TemplateDir),
		slog.String("PASSWORD_SOURCE", cfg.PasswordSource),
		slog.String("PASS_TYPE_IDENTIFIER", cfg.PassTypeIdentifier),
		slog.Int64("MAX_REQUEST_SIZE", cfg.MaxRequestSize),
		slog.Any("RATE_LIMIT_RPS", cfg.RateLimitRPS),
		slog.Bool("EXPOSE_ERROR_TRACE", cfg.ExposeErrorTrace),
	)

	if cfg.ExposeErrorTrace && !cfg.IsDevelopment() {
		appLogger.Warn("EXPOSE_ERROR_TRACE is enabled: 500 responses include stack traces",
			slog.String("environment", cfg.Environment))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	passwordSource, err := newPasswordSource(ctx, cfg)
	if err != nil {
		appLogger.Error("Failed to create password source", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create password source: %w", err)
	}
	defer func() {
		if err := passwordSource.Close(); err != nil {
			appLogger.Warn("Failed to close password source", slog.String("error", err.Error()))
		}
	}()

	password, err := passwordSource.SigningKeyPassword(ctx)
	if err != nil {
		appLogger.Error("Failed to read signing key password", slog.String("error", err.Error()))
		return fmt.Errorf("failed to read signing key password: %w", err)
	}

	m := metrics.New(cfg.MetricsNamespace)
	generator := server.NewGenerator(cfg, password, m)

	appLogger.Info("Starting server", slog.String("version", version.Get().Version))

	// configure the server
	srv := server.NewServer(cfg, appLogger, generator, m, password)

	// start the server
	if err := srv.Start(ctx); err != nil {
		appLogger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("server shutdown complete")
	return nil
}
