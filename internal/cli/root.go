package cli

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/adspaceng/ratecard-wallet/internal/config"
	"github.com/adspaceng/ratecard-wallet/internal/logger"
	"github.com/adspaceng/ratecard-wallet/internal/services"
	"github.com/adspaceng/ratecard-wallet/internal/version"
)

var (
	cfg       *config.ServerEnvironment
	appLogger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "passctl",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "RateCard pass tool",
	Long: `passctl generates and verifies RateCard Apple Wallet passes offline.

It reads the same environment variables as ratecard-server (signing material, issuer constants, password source).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.NewServerConfig()
		if err != nil {
			log.Printf("failed to load configuration: %v", err.Error())
			return err
		}

		appLogger = logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
		return nil
	},
}

func Execute() {
	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// signingKeyPassword resolves the password from the configured source, unless override is set
func signingKeyPassword(cmd *cobra.Command, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	source, err := services.NewPasswordSource(cmd.Context(), cfg)
	if err != nil {
		return "", err
	}
	defer func() { _ = source.Close() }()

	return source.SigningKeyPassword(cmd.Context())
}
