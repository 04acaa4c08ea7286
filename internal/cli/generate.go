package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/adspaceng/ratecard-wallet/internal/config"
	"github.com/adspaceng/ratecard-wallet/internal/ratecard"
	"github.com/adspaceng/ratecard-wallet/internal/server"
)

var generateCmd = &cobra.Command{
	Use:   "generate <request.json>",
	Short: "Generate a signed pass from a request file",
	Long: `Generate a signed .pkpass from a JSON request file.

The file has the same shape as the POST /generate-pass body. When profileId is missing a random one is used.

Example:
  passctl generate ./request.json --out ./ada.pkpass`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var (
	generateOutput   string
	generatePassword string
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Output file (default: the generated pass filename in the current directory)")
	generateCmd.Flags().StringVar(&generatePassword, "password", "", "Signing key password (default: from the configured password source)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	password, err := signingKeyPassword(cmd, generatePassword)
	if err != nil {
		return fmt.Errorf("failed to resolve signing key password: %w", err)
	}

	outPath, pass, err := generatePassFile(cmd.Context(), cfg, password, args[0], generateOutput)
	if err != nil {
		return err
	}

	appLogger.Info("pass written",
		slog.String("file", outPath),
		slog.String("serial_number", pass.SerialNumber),
		slog.Int("bytes", len(pass.Archive)))
	return nil
}

// generatePassFile signs the request read from requestPath and writes the archive to outPath.
// An empty outPath writes to the generated filename in the working directory.
func generatePassFile(ctx context.Context, cfg *config.ServerEnvironment, password, requestPath, outPath string) (string, *ratecard.GeneratedPass, error) {
	body, err := os.ReadFile(filepath.Clean(requestPath))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read request file: %w", err)
	}

	req := ratecard.ParseRequest(body)
	if req.ProfileID == "" {
		req.ProfileID = uuid.NewString()
	}

	generator := server.NewGenerator(cfg, password, nil)

	pass, err := generator.Generate(ctx, req)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate pass: %w", err)
	}

	if outPath == "" {
		outPath = pass.Filename
	}
	if err := os.WriteFile(outPath, pass.Archive, 0o600); err != nil {
		return "", nil, fmt.Errorf("failed to write pass: %w", err)
	}

	return outPath, pass, nil
}
