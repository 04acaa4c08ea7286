package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/adspaceng/ratecard-wallet/internal/pkpass"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <pass.pkpass>",
	Short: "Verify a signed pass",
	Long: `Verify the manifest and the detached signature of a .pkpass archive.

The signer chain is checked against the trust chain (default: WWDR_CERT_PATH).

Example:
  passctl verify ./ada.pkpass --trust-chain ./certificates/wwdr.pem`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

var verifyTrustChain string

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyTrustChain, "trust-chain", "", "PEM file with the trusted CA certificates (default: WWDR_CERT_PATH)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	trustChain := verifyTrustChain
	if trustChain == "" {
		trustChain = cfg.WWDRCertPath
	}

	archive, err := verifyPassFile(args[0], trustChain)
	if err != nil {
		return err
	}

	printArchive(cmd.OutOrStdout(), archive)
	return nil
}

func verifyPassFile(path, trustChainPath string) (*pkpass.Archive, error) {
	roots, err := pkpass.LoadCertPool(trustChainPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load trust chain: %w", err)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read pass: %w", err)
	}

	archive, err := pkpass.VerifyArchive(data, roots)
	if err != nil {
		return nil, fmt.Errorf("pass verification failed: %w", err)
	}
	return archive, nil
}

func printArchive(w io.Writer, archive *pkpass.Archive) {
	p := archive.Pass
	fmt.Fprintf(w, "signature:     valid\n")
	fmt.Fprintf(w, "pass type:     %s\n", p.PassTypeIdentifier)
	fmt.Fprintf(w, "team:          %s\n", p.TeamIdentifier)
	fmt.Fprintf(w, "serial number: %s\n", p.SerialNumber)
	fmt.Fprintf(w, "description:   %s\n", p.Description)
	if p.Barcode != nil {
		fmt.Fprintf(w, "barcode:       %s\n", p.Barcode.Message)
	}

	names := make([]string, 0, len(archive.Manifest))
	for name := range archive.Manifest {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "files:\n")
	for _, name := range names {
		fmt.Fprintf(w, "  %-14s %s\n", name, archive.Manifest[name])
	}
}
