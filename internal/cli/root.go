package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nftsql",
	Short: "Turn NFT metadata into SQL INSERT statements",
	Long: `nftsql reads NFT metadata documents from a local directory or an IPFS
gateway and prints SQL INSERT statements for one of two table layouts:

  one-table   a single table (id, name, description, image, attributes)
              with the attributes stored as a JSON text column
  two-tables  a main table (id, name, description, image) plus an
              attributes table (id, trait_type, value), one row per trait

Statements are printed, never executed.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or table name
  11 - Metadata source failed
  12 - Metadata validation failed (--strict, validate)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(rootCmd.OutOrStdout())
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
