package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [project_path]",
	Short: "Check metadata records for problems before generating SQL",
	Long: `Validate reads every metadata record and reports:

1. Missing name or image
2. Image URIs that are not ipfs://, https:// or http://
3. Attributes without a trait_type
4. Duplicate token ids
5. Single quotes that would break verbatim SQL literals
   (not reported with --escape, which doubles them)

Exit code 12 means at least one problem was found.

Examples:
  nftsql validate ./collection
  nftsql validate ./collection --escape`,
	Args: OptionalProjectPath,
	RunE: runValidate,
}

type validateFlagValues struct {
	source sourceFlagValues
	escape bool
}

var validateFlags validateFlagValues

func init() {
	rootCmd.AddCommand(validateCmd)

	addSourceFlags(validateCmd, &validateFlags.source)
	validateCmd.Flags().BoolVar(&validateFlags.escape, "escape", false,
		"Validate for escaped output (single quotes are allowed)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	f := &validateFlags
	settings, err := resolveSettings(cmd, projectPathArg(args), &f.source, f.escape)
	if err != nil {
		return err
	}
	source, err := settings.newSource()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	records, err := source.Metadata(ctx)
	if err != nil {
		return err
	}
	if err := checkRecords(records, settings.quoting, settings.logger); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %d record(s) valid\n", len(records))
	return nil
}
