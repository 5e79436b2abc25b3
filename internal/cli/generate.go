package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/nftsql/internal/sqlgen"
)

var oneTableCmd = &cobra.Command{
	Use:   "one-table [project_path]",
	Short: "Print INSERT statements for the single-table layout",
	Long: `Print one INSERT statement per metadata record for a single table:

  CREATE TABLE nfts (id int, name text, description text, image text, attributes text);

The attributes column holds the record's traits as compact JSON text.

Arguments:
  project_path    Directory holding nftsql.yaml, .env and metadata/
                  (default: current directory)

Examples:
  # Local metadata/<id>.json documents
  nftsql one-table ./collection

  # Tokens 1..100 from an IPFS gateway, images pinned under another CID
  nftsql one-table --source gateway --cid bafy... --image-cid bafy... \
    --first-id 1 --last-id 100

  # Custom table name, quotes escaped
  nftsql one-table ./collection --table public.nfts --escape`,
	Args: OptionalProjectPath,
	RunE: runOneTable,
}

var twoTablesCmd = &cobra.Command{
	Use:   "two-tables [project_path]",
	Short: "Print INSERT statements for the main + attributes layout",
	Long: `Print INSERT statements for a main table and an attributes table:

  CREATE TABLE main (id int, name text, description text, image text);
  CREATE TABLE attributes (id int, trait_type text, value text);

Each record gives one main statement followed by one attributes statement
per trait, in document order.

Arguments:
  project_path    Directory holding nftsql.yaml, .env and metadata/
                  (default: current directory)

Examples:
  nftsql two-tables ./collection
  nftsql two-tables ./collection --main nft --attributes nft_trait
  nftsql two-tables ./collection --format json`,
	Args: OptionalProjectPath,
	RunE: runTwoTables,
}

type oneTableFlagValues struct {
	source sourceFlagValues
	output outputFlagValues
	table  string
}

type twoTablesFlagValues struct {
	source          sourceFlagValues
	output          outputFlagValues
	mainTable       string
	attributesTable string
}

var (
	oneTableFlags  oneTableFlagValues
	twoTablesFlags twoTablesFlagValues
)

func init() {
	rootCmd.AddCommand(oneTableCmd)
	rootCmd.AddCommand(twoTablesCmd)

	addSourceFlags(oneTableCmd, &oneTableFlags.source)
	addOutputFlags(oneTableCmd, &oneTableFlags.output)
	oneTableCmd.Flags().StringVar(&oneTableFlags.table, "table", "",
		"Target table name (default: nfts, or tables.single in nftsql.yaml)")

	addSourceFlags(twoTablesCmd, &twoTablesFlags.source)
	addOutputFlags(twoTablesCmd, &twoTablesFlags.output)
	twoTablesCmd.Flags().StringVar(&twoTablesFlags.mainTable, "main", "",
		"Main table name (default: main, or tables.main in nftsql.yaml)")
	twoTablesCmd.Flags().StringVar(&twoTablesFlags.attributesTable, "attributes", "",
		"Attributes table name (default: attributes, or tables.attributes in nftsql.yaml)")
}

func runOneTable(cmd *cobra.Command, args []string) error {
	f := &oneTableFlags
	if err := checkFormat(f.output.format, formatSQL, formatJSON); err != nil {
		return err
	}

	preparer, settings, err := buildPreparer(cmd, args, &f.source, f.output)
	if err != nil {
		return err
	}
	table := settings.tables.Single
	if f.table != "" {
		table = f.table
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	statements, err := preparer.OneTable(ctx, table)
	if err != nil {
		return err
	}
	settings.logger.Verbose("Generated %d statement(s) for table %s", len(statements), table)

	if f.output.format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), statements)
	}
	return writeStatements(cmd.OutOrStdout(), statements)
}

func runTwoTables(cmd *cobra.Command, args []string) error {
	f := &twoTablesFlags
	if err := checkFormat(f.output.format, formatSQL, formatJSON); err != nil {
		return err
	}

	preparer, settings, err := buildPreparer(cmd, args, &f.source, f.output)
	if err != nil {
		return err
	}
	mainTable, attributesTable := settings.tables.Main, settings.tables.Attributes
	if f.mainTable != "" {
		mainTable = f.mainTable
	}
	if f.attributesTable != "" {
		attributesTable = f.attributesTable
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	results, err := preparer.TwoTables(ctx, mainTable, attributesTable)
	if err != nil {
		return err
	}
	settings.logger.Verbose("Generated statements for %d record(s) into %s and %s", len(results), mainTable, attributesTable)

	if f.output.format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), results)
	}
	return writeStatements(cmd.OutOrStdout(), sqlgen.Flatten(results))
}

// buildPreparer resolves settings and wires the source into a Preparer.
func buildPreparer(cmd *cobra.Command, args []string, sf *sourceFlagValues, of outputFlagValues) (*sqlgen.Preparer, *runSettings, error) {
	settings, err := resolveSettings(cmd, projectPathArg(args), sf, of.escape)
	if err != nil {
		return nil, nil, err
	}
	source, err := settings.newSource()
	if err != nil {
		return nil, nil, err
	}
	if of.strict {
		source = strictSource(source, settings.quoting, settings.logger)
	}
	preparer := sqlgen.NewPreparer(source,
		sqlgen.WithQuoting(settings.quoting),
		sqlgen.WithLogger(settings.logger),
	)
	return preparer, settings, nil
}
