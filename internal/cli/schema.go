package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/nftsql/internal/config"
	"github.com/vvka-141/nftsql/internal/sqlgen"
	"github.com/vvka-141/nftsql/pkg/nftsql"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print CREATE TABLE statements for a table layout",
	Long: `Print the CREATE TABLE statements matching the INSERT statements of
one-table or two-tables. Table names and quoting come from the flags, then
nftsql.yaml in project_path, then the defaults.

Examples:
  nftsql schema one-table
  nftsql schema two-tables ./collection --main nft --attributes nft_trait`,
}

var schemaOneTableCmd = &cobra.Command{
	Use:   "one-table [project_path]",
	Short: "Print the CREATE TABLE statement of the single-table layout",
	Args:  OptionalProjectPath,
	RunE:  runSchemaOneTable,
}

var schemaTwoTablesCmd = &cobra.Command{
	Use:   "two-tables [project_path]",
	Short: "Print the CREATE TABLE statements of the main + attributes layout",
	Args:  OptionalProjectPath,
	RunE:  runSchemaTwoTables,
}

type schemaFlagValues struct {
	table           string
	mainTable       string
	attributesTable string
	escape          bool
}

var schemaFlags schemaFlagValues

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaOneTableCmd)
	schemaCmd.AddCommand(schemaTwoTablesCmd)

	schemaOneTableCmd.Flags().StringVar(&schemaFlags.table, "table", "",
		"Table name (default: nfts, or tables.single in nftsql.yaml)")
	schemaOneTableCmd.Flags().BoolVar(&schemaFlags.escape, "escape", false,
		"Quote the table name as an identifier")

	schemaTwoTablesCmd.Flags().StringVar(&schemaFlags.mainTable, "main", "",
		"Main table name (default: main, or tables.main in nftsql.yaml)")
	schemaTwoTablesCmd.Flags().StringVar(&schemaFlags.attributesTable, "attributes", "",
		"Attributes table name (default: attributes, or tables.attributes in nftsql.yaml)")
	schemaTwoTablesCmd.Flags().BoolVar(&schemaFlags.escape, "escape", false,
		"Quote table names as identifiers")
}

func runSchemaOneTable(cmd *cobra.Command, args []string) error {
	names, quoting, err := schemaSettings(args)
	if err != nil {
		return err
	}
	if schemaFlags.table != "" {
		names.Single = schemaFlags.table
	}

	stmt, err := sqlgen.OneTableSchema(names.Single, quoting)
	if err != nil {
		return err
	}
	return writeStatements(cmd.OutOrStdout(), []string{stmt})
}

func runSchemaTwoTables(cmd *cobra.Command, args []string) error {
	names, quoting, err := schemaSettings(args)
	if err != nil {
		return err
	}
	if schemaFlags.mainTable != "" {
		names.Main = schemaFlags.mainTable
	}
	if schemaFlags.attributesTable != "" {
		names.Attributes = schemaFlags.attributesTable
	}

	stmts, err := sqlgen.TwoTableSchema(names.Main, names.Attributes, quoting)
	if err != nil {
		return err
	}
	return writeStatements(cmd.OutOrStdout(), stmts)
}

func schemaSettings(args []string) (config.TablesSection, nftsql.Quoting, error) {
	projectCfg, err := loadProjectConfig(projectPathArg(args))
	if err != nil {
		return config.TablesSection{}, 0, err
	}
	quoting, err := projectCfg.QuotingMode()
	if err != nil {
		return config.TablesSection{}, 0, err
	}
	if schemaFlags.escape {
		quoting = nftsql.QuotingEscaped
	}
	return projectCfg.TableNames(), quoting, nil
}
