package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/vvka-141/nftsql/internal/tui"
	"github.com/vvka-141/nftsql/pkg/nftsql"
)

const (
	formatTable    = "table"
	formatCSV      = "csv"
	formatMarkdown = "markdown"

	descriptionWidth = 40
)

var recordsCmd = &cobra.Command{
	Use:   "records [project_path]",
	Short: "Show the normalized metadata records",
	Long: `Show the metadata records exactly as the SQL commands will see them,
after id resolution and image rewriting.

Examples:
  nftsql records ./collection
  nftsql records ./collection --format csv > records.csv
  nftsql records --source gateway --cid bafy... --first-id 1 --last-id 10 --format json`,
	Args: OptionalProjectPath,
	RunE: runRecords,
}

type recordsFlagValues struct {
	source sourceFlagValues
	format string
}

var recordsFlags recordsFlagValues

func init() {
	rootCmd.AddCommand(recordsCmd)

	addSourceFlags(recordsCmd, &recordsFlags.source)
	recordsCmd.Flags().StringVar(&recordsFlags.format, "format", formatTable,
		"Output format: table, csv, markdown or json")
}

func runRecords(cmd *cobra.Command, args []string) error {
	f := &recordsFlags
	if err := checkFormat(f.format, formatTable, formatCSV, formatMarkdown, formatJSON); err != nil {
		return err
	}

	settings, err := resolveSettings(cmd, projectPathArg(args), &f.source, false)
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

	out := cmd.OutOrStdout()
	if f.format == formatJSON {
		if records == nil {
			records = []nftsql.MetadataRecord{}
		}
		return writeJSON(out, records)
	}
	renderRecords(out, records, f.format)
	return nil
}

func renderRecords(w io.Writer, records []nftsql.MetadataRecord, format string) {
	if format == formatTable && len(records) == 0 {
		_, _ = fmt.Fprintln(w, "(0 records)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Name", "Description", "Image", "Attributes"})
	for _, r := range records {
		t.AppendRow(table.Row{r.ID, r.Name, r.Description, r.Image, formatAttributes(r.Attributes)})
	}

	switch format {
	case formatCSV:
		t.RenderCSV()
	case formatMarkdown:
		t.RenderMarkdown()
	default:
		t.SetColumnConfigs([]table.ColumnConfig{
			{Name: "Description", WidthMax: descriptionWidth, WidthMaxEnforcer: text.WrapSoft},
		})
		if tui.IsInteractive(w) {
			t.SetStyle(table.StyleRounded)
			if width := tui.Width(w); width > 0 {
				t.SetAllowedRowLength(width)
			}
		} else {
			t.SetStyle(table.StyleLight)
		}
		t.Render()
		_, _ = fmt.Fprintf(w, "(%d records)\n", len(records))
	}
}

func formatAttributes(attrs []nftsql.Attribute) string {
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = a.TraitType + "=" + a.Value
	}
	return strings.Join(parts, ", ")
}
