package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/applicant-triage/internal/applicant"
	"github.com/vijay-prabhu/applicant-triage/internal/engine"
	"github.com/vijay-prabhu/applicant-triage/internal/ingest"
	"github.com/vijay-prabhu/applicant-triage/internal/output"
)

var explainCmd = &cobra.Command{
	Use:   "explain [file]",
	Short: "Show the points behind one applicant's score",
	Long: `Explain lists every rule that fired for a single applicant, with its
points and reason.

The applicant is either a data row of an intake export (1 = first row under
the header) or a set of --field values, or both: fields override the row.

Examples:
  triage explain intake.xlsx --row=12
  triage explain --field "Age=2001" --field "Degree=BSc" --field "Country of Citizenship=Canada"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplain,
}

var (
	explainSheet  string
	explainRow    int
	explainFields []string
)

func init() {
	rootCmd.AddCommand(explainCmd)
	explainCmd.Flags().StringVar(&explainSheet, "sheet", "", "xlsx sheet to read (default: first sheet)")
	explainCmd.Flags().IntVar(&explainRow, "row", 1, "Data row to explain")
	explainCmd.Flags().StringArrayVar(&explainFields, "field", nil, "Field value as column=value (repeatable)")
}

func runExplain(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && len(explainFields) == 0 {
		return fmt.Errorf("provide an input file or at least one --field")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	record := applicant.Record{}
	if len(args) == 1 {
		tbl, err := ingest.ReadFile(args[0], ingest.Options{Sheet: explainSheet})
		if err != nil {
			return err
		}
		if explainRow < 1 || explainRow > len(tbl.Records) {
			return fmt.Errorf("row %d out of range (file has %d data rows)", explainRow, len(tbl.Records))
		}
		record = tbl.Records[explainRow-1]
	}
	for _, field := range explainFields {
		k, v, ok := strings.Cut(field, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return fmt.Errorf("invalid --field %q (use column=value)", field)
		}
		record[strings.TrimSpace(k)] = v
	}

	eng, err := engine.New(cfg, engine.WithLogger(logger))
	if err != nil {
		return err
	}

	res := eng.Explain(record)
	return output.OutputTo(cmd.OutOrStdout(), outputFmt, &res)
}
