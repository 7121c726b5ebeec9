package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/applicant-triage/internal/applicant"
	"github.com/vijay-prabhu/applicant-triage/internal/dedup"
	"github.com/vijay-prabhu/applicant-triage/internal/ingest"
	"github.com/vijay-prabhu/applicant-triage/internal/output"
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe <file>",
	Short: "Remove repeated submissions without scoring",
	Long: `Dedupe keeps the most recent submission per applicant. Applicants are
matched by email, or by name and birth date when the email is blank.

Submissions matched only by name and birth date are listed for review, since
two different applicants can share both.

Examples:
  triage dedupe intake.xlsx
  triage dedupe intake.csv --export=unique.csv
  triage dedupe intake.csv -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runDedupe,
}

var (
	dedupeSheet  string
	dedupeExport string
)

func init() {
	rootCmd.AddCommand(dedupeCmd)
	dedupeCmd.Flags().StringVar(&dedupeSheet, "sheet", "", "xlsx sheet to read (default: first sheet)")
	dedupeCmd.Flags().StringVar(&dedupeExport, "export", "", "Write the kept submissions to a .csv, .xlsx or .json file")
}

// dedupeReport is the json and yaml shape of the dedupe command
type dedupeReport struct {
	Input      int               `json:"input" yaml:"input"`
	Kept       int               `json:"kept" yaml:"kept"`
	Removed    int               `json:"removed" yaml:"removed"`
	Collisions []dedup.Collision `json:"collisions" yaml:"collisions"`
}

func runDedupe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tbl, err := ingest.ReadFile(args[0], ingest.Options{Sheet: dedupeSheet})
	if err != nil {
		return err
	}

	res := dedup.New(cfg, logger).Dedupe(tbl.Records)

	if dedupeExport != "" {
		rows := make([]applicant.Scored, len(res.Records))
		for i, r := range res.Records {
			rows[i] = applicant.Scored{Record: r}
		}
		if err := output.ExportFile(dedupeExport, tbl.Columns, rows); err != nil {
			return err
		}
		logger.Info("exported submissions", "path", dedupeExport, "rows", len(rows))
	}

	out := cmd.OutOrStdout()
	if outputFmt != "table" && outputFmt != "" {
		return output.OutputTo(out, outputFmt, dedupeReport{
			Input:      len(tbl.Records),
			Kept:       len(res.Records),
			Removed:    res.Removed,
			Collisions: res.Collisions,
		})
	}

	fmt.Fprintf(out, "Submissions read:  %d\n", len(tbl.Records))
	fmt.Fprintf(out, "Applicants kept:   %d\n", len(res.Records))
	fmt.Fprintf(out, "Repeats removed:   %d\n", res.Removed)
	fmt.Fprintln(out)
	return output.TableTo(out, res.Collisions)
}
