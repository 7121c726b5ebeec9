package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/applicant-triage/internal/applicant"
	"github.com/vijay-prabhu/applicant-triage/internal/config"
	"github.com/vijay-prabhu/applicant-triage/internal/engine"
	"github.com/vijay-prabhu/applicant-triage/internal/ingest"
	"github.com/vijay-prabhu/applicant-triage/internal/output"
)

// Views selectable with --view
const (
	viewAll          = "all"
	viewHighPriority = "high-priority"
	viewRegionTop    = "region-top"
)

var scoreCmd = &cobra.Command{
	Use:   "score <file>",
	Short: "Score and classify applicants from an intake export",
	Long: `Score reads an intake export, keeps the most recent submission per
applicant and scores every applicant.

Views:
  - all: every applicant in submission order
  - high-priority: applicants at or above the high priority score, best first,
    exported with the contact columns only
  - region-top: applicants from a top priority region, best first

Examples:
  triage score intake.xlsx
  triage score intake.csv --summary
  triage score intake.csv --min-score=60
  triage score intake.xlsx --view=high-priority --export=high_priority.xlsx
  triage score intake.csv --category=HighPotential --category=MediumPotential -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

var (
	scoreSheet      string
	scoreExport     string
	scoreView       string
	scoreCategories []string
	scoreMinScore   int
	scoreLimit      int
	scoreSummary    bool
	scoreNoDedupe   bool
	scoreProgress   bool
)

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringVar(&scoreSheet, "sheet", "", "xlsx sheet to read (default: first sheet)")
	scoreCmd.Flags().StringVar(&scoreExport, "export", "", "Write the selected applicants to a .csv, .xlsx or .json file")
	scoreCmd.Flags().StringVar(&scoreView, "view", viewAll, "Applicants to show (all, high-priority, region-top)")
	scoreCmd.Flags().StringSliceVar(&scoreCategories, "category", nil, "Only show these categories (repeatable)")
	scoreCmd.Flags().IntVar(&scoreMinScore, "min-score", -1, "Only show applicants scoring at least this much; also the high priority cut-off")
	scoreCmd.Flags().IntVar(&scoreLimit, "limit", 0, "Show at most this many applicants (0 = all)")
	scoreCmd.Flags().BoolVar(&scoreSummary, "summary", false, "Show batch statistics instead of applicants")
	scoreCmd.Flags().BoolVar(&scoreNoDedupe, "no-dedupe", false, "Score every submission, including repeats")
	scoreCmd.Flags().BoolVar(&scoreProgress, "progress", false, "Show progress on stderr")
}

func runScore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if scoreNoDedupe {
		cfg.Dedup.Enabled = false
	}
	if scoreMinScore >= 0 {
		cfg.Output.HighPriorityMinScore = scoreMinScore
	}

	// Read input
	tbl, err := ingest.ReadFile(args[0], ingest.Options{Sheet: scoreSheet})
	if err != nil {
		return err
	}
	logger.Debug("read input", "path", args[0], "rows", len(tbl.Records), "columns", len(tbl.Columns))

	opts := []engine.Option{engine.WithLogger(logger)}
	if scoreProgress {
		terminal := NewTerminal(cmd.ErrOrStderr())
		opts = append(opts, engine.WithProgress(terminal.Progress()))
		defer terminal.ClearLine()
	}

	eng, err := engine.New(cfg, opts...)
	if err != nil {
		return err
	}

	batch, err := eng.ScoreBatch(ctx, tbl.Records)
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}
	if n := len(batch.Collisions); n > 0 {
		logger.Warn("submissions share a name and birth date without an email; review with 'triage dedupe'",
			"collisions", n)
	}

	applicants, columns, err := selectView(cfg, tbl.Columns, batch.Applicants)
	if err != nil {
		return err
	}

	if scoreExport != "" {
		if err := output.ExportFile(scoreExport, columns, applicants); err != nil {
			return err
		}
		logger.Info("exported applicants", "path", scoreExport, "rows", len(applicants))
	}

	if scoreSummary {
		return output.OutputTo(cmd.OutOrStdout(), outputFmt, output.NewSummary(batch, cfg.Output.HighPriorityMinScore))
	}

	if scoreLimit > 0 && len(applicants) > scoreLimit {
		applicants = applicants[:scoreLimit]
	}
	return output.OutputTo(cmd.OutOrStdout(), outputFmt, output.NewListing(applicants, cfg.Fields))
}

// selectView applies --view and --category and returns the export columns
func selectView(cfg *config.Config, inputColumns []string, all []applicant.Scored) ([]applicant.Scored, []string, error) {
	columns := output.ExportColumns(inputColumns)

	var selected []applicant.Scored
	switch scoreView {
	case viewAll, "":
		selected = all
	case viewHighPriority:
		selected = output.HighPriority(all, cfg.Output.HighPriorityMinScore)
		if present := output.PresentColumns(cfg.Output.HighPriorityColumns, columns); len(present) > 0 {
			columns = present
		}
	case viewRegionTop:
		selected = output.RegionTop(all)
	default:
		return nil, nil, fmt.Errorf("unknown view: %s (use %s, %s or %s)", scoreView, viewAll, viewHighPriority, viewRegionTop)
	}

	if len(scoreCategories) > 0 {
		categories := make([]applicant.Category, 0, len(scoreCategories))
		for _, s := range scoreCategories {
			c, err := applicant.ParseCategory(s)
			if err != nil {
				return nil, nil, err
			}
			categories = append(categories, c)
		}
		selected = output.FilterCategories(selected, categories)
	}

	if scoreMinScore >= 0 {
		selected = output.MinScore(selected, scoreMinScore)
	}

	return selected, columns, nil
}
