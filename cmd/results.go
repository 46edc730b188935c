package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/xrcheck/xrcheck/internal/config"
	"github.com/xrcheck/xrcheck/internal/results"
)

var resultsCmd = &cobra.Command{
	Use:   "results [RUN_ID]",
	Short: "Show past conformance runs",
	Long: `Show recorded conformance runs.

Without arguments, lists recent runs. With a run ID (or unique prefix),
shows the per-scenario verdicts of that run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	rootCmd.AddCommand(resultsCmd)

	resultsCmd.Flags().Int("limit", 20, "number of runs to list")
	resultsCmd.Flags().String("db", "", "results database path")
}

func runResults(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Database = v
	}

	db, err := results.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open results database: %w", err)
	}
	defer db.Close()

	if len(args) == 0 {
		limit, _ := cmd.Flags().GetInt("limit")
		return listRuns(db, limit)
	}
	return showRun(db, args[0])
}

func listRuns(db *results.DB, limit int) error {
	runs, err := db.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tSTARTED\tRUNTIME\tVIEW CONFIG\tPASS\tFAIL\tERROR")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			shortID(run.ID),
			run.StartedAt.Local().Format(time.DateTime),
			run.Runtime,
			run.ViewConfig,
			run.Passed, run.Failed, run.Errored)
	}
	w.Flush()
	return nil
}

func showRun(db *results.DB, prefix string) error {
	runs, err := db.FindRuns(prefix)
	if err != nil {
		return err
	}
	switch {
	case len(runs) == 0:
		return fmt.Errorf("no run matches %q", prefix)
	case len(runs) > 1:
		ids := make([]string, len(runs))
		for i, run := range runs {
			ids[i] = shortID(run.ID)
		}
		return fmt.Errorf("ambiguous run ID %q: matches %s", prefix, strings.Join(ids, ", "))
	}
	run := runs[0]

	fmt.Printf("Run %s\n", run.ID)
	fmt.Printf("Started:     %s\n", run.StartedAt.Local().Format(time.DateTime))
	fmt.Printf("Runtime:     %s\n", run.Runtime)
	fmt.Printf("View config: %s (headless: %v)\n", run.ViewConfig, run.Headless)
	fmt.Printf("Totals:      %d passed, %d failed, %d errors\n\n", run.Passed, run.Failed, run.Errored)

	verdicts, err := db.ListVerdicts(run.ID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tOUTCOME\tELAPSED")
	for _, v := range verdicts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", v.Scenario, v.Outcome, v.Elapsed)
	}
	w.Flush()

	for _, v := range verdicts {
		if v.Detail == "" {
			continue
		}
		fmt.Printf("\n%s:\n", v.Scenario)
		for _, line := range strings.Split(v.Detail, "\n") {
			fmt.Printf("  %s\n", line)
		}
	}
	return nil
}
