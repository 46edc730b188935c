package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/xrcheck/xrcheck/internal/config"
	"github.com/xrcheck/xrcheck/internal/harness"
	"github.com/xrcheck/xrcheck/internal/results"
	"github.com/xrcheck/xrcheck/internal/xr"

	// Registered scenarios and the reference runtime.
	_ "github.com/xrcheck/xrcheck/internal/scenario"
	_ "github.com/xrcheck/xrcheck/internal/xr/fake"
)

var runCmd = &cobra.Command{
	Use:   "run [PATTERN]",
	Short: "Run conformance scenarios",
	Long: `Run registered conformance scenarios against the configured runtime.

With PATTERN, only scenarios whose names contain the pattern are run.
Each scenario receives a fresh runtime instance and owns one session
end to end. Verdicts are printed and persisted to the results database.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("runtime", "", "runtime to test (default from config)")
	runCmd.Flags().String("view-config", "", "primary view configuration type")
	runCmd.Flags().Bool("headless", false, "run without a rendering backend")
	runCmd.Flags().Int("repeat", 1, "run the selected scenarios N times")
	runCmd.Flags().String("db", "", "results database path (\":memory:\" to skip persistence)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags override config-file values.
	if v, _ := cmd.Flags().GetString("runtime"); v != "" {
		cfg.Runtime = v
	}
	if v, _ := cmd.Flags().GetString("view-config"); v != "" {
		cfg.ViewConfig = v
	}
	if v, _ := cmd.Flags().GetBool("headless"); v {
		cfg.Headless = true
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Database = v
	}
	repeat, _ := cmd.Flags().GetInt("repeat")
	if repeat < 1 {
		repeat = 1
	}

	// Validate the view configuration before touching the database.
	if _, err := xr.ParseViewConfigType(cfg.ViewConfig); err != nil {
		return err
	}

	pattern := ""
	if len(args) == 1 {
		pattern = args[0]
	}
	scenarios := harness.Match(pattern)
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios match %q", pattern)
	}

	db, err := results.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open results database: %w", err)
	}
	defer db.Close()

	run := &results.Run{
		ID:         uuid.New().String(),
		StartedAt:  time.Now(),
		Runtime:    cfg.Runtime,
		ViewConfig: cfg.ViewConfig,
		Headless:   cfg.Headless,
	}
	if err := db.CreateRun(run); err != nil {
		return err
	}

	var passed, failed, errored int
	for iter := 1; iter <= repeat; iter++ {
		for _, sc := range scenarios {
			rt, err := xr.NewRuntime(cfg.Runtime, xr.SessionConfig{Graphics: !cfg.Headless})
			if err != nil {
				return fmt.Errorf("failed to create runtime: %w", err)
			}

			fmt.Printf("RUN   %s\n", sc.Name)
			verdict := harness.Run(sc, rt, harness.RunOptions{
				Config:  cfg,
				Verbose: verbose,
				Out:     os.Stdout,
			})
			printVerdict(verdict)

			name := verdict.Scenario
			if iter > 1 {
				verdict.Scenario = fmt.Sprintf("%s#%d", name, iter)
			}
			if err := db.InsertVerdict(run.ID, verdict); err != nil {
				return err
			}

			switch verdict.Outcome {
			case harness.OutcomePass:
				passed++
			case harness.OutcomeFail:
				failed++
			case harness.OutcomeError:
				errored++
			}
		}
	}

	if err := db.FinishRun(run.ID, passed, failed, errored); err != nil {
		return err
	}

	fmt.Printf("\n%d passed, %d failed, %d errors (run %s)\n", passed, failed, errored, shortID(run.ID))
	if failed+errored > 0 {
		return fmt.Errorf("%d of %d scenario runs did not pass", failed+errored, passed+failed+errored)
	}
	return nil
}

func printVerdict(v harness.Verdict) {
	label := map[harness.Outcome]string{
		harness.OutcomePass:  "PASS ",
		harness.OutcomeFail:  "FAIL ",
		harness.OutcomeError: "ERROR",
	}[v.Outcome]

	fmt.Printf("%s %s (%.2fs)\n", label, v.Scenario, v.Elapsed.Seconds())
	for _, f := range v.Failures {
		fmt.Printf("      %s\n", f)
	}
	for _, w := range v.Warnings {
		fmt.Printf("      warning: %s\n", w)
	}
}

// shortID returns the first segment of a run UUID, enough to identify it in
// `xrcheck results` output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
