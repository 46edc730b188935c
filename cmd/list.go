package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xrcheck/xrcheck/internal/harness"
	"github.com/xrcheck/xrcheck/internal/xr"

	_ "github.com/xrcheck/xrcheck/internal/scenario"
	_ "github.com/xrcheck/xrcheck/internal/xr/fake"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered scenarios and runtimes",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO")
	for _, sc := range harness.Scenarios() {
		fmt.Fprintf(w, "%s\n", sc.Name)
	}
	w.Flush()

	runtimes := xr.RegisteredRuntimes()
	sort.Strings(runtimes)
	fmt.Printf("\nRuntimes: %s\n", strings.Join(runtimes, ", "))
	return nil
}
