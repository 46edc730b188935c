package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "dev"

	// Global flags
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "xrcheck",
	Short: "Conformance test suite for XR runtime implementations",
	Long: `xrcheck drives an XR runtime implementation through the mandated
session lifecycle and checks its behavior against the specification:
state transition ordering, frame timing contracts, out-of-turn call
rejection, view locating, and swapchain format enumeration.

Verdicts are recorded per scenario and persisted for certification
evidence.`,
	Version: Version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
