package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xrcheck/xrcheck/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective run configuration after merging the config file
with defaults.

With --init, write the defaults to the config file path so they can be
edited.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if initFile, _ := cmd.Flags().GetBool("init"); initFile {
			if err := config.Write(config.Default()); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			fmt.Printf("Wrote default configuration to %s\n", path)
			return nil
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		os.Stdout.Write(data)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("init", false, "write the default configuration file")
}
