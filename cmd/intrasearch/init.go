package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Schnee111/intrasearch/internal/config"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new intrasearch configuration file",
		Long: `Init creates a new .intrasearch configuration file in the current
directory.

The generated file includes:
- Seed URL and allowed domain examples
- Default crawl budgets and politeness settings
- Documentation for all available options

Examples:
  # Create .intrasearch in current directory
  intrasearch init

  # Create config file at a specific path
  intrasearch init -o myconfig.yaml

  # Force overwrite existing file
  intrasearch init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if force {
		if err := os.Remove(outputPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove existing file: %w", err)
		}
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	if err := config.WriteDefaultConfigFile(outputPath); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
		return fmt.Errorf("write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit this file to configure:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Seed URLs and the allowed domain list")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Traversal algorithm and crawl budgets")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Politeness delay and cache TTL")

	return nil
}
