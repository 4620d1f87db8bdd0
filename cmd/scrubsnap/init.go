package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/scrubsnap/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/scrubsnap.yaml
var configTemplate embed.FS

// configFileName is the default profile file name.
const configFileName = config.DefaultConfigFile

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a scrubsnap profile file",
		Long: `Initialize creates a commented .scrubsnap profile in the current directory.

The profile can override every built-in literal: team and organization
names, placeholders, the guarded template name, the identity seed, the
name lists, and the snapshot layout.

Examples:
  # Create .scrubsnap in current directory
  scrubsnap init

  # Create the profile at a specific path
  scrubsnap init -o club.yaml

  # Force overwrite existing file
  scrubsnap init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the profile")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing profile file")

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

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("profile file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/scrubsnap.yaml")
	if err != nil {
		return fmt.Errorf("failed to read profile template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created profile file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to describe your snapshot, such as:")
	fmt.Fprintln(out, "  - The real team name and its replacement")
	fmt.Fprintln(out, "  - The organization path segment")
	fmt.Fprintln(out, "  - The snapshot title and directories")

	return nil
}
