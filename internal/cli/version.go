package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apigen/pkg/project"
)

// detectVersionCommand creates the detect-version command.
func (c *CLI) detectVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect-version [dir...]",
		Short: "Print the project version found in package.json, pyproject.toml or Cargo.toml",
		Long: `Print the project version that "export --api-version auto" would use.

Directories are searched in order (default: the working directory). In each
one, package.json, pyproject.toml and Cargo.toml are checked in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := args
			if len(dirs) == 0 {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				dirs = []string{cwd}
			}

			det, err := project.DetectVersion(dirs...)
			if err != nil {
				return err
			}
			c.Logger.Debug("Detected project version", "source", det.Path)
			fmt.Fprintln(cmd.OutOrStdout(), det.Version)
			return nil
		},
	}
}
