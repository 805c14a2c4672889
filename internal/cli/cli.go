// Package cli implements the apigen command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/apigen/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and config lookup.
	appName = "apigen"

	// configFile is the config file looked up in the working directory.
	configFile = appName + ".toml"

	// defaultOutput is the default output directory.
	defaultOutput = "api"

	// defaultAddr is the default listen address of the serve command.
	defaultAddr = "localhost:8080"

	// versionAuto requests version autodetection.
	versionAuto = "auto"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "apigen exports documentation models as static JSON APIs",
		Long:         `apigen writes a documentation model as a tree of static JSON manifests, one per namespace and class, plus flat lookup indexes for documentation front ends.`,
		Version:      buildinfo.Resolved(),
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.detectVersionCommand())
	root.AddCommand(c.completionCommand())

	return root
}
