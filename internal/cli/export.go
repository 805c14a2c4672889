package cli

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apigen/pkg/apipath"
	"github.com/matzehuels/apigen/pkg/errors"
	"github.com/matzehuels/apigen/pkg/export"
	"github.com/matzehuels/apigen/pkg/model"
	"github.com/matzehuels/apigen/pkg/project"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [model]",
		Short: "Export a documentation model as static JSON files",
		Long: `Export a documentation model (JSON or YAML) as a tree of static JSON files.

Each namespace gets a directory with an index.json manifest and one file per
class. Flat indexes (api.classes.json, api.namespaces.json, ...) and a
top-level index.json are written to the output root.

Settings are read from apigen.toml in the working directory (or --config),
then overridden by flags.`,
		Example: `  apigen export model.json -o public/api --root /api/
  apigen export model.yaml --api-version auto
  apigen export --config docs/apigen.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveExportSettings(cmd, args, opts)
			if err != nil {
				return err
			}
			if !opts.watch {
				return c.runExport(cmd, s)
			}
			return c.watchExport(cmd, s)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default ./"+configFile+" if present)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultOutput, "output directory")
	cmd.Flags().StringVar(&opts.root, "root", export.DefaultRoot, "public href root of the generated files")
	cmd.Flags().StringVar(&opts.version, "api-version", "", `version segment for output and hrefs ("auto" to detect from project metadata)`)
	cmd.Flags().BoolVar(&opts.legacyTree, "legacy-tree", false, "map child namespaces to manifest hrefs instead of listing names")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-export whenever the model file changes")

	return cmd
}

// runExport resolves the version, loads the model and writes the export.
func (c *CLI) runExport(cmd *cobra.Command, s exportSettings) error {
	version, err := c.resolveVersion(s.version, s.model)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	m, err := model.Import(s.model)
	if err != nil {
		return err
	}
	c.Logger.Debug("Loaded model", "path", s.model, "namespaces", len(m.Namespaces), "classes", len(m.Classes))

	mode := export.ModeSections
	if s.legacyTree {
		mode = export.ModeTree
	}
	res, err := export.Run(cmd.Context(), m, export.Options{
		Output:  s.output,
		Root:    s.root,
		Version: version,
		Mode:    mode,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d files", len(res.Files)))

	out := cmd.OutOrStdout()
	printSuccess(out, "Exported %s and %s", formatCount(res.Stats.Namespaces, "namespaces"), formatCount(res.Stats.Classes, "classes"))
	printKeyValue(out, "Output", res.Config.OutputDir())
	printKeyValue(out, "Root", res.Config.Root())
	if v := res.Config.Version(); v != "" {
		printKeyValue(out, "Version", v)
	}
	printFile(out, path.Join(res.Config.OutputDir(), apipath.ManifestFile))

	if len(res.Missing) > 0 {
		printWarning(out, "%d classes listed by namespaces are missing from the model", len(res.Missing))
		for _, mc := range res.Missing {
			printDetail(out, "%s (in %s)", mc.Class, mc.Namespace)
		}
	}
	return nil
}

// watchExport exports once, then again after every change to the model file
// until the command context is cancelled. Only a failing first export caused
// by configuration ends the watch.
func (c *CLI) watchExport(cmd *cobra.Command, s exportSettings) error {
	w, err := newModelWatcher(s.model, c.Logger)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := c.runExport(cmd, s); err != nil {
		if errors.Is(err, errors.ErrCodeInvalidConfig) || errors.Is(err, errors.ErrCodeVersionNotFound) {
			return err
		}
		c.Logger.Error("Export failed", "error", errors.UserMessage(err))
	}

	printInfo(cmd.OutOrStdout(), "Watching %s for changes", s.model)
	w.run(cmd.Context(), func() error { return c.runExport(cmd, s) })
	return nil
}

// resolveVersion returns version unchanged unless it is "auto", in which case
// the project version is detected next to the model file, then in the
// working directory.
func (c *CLI) resolveVersion(version, modelPath string) (string, error) {
	if version != versionAuto {
		return version, nil
	}

	dirs := []string{filepath.Dir(modelPath)}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	det, err := project.DetectVersion(dirs...)
	if err != nil {
		return "", err
	}
	c.Logger.Info("Detected project version", "version", det.Version, "source", det.Path)
	return det.Version, nil
}
