package cli

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/apigen/pkg/errors"
)

// fileConfig mirrors the apigen.toml config file:
//
//	model       = "docs/model.json"
//	output      = "public/api"
//	root        = "/api/"
//	version     = "auto"
//	legacy_tree = false
type fileConfig struct {
	Model      string `toml:"model"`
	Output     string `toml:"output"`
	Root       string `toml:"root"`
	Version    string `toml:"version"`
	LegacyTree bool   `toml:"legacy_tree"`
}

// loadConfig decodes the config file at path. A missing file is only an
// error when the path was given explicitly.
func loadConfig(path string, explicit bool) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return fileConfig{}, nil
		}
		return fileConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fileConfig{}, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	configPath string // explicit config file
	output     string // output root directory
	root       string // public href root
	version    string // version segment, or "auto"
	legacyTree bool   // map child namespaces to hrefs in manifests
	watch      bool   // re-export on model changes
}

// exportSettings is the merged result of config file, arguments and flags.
type exportSettings struct {
	model      string
	output     string
	root       string
	version    string
	legacyTree bool
}

// resolveExportSettings merges the config file with arguments and flags.
// Flags set explicitly on the command line win over config file values.
func resolveExportSettings(cmd *cobra.Command, args []string, o exportOpts) (exportSettings, error) {
	path, explicit := o.configPath, o.configPath != ""
	if !explicit {
		path = configFile
	}
	fc, err := loadConfig(path, explicit)
	if err != nil {
		return exportSettings{}, err
	}

	s := exportSettings{
		model:      fc.Model,
		output:     fc.Output,
		root:       fc.Root,
		version:    fc.Version,
		legacyTree: fc.LegacyTree,
	}
	if len(args) > 0 {
		s.model = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("output") || s.output == "" {
		s.output = o.output
	}
	if flags.Changed("root") || s.root == "" {
		s.root = o.root
	}
	if flags.Changed("api-version") {
		s.version = o.version
	}
	if flags.Changed("legacy-tree") {
		s.legacyTree = o.legacyTree
	}

	if s.model == "" {
		return exportSettings{}, errors.New(errors.ErrCodeInvalidConfig, "model file is required (argument or %q in %s)", "model", configFile)
	}
	return s, nil
}
