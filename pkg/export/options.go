package export

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apigen/pkg/apipath"
	"github.com/matzehuels/apigen/pkg/errors"
)

// DefaultRoot is the href root used when none is configured.
const DefaultRoot = "/"

// Mode selects how a namespace manifest lists its child namespaces.
type Mode int

const (
	// ModeSections lists child namespace names. Consumers resolve their
	// hrefs through api.namespaces.json.
	ModeSections Mode = iota

	// ModeTree maps each child namespace name to its manifest href.
	ModeTree
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeTree {
		return "tree"
	}
	return "sections"
}

// Options configures an export run.
type Options struct {
	// Output is the output root directory. Required.
	Output string

	// Root is the public href root. Defaults to DefaultRoot.
	Root string

	// Version, when set, nests the output and every href one segment deeper.
	Version string

	Mode Mode

	// Logger receives diagnostics. Defaults to a discarding logger.
	Logger *log.Logger
}

// Config is the resolved, immutable configuration of an export run.
type Config struct {
	output  string
	root    string
	version string
	mode    Mode
}

// OutputDir returns the directory files are written to, including the
// version segment.
func (c Config) OutputDir() string { return c.output }

// Root returns the href root, including the version segment. It always ends
// with "/".
func (c Config) Root() string { return c.root }

// Version returns the configured version, or "".
func (c Config) Version() string { return c.version }

// Mode returns the namespace listing mode.
func (c Config) Mode() Mode { return c.mode }

// Resolve validates o and computes the run configuration.
func (o Options) Resolve() (Config, error) {
	if strings.TrimSpace(o.Output) == "" {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "output directory is required")
	}
	root := o.Root
	if root == "" {
		root = DefaultRoot
	}
	if err := errors.ValidateHrefRoot(root); err != nil {
		return Config{}, err
	}
	if err := errors.ValidateVersion(o.Version); err != nil {
		return Config{}, err
	}
	if o.Mode != ModeSections && o.Mode != ModeTree {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown namespace mode %d", o.Mode)
	}

	output := o.Output
	root += "/"
	if o.Version != "" {
		output += "/" + o.Version
		root += o.Version + "/"
	}

	output = apipath.Normalize(output)
	if output == "" {
		output = "."
	}

	return Config{
		output:  output,
		root:    apipath.NormalizeHref(root),
		version: o.Version,
		mode:    o.Mode,
	}, nil
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Logger
}

// ensureDir verifies that dir is a directory, creating it and its parents
// if absent.
func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && !info.IsDir() {
		return errors.New(errors.ErrCodeIO, "%s exists and is not a directory", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create directory %s", dir)
	}
	return nil
}
