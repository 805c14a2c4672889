// Package project detects the version of the documented project from its
// metadata files.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/apigen/pkg/errors"
)

// Source names a metadata file and how to read a version from it.
type Source struct {
	Filename string
	Read     func(data []byte) (string, error)
}

// Sources lists the metadata files checked in every candidate directory,
// in order.
var Sources = []Source{
	{Filename: "package.json", Read: packageJSONVersion},
	{Filename: "pyproject.toml", Read: pyprojectVersion},
	{Filename: "Cargo.toml", Read: cargoVersion},
}

// Detection is the result of a successful version lookup.
type Detection struct {
	Version string
	Path    string // metadata file the version was read from
}

// DetectVersion returns the first non-empty version found in dirs.
// Each directory is checked against every [Sources] entry before moving on
// to the next directory. It fails with ErrCodeVersionNotFound when no
// candidate yields a version.
func DetectVersion(dirs ...string) (Detection, error) {
	for _, dir := range dirs {
		for _, src := range Sources {
			path := filepath.Join(dir, src.Filename)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			v, err := src.Read(data)
			if err != nil {
				return Detection{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
			}
			if v = strings.TrimSpace(v); v != "" {
				return Detection{Version: v, Path: path}, nil
			}
		}
	}
	return Detection{}, errors.New(errors.ErrCodeVersionNotFound,
		"no project version found in %s", strings.Join(dirs, ", "))
}

func packageJSONVersion(data []byte) (string, error) {
	var pkg struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", err
	}
	return pkg.Version, nil
}

func pyprojectVersion(data []byte) (string, error) {
	var pyproject struct {
		Tool struct {
			Poetry struct {
				Version string `toml:"version"`
			} `toml:"poetry"`
		} `toml:"tool"`
		Project struct {
			Version string `toml:"version"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal(data, &pyproject); err != nil {
		return "", err
	}
	if pyproject.Project.Version != "" {
		return pyproject.Project.Version, nil
	}
	return pyproject.Tool.Poetry.Version, nil
}

func cargoVersion(data []byte) (string, error) {
	var cargo struct {
		Package struct {
			Version string `toml:"version"`
		} `toml:"package"`
	}
	if err := toml.Unmarshal(data, &cargo); err != nil {
		return "", err
	}
	return cargo.Package.Version, nil
}
