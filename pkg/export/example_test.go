package export_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/apigen/pkg/export"
	"github.com/matzehuels/apigen/pkg/model"
)

func ExampleRun() {
	dir, _ := os.MkdirTemp("", "apigen")
	defer os.RemoveAll(dir)

	m := &model.Model{
		Namespaces: map[string]*model.Namespace{
			"core": {Classes: []string{"core.Engine", "core.Index", "core.Ghost"}},
		},
		Classes: map[string]model.ClassDoc{
			"core.Engine": {"description": "Engine docs"},
			"core.Index":  {"description": "Lookup table"},
		},
	}

	res, err := export.Run(context.Background(), m, export.Options{Output: dir, Root: "/api/", Version: "2.0"})
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, f := range res.Files {
		rel, _ := filepath.Rel(dir, f)
		fmt.Println(filepath.ToSlash(rel))
	}
	fmt.Println("missing:", res.Missing[0].Class)
	// Output:
	// 2.0/core/index.json
	// 2.0/core/Engine.json
	// 2.0/core/Index_class.json
	// 2.0/api.classes.json
	// 2.0/api.namespaces.json
	// 2.0/api.exceptions.json
	// 2.0/api.bus.json
	// 2.0/api.types.json
	// 2.0/index.json
	// missing: core.Ghost
}
