package export

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/matzehuels/apigen/pkg/apipath"
	"github.com/matzehuels/apigen/pkg/model"
)

// Index file names, relative to the output directory.
const (
	ClassesFile    = "api.classes.json"
	NamespacesFile = "api.namespaces.json"
	ExceptionsFile = "api.exceptions.json"
	BusFile        = "api.bus.json"
	TypesFile      = "api.types.json"
)

// ClassEntry is a class list entry.
type ClassEntry struct {
	Href        string `json:"href"`
	Description string `json:"description"`
}

// NamespaceEntry is a node of the namespace manifest tree.
type NamespaceEntry struct {
	Href        string                    `json:"href"`
	Description string                    `json:"description"`
	Classes     []ClassRef                `json:"classes"`
	Namespaces  map[string]NamespaceEntry `json:"namespaces"`
}

// RootIndex is the top-level index.json.
type RootIndex struct {
	// Indexes maps index names ("classes", "namespaces", "exceptions",
	// "bus", "types") to the hrefs of their files.
	Indexes map[string]string `json:"indexes"`

	// Namespaces lists the manifest hrefs of top-level namespaces.
	Namespaces []string `json:"namespaces"`
}

// ClassIndex builds the flat class list: every class in the model mapped
// to its global href and description.
func ClassIndex(m *model.Model, root string) map[string]ClassEntry {
	out := make(map[string]ClassEntry, len(m.Classes))
	for name, doc := range m.Classes {
		out[name] = ClassEntry{
			Href:        apipath.ClassHref(root, name),
			Description: doc.Description(),
		}
	}
	return out
}

// labelCollision records two sibling namespaces sharing a display label.
// The later one in sorted key order is kept in the namespace tree.
type labelCollision struct {
	label   string
	dropped string
	kept    string
}

// NamespaceTree rebuilds the namespace hierarchy as a nested map keyed by
// namespace label. Class hrefs in the tree are relative to the namespace
// listing them; see [apipath.RelativeClassHref].
func NamespaceTree(m *model.Model, root string) map[string]NamespaceEntry {
	tree, _ := namespaceTree(m, root)
	return tree
}

// namespaceTree is [NamespaceTree] that also reports label collisions.
func namespaceTree(m *model.Model, root string) (map[string]NamespaceEntry, []labelCollision) {
	var collisions []labelCollision
	tree := namespaceEntries(root, "", m.Namespaces, &collisions)
	return tree, collisions
}

func namespaceEntries(root, parent string, children map[string]*model.Namespace, collisions *[]labelCollision) map[string]NamespaceEntry {
	out := make(map[string]NamespaceEntry, len(children))
	owners := make(map[string]string, len(children))
	for _, key := range sortedKeys(children) {
		ns := children[key]
		if ns == nil {
			ns = &model.Namespace{}
		}
		name := model.QualifiedName(parent, key)

		classes := ns.UniqueClasses()
		refs := make([]ClassRef, 0, len(classes))
		for _, class := range classes {
			refs = append(refs, ClassRef{Name: class, Href: apipath.RelativeClassHref(root, name, class)})
		}

		label := ns.DisplayLabel(key)
		if prev, ok := owners[label]; ok {
			*collisions = append(*collisions, labelCollision{label: label, dropped: prev, kept: name})
		}
		owners[label] = name
		out[label] = NamespaceEntry{
			Href:        apipath.NamespaceHref(root, name),
			Description: ns.Description,
			Classes:     refs,
			Namespaces:  namespaceEntries(root, name, ns.Namespaces, collisions),
		}
	}
	return out
}

func sortedKeys(m map[string]*model.Namespace) []string {
	return slices.Sorted(maps.Keys(m))
}

// BuildRootIndex builds the top-level cross-reference index.
func BuildRootIndex(m *model.Model, root string) RootIndex {
	idx := RootIndex{
		Indexes: map[string]string{
			"classes":    apipath.NormalizeHref(root + ClassesFile),
			"namespaces": apipath.NormalizeHref(root + NamespacesFile),
			"exceptions": apipath.NormalizeHref(root + ExceptionsFile),
			"bus":        apipath.NormalizeHref(root + BusFile),
			"types":      apipath.NormalizeHref(root + TypesFile),
		},
		Namespaces: []string{},
	}
	for _, name := range m.NamespaceNames() {
		idx.Namespaces = append(idx.Namespaces, apipath.NamespaceHref(root, name))
	}
	return idx
}

// section returns a pass-through section, or an empty object when the model
// does not carry it.
func section(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("{}")
	}
	return raw
}

// writeIndexes writes the flat index files and the top-level index.json.
func (e *exporter) writeIndexes() error {
	tree, collisions := namespaceTree(e.model, e.cfg.root)
	for _, c := range collisions {
		e.logger.Warn("Duplicate namespace label", "label", c.label, "dropped", c.dropped, "kept", c.kept, "file", NamespacesFile)
	}

	files := []struct {
		name string
		v    any
	}{
		{ClassesFile, ClassIndex(e.model, e.cfg.root)},
		{NamespacesFile, tree},
		{ExceptionsFile, section(e.model.Exceptions)},
		{BusFile, section(e.model.Bus)},
		{TypesFile, section(e.model.Types)},
		{apipath.ManifestFile, BuildRootIndex(e.model, e.cfg.root)},
	}
	for _, f := range files {
		path := apipath.Join(e.cfg.output, f.name)
		e.logger.Debug("Writing index", "path", path)
		if err := e.writeJSON(path, f.v); err != nil {
			return err
		}
	}
	return nil
}
