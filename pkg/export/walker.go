package export

import (
	"context"

	"github.com/matzehuels/apigen/pkg/apipath"
	"github.com/matzehuels/apigen/pkg/model"
)

// ClassRef is a class entry of a namespace manifest.
type ClassRef struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// processNamespace writes the manifest and class files of ns, then descends
// into its children. key is the name of ns in its parent and parent is the
// parent's dotted name ("" for a top-level namespace).
func (e *exporter) processNamespace(ctx context.Context, parent, key string, ns *model.Namespace) error {
	if ns == nil {
		ns = &model.Namespace{}
	}
	name := model.QualifiedName(parent, key)
	dir := apipath.Join(e.cfg.output, apipath.Segment(name))
	if err := ensureDir(dir); err != nil {
		return err
	}

	manifest := e.namespaceManifest(name, ns)
	path := apipath.Join(dir, apipath.ManifestFile)
	e.logger.Debug("Writing namespace manifest", "namespace", name, "path", path)
	if err := e.writeJSON(path, manifest); err != nil {
		return err
	}
	e.result.Stats.Namespaces++
	e.hooks.OnNamespaceWritten(ctx, name, path)

	for _, class := range ns.UniqueClasses() {
		if err := e.writeClass(ctx, name, dir, class); err != nil {
			return err
		}
	}

	for _, child := range ns.ChildNames() {
		if err := e.processNamespace(ctx, name, child, ns.Namespaces[child]); err != nil {
			return err
		}
	}
	return nil
}

// namespaceManifest builds the manifest object of a namespace: its own
// fields, with classes replaced by href references and child namespaces
// listed according to the configured mode.
func (e *exporter) namespaceManifest(name string, ns *model.Namespace) map[string]any {
	manifest := make(map[string]any, len(ns.Extra)+5)
	for k, v := range ns.Extra {
		manifest[k] = v
	}
	if ns.Label != "" {
		manifest["label"] = ns.Label
	}
	if ns.Description != "" {
		manifest["description"] = ns.Description
	}
	if ns.Sourcefile != "" {
		manifest["sourcefile"] = apipath.Normalize(ns.Sourcefile)
	}

	classes := ns.UniqueClasses()
	refs := make([]ClassRef, 0, len(classes))
	for _, class := range classes {
		refs = append(refs, ClassRef{Name: class, Href: apipath.ClassHref(e.cfg.root, class)})
	}
	manifest["classes"] = refs

	children := ns.ChildNames()
	if children == nil {
		children = []string{}
	}
	switch e.cfg.mode {
	case ModeTree:
		hrefs := make(map[string]string, len(children))
		for _, child := range children {
			hrefs[child] = apipath.NamespaceHref(e.cfg.root, model.QualifiedName(name, child))
		}
		manifest["namespaces"] = hrefs
	default:
		manifest["namespaces"] = children
	}
	return manifest
}

// writeClass writes the data file of one class into dir. A class missing
// from the model is reported and skipped.
func (e *exporter) writeClass(ctx context.Context, namespace, dir, class string) error {
	doc, ok := e.model.Class(class)
	if !ok {
		e.logger.Error("Missing class", "class", class, "namespace", namespace)
		e.result.Missing = append(e.result.Missing, MissingClass{Namespace: namespace, Class: class})
		e.hooks.OnMissingClass(ctx, namespace, class)
		return nil
	}

	path := apipath.Join(dir, apipath.ClassFile(class))
	e.logger.Info("Writing static API file", "path", path)
	if err := e.writeJSON(path, doc.Normalized()); err != nil {
		return err
	}
	e.result.Stats.Classes++
	e.hooks.OnClassWritten(ctx, class, path)
	return nil
}
