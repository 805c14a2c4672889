package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/apigen/pkg/apipath"
)

// Model is the complete documentation tree.
type Model struct {
	Namespaces map[string]*Namespace `json:"namespaces"`
	Classes    map[string]ClassDoc   `json:"classes"`
	Exceptions json.RawMessage       `json:"exceptions,omitempty"`
	Bus        json.RawMessage       `json:"bus,omitempty"`
	Types      json.RawMessage       `json:"types,omitempty"`
}

// NamespaceNames returns the top-level namespace names in sorted order.
func (m *Model) NamespaceNames() []string {
	return slices.Sorted(maps.Keys(m.Namespaces))
}

// ClassNames returns every fully qualified class name in sorted order.
func (m *Model) ClassNames() []string {
	return slices.Sorted(maps.Keys(m.Classes))
}

// Class looks up a class document by fully qualified name.
func (m *Model) Class(name string) (ClassDoc, bool) {
	c, ok := m.Classes[name]
	return c, ok
}

// Namespace is a named grouping of classes and child namespaces.
//
// Label, Description and Sourcefile hold the non-empty string values of
// those fields. Any other value, including "" and null, is kept verbatim in
// Extra like every other unknown field.
type Namespace struct {
	Label       string
	Description string
	Sourcefile  string

	// Classes holds fully qualified class names in declaration order.
	// It may contain duplicates; see UniqueClasses.
	Classes []string

	// Namespaces maps child names to child namespaces.
	Namespaces map[string]*Namespace

	// Extra holds any other fields of the namespace, copied verbatim into
	// its manifest.
	Extra map[string]any
}

// ChildNames returns the child namespace names in sorted order.
func (n *Namespace) ChildNames() []string {
	return slices.Sorted(maps.Keys(n.Namespaces))
}

// UniqueClasses returns Classes without duplicates, keeping the first
// occurrence of each name.
func (n *Namespace) UniqueClasses() []string {
	seen := make(map[string]bool, len(n.Classes))
	out := make([]string, 0, len(n.Classes))
	for _, c := range n.Classes {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// DisplayLabel returns the namespace label, falling back to name.
func (n *Namespace) DisplayLabel(name string) string {
	if n.Label != "" {
		return n.Label
	}
	return name
}

// QualifiedName returns the full dotted name of a child namespace keyed by
// key under parent. Keys that are already qualified by parent are kept.
func QualifiedName(parent, key string) string {
	if parent == "" || strings.HasPrefix(key, parent+".") {
		return key
	}
	return parent + "." + key
}

// UnmarshalJSON decodes a namespace, accepting "classes" as either an array
// of names or an object keyed by name. Only "classes" and "namespaces" have a
// required shape.
func (n *Namespace) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*n = Namespace{}
	for key, raw := range fields {
		var err error
		switch key {
		case "label", "description", "sourcefile":
			if text, ok := nonEmptyString(raw); ok {
				switch key {
				case "label":
					n.Label = text
				case "description":
					n.Description = text
				default:
					n.Sourcefile = text
				}
				continue
			}
			err = n.setExtra(key, raw)
		case "classes":
			n.Classes, err = decodeClassNames(raw)
		case "namespaces":
			err = json.Unmarshal(raw, &n.Namespaces)
		default:
			err = n.setExtra(key, raw)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func (n *Namespace) setExtra(key string, raw json.RawMessage) error {
	v, err := decodeAny(raw)
	if err != nil {
		return err
	}
	if n.Extra == nil {
		n.Extra = make(map[string]any)
	}
	n.Extra[key] = v
	return nil
}

// nonEmptyString reports the value of raw when it is a non-empty JSON string.
func nonEmptyString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

func decodeAny(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// decodeClassNames canonicalizes an array or object of class names into an
// ordered slice. Object keys are returned in document order.
func decodeClassNames(raw json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var names []string
		if err := json.Unmarshal(trimmed, &names); err != nil {
			return nil, err
		}
		return names, nil
	case '{':
		return objectKeys(trimmed)
	default:
		return nil, fmt.Errorf("expected array or object, got %s", trimmed)
	}
}

func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// ClassDoc is an opaque class document.
type ClassDoc map[string]any

// Description returns the class description, or "" if absent.
func (c ClassDoc) Description() string {
	s, _ := c["description"].(string)
	return s
}

// Sourcefile returns the class source file reference, or "" if absent.
func (c ClassDoc) Sourcefile() string {
	s, _ := c["sourcefile"].(string)
	return s
}

// Normalized returns a shallow copy of c with its sourcefile normalized.
// The receiver is not modified.
func (c ClassDoc) Normalized() ClassDoc {
	out := maps.Clone(c)
	if out == nil {
		out = ClassDoc{}
	}
	if src := c.Sourcefile(); src != "" {
		out["sourcefile"] = apipath.Normalize(src)
	}
	return out
}
