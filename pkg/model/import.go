package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/apigen/pkg/errors"
)

// ReadJSON decodes a documentation model from r.
// Numbers inside class documents are kept as [json.Number] so they are
// written back unchanged. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Model, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var m Model
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "decode model")
	}
	return &m, nil
}

// ReadYAML decodes a YAML documentation model from r. The document is
// converted to JSON with mapping order preserved, then decoded as by
// [ReadJSON].
func ReadYAML(r io.Reader) (*Model, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "decode yaml model")
	}

	var buf bytes.Buffer
	if err := yamlToJSON(&buf, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "convert yaml model")
	}
	return ReadJSON(&buf)
}

// Import reads a model file at path. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func Import(path string) (*Model, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "model %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "open %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadYAML(f)
	default:
		return ReadJSON(f)
	}
}

// yamlToJSON writes n as JSON. Mapping order is kept and merge keys
// ("<<: *base") are expanded with explicit keys taking precedence. Scalars
// are copied as written where JSON can express them, so timestamps stay
// strings and "1.0" stays 1.0.
func yamlToJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case 0:
		buf.WriteString("null")
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return yamlToJSON(buf, n.Content[0])
	case yaml.AliasNode:
		return yamlToJSON(buf, n.Alias)
	case yaml.MappingNode:
		entries, err := mappingEntries(n, 0)
		if err != nil {
			return err
		}
		buf.WriteByte('{')
		for i, e := range entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(e.key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := yamlToJSON(buf, e.value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := yamlToJSON(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		return scalarToJSON(buf, n)
	default:
		return fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
	}
	return nil
}

// maxMergeDepth bounds nested merge keys.
const maxMergeDepth = 32

type mappingEntry struct {
	key   string
	value *yaml.Node
}

// mappingEntries flattens a mapping node into ordered key/value pairs.
// Merged keys come first, in the order of the merged mappings; an earlier
// merged mapping wins over a later one and explicit keys win over both.
func mappingEntries(n *yaml.Node, depth int) ([]mappingEntry, error) {
	if depth > maxMergeDepth {
		return nil, fmt.Errorf("line %d: merge keys nested too deeply", n.Line)
	}

	var entries []mappingEntry
	index := make(map[string]int)
	add := func(key string, value *yaml.Node, override bool) {
		if i, ok := index[key]; ok {
			if override {
				entries[i].value = value
			}
			return
		}
		index[key] = len(entries)
		entries = append(entries, mappingEntry{key: key, value: value})
	}

	var explicit []mappingEntry
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := resolveAlias(n.Content[i]), n.Content[i+1]
		if k.ShortTag() != "!!merge" {
			explicit = append(explicit, mappingEntry{key: k.Value, value: v})
			continue
		}

		sources := []*yaml.Node{resolveAlias(v)}
		if sources[0].Kind == yaml.SequenceNode {
			sources = sources[0].Content
		}
		for _, src := range sources {
			src = resolveAlias(src)
			if src.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: merge value must be a mapping", v.Line)
			}
			merged, err := mappingEntries(src, depth+1)
			if err != nil {
				return nil, err
			}
			for _, e := range merged {
				add(e.key, e.value, false)
			}
		}
	}
	for _, e := range explicit {
		add(e.key, e.value, true)
	}
	return entries, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// scalarToJSON writes a scalar by its resolved tag. Numbers are written as
// their literal when that is valid JSON; anything JSON cannot express
// (timestamps, binary, custom tags, .inf) is written as the source string.
func scalarToJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		buf.WriteString(strconv.FormatBool(b))
		return nil
	case "!!int", "!!float":
		if isJSONNumber(n.Value) {
			buf.WriteString(n.Value)
			return nil
		}
		var v any
		if err := n.Decode(&v); err == nil {
			if data, err := json.Marshal(v); err == nil {
				buf.Write(data)
				return nil
			}
		}
	}
	data, err := json.Marshal(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	buf.Write(data)
	return nil
}

// isJSONNumber reports whether s is a JSON number literal.
func isJSONNumber(s string) bool {
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}
	var n json.Number
	return json.Unmarshal([]byte(s), &n) == nil
}
