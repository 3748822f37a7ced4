// Package source reads prototype definition sections from structured text
// documents and from the document stores in internal/blob.
package source

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"prototypecore/pkg/prototype"
)

// DecodeSections reads every YAML document in r and returns its sections in
// document order. Each document is a mapping from section header to a
// mapping of component key to scalar value. Decoding goes through yaml.Node
// so header order is kept and duplicate headers reach the table builder.
func DecodeSections(r io.Reader) ([]prototype.Section, error) {
	dec := yaml.NewDecoder(r)
	var sections []prototype.Section
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return sections, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		got, err := documentSections(&doc)
		if err != nil {
			return nil, err
		}
		sections = append(sections, got...)
	}
}

func documentSections(doc *yaml.Node) ([]prototype.Section, error) {
	root := doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, nil
		}
		root = root.Content[0]
	}
	root = deref(root)
	if isNull(root) {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: document must be a mapping of sections", root.Line)
	}
	sections := make([]prototype.Section, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		header := deref(root.Content[i])
		if header.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: section header must be a scalar", header.Line)
		}
		comps, err := sectionComponents(header.Value, root.Content[i+1])
		if err != nil {
			return nil, err
		}
		sections = append(sections, prototype.Section{Header: header.Value, Components: comps})
	}
	return sections, nil
}

func sectionComponents(header string, body *yaml.Node) (*prototype.Components, error) {
	body = deref(body)
	comps := prototype.NewComponents()
	if isNull(body) {
		return comps, nil
	}
	if body.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: section %q must be a mapping of components", body.Line, header)
	}
	for i := 0; i+1 < len(body.Content); i += 2 {
		key := deref(body.Content[i])
		val := deref(body.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: section %q: component key must be a scalar", key.Line, header)
		}
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: section %q: component %q must be a scalar", val.Line, header, key.Value)
		}
		comps.Set(key.Value, val.Value)
	}
	return comps, nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
