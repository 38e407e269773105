package parser

import (
	"gopkg.in/yaml.v3"

	gdlerrors "arbor-hq/canopy/pkg/gdl/errors"
)

// parseYAMLBytes decodes a YAML grammar description into the
// intermediate document form. The yaml.Node tree keeps mapping keys in
// document order, so the rule order comes straight from the source.
func parseYAMLBytes(data []byte, sourcePath string) (*document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, gdlerrors.Newf(gdlerrors.TypeSyntax, sourcePath,
			"YAML parsing failed: %v", err)
	}

	top := &root
	if top.Kind == yaml.DocumentNode {
		if len(top.Content) == 0 {
			return nil, gdlerrors.New(gdlerrors.TypeStructural, sourcePath,
				"expected grammar description to be an object, got nothing")
		}
		top = top.Content[0]
	}

	if top.Kind != yaml.MappingNode {
		return nil, gdlerrors.New(gdlerrors.TypeStructural, sourcePath,
			"expected grammar description to be an object")
	}

	doc := &document{}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key := top.Content[i].Value
		valueNode := top.Content[i+1]

		switch key {
		case "name":
			value, err := nodeToValue(valueNode)
			if err != nil {
				return nil, yamlSyntaxError(sourcePath, err)
			}
			doc.name = value
		case "rules":
			value, err := nodeToValue(valueNode)
			if err != nil {
				return nil, yamlSyntaxError(sourcePath, err)
			}
			doc.rules = value
			if valueNode.Kind == yaml.MappingNode {
				doc.ruleOrder = mappingKeys(valueNode)
			}
		}
	}

	return doc, nil
}

// mappingKeys returns a mapping node's keys in document order.
func mappingKeys(n *yaml.Node) []string {
	keys := make([]string, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keys = append(keys, n.Content[i].Value)
	}
	return keys
}

// nodeToValue converts a YAML node into the dynamic value shapes the
// builder consumes: map[string]any, []any, and scalars.
func nodeToValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			value, err := nodeToValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = value
		}
		return m, nil

	case yaml.SequenceNode:
		seq := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			value, err := nodeToValue(child)
			if err != nil {
				return nil, err
			}
			seq = append(seq, value)
		}
		return seq, nil

	case yaml.AliasNode:
		return nodeToValue(n.Alias)

	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func yamlSyntaxError(sourcePath string, err error) *gdlerrors.Error {
	return gdlerrors.Newf(gdlerrors.TypeSyntax, sourcePath,
		"YAML decoding failed: %v", err)
}
