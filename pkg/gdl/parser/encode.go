package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"arbor-hq/canopy/pkg/gdl/ast"
)

// EncodeJSON renders a typed grammar back to its canonical JSON wire
// form, preserving rule order. The output round-trips through the
// parser, and it is what external compilers receive on stdin.
func EncodeJSON(g *ast.Grammar) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"name":`)
	name, err := json.Marshal(g.Name)
	if err != nil {
		return nil, err
	}
	buf.Write(name)

	buf.WriteString(`,"rules":{`)
	for i, entry := range g.Rules {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		node, err := json.Marshal(encodeRule(entry.Rule))
		if err != nil {
			return nil, err
		}
		buf.Write(node)
	}
	buf.WriteString("}}")

	return buf.Bytes(), nil
}

type jsonLeafNode struct {
	Type string `json:"type"`
}

type jsonListNode struct {
	Type    string `json:"type"`
	Members []any  `json:"members"`
}

type jsonWrapNode struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type jsonTextNode struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type jsonSymbolNode struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// encodeRule converts a typed rule into a marshalable node mirroring the
// dynamic wire shape.
func encodeRule(r ast.Rule) any {
	switch x := r.(type) {
	case ast.Blank:
		return jsonLeafNode{Type: ruleTypeBlank}
	case ast.Choice:
		return jsonListNode{Type: ruleTypeChoice, Members: encodeMembers(x.Members)}
	case ast.Error:
		return jsonWrapNode{Type: ruleTypeError, Value: encodeRule(x.Value)}
	case ast.Pattern:
		return jsonTextNode{Type: ruleTypePattern, Value: x.Value}
	case ast.Repeat:
		return jsonWrapNode{Type: ruleTypeRepeat, Value: encodeRule(x.Value)}
	case ast.Seq:
		return jsonListNode{Type: ruleTypeSeq, Members: encodeMembers(x.Members)}
	case ast.String:
		return jsonTextNode{Type: ruleTypeString, Value: x.Value}
	case ast.Symbol:
		return jsonSymbolNode{Type: ruleTypeSymbol, Name: x.Name}
	default:
		// Rule is a closed set; this is unreachable.
		panic(fmt.Sprintf("unknown rule variant %T", r))
	}
}

func encodeMembers(members []ast.Rule) []any {
	encoded := make([]any, len(members))
	for i, m := range members {
		encoded[i] = encodeRule(m)
	}
	return encoded
}
