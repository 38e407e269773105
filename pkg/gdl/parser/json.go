package parser

import (
	"bytes"
	"encoding/json"

	gdlerrors "arbor-hq/canopy/pkg/gdl/errors"
)

// parseJSONBytes decodes a JSON grammar description into the
// intermediate document form. encoding/json discards object key order,
// so the order of the "rules" object's keys is recovered with a separate
// token-level scan of the document.
func parseJSONBytes(data []byte, sourcePath string) (*document, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, gdlerrors.Newf(gdlerrors.TypeSyntax, sourcePath,
			"JSON parsing failed: %v", err)
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return nil, gdlerrors.Newf(gdlerrors.TypeStructural, sourcePath,
			"expected grammar description to be an object, got %s", describe(root))
	}

	doc := &document{
		name:  obj["name"],
		rules: obj["rules"],
	}
	if _, ok := obj["rules"].(map[string]any); ok {
		doc.ruleOrder = scanRuleOrder(data)
	}
	return doc, nil
}

// scanRuleOrder walks the document's tokens and returns the keys of the
// top-level "rules" object in first-seen order. The document is known to
// be well-formed JSON with an object root by the time this runs.
func scanRuleOrder(data []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(data))

	if _, err := dec.Token(); err != nil { // opening '{'
		return nil
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, _ := keyTok.(string)

		if key != "rules" {
			if err := skipJSONValue(dec); err != nil {
				return nil
			}
			continue
		}

		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil
		}

		names := make([]string, 0)
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return nil
			}
			name, _ := nameTok.(string)
			names = append(names, name)

			if err := skipJSONValue(dec); err != nil {
				return nil
			}
		}
		return names
	}

	return nil
}

// skipJSONValue consumes one complete JSON value from the decoder,
// descending through nested objects and arrays.
func skipJSONValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if d, ok := tok.(json.Delim); ok && (d == '{' || d == '[') {
		for dec.More() {
			if err := skipJSONValue(dec); err != nil {
				return err
			}
		}
		_, err := dec.Token() // closing delimiter
		return err
	}

	return nil
}
