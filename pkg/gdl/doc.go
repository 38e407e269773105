// Package gdl is the front door to the grammar description language:
// dynamically-shaped grammar descriptions in, validated typed grammars
// out.
//
// A grammar description is a name plus a mapping of rule names to rule
// nodes. Each node carries a "type" discriminator (BLANK, CHOICE, ERROR,
// PATTERN, REPEAT, SEQ, STRING, SYMBOL) and the variant's fields:
//
//	{
//	  "name": "arithmetic",
//	  "rules": {
//	    "expression": {
//	      "type": "CHOICE",
//	      "members": [
//	        {"type": "SYMBOL", "name": "number"},
//	        {"type": "SEQ", "members": [
//	          {"type": "SYMBOL", "name": "expression"},
//	          {"type": "STRING", "value": "+"},
//	          {"type": "SYMBOL", "name": "expression"}
//	        ]}
//	      ]
//	    },
//	    "number": {"type": "PATTERN", "value": "\\d+"}
//	  }
//	}
//
// Descriptions may be JSON or YAML. Rule order follows the document, and
// the first rule is the start rule.
//
// The sub-packages divide the work:
//
//   - ast: the typed Rule sum type and Grammar container
//   - parser: wire decoding and the fail-fast dynamic-to-typed builder
//   - validator: grammar-level checks on built grammars
//   - errors: the shared error taxonomy
//
// This package ties them together:
//
//	grammar, err := gdl.ParseAndValidate("grammar.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Compilation of a validated grammar into parser source is out of scope
// here; see package arbor-hq/canopy/pkg/compiler for the downstream
// boundary.
package gdl
