// Canopy is a grammar compiler front end and build tool.
//
// It reads grammar description documents (JSON or YAML), assembles them
// into validated typed grammars, and hands them to a downstream parser
// compiler. Generated source can be archived and rebuilt automatically
// on file changes.
//
// Usage:
//
//	# Validate grammar description files
//	canopy lint --file grammar.json
//
//	# Build a grammar and write the generated source
//	canopy build grammar.json -o parser.c
//
//	# Rebuild on every change
//	canopy watch grammars/
//
//	# Show version information
//	canopy version
package main

func main() {
	Execute()
}
