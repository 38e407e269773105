package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"arbor-hq/canopy/pkg/gdl/ast"
	gdlerrors "arbor-hq/canopy/pkg/gdl/errors"
)

// Format identifies the wire encoding of a grammar description document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Parser decodes grammar description documents and assembles typed
// grammars from them. It preserves the document's rule order, so the
// first rule of the source file stays the grammar's start rule.
type Parser struct {
	maxFileSize int64 // Maximum document size in bytes (default: 10MB)
	maxDepth    int   // Maximum rule nesting depth (default: 100)
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: 10 * 1024 * 1024, // 10MB
		maxDepth:    defaultMaxDepth,
	}
}

// WithMaxFileSize sets the maximum document size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithMaxDepth sets the maximum rule nesting depth.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// Parse reads a grammar description file and assembles the typed
// grammar. The format is inferred from the file extension: .yaml and
// .yml are parsed as YAML, everything else as JSON.
func (p *Parser) Parse(path string) (*ast.Grammar, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, gdlerrors.Newf(gdlerrors.TypeIO, path,
			"failed to access file: %v", err)
	}

	if fileInfo.Size() > p.maxFileSize {
		return nil, gdlerrors.Newf(gdlerrors.TypeIO, path,
			"file size %d exceeds maximum %d bytes", fileInfo.Size(), p.maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gdlerrors.Newf(gdlerrors.TypeIO, path,
			"failed to read file: %v", err)
	}

	return p.ParseBytesAs(data, path, FormatForPath(path))
}

// ParseBytes parses a JSON grammar description from a byte slice.
// sourcePath names the document's origin for error reporting.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*ast.Grammar, error) {
	return p.ParseBytesAs(data, sourcePath, FormatJSON)
}

// ParseBytesAs parses a grammar description from a byte slice in the
// given format.
func (p *Parser) ParseBytesAs(data []byte, sourcePath string, format Format) (*ast.Grammar, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, gdlerrors.Newf(gdlerrors.TypeIO, sourcePath,
			"data size %d exceeds maximum %d bytes", len(data), p.maxFileSize)
	}

	var (
		doc *document
		err error
	)
	switch format {
	case FormatYAML:
		doc, err = parseYAMLBytes(data, sourcePath)
	case FormatJSON:
		doc, err = parseJSONBytes(data, sourcePath)
	default:
		return nil, fmt.Errorf("unknown grammar format %q", format)
	}
	if err != nil {
		return nil, err
	}

	return assembleGrammar(doc.name, doc.rules, doc.ruleOrder, p.maxDepth)
}

// document is the intermediate form of a decoded description: the
// dynamic name and rules values plus the rule order observed in the
// source document. ruleOrder is nil when the document defined no rules
// object, which assembleGrammar reports as a structural error.
type document struct {
	name      any
	rules     any
	ruleOrder []string
}

// FormatForPath infers the wire format from a file extension. Every
// extension other than .yaml and .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
