// Package printer renders parsed Terms for people and tools: the compact
// S-expression form, or YAML and JSON documents carrying every node's type,
// payload and source location.
package printer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"baik/interpreter-go/pkg/ast"
)

// Format selects an output encoding.
type Format int

const (
	FormatSexp Format = iota
	FormatYAML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "sexp"
	}
}

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sexp":
		return FormatSexp, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatSexp, fmt.Errorf("printer: unknown format %q", name)
	}
}

// Write renders terms to w. source, when non-nil, adds line and column to
// every location in the YAML and JSON forms.
func Write(w io.Writer, format Format, terms []*ast.Term, source []byte) error {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatYAML:
		out, err = YAML(terms, source)
	case FormatJSON:
		out, err = JSON(terms, source)
	default:
		if len(terms) > 0 {
			out = []byte(ast.FormatAll(terms) + "\n")
		}
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// YAML encodes terms as a YAML sequence.
func YAML(terms []*ast.Term, source []byte) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{Document(terms, source)}}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("printer: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("printer: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// JSON encodes terms as an indented JSON array. Object keys are sorted.
func JSON(terms []*ast.Term, source []byte) ([]byte, error) {
	var value any
	if err := Document(terms, source).Decode(&value); err != nil {
		return nil, fmt.Errorf("printer: convert to json: %w", err)
	}
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("printer: encode json: %w", err)
	}
	return append(out, '\n'), nil
}

// Document builds the YAML node tree shared by the YAML and JSON renderers.
func Document(terms []*ast.Term, source []byte) *yaml.Node {
	b := builder{source: source}
	return b.terms(terms)
}
