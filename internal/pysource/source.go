// Package pysource parses Python source with tree-sitter and records the
// top-level structure needed to split a file: import statements, function and
// class definitions, and class methods, each as exact byte spans.
package pysource

import (
	"errors"
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// ErrParse indicates the source could not be parsed without syntax errors.
var ErrParse = errors.New("python parse error")

// ParseError describes the first syntax error found in a file.
type ParseError struct {
	Path   string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: invalid syntax", e.Path, e.Line, e.Column)
}

// Is reports ParseError as ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Span is a half-open byte range [Start, End) of the original source text.
type Span struct {
	Start int
	End   int
}

// Text returns the exact substring of text covered by the span.
func (s Span) Text(text string) string {
	return text[s.Start:s.End]
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// SourceUnit is a loaded Python file and the structure collected from one parse.
// It holds no tree-sitter state and is never mutated after Parse returns.
type SourceUnit struct {
	Path        string
	Text        string
	Imports     []ImportStatement
	Definitions []DefinitionNode
}

// Definition returns the last top-level definition with the given name.
func (u *SourceUnit) Definition(name string) (*DefinitionNode, bool) {
	for i := len(u.Definitions) - 1; i >= 0; i-- {
		if u.Definitions[i].Name == name {
			return &u.Definitions[i], true
		}
	}
	return nil, false
}

// ParseFile reads and parses a Python file.
func ParseFile(path string) (*SourceUnit, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(path, source)
}

// Parse parses Python source and collects its imports and top-level definitions.
// Any syntax error in the tree is reported as a *ParseError.
func Parse(path string, source []byte) (*SourceUnit, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(sitter.NewLanguage(python.Language())); err != nil {
		return nil, fmt.Errorf("failed to load python grammar: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse python file: %s: %w", path, ErrParse)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(path, root)
	}

	unit := &SourceUnit{
		Path:        path,
		Text:        string(source),
		Imports:     []ImportStatement{},
		Definitions: []DefinitionNode{},
	}

	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		switch child.Kind() {
		case "import_statement", "import_from_statement", "future_import_statement":
			unit.Imports = append(unit.Imports, collectImport(child, source))
		case "function_definition", "class_definition", "decorated_definition":
			if def, ok := collectDefinition(child, source); ok {
				unit.Definitions = append(unit.Definitions, def)
			}
		}
	}

	return unit, nil
}

// syntaxError locates the first ERROR or MISSING node below root.
func syntaxError(path string, root *sitter.Node) error {
	var bad *sitter.Node
	walkTree(root, func(n *sitter.Node) bool {
		if bad != nil {
			return false
		}
		if n.IsError() || n.IsMissing() {
			bad = n
			return false
		}
		return n.HasError()
	})
	if bad == nil {
		bad = root
	}
	pos := bad.StartPosition()
	return &ParseError{Path: path, Line: int(pos.Row) + 1, Column: int(pos.Column) + 1}
}
