package pysource

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Kind distinguishes extracted definitions.
type Kind string

const (
	KindFunction Kind = "function"
	KindClass    Kind = "class"
)

// DefinitionNode is a top-level function or class definition.
type DefinitionNode struct {
	Kind  Kind
	Name  string
	Async bool

	// Decorators are the spans of each "@..." line, in order.
	Decorators []Span

	// Span covers the whole definition including decorators.
	Span Span

	// DefSpan covers the "def"/"class" statement alone.
	DefSpan Span

	// Identifiers lists every identifier in the decorated subtree, unique, first-seen order.
	Identifiers []string

	// Methods holds the direct function members of a class body.
	Methods []MethodNode
}

// DecoratorTexts returns the exact source of each decorator.
func (d *DefinitionNode) DecoratorTexts(text string) []string {
	out := make([]string, 0, len(d.Decorators))
	for _, s := range d.Decorators {
		out = append(out, s.Text(text))
	}
	return out
}

// References reports whether name occurs as an identifier anywhere in the definition.
func (d *DefinitionNode) References(name string) bool {
	for _, id := range d.Identifiers {
		if id == name {
			return true
		}
	}
	return false
}

// Method returns the direct method with the given name.
func (d *DefinitionNode) Method(name string) (*MethodNode, bool) {
	for i := range d.Methods {
		if d.Methods[i].Name == name {
			return &d.Methods[i], true
		}
	}
	return nil, false
}

// collectDefinition records a function_definition, class_definition or
// decorated_definition wrapping one of those.
func collectDefinition(node *sitter.Node, source []byte) (DefinitionNode, bool) {
	inner := node
	var decorators []*sitter.Node
	if node.Kind() == "decorated_definition" {
		inner = node.ChildByFieldName("definition")
		decorators = findChildrenByType(node, "decorator")
	}
	if inner == nil {
		return DefinitionNode{}, false
	}

	var kind Kind
	switch inner.Kind() {
	case "function_definition":
		kind = KindFunction
	case "class_definition":
		kind = KindClass
	default:
		return DefinitionNode{}, false
	}

	nameNode := inner.ChildByFieldName("name")
	if nameNode == nil {
		return DefinitionNode{}, false
	}

	def := DefinitionNode{
		Kind:        kind,
		Name:        nodeText(nameNode, source),
		Async:       findChildByType(inner, "async") != nil,
		Span:        nodeSpan(node),
		DefSpan:     nodeSpan(inner),
		Identifiers: collectIdentifiers(node, source),
	}
	for _, dec := range decorators {
		def.Decorators = append(def.Decorators, nodeSpan(dec))
	}

	if kind == KindClass {
		def.Methods = collectMethods(inner, source)
	}

	return def, true
}
