package pysource

import (
	"bytes"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// MethodNode is a function defined directly in a class body.
type MethodNode struct {
	DefinitionNode

	// InstanceRef is the literal first parameter name, usually "self".
	// Empty when the method takes no plain first parameter.
	InstanceRef string

	// Attributes are the names accessed as <InstanceRef>.<name>, first-seen order.
	Attributes []string

	// Indent is the whitespace preceding the method (or its first decorator).
	Indent string

	// Header runs from the "def" keyword up to the start of Body.
	Header Span

	// Body runs from the first body line (or the first inline statement) to the end of the method.
	Body Span

	// BodyIndent is the indentation of the first body statement; empty for inline bodies.
	BodyIndent string

	// InlineBody is set for "def f(self): return 1" style methods.
	InlineBody bool

	// Strings are the string literals in the body that span more than one line.
	Strings []Span
}

func collectMethods(classNode *sitter.Node, source []byte) []MethodNode {
	body := classNode.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var methods []MethodNode
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		switch child.Kind() {
		case "function_definition", "decorated_definition":
			if m, ok := collectMethod(child, source); ok {
				methods = append(methods, m)
			}
		}
	}
	return methods
}

func collectMethod(node *sitter.Node, source []byte) (MethodNode, bool) {
	def, ok := collectDefinition(node, source)
	if !ok || def.Kind != KindFunction {
		return MethodNode{}, false
	}

	fn := node
	if node.Kind() == "decorated_definition" {
		fn = node.ChildByFieldName("definition")
	}
	body := fn.ChildByFieldName("body")
	if body == nil {
		return MethodNode{}, false
	}

	m := MethodNode{
		DefinitionNode: def,
		Indent:         leadingWhitespace(source, int(node.StartByte())),
	}

	// The ":" ending the header is the last one before the body.
	var colon *sitter.Node
	for i := uint(0); i < fn.ChildCount(); i++ {
		child := fn.Child(i)
		if child.Kind() == ":" && child.EndByte() <= body.StartByte() {
			colon = child
		}
	}

	switch {
	case colon == nil || colon.StartPosition().Row == body.StartPosition().Row:
		m.InlineBody = true
		m.Body = Span{Start: int(body.StartByte()), End: int(fn.EndByte())}
	default:
		start := int(colon.EndByte())
		if nl := bytes.IndexByte(source[start:], '\n'); nl >= 0 {
			start += nl + 1
		}
		m.Body = Span{Start: start, End: int(fn.EndByte())}
		m.BodyIndent = leadingWhitespace(source, int(body.StartByte()))
		if m.BodyIndent == "" {
			m.BodyIndent = m.Indent + "    "
		}
	}
	m.Header = Span{Start: int(fn.StartByte()), End: m.Body.Start}
	m.Strings = multilineStrings(body)

	m.InstanceRef = instanceRef(fn.ChildByFieldName("parameters"), source)
	if m.InstanceRef != "" {
		m.Attributes = instanceAttributes(node, m.InstanceRef, source)
	}

	return m, true
}

// instanceRef returns the name of the first parameter when it is a plain,
// typed or defaulted identifier.
func instanceRef(params *sitter.Node, source []byte) string {
	if params == nil {
		return ""
	}
	for i := uint(0); i < params.NamedChildCount(); i++ {
		first := params.NamedChild(i)
		switch first.Kind() {
		case "comment":
			continue
		case "identifier":
			return nodeText(first, source)
		case "typed_parameter":
			return nodeText(findChildByType(first, "identifier"), source)
		case "default_parameter", "typed_default_parameter":
			return nodeText(first.ChildByFieldName("name"), source)
		}
		return ""
	}
	return ""
}

// instanceAttributes collects <ref>.<name> accesses anywhere in the subtree.
func instanceAttributes(node *sitter.Node, ref string, source []byte) []string {
	seen := make(map[string]bool)
	var attrs []string
	walkTree(node, func(n *sitter.Node) bool {
		if n.Kind() != "attribute" {
			return true
		}
		obj := n.ChildByFieldName("object")
		if obj == nil || obj.Kind() != "identifier" || nodeText(obj, source) != ref {
			return true
		}
		name := nodeText(n.ChildByFieldName("attribute"), source)
		if name != "" && !seen[name] {
			seen[name] = true
			attrs = append(attrs, name)
		}
		return true
	})
	return attrs
}

// multilineStrings returns the spans of string literals that cross a line break.
func multilineStrings(node *sitter.Node) []Span {
	var spans []Span
	walkTree(node, func(n *sitter.Node) bool {
		if n.Kind() != "string" {
			return true
		}
		if n.StartPosition().Row != n.EndPosition().Row {
			spans = append(spans, nodeSpan(n))
		}
		return false
	})
	return spans
}

// InString reports whether offset falls after the first byte of a multi-line
// string literal and before its end.
func (m *MethodNode) InString(offset int) bool {
	for _, s := range m.Strings {
		if offset > s.Start && offset < s.End {
			return true
		}
	}
	return false
}
