package splitter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mvp-joe/pysplit/internal/pysource"
)

// ErrClassNotFound is returned when the requested class is not a top-level definition.
var ErrClassNotFound = errors.New("class not found")

// AttributeOrder controls the order of discovered attributes in a method's parameters.
type AttributeOrder string

const (
	OrderFirstSeen AttributeOrder = "first-seen"
	OrderSorted    AttributeOrder = "sorted"
)

// MethodUnit is one method lifted out of a class as a standalone function.
type MethodUnit struct {
	ClassName string
	Method    string
	Name      string // <ClassName>_<Method>, the file stem
	Params    []string
	Content   string
}

// Decomposition is the result of splitting one class into method files.
type Decomposition struct {
	ClassName string
	ClassSpan pysource.Span
	// ClassText is the class with every method body replaced by a "pass"
	// placeholder. The placeholders do not call the extracted functions.
	ClassText string
	Methods   []MethodUnit
}

// MethodDecomposer turns each method of a class into a function parameterized by
// the instance reference and the instance attributes the method touches.
type MethodDecomposer struct {
	Mode  ImportMode
	Order AttributeOrder
}

// Decompose splits the last top-level class named className.
func (d *MethodDecomposer) Decompose(unit *pysource.SourceUnit, className string) (*Decomposition, error) {
	var class *pysource.DefinitionNode
	for i := range unit.Definitions {
		def := &unit.Definitions[i]
		if def.Kind == pysource.KindClass && def.Name == className {
			class = def
		}
	}
	if class == nil {
		return nil, fmt.Errorf("%s in %s: %w", className, unit.Path, ErrClassNotFound)
	}

	result := &Decomposition{
		ClassName: class.Name,
		ClassSpan: class.Span,
	}

	var stubs []Replacement
	for i := range class.Methods {
		m := &class.Methods[i]
		params := d.params(m)
		result.Methods = append(result.Methods, MethodUnit{
			ClassName: class.Name,
			Method:    m.Name,
			Name:      class.Name + "_" + m.Name,
			Params:    params,
			Content:   d.composeMethod(unit, m, params),
		})

		stub := "pass"
		if !m.InlineBody {
			stub = m.BodyIndent + "pass"
		}
		stubs = append(stubs, Replacement{
			Span: pysource.Span{Start: m.Body.Start - class.Span.Start, End: m.Body.End - class.Span.Start},
			Text: stub,
		})
	}

	classText, err := applyReplacements(class.Span.Text(unit.Text), stubs)
	if err != nil {
		return nil, fmt.Errorf("failed to stub methods of %s: %w", class.Name, err)
	}
	result.ClassText = classText

	return result, nil
}

// params is the instance reference followed by the discovered attributes.
func (d *MethodDecomposer) params(m *pysource.MethodNode) []string {
	attrs := make([]string, 0, len(m.Attributes))
	for _, a := range m.Attributes {
		if a != m.InstanceRef {
			attrs = append(attrs, a)
		}
	}
	if d.Order == OrderSorted {
		sort.Strings(attrs)
	}

	var params []string
	if m.InstanceRef != "" {
		params = append(params, m.InstanceRef)
	}
	return append(params, attrs...)
}

func (d *MethodDecomposer) composeMethod(unit *pysource.SourceUnit, m *pysource.MethodNode, params []string) string {
	var b strings.Builder
	b.WriteString(importPrologue(ResolveImports(&m.DefinitionNode, unit.Imports, d.Mode)))
	if m.Async {
		b.WriteString("async ")
	}
	fmt.Fprintf(&b, "def %s(%s):\n", m.Name, strings.Join(params, ", "))
	b.WriteString(dedentBody(m, unit.Text))
	b.WriteString("\n")
	return b.String()
}

// dedentBody strips the method's own indentation from every body line so the
// body sits one level deep in a module-level function. Lines that begin inside
// a multi-line string literal are string content and stay untouched.
func dedentBody(m *pysource.MethodNode, text string) string {
	body := m.Body.Text(text)
	if m.InlineBody {
		return "    " + body
	}

	lines := strings.Split(body, "\n")
	offset := m.Body.Start
	for i, line := range lines {
		start := offset
		offset += len(line) + 1
		if m.InString(start) {
			continue
		}
		switch {
		case strings.HasPrefix(line, m.Indent):
			lines[i] = line[len(m.Indent):]
		case strings.TrimSpace(line) == "":
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}
