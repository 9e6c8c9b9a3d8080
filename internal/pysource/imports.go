package pysource

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ImportedName is one name brought in by an import statement.
type ImportedName struct {
	Qualified string // dotted path, e.g. "os.path" or "collections.OrderedDict"
	Bound     string // name bound in the importing module
	Aliased   bool   // bound via "as"
}

// ImportStatement is a module-level import as written in the source.
type ImportStatement struct {
	Names    []ImportedName
	Module   string // module of a from-import, including leading dots when relative
	Relative bool
	Wildcard bool
	Future   bool
	Span     Span
	Text     string
}

// BoundNames returns the names that mark the statement as used. For an unaliased
// "import a.b.c" this is both "a" (the Python binding) and "c".
func (s ImportStatement) BoundNames() []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, n := range s.Names {
		add(n.Bound)
		if !n.Aliased {
			add(lastComponent(n.Qualified))
		}
	}
	return names
}

func collectImport(node *sitter.Node, source []byte) ImportStatement {
	stmt := ImportStatement{
		Span: nodeSpan(node),
		Text: nodeText(node, source),
	}

	switch node.Kind() {
	case "import_statement":
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			switch child.Kind() {
			case "dotted_name":
				path := nodeText(child, source)
				stmt.Names = append(stmt.Names, ImportedName{Qualified: path, Bound: firstComponent(path)})
			case "aliased_import":
				stmt.Names = append(stmt.Names, aliasedName("", child, source))
			}
		}

	case "import_from_statement", "future_import_statement":
		if node.Kind() == "future_import_statement" {
			stmt.Module = "__future__"
		}
		sawImport := false
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			switch child.Kind() {
			case "import":
				sawImport = true
			case "relative_import":
				stmt.Relative = true
				stmt.Module = nodeText(child, source)
			case "dotted_name", "identifier":
				if !sawImport {
					stmt.Module = nodeText(child, source)
					continue
				}
				name := nodeText(child, source)
				stmt.Names = append(stmt.Names, ImportedName{
					Qualified: qualify(stmt.Module, name),
					Bound:     lastComponent(name),
				})
			case "aliased_import":
				stmt.Names = append(stmt.Names, aliasedName(stmt.Module, child, source))
			case "wildcard_import":
				stmt.Wildcard = true
			}
		}
		stmt.Future = stmt.Module == "__future__"
	}

	return stmt
}

func aliasedName(module string, node *sitter.Node, source []byte) ImportedName {
	name := nodeText(node.ChildByFieldName("name"), source)
	return ImportedName{
		Qualified: qualify(module, name),
		Bound:     nodeText(node.ChildByFieldName("alias"), source),
		Aliased:   true,
	}
}

func qualify(module, name string) string {
	switch {
	case module == "":
		return name
	case strings.HasSuffix(module, "."):
		return module + name
	default:
		return module + "." + name
	}
}

func firstComponent(path string) string {
	if i := strings.IndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return path
}

func lastComponent(path string) string {
	return path[strings.LastIndexByte(path, '.')+1:]
}
