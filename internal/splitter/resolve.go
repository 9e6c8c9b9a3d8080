package splitter

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/pysplit/internal/pysource"
)

// ImportMode selects how an extracted unit's import prologue is built.
type ImportMode string

const (
	// ModeFiltered keeps only the imports whose bound names the unit references.
	ModeFiltered ImportMode = "filtered"

	// ModeFullCatalog keeps every module-level import.
	ModeFullCatalog ImportMode = "full-catalog"
)

// ParseImportMode converts a configuration string to an ImportMode.
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(s) {
	case ModeFiltered, ModeFullCatalog:
		return ImportMode(s), nil
	}
	return "", fmt.Errorf("unknown import mode %q", s)
}

// ResolveImports returns the original text of the catalog entries needed by def,
// in catalog order. In filtered mode an import is kept when any of its bound names
// occurs as an identifier in def; wildcard and __future__ imports are always kept
// since their use cannot be seen.
func ResolveImports(def *pysource.DefinitionNode, catalog []pysource.ImportStatement, mode ImportMode) []string {
	var out []string
	for _, imp := range catalog {
		if mode == ModeFullCatalog || importUsed(def, imp) {
			out = append(out, imp.Text)
		}
	}
	return out
}

func importUsed(def *pysource.DefinitionNode, imp pysource.ImportStatement) bool {
	if imp.Wildcard || imp.Future {
		return true
	}
	for _, name := range imp.BoundNames() {
		if def.References(name) {
			return true
		}
	}
	return false
}

// importPrologue renders resolved imports as a block ending in a newline, or ""
// when there are none.
func importPrologue(imports []string) string {
	if len(imports) == 0 {
		return ""
	}
	return strings.Join(imports, "\n") + "\n"
}
