package splitter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mvp-joe/pysplit/internal/pysource"
)

// ImportLine is the statement that replaces an extracted definition.
func ImportLine(name string) string {
	return fmt.Sprintf("from .%s import %s", name, name)
}

// Replacement substitutes Text for the original bytes covered by Span.
type Replacement struct {
	Span pysource.Span
	Text string
}

// applyReplacements builds a new string from text by slicing between the
// recorded spans. Spans must not overlap.
func applyReplacements(text string, repls []Replacement) (string, error) {
	sorted := make([]Replacement, len(repls))
	copy(sorted, repls)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Span.Start < sorted[j].Span.Start })

	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, r := range sorted {
		if r.Span.Start < prev || r.Span.End > len(text) || r.Span.Start > r.Span.End {
			return "", fmt.Errorf("span [%d,%d) overlaps or exceeds the source", r.Span.Start, r.Span.End)
		}
		b.WriteString(text[prev:r.Span.Start])
		b.WriteString(r.Text)
		prev = r.Span.End
	}
	b.WriteString(text[prev:])
	return b.String(), nil
}

// RewriteScript replaces each definition's full span, decorators included, with
// its relative import line. Text outside those spans is copied unchanged.
func RewriteScript(unit *pysource.SourceUnit, defs []*pysource.DefinitionNode) (string, error) {
	repls := make([]Replacement, 0, len(defs))
	for _, def := range defs {
		repls = append(repls, Replacement{Span: def.Span, Text: ImportLine(def.Name)})
	}
	return applyReplacements(unit.Text, repls)
}
