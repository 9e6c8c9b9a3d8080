package splitter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/mvp-joe/pysplit/internal/pysource"
)

// Warning is a non-fatal finding about an extraction.
type Warning struct {
	Definition string
	Message    string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Definition, w.Message)
}

// AnalyzeReferences builds a directed graph over the extracted definitions and
// the definitions kept in the script (an edge A->B when B's name is an
// identifier in extracted A). Every edge is reported, since A's file imports
// neither, plus every group of mutually recursive extracted definitions.
func AnalyzeReferences(extracted, kept []*pysource.DefinitionNode) ([]Warning, error) {
	g := graph.New(graph.StringHash, graph.Directed())

	isKept := make(map[string]bool, len(kept))
	for _, def := range kept {
		isKept[def.Name] = true
	}
	targets := make([]*pysource.DefinitionNode, 0, len(extracted)+len(kept))
	targets = append(append(targets, extracted...), kept...)

	for _, def := range targets {
		if err := g.AddVertex(def.Name); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("failed to add %s: %w", def.Name, err)
		}
	}

	var warnings []Warning
	for _, from := range extracted {
		for _, to := range targets {
			if from.Name == to.Name || !from.References(to.Name) {
				continue
			}
			err := g.AddEdge(from.Name, to.Name)
			if errors.Is(err, graph.ErrEdgeAlreadyExists) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to link %s to %s: %w", from.Name, to.Name, err)
			}
			msg := fmt.Sprintf("references %s, which is not imported in its extracted file", to.Name)
			if isKept[to.Name] {
				msg = fmt.Sprintf("references %s, which stays in the script and is not imported in its extracted file", to.Name)
			}
			warnings = append(warnings, Warning{Definition: from.Name, Message: msg})
		}
	}

	components, err := graph.StronglyConnectedComponents(g)
	if err != nil {
		return nil, fmt.Errorf("failed to find reference cycles: %w", err)
	}

	var cycles [][]string
	for _, c := range components {
		if len(c) > 1 {
			sort.Strings(c)
			cycles = append(cycles, c)
		}
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	for _, c := range cycles {
		warnings = append(warnings, Warning{
			Definition: c[0],
			Message:    "mutually recursive with " + strings.Join(c[1:], ", "),
		})
	}

	return warnings, nil
}
