package splitter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/pysplit/internal/pysource"
)

// ComposeDefinition builds the standalone file for a top-level definition:
// resolved imports, each decorator on its own line, then the exact def/class text.
func ComposeDefinition(unit *pysource.SourceUnit, def *pysource.DefinitionNode, mode ImportMode) string {
	var b strings.Builder
	b.WriteString(importPrologue(ResolveImports(def, unit.Imports, mode)))
	for _, dec := range def.DecoratorTexts(unit.Text) {
		b.WriteString(dec)
		b.WriteString("\n")
	}
	b.WriteString(def.DefSpan.Text(unit.Text))
	b.WriteString("\n")
	return b.String()
}

// Emitter writes extracted units into an output directory.
type Emitter struct {
	Dir       string
	Extension string
	Mode      ImportMode
	Verify    bool
	Progress  ProgressReporter
}

// FilePath returns the output path for a unit name.
func (e *Emitter) FilePath(name string) string {
	return filepath.Join(e.Dir, name+e.Extension)
}

// WriteDefinitions writes one file per definition, in order, and returns the
// paths written. A later definition with a repeated name overwrites the earlier file.
func (e *Emitter) WriteDefinitions(unit *pysource.SourceUnit, defs []*pysource.DefinitionNode) ([]string, error) {
	progress := e.progress()
	progress.OnEmitStart(len(defs))

	var written []string
	for _, def := range defs {
		path, err := e.writeUnit(def.Name, ComposeDefinition(unit, def, e.Mode))
		if err != nil {
			return written, err
		}
		written = append(written, path)
		progress.OnFileEmitted(path)
	}

	progress.OnEmitComplete()
	return written, nil
}

// writeUnit optionally verifies content parses, then writes it under name.
func (e *Emitter) writeUnit(name, content string) (string, error) {
	path := e.FilePath(name)
	if e.Verify {
		if _, err := pysource.Parse(path, []byte(content)); err != nil {
			return "", fmt.Errorf("emitted file for %s is not valid Python: %w", name, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write file for %s: %w", name, err)
	}
	return path, nil
}

func (e *Emitter) progress() ProgressReporter {
	if e.Progress == nil {
		return &NoOpProgressReporter{}
	}
	return e.Progress
}
