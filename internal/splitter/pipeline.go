// Package splitter extracts top-level Python definitions into their own files
// and rewrites the original script to import them.
package splitter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/pysplit/internal/git"
	"github.com/mvp-joe/pysplit/internal/pycheck"
	"github.com/mvp-joe/pysplit/internal/pysource"
)

// ErrInvalidOutputDir is returned when recreating the output directory would
// remove the script itself.
var ErrInvalidOutputDir = errors.New("invalid output directory")

// Options configures Split.
type Options struct {
	ScriptPath string
	OutputDir  string // default: ScriptPath without its extension
	Extension  string // default: ".py"
	ImportMode ImportMode
	Verify     bool
	Checker    pycheck.Checker // optional interpreter compile check
	Skip       *NameFilter

	Branch        string
	CommitMessage string
	NoCommit      bool

	Git      git.Operations
	Progress ProgressReporter
}

// Result describes a completed split.
type Result struct {
	RepositoryRoot string
	OutputDir      string
	Files          []string
	Extracted      []string
	Skipped        []string
	Warnings       []Warning
	Branch         string // empty when nothing was committed
}

// Split extracts every top-level function and class of the script into
// OutputDir and rewrites the script to import them. The script must live in a
// git working tree; nothing is written otherwise. The script is overwritten
// last, after every definition file has been written, and the branch and
// commit are created only after that.
func Split(ctx context.Context, opts Options) (*Result, error) {
	if opts.Git == nil {
		return nil, errors.New("git operations are required")
	}

	root, err := opts.Git.FindRepositoryRoot(opts.ScriptPath)
	if err != nil {
		return nil, fmt.Errorf("refusing to split %s: %w", opts.ScriptPath, err)
	}

	outDir, err := resolveOutputDir(opts.ScriptPath, opts.OutputDir)
	if err != nil {
		return nil, err
	}

	unit, err := pysource.ParseFile(opts.ScriptPath)
	if err != nil {
		return nil, err
	}

	result := &Result{RepositoryRoot: root, OutputDir: outDir}

	var defs, kept []*pysource.DefinitionNode
	for i := range unit.Definitions {
		def := &unit.Definitions[i]
		if opts.Skip.Skip(def.Name) {
			result.Skipped = append(result.Skipped, def.Name)
			kept = append(kept, def)
			continue
		}
		defs = append(defs, def)
		result.Extracted = append(result.Extracted, def.Name)
	}

	// A script that was already split holds only import lines; leave the
	// previous output untouched.
	if len(defs) == 0 {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := recreateDir(outDir); err != nil {
		return nil, err
	}

	emitter := &Emitter{
		Dir:       outDir,
		Extension: extensionOrDefault(opts.Extension),
		Mode:      modeOrDefault(opts.ImportMode, ModeFiltered),
		Verify:    opts.Verify,
		Progress:  opts.Progress,
	}
	result.Files, err = emitter.WriteDefinitions(unit, defs)
	if err != nil {
		return nil, err
	}
	if err := checkFiles(ctx, opts.Checker, result.Files); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	newScript, err := RewriteScript(unit, defs)
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite %s: %w", opts.ScriptPath, err)
	}
	if err := persistScript(ctx, opts.ScriptPath, newScript, opts.Verify, opts.Checker); err != nil {
		return nil, err
	}

	result.Warnings, err = AnalyzeReferences(defs, kept)
	if err != nil {
		return nil, err
	}

	if !opts.NoCommit {
		if err := commit(opts.Git, root, opts.Branch, opts.CommitMessage); err != nil {
			return nil, err
		}
		result.Branch = opts.Branch
	}

	return result, nil
}

// DecomposeOptions configures Decompose.
type DecomposeOptions struct {
	ScriptPath string
	ClassName  string
	OutputDir  string // default: ScriptPath without its extension
	Extension  string // default: ".py"
	ImportMode ImportMode
	Order      AttributeOrder
	Verify     bool
	Checker    pycheck.Checker

	Branch        string
	CommitMessage string
	NoCommit      bool

	Git      git.Operations
	Progress ProgressReporter
}

// DecomposeResult describes a completed method decomposition.
type DecomposeResult struct {
	RepositoryRoot string
	OutputDir      string
	Files          []string
	// Stubs names every Class.method whose body became a placeholder and
	// needs manual wiring to its extracted function.
	Stubs  []string
	Branch string
}

// Decompose writes each method of a class to <Class>_<method> in OutputDir and
// replaces the method bodies in the script with placeholders. The output
// directory is created if needed but never cleared.
func Decompose(ctx context.Context, opts DecomposeOptions) (*DecomposeResult, error) {
	if opts.Git == nil {
		return nil, errors.New("git operations are required")
	}

	root, err := opts.Git.FindRepositoryRoot(opts.ScriptPath)
	if err != nil {
		return nil, fmt.Errorf("refusing to decompose %s: %w", opts.ScriptPath, err)
	}

	outDir, err := resolveOutputDir(opts.ScriptPath, opts.OutputDir)
	if err != nil {
		return nil, err
	}

	unit, err := pysource.ParseFile(opts.ScriptPath)
	if err != nil {
		return nil, err
	}

	decomposer := &MethodDecomposer{
		Mode:  modeOrDefault(opts.ImportMode, ModeFullCatalog),
		Order: opts.Order,
	}
	decomposition, err := decomposer.Decompose(unit, opts.ClassName)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}

	emitter := &Emitter{
		Dir:       outDir,
		Extension: extensionOrDefault(opts.Extension),
		Verify:    opts.Verify,
		Progress:  opts.Progress,
	}
	result := &DecomposeResult{RepositoryRoot: root, OutputDir: outDir}

	progress := emitter.progress()
	progress.OnEmitStart(len(decomposition.Methods))
	for _, m := range decomposition.Methods {
		path, err := emitter.writeUnit(m.Name, m.Content)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
		result.Stubs = append(result.Stubs, m.ClassName+"."+m.Method)
		progress.OnFileEmitted(path)
	}
	progress.OnEmitComplete()

	if err := checkFiles(ctx, opts.Checker, result.Files); err != nil {
		return nil, err
	}

	newScript, err := applyReplacements(unit.Text, []Replacement{{Span: decomposition.ClassSpan, Text: decomposition.ClassText}})
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite %s: %w", opts.ScriptPath, err)
	}
	if err := persistScript(ctx, opts.ScriptPath, newScript, opts.Verify, opts.Checker); err != nil {
		return nil, err
	}

	if !opts.NoCommit {
		if err := commit(opts.Git, root, opts.Branch, opts.CommitMessage); err != nil {
			return nil, err
		}
		result.Branch = opts.Branch
	}

	return result, nil
}

// resolveOutputDir applies the default and rejects directories whose removal
// would take the script with them.
func resolveOutputDir(scriptPath, outDir string) (string, error) {
	if outDir == "" {
		outDir = strings.TrimSuffix(scriptPath, filepath.Ext(scriptPath))
	}

	absScript, err := filepath.Abs(scriptPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", scriptPath, err)
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", outDir, err)
	}

	rel, err := filepath.Rel(absOut, absScript)
	if err == nil && (rel == "." || !strings.HasPrefix(rel, "..")) {
		return "", fmt.Errorf("%w: %s contains the script %s", ErrInvalidOutputDir, outDir, scriptPath)
	}

	return outDir, nil
}

func persistScript(ctx context.Context, path, text string, verify bool, checker pycheck.Checker) error {
	if verify {
		if _, err := pysource.Parse(path, []byte(text)); err != nil {
			return fmt.Errorf("rewritten script is not valid Python: %w", err)
		}
	}
	if checker != nil {
		if err := checker.CheckSource(ctx, path, text); err != nil {
			return fmt.Errorf("rewritten script does not compile: %w", err)
		}
	}
	if err := replaceFile(path, []byte(text)); err != nil {
		return fmt.Errorf("failed to update %s: %w", path, err)
	}
	return nil
}

func checkFiles(ctx context.Context, checker pycheck.Checker, paths []string) error {
	if checker == nil {
		return nil
	}
	if err := checker.CheckFiles(ctx, paths); err != nil {
		return fmt.Errorf("extracted files do not compile: %w", err)
	}
	return nil
}

func commit(ops git.Operations, root, branch, message string) error {
	if err := ops.CreateBranch(root, branch); err != nil {
		return err
	}
	return ops.Commit(root, message)
}

func extensionOrDefault(ext string) string {
	if ext == "" {
		return ".py"
	}
	return ext
}

func modeOrDefault(mode, fallback ImportMode) ImportMode {
	if mode == "" {
		return fallback
	}
	return mode
}
