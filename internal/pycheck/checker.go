// Package pycheck compiles Python files with an embedded CPython interpreter.
// It catches syntax errors the tree-sitter grammar recovers from silently, at
// the cost of extracting the runtime on first use.
package pycheck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/kluctl/go-embed-python/python"
)

// ErrCompile is returned when at least one file fails to compile.
var ErrCompile = errors.New("python compile check failed")

// compileScript compiles every argument without writing bytecode next to it.
const compileScript = `import sys
failed = False
for path in sys.argv[1:]:
    try:
        with open(path, encoding="utf-8") as fh:
            compile(fh.read(), path, "exec")
    except SyntaxError as e:
        print(f"{path}:{e.lineno}: {e.msg}", file=sys.stderr)
        failed = True
sys.exit(1 if failed else 0)
`

// Checker compiles Python sources.
type Checker interface {
	// CheckFiles compiles each file and reports every syntax error found.
	CheckFiles(ctx context.Context, paths []string) error

	// CheckSource compiles source as if it were the file at name.
	CheckSource(ctx context.Context, name, source string) error
}

type embeddedChecker struct {
	runtimeDir string
	timeout    time.Duration

	once sync.Once
	ep   *python.EmbeddedPython
	err  error
}

// NewEmbeddedChecker returns a Checker that extracts the embedded interpreter
// into runtimeDir on first use. Each compile run is killed after timeout.
func NewEmbeddedChecker(runtimeDir string, timeout time.Duration) Checker {
	return &embeddedChecker{runtimeDir: runtimeDir, timeout: timeout}
}

func (c *embeddedChecker) interpreter() (*python.EmbeddedPython, error) {
	c.once.Do(func() {
		if c.runtimeDir == "" {
			c.err = errors.New("no runtime directory configured")
			return
		}
		// The hash suffix keeps runtimes of different Python versions apart.
		c.ep, c.err = python.NewEmbeddedPythonWithTmpDir(c.runtimeDir, true)
		if c.err != nil {
			c.err = fmt.Errorf("failed to create embedded Python: %w", c.err)
		}
	})
	return c.ep, c.err
}

func (c *embeddedChecker) CheckFiles(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	ep, err := c.interpreter()
	if err != nil {
		return err
	}

	cmd, err := ep.PythonCmd(append([]string{"-c", compileScript}, paths...)...)
	if err != nil {
		return fmt.Errorf("failed to create Python command: %w", err)
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start Python: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var timeout <-chan time.Time
	if c.timeout > 0 {
		timer := time.NewTimer(c.timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case err = <-done:
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	case <-timeout:
		_ = cmd.Process.Kill()
		<-done
		return fmt.Errorf("compile check timed out after %v", c.timeout)
	}

	if err != nil {
		if msg := strings.TrimSpace(out.String()); msg != "" {
			return fmt.Errorf("%w:\n%s", ErrCompile, msg)
		}
		return fmt.Errorf("%w: %v", ErrCompile, err)
	}
	return nil
}

func (c *embeddedChecker) CheckSource(ctx context.Context, name, source string) error {
	tmpDir, err := os.MkdirTemp("", "pysplit-check-*")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, filepath.Base(name))
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return c.CheckFiles(ctx, []string{path})
}
