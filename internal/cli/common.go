package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mvp-joe/pysplit/internal/config"
	"github.com/mvp-joe/pysplit/internal/git"
	"github.com/mvp-joe/pysplit/internal/pycheck"
)

// commitFlags are shared by every command that ends in a commit.
type commitFlags struct {
	noCommit bool
	branch   string
	message  string
}

// runEnv carries the dependencies of a command so tests can swap them.
type runEnv struct {
	git        git.Operations
	checker    pycheck.Checker // replaces the embedded interpreter when compile_check is on
	configFile string
	quiet      bool
	out        io.Writer
}

func defaultEnv() runEnv {
	return runEnv{
		git:        git.NewOperations(),
		configFile: cfgFile,
		quiet:      quiet,
		out:        os.Stdout,
	}
}

// signalContext is cancelled on Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// loadConfig reads the --config file when given, otherwise the repository's
// .pysplit directory. The repository root is resolved first so config never
// comes from outside the working tree.
func loadConfig(env runEnv, scriptPath string) (*config.Config, string, error) {
	root, err := env.git.FindRepositoryRoot(scriptPath)
	if err != nil {
		return nil, "", fmt.Errorf("refusing to modify %s: %w", scriptPath, err)
	}

	var cfg *config.Config
	if env.configFile != "" {
		cfg, err = config.LoadConfigFile(env.configFile)
	} else {
		cfg, err = config.LoadConfigFromDir(root)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, root, nil
}

// resolveCommit applies flag overrides on top of configured branch and message.
func resolveCommit(flags commitFlags, branch, message string) (string, string) {
	if flags.branch != "" {
		branch = flags.branch
	}
	if flags.message != "" {
		message = flags.message
	}
	return branch, message
}

func (e runEnv) printf(format string, args ...any) {
	if e.quiet {
		return
	}
	fmt.Fprintf(e.out, format, args...)
}

// compileChecker returns the interpreter check when output.compile_check is
// set. The runtime location comes from the global config.
func compileChecker(env runEnv, cfg *config.Config) (pycheck.Checker, error) {
	if !cfg.Output.CompileCheck {
		return nil, nil
	}
	if env.checker != nil {
		return env.checker, nil
	}

	global, err := config.LoadGlobalConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load global configuration: %w", err)
	}
	debugf("Compile check enabled; runtime in %s", global.Runtime.Dir)
	return pycheck.NewEmbeddedChecker(global.Runtime.Dir, time.Duration(global.Runtime.CompileTimeout)*time.Second), nil
}
