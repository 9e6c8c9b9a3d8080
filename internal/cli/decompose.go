package cli

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mvp-joe/pysplit/internal/splitter"
	"github.com/spf13/cobra"
)

var decomposeFlags commitFlags

// decomposeCmd represents the decompose command
var decomposeCmd = &cobra.Command{
	Use:   "decompose <script> <class> [output-dir]",
	Short: "Move each method of a class into its own function file",
	Long: `Decompose writes every method of a top-level class to
<output-dir>/<Class>_<method>.py as a standalone function. The function takes
the method's instance reference followed by each instance attribute the
method reads or writes.

The methods in the script keep their signatures and decorators but their
bodies become "pass". Wiring the placeholders to the extracted functions is
left to you; every stubbed method is listed when the command finishes.

Examples:
  # Decompose the Parser class of tool.py into tool/
  pysplit decompose tool.py Parser
`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runDecompose,
}

func init() {
	rootCmd.AddCommand(decomposeCmd)
	addCommitFlags(decomposeCmd, &decomposeFlags)
}

func runDecompose(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	var outDir string
	if len(args) > 2 {
		outDir = args[2]
	}
	_, err := executeDecompose(ctx, defaultEnv(), args[0], args[1], outDir, decomposeFlags)
	return err
}

func executeDecompose(ctx context.Context, env runEnv, scriptPath, className, outDir string, flags commitFlags) (*splitter.DecomposeResult, error) {
	cfg, _, err := loadConfig(env, scriptPath)
	if err != nil {
		return nil, err
	}

	mode, err := splitter.ParseImportMode(cfg.Imports.MethodMode)
	if err != nil {
		return nil, err
	}
	checker, err := compileChecker(env, cfg)
	if err != nil {
		return nil, err
	}
	branch, message := resolveCommit(flags, cfg.Git.MethodBranch, cfg.Git.CommitMessage)

	result, err := splitter.Decompose(ctx, splitter.DecomposeOptions{
		ScriptPath:    scriptPath,
		ClassName:     className,
		OutputDir:     outDir,
		Extension:     cfg.Output.Extension,
		ImportMode:    mode,
		Order:         splitter.AttributeOrder(cfg.Methods.AttributeOrder),
		Verify:        cfg.Output.Verify,
		Checker:       checker,
		Branch:        branch,
		CommitMessage: message,
		NoCommit:      flags.noCommit,
		Git:           env.git,
		Progress:      NewCLIProgressReporter(env.quiet),
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("decompose cancelled: %w", err)
		}
		return nil, err
	}

	for _, stub := range result.Stubs {
		log.Printf("warning: %s now has a placeholder body; call %s from it", stub, methodFileStem(stub))
	}

	env.printf("✓ Decomposed %d methods of %s into %s\n", len(result.Files), className, result.OutputDir)
	if result.Branch != "" {
		env.printf("  Committed on branch %s\n", result.Branch)
	}
	return result, nil
}

// methodFileStem turns "Class.method" into the extracted function's module name.
func methodFileStem(stub string) string {
	return strings.Replace(stub, ".", "_", 1)
}
