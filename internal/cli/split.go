package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/mvp-joe/pysplit/internal/splitter"
	"github.com/spf13/cobra"
)

var splitFlags commitFlags

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split <script> [output-dir]",
	Short: "Move every top-level function and class into its own file",
	Long: `Split extracts each top-level function and class of a Python script into
<output-dir>/<name>.py and replaces it in the script with

  from .<name> import <name>

Each extracted file starts with the module imports the definition uses
(configurable through imports.definition_mode). The output directory defaults
to the script path without its extension and is recreated on every run.

Examples:
  # Split tool.py into tool/
  pysplit split tool.py

  # Split into a custom directory without committing
  pysplit split tool.py pkg --no-commit

  # Commit on a custom branch
  pysplit split tool.py --branch refactor/split-tool
`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)
	addCommitFlags(splitCmd, &splitFlags)
}

func addCommitFlags(cmd *cobra.Command, flags *commitFlags) {
	cmd.Flags().BoolVar(&flags.noCommit, "no-commit", false, "Leave changes uncommitted on the current branch")
	cmd.Flags().StringVar(&flags.branch, "branch", "", "Branch to create for the commit (overrides config)")
	cmd.Flags().StringVar(&flags.message, "message", "", "Commit message (overrides config)")
}

func runSplit(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	var outDir string
	if len(args) > 1 {
		outDir = args[1]
	}
	_, err := executeSplit(ctx, defaultEnv(), args[0], outDir, splitFlags)
	return err
}

func executeSplit(ctx context.Context, env runEnv, scriptPath, outDir string, flags commitFlags) (*splitter.Result, error) {
	cfg, root, err := loadConfig(env, scriptPath)
	if err != nil {
		return nil, err
	}

	mode, err := splitter.ParseImportMode(cfg.Imports.DefinitionMode)
	if err != nil {
		return nil, err
	}
	skip, err := splitter.NewNameFilter(cfg.Filter.Skip)
	if err != nil {
		return nil, err
	}
	checker, err := compileChecker(env, cfg)
	if err != nil {
		return nil, err
	}
	branch, message := resolveCommit(flags, cfg.Git.Branch, cfg.Git.CommitMessage)

	if !flags.noCommit {
		debugf("Branching %s from %s", branch, env.git.GetCurrentBranch(root))
	}

	result, err := splitter.Split(ctx, splitter.Options{
		ScriptPath:    scriptPath,
		OutputDir:     outDir,
		Extension:     cfg.Output.Extension,
		ImportMode:    mode,
		Verify:        cfg.Output.Verify,
		Checker:       checker,
		Skip:          skip,
		Branch:        branch,
		CommitMessage: message,
		NoCommit:      flags.noCommit,
		Git:           env.git,
		Progress:      NewCLIProgressReporter(env.quiet),
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("split cancelled: %w", err)
		}
		return nil, err
	}

	for _, name := range result.Skipped {
		debugf("Skipped %s", name)
	}
	for _, w := range result.Warnings {
		log.Printf("warning: %s", w)
	}

	if len(result.Extracted) == 0 {
		env.printf("Nothing to split in %s\n", scriptPath)
		return result, nil
	}

	env.printf("✓ Split %d definitions from %s into %s\n", len(result.Extracted), scriptPath, result.OutputDir)
	if result.Branch != "" {
		env.printf("  Committed on branch %s\n", result.Branch)
	}
	return result, nil
}
