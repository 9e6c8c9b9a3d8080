package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidExtension indicates an output extension that is empty or lacks a leading dot
	ErrInvalidExtension = errors.New("invalid output extension")

	// ErrInvalidImportMode indicates an unknown import resolution mode
	ErrInvalidImportMode = errors.New("invalid import mode")

	// ErrInvalidAttributeOrder indicates an unknown method attribute order
	ErrInvalidAttributeOrder = errors.New("invalid attribute order")

	// ErrEmptyBranch indicates a missing branch name
	ErrEmptyBranch = errors.New("empty branch name")

	// ErrEmptyCommitMessage indicates a missing commit message
	ErrEmptyCommitMessage = errors.New("empty commit message")

	// ErrInvalidSkipPattern indicates a skip pattern that does not compile
	ErrInvalidSkipPattern = errors.New("invalid skip pattern")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}

	if err := validateImports(&cfg.Imports); err != nil {
		errs = append(errs, err)
	}

	if err := validateMethods(&cfg.Methods); err != nil {
		errs = append(errs, err)
	}

	if err := validateGit(&cfg.Git); err != nil {
		errs = append(errs, err)
	}

	if err := validateFilter(&cfg.Filter); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateOutput(cfg *OutputConfig) error {
	ext := cfg.Extension
	if len(ext) < 2 || !strings.HasPrefix(ext, ".") || strings.ContainsAny(ext, `/\`) {
		return fmt.Errorf("%w: must look like '.py', got '%s'", ErrInvalidExtension, ext)
	}
	return nil
}

func validateImports(cfg *ImportsConfig) error {
	var errs []error

	modes := []struct{ key, mode string }{
		{"definition_mode", cfg.DefinitionMode},
		{"method_mode", cfg.MethodMode},
	}
	for _, m := range modes {
		key, mode := m.key, m.mode
		if mode != ModeFiltered && mode != ModeFullCatalog {
			errs = append(errs, fmt.Errorf("%w: %s must be '%s' or '%s', got '%s'",
				ErrInvalidImportMode, key, ModeFiltered, ModeFullCatalog, mode))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateMethods(cfg *MethodsConfig) error {
	if cfg.AttributeOrder != OrderFirstSeen && cfg.AttributeOrder != OrderSorted {
		return fmt.Errorf("%w: must be '%s' or '%s', got '%s'",
			ErrInvalidAttributeOrder, OrderFirstSeen, OrderSorted, cfg.AttributeOrder)
	}
	return nil
}

func validateGit(cfg *GitConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.Branch) == "" {
		errs = append(errs, fmt.Errorf("%w: git.branch is required", ErrEmptyBranch))
	}

	if strings.TrimSpace(cfg.MethodBranch) == "" {
		errs = append(errs, fmt.Errorf("%w: git.method_branch is required", ErrEmptyBranch))
	}

	if strings.TrimSpace(cfg.CommitMessage) == "" {
		errs = append(errs, fmt.Errorf("%w: git.commit_message is required", ErrEmptyCommitMessage))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateFilter(cfg *FilterConfig) error {
	var errs []error

	for _, pattern := range cfg.Skip {
		if _, err := glob.Compile(pattern); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidSkipPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
