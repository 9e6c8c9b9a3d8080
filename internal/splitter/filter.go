package splitter

import (
	"fmt"

	"github.com/gobwas/glob"
)

type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// NameFilter matches definition names against skip patterns.
type NameFilter struct {
	patterns []compiledPattern
}

// NewNameFilter compiles glob patterns such as "_*" or "test_*".
func NewNameFilter(patterns []string) (*NameFilter, error) {
	f := &NameFilter{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid skip pattern %q: %w", pattern, err)
		}
		f.patterns = append(f.patterns, compiledPattern{pattern: pattern, glob: g})
	}
	return f, nil
}

// Skip reports whether name matches any pattern. A nil filter skips nothing.
func (f *NameFilter) Skip(name string) bool {
	if f == nil {
		return false
	}
	for _, p := range f.patterns {
		if p.glob.Match(name) {
			return true
		}
	}
	return false
}
