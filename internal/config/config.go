package config

// Config represents the complete pysplit configuration.
// It can be loaded from .pysplit/config.yml with environment variable overrides.
type Config struct {
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Imports ImportsConfig `yaml:"imports" mapstructure:"imports"`
	Methods MethodsConfig `yaml:"methods" mapstructure:"methods"`
	Git     GitConfig     `yaml:"git" mapstructure:"git"`
	Filter  FilterConfig  `yaml:"filter" mapstructure:"filter"`
}

// OutputConfig controls the files written for extracted definitions.
type OutputConfig struct {
	Extension string `yaml:"extension" mapstructure:"extension"` // e.g., ".py"
	Verify    bool   `yaml:"verify" mapstructure:"verify"`       // re-parse every emitted file

	// CompileCheck also compiles the output with an embedded CPython.
	// The runtime location lives in the global config.
	CompileCheck bool `yaml:"compile_check" mapstructure:"compile_check"`
}

// ImportsConfig selects how import prologues are resolved.
type ImportsConfig struct {
	DefinitionMode string `yaml:"definition_mode" mapstructure:"definition_mode"` // "filtered" or "full-catalog"
	MethodMode     string `yaml:"method_mode" mapstructure:"method_mode"`         // "filtered" or "full-catalog"
}

// MethodsConfig controls method decomposition.
type MethodsConfig struct {
	AttributeOrder string `yaml:"attribute_order" mapstructure:"attribute_order"` // "first-seen" or "sorted"
}

// GitConfig defines the branch and commit created after a successful run.
type GitConfig struct {
	Branch        string `yaml:"branch" mapstructure:"branch"`                 // branch for split
	MethodBranch  string `yaml:"method_branch" mapstructure:"method_branch"`   // branch for decompose
	CommitMessage string `yaml:"commit_message" mapstructure:"commit_message"` // message for both
}

// FilterConfig selects definitions to leave in place.
type FilterConfig struct {
	Skip []string `yaml:"skip" mapstructure:"skip"` // glob patterns matched against definition names
}

// Import resolution modes.
const (
	ModeFiltered    = "filtered"
	ModeFullCatalog = "full-catalog"
)

// Attribute orders.
const (
	OrderFirstSeen = "first-seen"
	OrderSorted    = "sorted"
)

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Extension: ".py",
			Verify:    true,
		},
		Imports: ImportsConfig{
			DefinitionMode: ModeFiltered,
			MethodMode:     ModeFullCatalog,
		},
		Methods: MethodsConfig{
			AttributeOrder: OrderFirstSeen,
		},
		Git: GitConfig{
			Branch:        "split-functions",
			MethodBranch:  "split-methods",
			CommitMessage: "Split functions and methods into separate files",
		},
		Filter: FilterConfig{
			Skip: []string{},
		},
	}
}
