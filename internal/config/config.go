// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

var ErrMissingMappingFile = errors.New("rules.undefined_keys.namespace_translation_mapping_file is required")

// Config represents the configuration for i18ncheck
type Config struct {
	// General settings
	Version     string `yaml:"version" json:"version"`
	ProjectName string `yaml:"project_name,omitempty" json:"project_name,omitempty"`

	// Analysis settings
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Rule-specific configurations
	Rules RulesConfig `yaml:"rules" json:"rules"`

	// How translation functions are named and produced
	Translation TranslationConfig `yaml:"translation" json:"translation"`

	// File patterns
	Files FilesConfig `yaml:"files" json:"files"`
}

type AnalysisConfig struct {
	// Parallel analysis
	MaxWorkers int `yaml:"max_workers" json:"max_workers"`

	// Exit non-zero when any issue is reported
	FailOnIssues bool `yaml:"fail_on_issues" json:"fail_on_issues"`
}

type OutputConfig struct {
	// Default output format
	Format string `yaml:"format" json:"format"`

	// Colorized output
	Colors bool `yaml:"colors" json:"colors"`

	// Verbosity level
	Verbose bool `yaml:"verbose" json:"verbose"`

	// Output file path (optional)
	OutputFile string `yaml:"output_file,omitempty" json:"output_file,omitempty"`
}

type RulesConfig struct {
	// no-undefined-translation-keys
	UndefinedKeys UndefinedKeysRule `yaml:"undefined_keys" json:"undefined_keys"`

	// translation-key-string-literal
	StringLiteral StringLiteralRule `yaml:"string_literal" json:"string_literal"`
}

type UndefinedKeysRule struct {
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Mapping of namespace -> resource file; relative to the working directory
	NamespaceTranslationMappingFile string `yaml:"namespace_translation_mapping_file" json:"namespace_translation_mapping_file"`

	// Namespace used when neither the key nor the call site names one
	DefaultNamespace string `yaml:"default_namespace" json:"default_namespace"`
}

// Guard comparison modes
const (
	GuardCompareText       = "text"
	GuardCompareStructural = "structural"
)

type StringLiteralRule struct {
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Accept t(key) inside `t.has(key) ? t(key) : fallback`
	AllowHasProtectedConditionals bool `yaml:"allow_has_protected_conditionals" json:"allow_has_protected_conditionals"`

	// How the has() argument is compared with the call argument
	GuardComparison string `yaml:"guard_comparison" json:"guard_comparison"`

	// Callee names whose key must be a literal
	Functions []string `yaml:"functions" json:"functions"`
}

type TranslationConfig struct {
	// Callee names treated as translation lookups
	Functions []string `yaml:"functions" json:"functions"`

	// Hook producers: first argument namespace, second { keyPrefix }
	HookProducers []string `yaml:"hook_producers" json:"hook_producers"`

	// Accessor producers: first argument key prefix
	AccessorProducers []string `yaml:"accessor_producers" json:"accessor_producers"`

	// Plural suffixes tried, in order, for a missing last key segment
	PluralSuffixes []string `yaml:"plural_suffixes" json:"plural_suffixes"`
}

type FilesConfig struct {
	// Source file extensions to analyze
	Include []string `yaml:"include" json:"include"`

	// Exclude patterns
	Exclude []string `yaml:"exclude" json:"exclude"`

	// Whether to follow symlinks
	FollowSymlinks bool `yaml:"follow_symlinks" json:"follow_symlinks"`

	// Max file size (in KB)
	MaxFileSize int `yaml:"max_file_size" json:"max_file_size"`
}

func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Analysis: AnalysisConfig{
			MaxWorkers:   4,
			FailOnIssues: true,
		},
		Output: OutputConfig{
			Format:  "console",
			Colors:  true,
			Verbose: false,
		},
		Rules: RulesConfig{
			UndefinedKeys: UndefinedKeysRule{
				Enabled:          true,
				DefaultNamespace: "default",
			},
			StringLiteral: StringLiteralRule{
				Enabled:                       true,
				AllowHasProtectedConditionals: false,
				GuardComparison:               GuardCompareText,
				Functions:                     []string{"t"},
			},
		},
		Translation: TranslationConfig{
			Functions:         []string{"t", "translate"},
			HookProducers:     []string{"useTranslation"},
			AccessorProducers: []string{"getTranslations", "useTranslations"},
			PluralSuffixes:    []string{"zero", "singular", "one", "two", "few", "many", "other"},
		},
		Files: FilesConfig{
			Include:        []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"},
			Exclude:        []string{"node_modules/**", ".git/**", "dist/**", "build/**", ".next/**"},
			FollowSymlinks: false,
			MaxFileSize:    1024, // 1MB
		},
	}
}

// LoadConfig loads configuration from file or returns default
func LoadConfig(configPath string) (*Config, error) {
	// If no config path provided, look for default config files
	if configPath == "" {
		configPath = findConfigFile()
	}

	// If still no config found, return default
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Load from file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	config := DefaultConfig() // Start with defaults

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	return config, nil
}

// findConfigFile looks for config files in common locations
func findConfigFile() string {
	possiblePaths := []string{
		".i18ncheck.yml",
		".i18ncheck.yaml",
		"i18ncheck.yml",
		"i18ncheck.yaml",
		".config/i18ncheck.yml",
		".config/i18ncheck.yaml",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate output format
	validFormats := []string{"console", "json", "compact"}
	if !slices.Contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.Output.Format, validFormats)
	}

	// Validate worker count
	if c.Analysis.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be at least 1")
	}

	uk := c.Rules.UndefinedKeys
	if uk.Enabled && uk.NamespaceTranslationMappingFile == "" {
		return ErrMissingMappingFile
	}
	if uk.Enabled && uk.DefaultNamespace == "" {
		return fmt.Errorf("rules.undefined_keys.default_namespace must not be empty")
	}

	switch c.Rules.StringLiteral.GuardComparison {
	case GuardCompareText, GuardCompareStructural:
	default:
		return fmt.Errorf("invalid guard_comparison: %s (valid: %s, %s)",
			c.Rules.StringLiteral.GuardComparison, GuardCompareText, GuardCompareStructural)
	}

	if len(c.Translation.Functions) == 0 {
		return fmt.Errorf("translation.functions must name at least one function")
	}
	if c.Rules.StringLiteral.Enabled && len(c.Rules.StringLiteral.Functions) == 0 {
		return fmt.Errorf("rules.string_literal.functions must name at least one function")
	}

	if _, err := c.Files.Filter(); err != nil {
		return err
	}

	return nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateConfig creates a sample configuration file
func GenerateConfig(configPath string) error {
	config := DefaultConfig()
	config.Rules.UndefinedKeys.NamespaceTranslationMappingFile = "locales/namespaceMapping.json"
	return config.SaveConfig(configPath)
}

// IsRuleEnabled checks if a specific rule is enabled
func (c *Config) IsRuleEnabled(rule string) bool {
	switch rule {
	case "no-undefined-translation-keys":
		return c.Rules.UndefinedKeys.Enabled
	case "translation-key-string-literal":
		return c.Rules.StringLiteral.Enabled
	default:
		return false
	}
}
