package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for augur.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis"`

	// File selection for directory scans
	Sources SourceConfig `koanf:"sources"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// AnalysisConfig tunes the analysis pipeline.
type AnalysisConfig struct {
	// TreeDepth bounds the recursion-tree expansion in reports.
	TreeDepth int `koanf:"tree_depth"`
	// SubstitutionCap bounds the solver's substitution unrolling.
	SubstitutionCap int `koanf:"substitution_cap"`
	// ShowTokens includes the token table in full reports.
	ShowTokens bool `koanf:"show_tokens"`
	// ShowAST includes the AST dump in full reports.
	ShowAST bool `koanf:"show_ast"`
}

// SourceConfig decides which files a directory scan analyzes.
type SourceConfig struct {
	Extensions []string `koanf:"extensions"`
	Exclude    []string `koanf:"exclude"`
	Dirs       []string `koanf:"exclude_dirs"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			TreeDepth:       6,
			SubstitutionCap: 10,
			ShowTokens:      false,
			ShowAST:         false,
		},
		Sources: SourceConfig{
			Extensions: []string{
				".pseudo",
				".pc",
				".txt",
			},
			Exclude: []string{
				"*.min.*",
			},
			Dirs: []string{
				".git",
				".augur",
				"vendor",
				"node_modules",
			},
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"augur.toml",
		"augur.yaml",
		"augur.yml",
		"augur.json",
		".augur.toml",
		".augur.yaml",
		".augur.yml",
		".augur.json",
	}

	searchDirs := []string{".", ".augur"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// ShouldAnalyze reports whether a path is a pseudocode source the scanner
// should pick up.
func (c *Config) ShouldAnalyze(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range c.Sources.Extensions {
		if ext == want {
			return !c.ShouldExclude(path)
		}
	}
	return false
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Sources.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	base := filepath.Base(path)
	for _, pattern := range c.Sources.Exclude {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}
