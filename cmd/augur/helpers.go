package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tmorelli/augur/internal/analyzer"
	"github.com/tmorelli/augur/internal/output"
	"github.com/tmorelli/augur/internal/scanner"
	"github.com/tmorelli/augur/pkg/config"
	"github.com/urfave/cli/v2"
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	format := c.String("format")
	if format == "" {
		format = cfg.Output.Format
	}
	colored := cfg.Output.Color && !c.Bool("no-color")
	return output.NewFormatter(output.ParseFormat(format), c.String("output"), colored)
}

func newAnalyzer(cfg *config.Config, treeDepth int) *analyzer.Analyzer {
	if treeDepth <= 0 {
		treeDepth = cfg.Analysis.TreeDepth
	}
	return analyzer.New(analyzer.Options{
		TreeDepth:       treeDepth,
		SubstitutionCap: cfg.Analysis.SubstitutionCap,
	})
}

// collectFiles expands positional args into pseudocode files. Plain files
// are taken as-is, directories are scanned recursively.
func collectFiles(cfg *config.Config, paths []string) ([]string, error) {
	scan := scanner.New(cfg)

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", path, err)
		}
		found, err := scan.ScanDir(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %s: %w", path, err)
		}
		files = append(files, found...)
	}
	return files, nil
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
