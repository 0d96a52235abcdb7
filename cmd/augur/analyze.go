package main

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/tmorelli/augur/internal/fileproc"
	"github.com/tmorelli/augur/internal/output"
	"github.com/tmorelli/augur/internal/progress"
	"github.com/tmorelli/augur/internal/samples"
	"github.com/tmorelli/augur/pkg/config"
	"github.com/tmorelli/augur/pkg/models"
	"github.com/urfave/cli/v2"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"an"},
		Usage:     "Derive asymptotic bounds for pseudocode files",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "depth",
				Usage: "Recursion tree depth (default from config)",
			},
			&cli.StringFlag{
				Name:  "sample",
				Usage: "Analyze a built-in sample algorithm instead of files",
			},
			&cli.BoolFlag{
				Name:  "tokens",
				Usage: "Include the token table in the report",
			},
			&cli.BoolFlag{
				Name:  "ast",
				Usage: "Include the AST dump in the report",
			},
		},
		Action: runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	a := newAnalyzer(cfg, c.Int("depth"))

	if name := c.String("sample"); name != "" {
		sample, err := samples.Get(name)
		if err != nil {
			return err
		}
		report, err := a.Analyze(c.Context, sample.Source)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		title := fmt.Sprintf("%s (expected %s)", sample.Name, sample.Expected)
		return outputReport(c, cfg, formatter, report, title)
	}

	files, err := collectFiles(cfg, getPaths(c))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No pseudocode files found")
		return nil
	}

	if len(files) == 1 {
		source, err := readSource(files[0])
		if err != nil {
			return err
		}
		report, err := a.Analyze(c.Context, source)
		if err != nil {
			return fmt.Errorf("%s: %w", files[0], err)
		}
		return outputReport(c, cfg, formatter, report, filepath.Base(files[0]))
	}

	// Multiple files: analyze in parallel, render a summary table.
	type fileReport struct {
		Path   string
		Report *models.AnalysisReport
	}

	tracker := progress.NewTracker("Analyzing...", len(files))
	var failMu sync.Mutex
	var failures []string
	results := fileproc.ForEachFileN(files, 0, func(path string) (fileReport, error) {
		source, err := readSource(path)
		if err != nil {
			return fileReport{}, err
		}
		report, err := a.Analyze(c.Context, source)
		if err != nil {
			return fileReport{}, err
		}
		return fileReport{Path: path, Report: report}, nil
	}, tracker.Tick, func(path string, err error) {
		failMu.Lock()
		failures = append(failures, fmt.Sprintf("%s: %v", path, err))
		failMu.Unlock()
	})
	tracker.FinishSuccess()

	names := make([]string, len(results))
	reports := make([]*models.AnalysisReport, len(results))
	for i, r := range results {
		names[i] = r.Path
		reports[i] = r.Report
	}

	table := output.SummaryTable(names, reports, formatter.Format() == output.FormatText)
	if err := formatter.Output(table); err != nil {
		return err
	}

	if len(failures) > 0 && formatter.Format() == output.FormatText {
		fmt.Println()
		color.Yellow("Failed (%d):", len(failures))
		for _, f := range failures {
			fmt.Printf("  - %s\n", f)
		}
	}

	return nil
}

func outputReport(c *cli.Context, cfg *config.Config, formatter *output.Formatter, report *models.AnalysisReport, title string) error {
	full := output.BuildAnalysis(report, title)
	if c.Bool("tokens") || cfg.Analysis.ShowTokens {
		full.Sections = append(full.Sections, output.TokenTable(report.Tokens))
	}
	if err := formatter.Output(full); err != nil {
		return err
	}
	if (c.Bool("ast") || cfg.Analysis.ShowAST) && formatter.Format() == output.FormatText {
		fmt.Fprintln(formatter.Writer())
		fmt.Fprintln(formatter.Writer(), report.ASTDump)
	}
	return nil
}
