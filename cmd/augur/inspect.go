package main

import (
	"fmt"

	"github.com/tmorelli/augur/internal/output"
	"github.com/tmorelli/augur/internal/samples"
	"github.com/tmorelli/augur/pkg/ast"
	"github.com/tmorelli/augur/pkg/lexer"
	"github.com/tmorelli/augur/pkg/parser"
	"github.com/urfave/cli/v2"
)

// singleSource resolves the one source text an inspection command works on,
// either a --sample name or a single file argument.
func singleSource(c *cli.Context) (string, string, error) {
	if name := c.String("sample"); name != "" {
		sample, err := samples.Get(name)
		if err != nil {
			return "", "", err
		}
		return sample.Source, sample.Name, nil
	}
	if c.Args().Len() != 1 {
		return "", "", fmt.Errorf("expected exactly one file argument (or --sample)")
	}
	path := c.Args().First()
	source, err := readSource(path)
	if err != nil {
		return "", "", err
	}
	return source, path, nil
}

func sampleFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "sample",
		Usage: "Use a built-in sample algorithm instead of a file",
	}
}

func tokensCmd() *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Aliases:   []string{"lex"},
		Usage:     "Show the token stream for a pseudocode file",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{sampleFlag()},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			source, _, err := singleSource(c)
			if err != nil {
				return err
			}

			tokens, err := lexer.Tokenize(source)
			if err != nil {
				return err
			}

			formatter, err := newFormatter(c, cfg)
			if err != nil {
				return err
			}
			defer formatter.Close()

			return formatter.Output(output.TokenTable(tokens))
		},
	}
}

func astCmd() *cli.Command {
	return &cli.Command{
		Name:      "ast",
		Usage:     "Show the parsed syntax tree for a pseudocode file",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{sampleFlag()},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			source, _, err := singleSource(c)
			if err != nil {
				return err
			}

			prog, err := parser.Parse(source)
			if err != nil {
				return err
			}

			formatter, err := newFormatter(c, cfg)
			if err != nil {
				return err
			}
			defer formatter.Close()

			if formatter.Format() == output.FormatJSON {
				return formatter.Output(map[string]string{"ast": ast.Dump(prog)})
			}
			_, err = fmt.Fprintln(formatter.Writer(), ast.Dump(prog))
			return err
		},
	}
}

func costsCmd() *cli.Command {
	return &cli.Command{
		Name:      "costs",
		Usage:     "Show per-line execution counts",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{sampleFlag()},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			source, _, err := singleSource(c)
			if err != nil {
				return err
			}

			a := newAnalyzer(cfg, 0)
			report, err := a.Analyze(c.Context, source)
			if err != nil {
				return err
			}

			formatter, err := newFormatter(c, cfg)
			if err != nil {
				return err
			}
			defer formatter.Close()

			return formatter.Output(output.LineCostTable(report.LineCosts))
		},
	}
}

func treeCmd() *cli.Command {
	return &cli.Command{
		Name:      "tree",
		Usage:     "Show the recursion tree expansion",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			sampleFlag(),
			&cli.IntFlag{
				Name:  "depth",
				Usage: "Number of levels to expand (default from config)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			source, name, err := singleSource(c)
			if err != nil {
				return err
			}

			a := newAnalyzer(cfg, c.Int("depth"))
			report, err := a.Analyze(c.Context, source)
			if err != nil {
				return err
			}

			formatter, err := newFormatter(c, cfg)
			if err != nil {
				return err
			}
			defer formatter.Close()

			if report.Tree == nil {
				formatter.Info("%s is not recursive, no tree to expand", name)
				return nil
			}
			return formatter.Output(output.TreeTable(report.Tree))
		},
	}
}
