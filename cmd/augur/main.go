package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	app := &cli.App{
		Name:    "augur",
		Usage:   "Asymptotic complexity analysis for pseudocode",
		Version: version,
		Description: `Augur parses algorithm pseudocode and derives its asymptotic running
time: per-line costs, loop structure, recurrence relations, and a solved
Big-O/Theta bound with the derivation steps.

Accepts the classic textbook dialect: begin/end blocks, <- or := or ←
assignment, Unicode operators (≤ ≥ ≠ ⌊⌋ ⌈⌉), and ► comments.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"AUGUR_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Commands: []*cli.Command{
			analyzeCmd(),
			tokensCmd(),
			astCmd(),
			costsCmd(),
			treeCmd(),
			samplesCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
