package main

import (
	"github.com/tmorelli/augur/internal/output"
	"github.com/tmorelli/augur/internal/samples"
	"github.com/urfave/cli/v2"
)

func samplesCmd() *cli.Command {
	return &cli.Command{
		Name:  "samples",
		Usage: "List the built-in sample algorithms",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			formatter, err := newFormatter(c, cfg)
			if err != nil {
				return err
			}
			defer formatter.Close()

			all := samples.All()
			rows := make([][]string, len(all))
			for i, s := range all {
				rows[i] = []string{s.Name, s.Expected, s.Description}
			}

			return formatter.Output(&output.Table{
				Title:   "Sample Algorithms",
				Headers: []string{"Name", "Expected", "Description"},
				Rows:    rows,
				Data:    all,
			})
		},
	}
}
