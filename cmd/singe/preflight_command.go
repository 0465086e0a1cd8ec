package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"singe/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check directories, disk space, and external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cfg)
			rows := make([][]string, 0, len(results))
			for _, result := range results {
				state := "ok"
				if !result.Passed {
					if result.Optional {
						state = "missing (optional)"
					} else {
						state = "FAILED"
					}
				}
				rows = append(rows, []string{result.Name, state, result.Detail})
			}
			table := renderTable(
				[]tableColumn{leftColumn("Check"), leftColumn("Result"), leftColumn("Detail")},
				rows,
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)

			if preflight.Failed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}
