package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"singe/internal/help"
)

func newHelpTopicCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "help-topic [topic]",
		Short:       "Explain burning concepts (multi-session, cd-text, fades, ...)",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(out, "Available topics:")
				for _, name := range help.Topics() {
					fmt.Fprintf(out, "  %s\n", name)
				}
				return nil
			}

			topic, ok := help.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown topic %q; run `singe help-topic` for the list", args[0])
			}
			fmt.Fprintf(out, "%s\n\n%s\n", topic.Title, strings.TrimSpace(topic.Text))
			return nil
		},
	}
}
