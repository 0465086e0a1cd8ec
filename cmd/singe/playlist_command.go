package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"singe/internal/media"
)

func newPlaylistCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "playlist <file.m3u>",
		Short:       "Show the burnable tracks in an M3U/M3U8 playlist",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := media.ParsePlaylist(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, file := range result.Files {
				fmt.Fprintln(out, file)
			}

			errOut := cmd.ErrOrStderr()
			for _, skipped := range result.NonAudio {
				fmt.Fprintf(errOut, "Skipping non-audio entry: %s\n", skipped)
			}
			for _, missing := range result.Missing {
				fmt.Fprintf(errOut, "Skipping missing entry: %s\n", missing)
			}
			if len(result.Files) == 0 {
				return fmt.Errorf("playlist %s contains no burnable tracks", args[0])
			}
			return nil
		},
	}
}
