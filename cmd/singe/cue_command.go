package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"singe/internal/burning"
	"singe/internal/media"
	"singe/internal/services/ffmpeg"
)

func newCueCommand(ctx *commandContext) *cobra.Command {
	var folder string
	var recursive bool
	var output string
	var albumTitle string
	var albumPerformer string
	var probeTags bool

	cmd := &cobra.Command{
		Use:   "cue [files...]",
		Short: "Export a CUE sheet for a track list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			files := args
			if folder != "" {
				if len(args) > 0 {
					return errors.New("provide positional files or --folder, not both")
				}
				files, err = media.ScanFolder(folder, recursive)
				if err != nil {
					return err
				}
			}
			if len(files) == 0 {
				return errors.New("no tracks to export")
			}

			tracks := make([]burning.CueTrack, 0, len(files))
			if probeTags {
				probe, err := ffmpeg.New(cfg.FFmpegBinary(), cfg.FFprobeBinary())
				if err != nil {
					return err
				}
				for _, file := range files {
					info, err := probe.Probe(cmd.Context(), file)
					if err != nil {
						// Untagged or unreadable files fall back to
						// filename-derived titles.
						tracks = append(tracks, burning.CueTrack{File: file})
						continue
					}
					tracks = append(tracks, burning.CueTrack{
						File:      file,
						Title:     info.Title,
						Performer: info.Artist,
					})
					if albumTitle == "" {
						albumTitle = info.Album
					}
				}
			} else {
				for _, file := range files {
					tracks = append(tracks, burning.CueTrack{File: file})
				}
			}

			opts := burning.CueOptions{AlbumTitle: albumTitle, AlbumPerformer: albumPerformer}
			if output == "" || output == "-" {
				return burning.WriteCueSheet(cmd.OutOrStdout(), tracks, opts)
			}
			if _, err := os.Stat(output); err == nil {
				return fmt.Errorf("refusing to overwrite %s", output)
			}
			if err := burning.WriteCueSheetFile(output, tracks, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with %d track(s)\n", output, len(tracks))
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Scan a folder for audio files")
	cmd.Flags().BoolVar(&recursive, "recursive", false, "Recurse into subdirectories when scanning a folder")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (defaults to stdout)")
	cmd.Flags().StringVar(&albumTitle, "title", "", "Album title for the sheet header")
	cmd.Flags().StringVar(&albumPerformer, "performer", "", "Album performer for the sheet header")
	cmd.Flags().BoolVar(&probeTags, "tags", false, "Probe files for title/artist/album tags")

	return cmd
}
