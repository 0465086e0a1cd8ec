package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"singe/internal/services/cdparanoia"
	"singe/internal/services/wodim"
)

func newRipCommand(ctx *commandContext) *cobra.Command {
	var device string
	var listOnly bool

	cmd := &cobra.Command{
		Use:   "rip [output-dir]",
		Short: "Rip an audio CD to WAV files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			target := device
			if target == "" {
				target = cfg.Drive.Device
			}
			if target == "" {
				wodimClient, err := wodim.New(cfg.WodimBinary())
				if err != nil {
					return err
				}
				target, err = wodimClient.DetectDevice(cmd.Context())
				if err != nil {
					return err
				}
			}

			client, err := cdparanoia.New(cfg.CdparanoiaBinary())
			if err != nil {
				return err
			}

			tracks, err := client.ListTracks(cmd.Context(), target)
			if err != nil {
				return err
			}
			if len(tracks) == 0 {
				return fmt.Errorf("no audio tracks found on device %s", target)
			}

			out := cmd.OutOrStdout()
			if listOnly {
				rows := make([][]string, 0, len(tracks))
				for _, track := range tracks {
					rows = append(rows, []string{strconv.Itoa(track.Number), track.Length, track.Offset})
				}
				table := renderTable(
					[]tableColumn{rightColumn("#"), rightColumn("Length"), rightColumn("Offset")},
					rows,
				)
				fmt.Fprintln(out, table)
				return nil
			}

			outputDir := "ripped_tracks"
			if len(args) == 1 {
				outputDir = args[0]
			}
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("create output directory %q: %w", outputDir, err)
			}

			// Tracks rip in disc order; a scratched track is reported and
			// skipped so the rest of the disc still comes off.
			var failed int
			for _, track := range tracks {
				outPath := filepath.Join(outputDir, fmt.Sprintf("track_%02d.wav", track.Number))
				fmt.Fprintf(out, "Ripping track %d (%s)...\n", track.Number, track.Length)
				if err := client.RipTrack(cmd.Context(), target, track.Number, outPath); err != nil {
					if cmd.Context().Err() != nil {
						return err
					}
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "Track %d failed: %v\n", track.Number, err)
					continue
				}
				fmt.Fprintf(out, "Wrote %s\n", outPath)
			}

			ripped := len(tracks) - failed
			fmt.Fprintf(out, "Ripped %d of %d track(s) to %s\n", ripped, len(tracks), outputDir)
			if failed > 0 {
				return fmt.Errorf("%d track(s) failed to rip", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&device, "device", "", "Drive device path (defaults to config, then detection)")
	cmd.Flags().BoolVar(&listOnly, "list", false, "List the disc's tracks without ripping")

	return cmd
}
