package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"singe/internal/burning"
	"singe/internal/media"
	"singe/internal/progress"
	"singe/internal/services/ffmpeg"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var recursive bool
	var preview bool
	var gapSeconds int
	var cdMinutes int

	cmd := &cobra.Command{
		Use:   "scan <folder>",
		Short: "List the audio files a folder would contribute to a burn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			files, err := media.ScanFolder(args[0], recursive)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "No audio files found")
				return nil
			}

			if !preview {
				for _, file := range files {
					fmt.Fprintln(out, file)
				}
				return nil
			}

			probe, err := ffmpeg.New(cfg.FFmpegBinary(), cfg.FFprobeBinary())
			if err != nil {
				return err
			}
			gap := gapSeconds
			if !cmd.Flags().Changed("gap") {
				gap = cfg.Burning.GapSeconds
			}
			minutes := cdMinutes
			if minutes == 0 {
				minutes = cfg.Burning.CDMinutes
			}
			report, err := burning.ComputeCapacity(cmd.Context(), probe, files, gap, minutes)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(files))
			for i, file := range files {
				elapsed, err := progress.FormatElapsed(int(report.TrackSeconds[i]))
				if err != nil {
					return err
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), file, elapsed})
			}
			table := renderTable(
				[]tableColumn{rightColumn("#"), leftColumn("File"), rightColumn("Length")},
				rows,
			)
			fmt.Fprintln(out, table)

			total, err := progress.FormatElapsed(int(report.TotalSeconds))
			if err != nil {
				return err
			}
			capacity, err := progress.FormatElapsed(report.CapacitySeconds)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Total %s of %s (%.0f%%), fits: %s\n",
				total, capacity, report.Fraction*100, yesNo(report.Fits))
			if report.Warning != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), report.Warning)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&recursive, "recursive", false, "Recurse into subdirectories")
	cmd.Flags().BoolVar(&preview, "preview", false, "Probe track lengths and show a capacity summary")
	cmd.Flags().IntVar(&gapSeconds, "gap", 0, "Inter-track gap in seconds for the capacity estimate")
	cmd.Flags().IntVar(&cdMinutes, "cd-minutes", 0, "Target media capacity in minutes (74 or 80)")

	return cmd
}
