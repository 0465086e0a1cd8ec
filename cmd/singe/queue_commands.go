package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"singe/internal/config"
	"singe/internal/media"
	"singe/internal/queue"
	"singe/internal/services/ffmpeg"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the burn queue",
	}

	queueCmd.AddCommand(newQueueAddCommand(ctx))
	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueStatusCommand(ctx))
	queueCmd.AddCommand(newQueueRemoveCommand(ctx))
	queueCmd.AddCommand(newQueueSkipCommand(ctx))
	queueCmd.AddCommand(newQueueClearCommand(ctx))

	return queueCmd
}

type addFlags struct {
	name         string
	folder       string
	playlist     string
	recursive    bool
	tagOrder     bool
	device       string
	speed        int
	verify       bool
	noVerify     bool
	gapMS        int
	fadeInMS     int
	fadeOutMS    int
	multiSession bool
	normalize    bool
	cdText       bool
	cdMinutes    int
}

func newQueueAddCommand(ctx *commandContext) *cobra.Command {
	var flags addFlags

	cmd := &cobra.Command{
		Use:   "add [files...]",
		Short: "Queue a burn job from files, a folder, or a playlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				files, name, err := collectSources(cmd, args, &flags)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					return errors.New("no audio files to queue")
				}

				if flags.tagOrder {
					probe, err := ffmpeg.New(cfg.FFmpegBinary(), cfg.FFprobeBinary())
					if err != nil {
						return err
					}
					tracks, err := media.OrganizeByTrackNumber(cmd.Context(), probe, files)
					if err != nil {
						return err
					}
					files = media.Paths(tracks)
				}

				settings := settingsFromFlags(cmd, cfg, &flags)
				if flags.name != "" {
					name = flags.name
				}

				job, err := store.NewJob(cmd.Context(), name, files, settings)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued job %d %q with %d track(s)\n", job.ID, job.Name, len(job.Files))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", "", "Job name (defaults to the source folder or playlist name)")
	cmd.Flags().StringVar(&flags.folder, "folder", "", "Scan a folder for audio files")
	cmd.Flags().BoolVar(&flags.recursive, "recursive", false, "Recurse into subdirectories when scanning a folder")
	cmd.Flags().StringVar(&flags.playlist, "playlist", "", "Read track list from an M3U/M3U8 playlist")
	cmd.Flags().BoolVar(&flags.tagOrder, "tag-order", false, "Order tracks by their track-number tags")
	cmd.Flags().StringVar(&flags.device, "device", "", "Burner device path (defaults to config, then detection)")
	cmd.Flags().IntVar(&flags.speed, "speed", 0, "Burn speed (0 lets the drive pick)")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "Verify staged tracks after the burn")
	cmd.Flags().BoolVar(&flags.noVerify, "no-verify", false, "Skip post-burn verification")
	cmd.Flags().IntVar(&flags.gapMS, "gap-ms", -1, "Silence appended between tracks in milliseconds")
	cmd.Flags().IntVar(&flags.fadeInMS, "fade-in-ms", -1, "Fade-in duration in milliseconds")
	cmd.Flags().IntVar(&flags.fadeOutMS, "fade-out-ms", -1, "Fade-out duration in milliseconds")
	cmd.Flags().BoolVar(&flags.multiSession, "multi-session", false, "Leave the session open for later appends")
	cmd.Flags().BoolVar(&flags.normalize, "normalize", false, "Normalize track levels before burning")
	cmd.Flags().BoolVar(&flags.cdText, "cd-text", false, "Write CD-Text metadata")
	cmd.Flags().IntVar(&flags.cdMinutes, "cd-minutes", 0, "Target media capacity in minutes (74 or 80)")

	return cmd
}

// collectSources resolves the job's track list and a default name from
// positional files, --folder, or --playlist. Exactly one source is allowed.
func collectSources(cmd *cobra.Command, args []string, flags *addFlags) ([]string, string, error) {
	sources := 0
	if len(args) > 0 {
		sources++
	}
	if flags.folder != "" {
		sources++
	}
	if flags.playlist != "" {
		sources++
	}
	if sources != 1 {
		return nil, "", errors.New("provide exactly one source: positional files, --folder, or --playlist")
	}

	switch {
	case flags.folder != "":
		files, err := media.ScanFolder(flags.folder, flags.recursive)
		if err != nil {
			return nil, "", err
		}
		return files, filepath.Base(filepath.Clean(flags.folder)), nil
	case flags.playlist != "":
		result, err := media.ParsePlaylist(flags.playlist)
		if err != nil {
			return nil, "", err
		}
		out := cmd.ErrOrStderr()
		for _, skipped := range result.NonAudio {
			fmt.Fprintf(out, "Skipping non-audio entry: %s\n", skipped)
		}
		for _, missing := range result.Missing {
			fmt.Fprintf(out, "Skipping missing entry: %s\n", missing)
		}
		base := filepath.Base(flags.playlist)
		return result.Files, strings.TrimSuffix(base, filepath.Ext(base)), nil
	default:
		name := "Audio CD"
		if len(args) > 0 {
			name = filepath.Base(filepath.Dir(args[0]))
		}
		return args, name, nil
	}
}

func settingsFromFlags(cmd *cobra.Command, cfg *config.Config, flags *addFlags) queue.Settings {
	settings := queue.DefaultSettings(cfg)
	settings.DevicePath = flags.device
	if cmd.Flags().Changed("speed") {
		settings.BurnSpeed = flags.speed
	}
	if flags.verify {
		settings.Verify = true
	}
	if flags.noVerify {
		settings.Verify = false
	}
	if flags.gapMS >= 0 {
		settings.GapMS = flags.gapMS
	}
	if flags.fadeInMS >= 0 {
		settings.FadeInMS = flags.fadeInMS
	}
	if flags.fadeOutMS >= 0 {
		settings.FadeOutMS = flags.fadeOutMS
	}
	if cmd.Flags().Changed("multi-session") {
		settings.MultiSession = flags.multiSession
	}
	if cmd.Flags().Changed("normalize") {
		settings.Normalize = flags.normalize
	}
	settings.CDText = flags.cdText
	if flags.cdMinutes > 0 {
		settings.CDMinutes = flags.cdMinutes
	}
	return settings
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List queued burn jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				jobs, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(jobs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}
				colorize := shouldColorize(cmd.OutOrStdout())
				rows := make([][]string, 0, len(jobs))
				for _, job := range jobs {
					rows = append(rows, []string{
						strconv.FormatInt(job.ID, 10),
						job.Name,
						statusCell(job.Status, colorize),
						strconv.Itoa(len(job.Files)),
						yesNo(job.Settings.Verify),
						job.ErrorDetail,
					})
				}
				table := renderTable(
					[]tableColumn{
						rightColumn("ID"),
						leftColumn("Name"),
						leftColumn("Status"),
						rightColumn("Tracks"),
						leftColumn("Verify"),
						leftColumn("Detail"),
					},
					rows,
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func newQueueStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show a queue status summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if stats.Total == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}
				rows := [][]string{
					{"pending", strconv.Itoa(stats.Pending)},
					{"in_progress", strconv.Itoa(stats.InProgress)},
					{"completed", strconv.Itoa(stats.Completed)},
					{"failed", strconv.Itoa(stats.Failed)},
					{"skipped", strconv.Itoa(stats.Skipped)},
					{"total", strconv.Itoa(stats.Total)},
				}
				table := renderTable([]tableColumn{leftColumn("Status"), rightColumn("Count")}, rows)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func newQueueRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a job from the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				id, err := parseJobID(args[0])
				if err != nil {
					return err
				}
				if err := store.Remove(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed job %d\n", id)
				return nil
			})
		},
	}
}

func newQueueSkipCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "skip <id>",
		Short: "Skip a pending job without burning it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				id, err := parseJobID(args[0])
				if err != nil {
					return err
				}
				job, err := store.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				if err := job.Skip(); err != nil {
					return err
				}
				if err := store.Update(cmd.Context(), job); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped job %d %q\n", job.ID, job.Name)
				return nil
			})
		},
	}
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	var completedOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				var removed int64
				var err error
				if completedOnly {
					removed, err = store.ClearCompleted(cmd.Context())
				} else {
					removed, err = store.Clear(cmd.Context())
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d job(s)\n", removed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&completedOnly, "completed", false, "Remove only completed and skipped jobs, keeping failures for review")
	return cmd
}

func parseJobID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid job id %q", arg)
	}
	return id, nil
}
