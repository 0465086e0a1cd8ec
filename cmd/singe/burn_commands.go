package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"singe/internal/burning"
	"singe/internal/config"
	"singe/internal/disc"
	"singe/internal/queue"
	"singe/internal/services/cdrdao"
	"singe/internal/services/ffmpeg"
	"singe/internal/services/sox"
	"singe/internal/services/wodim"
	"singe/internal/workflow"
)

func newBurnCommand(ctx *commandContext) *cobra.Command {
	burnCmd := &cobra.Command{
		Use:   "burn",
		Short: "Burn queued jobs to disc",
	}

	burnCmd.AddCommand(newBurnRunCommand(ctx))
	burnCmd.AddCommand(newBurnJobCommand(ctx))

	return burnCmd
}

func newBurnRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Burn every pending job in the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				logger, err := newRunLogger(cfg)
				if err != nil {
					return err
				}
				writer, inspector, err := newBurnWriter(cmd, cfg, logger)
				if err != nil {
					return err
				}
				manager := workflow.NewManager(cfg, store, writer, logger,
					workflow.WithMediaWaiter(disc.NewMonitor(inspector, logger)))

				result, err := manager.Run(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Executed %d job(s): %d completed, %d failed, %d skipped\n",
					result.Executed, result.Summary.Completed, result.Summary.Failed, result.Summary.Skipped)
				if result.Summary.Failed > 0 {
					return fmt.Errorf("%d job(s) failed", result.Summary.Failed)
				}
				return nil
			})
		},
	}
}

func newBurnJobCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "job <id>",
		Short: "Burn a single queued job",
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

				logger, err := newRunLogger(cfg)
				if err != nil {
					return err
				}
				writer, _, err := newBurnWriter(cmd, cfg, logger)
				if err != nil {
					return err
				}

				execErr := writer.Execute(cmd.Context(), job)
				if err := store.Update(cmd.Context(), job); err != nil {
					return err
				}
				if execErr != nil {
					return execErr
				}

				out := cmd.OutOrStdout()
				switch job.Status {
				case queue.StatusCompleted:
					fmt.Fprintf(out, "Job %d %q completed (verified: %s)\n", job.ID, job.Name, yesNo(job.Verified()))
					return nil
				case queue.StatusFailed:
					return fmt.Errorf("job %d %q failed: %s", job.ID, job.Name, job.ErrorDetail)
				default:
					return fmt.Errorf("job %d %q ended in unexpected status %s", job.ID, job.Name, job.Status)
				}
			})
		},
	}
}

// newBurnWriter wires the external tool clients into a burn writer. The
// inspector is returned separately so callers can reuse it for media waits.
func newBurnWriter(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (*burning.Writer, *disc.Inspector, error) {
	wodimClient, err := wodim.New(cfg.WodimBinary())
	if err != nil {
		return nil, nil, err
	}
	cdrdaoClient, err := cdrdao.New(cfg.CdrdaoBinary())
	if err != nil {
		return nil, nil, err
	}
	ffmpegClient, err := ffmpeg.New(cfg.FFmpegBinary(), cfg.FFprobeBinary())
	if err != nil {
		return nil, nil, err
	}
	soxClient, err := sox.New(cfg.SoxBinary())
	if err != nil {
		return nil, nil, err
	}

	inspector := disc.NewInspector(cdrdaoClient, logger)
	deps := burning.Deps{
		Detector:    wodimClient,
		Inspector:   inspector,
		Encoder:     ffmpegClient,
		Normalizer:  soxClient,
		TOCBurner:   cdrdaoClient,
		TrackBurner: wodimClient,
	}

	var opts []burning.Option
	if render := newProgressRenderer(cmd.OutOrStdout()); render != nil {
		opts = append(opts, burning.WithProgressFunc(render))
	}

	writer, err := burning.NewWriter(cfg, deps, logger, opts...)
	if err != nil {
		return nil, nil, err
	}
	return writer, inspector, nil
}
