package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"singe/internal/disc"
	"singe/internal/services/cdrdao"
	"singe/internal/services/wodim"
)

func newDiscCommand(ctx *commandContext) *cobra.Command {
	discCmd := &cobra.Command{
		Use:   "disc",
		Short: "Inspect optical media",
	}

	discCmd.AddCommand(newDiscStatusCommand(ctx))

	return discCmd
}

func newDiscStatusCommand(ctx *commandContext) *cobra.Command {
	var device string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report the medium in the burner",
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

			cdrdaoClient, err := cdrdao.New(cfg.CdrdaoBinary())
			if err != nil {
				return err
			}
			logger, err := newRunLogger(cfg)
			if err != nil {
				return err
			}
			inspector := disc.NewInspector(cdrdaoClient, logger)

			status, err := inspector.CheckStatus(cmd.Context(), target)
			if err != nil {
				return err
			}

			table := renderTable(
				[]tableColumn{leftColumn("Device"), leftColumn("Status"), leftColumn("Medium"), leftColumn("Writable")},
				[][]string{{target, status.String(), yesNo(status.HasMedium()), yesNo(status.Writable())}},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)

			if status == disc.StatusUnknown {
				return errors.New("disc status could not be determined")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&device, "device", "", "Burner device path (defaults to config, then detection)")
	return cmd
}
