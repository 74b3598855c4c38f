package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"transcribe/internal/batch"
	"transcribe/internal/pipeline"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	flags := &requestFlags{}

	cmd := &cobra.Command{
		Use:   "batch <input_path>...",
		Short: "Transcribe multiple media files sequentially",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			effective, err := flags.effectiveConfig(cmd, cfg)
			if err != nil {
				return err
			}

			p, err := buildPipeline(ctx, effective)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			requests := make([]pipeline.Request, 0, len(args))
			for _, input := range args {
				requests = append(requests, flags.request(effective, input))
			}

			summary := batch.Run(cmd.Context(), p, requests, logger)

			rows := make([][]string, 0, len(summary.Results))
			for _, item := range summary.Results {
				outcome := "ok"
				detail := item.TranscriptPath
				if item.Err != nil {
					outcome = "failed"
					detail = item.Err.Error()
				}
				rows = append(rows, []string{
					item.InputPath,
					outcome,
					item.Elapsed.Round(time.Millisecond).String(),
					detail,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Input", "Outcome", "Elapsed", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%s succeeded, %d failed\n",
				pluralize(summary.Succeeded(), "input"), summary.Failed())

			if failed := summary.Failed(); failed > 0 {
				return fmt.Errorf("%d of %d inputs failed", failed, len(summary.Results))
			}
			return nil
		},
	}

	addRequestFlags(cmd, flags)
	return cmd
}
