package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"storyshort/internal/composition"
	"storyshort/internal/config"
	"storyshort/internal/export"
	"storyshort/internal/library"
	"storyshort/internal/logging"
	"storyshort/internal/notifications"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var flags compositionFlags
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the composition to an MP4 with burned-in subtitles",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := flags.config(base)
			if err != nil {
				return err
			}
			comp, err := flags.build(cmd, cfg)
			if err != nil {
				return err
			}
			logger := ctx.loggerValue()

			dest := strings.TrimSpace(outputPath)
			if dest != "" {
				if dest, err = config.ExpandPath(dest); err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
			}

			exporter := export.New(cfg, ctx.audioSourceFor(cfg), logger)
			result, exportErr := exporter.Export(cmd.Context(), comp, dest)
			recordExport(cmd.Context(), logger, cfg, comp, result, exportErr)
			notifyExport(cmd.Context(), logger, cfg, comp.ID(), result, exportErr)
			if exportErr != nil {
				return exportErr
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exported %s\n", result.OutputPath)
			fmt.Fprintf(out, "Duration: %.3fs (%d frames)\n", result.Seconds, result.Frames)
			fmt.Fprintf(out, "Subtitles: %d cues\n", result.Cues)
			if result.Degraded {
				fmt.Fprintln(out, "Warning: audio duration unknown, fallback timing used")
			}
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file (defaults to the output directory)")
	return cmd
}

// recordExport stores the composition and the attempt in the library.
// Failures are logged and never change the command's outcome.
func recordExport(ctx context.Context, logger *slog.Logger, cfg *config.Config, comp *composition.Composition, result export.Result, exportErr error) {
	if !cfg.Library.Enabled {
		return
	}
	logger = logging.WithContext(logging.WithCompositionID(ctx, comp.ID()), logger)
	store, err := library.Open(cfg)
	if err != nil {
		logging.WarnWithContext(logger, "failed to open library", "library_open_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "export missing from history"),
		)
		return
	}
	defer store.Close()

	if exportErr == nil && !result.Degraded && result.Seconds > 0 {
		comp = comp.WithDuration(result.Seconds)
	}
	if err := store.Save(ctx, comp); err != nil {
		logging.WarnWithContext(logger, "failed to record composition", "library_save_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "export missing from history"),
		)
		return
	}
	if _, err := store.RecordExport(ctx, comp.ID(), result.OutputPath, exportErr); err != nil {
		logging.WarnWithContext(logger, "failed to record export", "library_export_failed", logging.Error(err))
	}
}

func notifyExport(ctx context.Context, logger *slog.Logger, cfg *config.Config, compositionID string, result export.Result, exportErr error) {
	notifier := notifications.NewService(cfg)
	var err error
	if exportErr != nil {
		err = notifier.NotifyExportFailed(ctx, compositionID, exportErr)
	} else {
		err = notifier.NotifyExportCompleted(ctx, notifications.Export{
			CompositionID: compositionID,
			OutputPath:    result.OutputPath,
			Seconds:       result.Seconds,
			Degraded:      result.Degraded,
			Elapsed:       result.Elapsed,
		})
	}
	if err != nil {
		logging.WarnWithContext(logger, "failed to send export notification", "notification_failed",
			logging.String(logging.FieldCompositionID, compositionID),
			logging.Error(err),
		)
	}
}
