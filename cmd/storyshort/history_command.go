package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"storyshort/internal/library"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var format string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded compositions",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := validateFormat(format)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Library.Enabled {
				return errors.New("composition library is disabled (set library.enabled = true)")
			}
			store, err := library.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if records == nil {
				records = []*library.Record{}
			}
			if ok, err := writeStructured(cmd, format, records); ok {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No compositions recorded")
				return nil
			}
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					shortID(rec.ID),
					rec.CreatedAt.Local().Format("2006-01-02 15:04"),
					strconv.Itoa(rec.SegmentCount),
					fmt.Sprintf("%.2fs", rec.Seconds),
					yesNo(rec.Degraded),
					rec.VisualKind + " " + rec.VisualRef,
					rec.AudioRef,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]column{
				{header: "ID"},
				{header: "Created"},
				{header: "Segments", align: alignRight},
				{header: "Duration", align: alignRight},
				{header: "Fallback"},
				{header: "Background", wrap: 40},
				{header: "Audio", wrap: 40},
			}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum records to show (0 for all)")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table, json, or yaml")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
