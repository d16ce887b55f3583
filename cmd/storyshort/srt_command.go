package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"storyshort/internal/subtitles"
)

func newSRTCommand(ctx *commandContext) *cobra.Command {
	var flags compositionFlags
	var outputPath string

	cmd := &cobra.Command{
		Use:   "srt",
		Short: "Write the composition's subtitles as SRT",
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
			comp = ctx.resolve(cmd.Context(), cfg, comp).Composition()
			cues := subtitles.BuildCues(comp)

			target := strings.TrimSpace(outputPath)
			if target == "" || target == "-" {
				return subtitles.WriteSRT(cmd.OutOrStdout(), cues)
			}
			if err := subtitles.WriteSRTFile(target, cues); err != nil {
				return err
			}
			for _, issue := range subtitles.Validate(cues, comp.Seconds()) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", issue)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d cues to %s\n", len(cues), target)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file (stdout when omitted)")
	return cmd
}
