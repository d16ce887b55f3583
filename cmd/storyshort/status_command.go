package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"storyshort/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check external tools, directories, and the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			path := ctx.configPath
			if !ctx.configExists {
				path += " (not found, using defaults)"
			}
			lines := renderSectionHeader("Configuration", colorize)
			lines = append(lines,
				renderStatusLine("Config", statusInfo, path, colorize),
				renderStatusLine("Timing", statusInfo, fmt.Sprintf("%d fps, %gs fallback", cfg.Composition.FPS, cfg.Composition.FallbackSeconds), colorize),
				renderStatusLine("Notifications", statusInfo, yesNo(cfg.Notifications.NtfyTopic != ""), colorize),
				"",
			)

			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			for _, status := range preflight.CheckSystemDeps(cmd.Context(), cfg) {
				lines = append(lines, renderStatusLine(status.Name, depKind(status), depMessage(status), colorize))
			}
			lines = append(lines, "")

			lines = append(lines, renderSectionHeader("Readiness", colorize)...)
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				lines = append(lines, renderStatusLine(result.Name, resultKind(result), result.Detail, colorize))
			}

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}
