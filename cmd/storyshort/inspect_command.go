package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"storyshort/internal/composition"
	"storyshort/internal/subtitles"
)

type segmentReport struct {
	Index      int    `json:"index" yaml:"index"`
	Text       string `json:"text" yaml:"text"`
	StartFrame int    `json:"start_frame" yaml:"start_frame"`
	EndFrame   int    `json:"end_frame" yaml:"end_frame"`
	Start      string `json:"start" yaml:"start"`
	End        string `json:"end" yaml:"end"`
}

type inspectReport struct {
	ID          string                        `json:"id" yaml:"id"`
	AudioRef    string                        `json:"audio_ref" yaml:"audio_ref"`
	Visual      composition.Visual            `json:"visual" yaml:"visual"`
	FPS         int                           `json:"fps" yaml:"fps"`
	Seconds     float64                       `json:"seconds" yaml:"seconds"`
	TotalFrames int                           `json:"total_frames" yaml:"total_frames"`
	Fallback    bool                          `json:"fallback" yaml:"fallback"`
	Segments    []segmentReport               `json:"segments" yaml:"segments"`
	Frame       *composition.RenderDescriptor `json:"frame,omitempty" yaml:"frame,omitempty"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var flags compositionFlags
	var format string
	var frame int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show segments, timing, and frame ranges for a composition",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := validateFormat(format)
			if err != nil {
				return err
			}
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

			report := buildInspectReport(comp)
			if cmd.Flags().Changed("frame") {
				desc := comp.Describe(frame)
				report.Frame = &desc
			}
			if ok, err := writeStructured(cmd, format, report); ok {
				return err
			}
			renderInspect(cmd, report)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table, json, or yaml")
	cmd.Flags().IntVar(&frame, "frame", 0, "Also describe this frame")
	return cmd
}

func buildInspectReport(comp *composition.Composition) inspectReport {
	timing := comp.Timing()
	report := inspectReport{
		ID:          comp.ID(),
		AudioRef:    comp.AudioRef(),
		Visual:      comp.Visual(),
		FPS:         timing.FPS,
		Seconds:     timing.Seconds,
		TotalFrames: timing.Frames,
		Fallback:    timing.Fallback,
		Segments:    []segmentReport{},
	}
	cues := subtitles.BuildCues(comp)
	for _, span := range comp.Spans() {
		seg := segmentReport{
			Index:      span.Index,
			Text:       comp.Segment(span.Index),
			StartFrame: span.Start,
			EndFrame:   span.End,
		}
		if span.Index < len(cues) {
			seg.Start = subtitles.FormatTimestamp(cues[span.Index].Start)
			seg.End = subtitles.FormatTimestamp(cues[span.Index].End)
		}
		report.Segments = append(report.Segments, seg)
	}
	return report
}

func renderInspect(cmd *cobra.Command, report inspectReport) {
	out := cmd.OutOrStdout()
	duration := time.Duration(report.Seconds * float64(time.Second)).Round(time.Millisecond)
	source := "audio"
	if report.Fallback {
		source = "fallback"
	}
	fmt.Fprintf(out, "Composition: %s\n", report.ID)
	fmt.Fprintf(out, "Audio:       %s\n", report.AudioRef)
	fmt.Fprintf(out, "Background:  %s %s\n", report.Visual.Kind, report.Visual.Ref)
	fmt.Fprintf(out, "Timing:      %s (%s), %d frames at %d fps\n", duration, source, report.TotalFrames, report.FPS)

	if len(report.Segments) == 0 {
		fmt.Fprintln(out, "Subtitles:   none")
	} else {
		rows := make([][]string, 0, len(report.Segments))
		for _, seg := range report.Segments {
			rows = append(rows, []string{
				strconv.Itoa(seg.Index),
				fmt.Sprintf("%d-%d", seg.StartFrame, seg.EndFrame),
				seg.Start + " → " + seg.End,
				seg.Text,
			})
		}
		fmt.Fprintln(out, renderTable([]column{
			{header: "#", align: alignRight},
			{header: "Frames", align: alignRight},
			{header: "Time"},
			{header: "Text", wrap: 60},
		}, rows))
	}

	if report.Frame != nil {
		text := report.Frame.SubtitleText
		if report.Frame.Segment < 0 {
			text = "(no subtitle)"
		}
		fmt.Fprintf(out, "Frame %d:    %s\n", report.Frame.Frame, text)
	}
}
