package export

import (
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"storyshort/internal/config"
	"storyshort/internal/timeline"
)

// Settings holds encoder parameters.
type Settings struct {
	FFmpegBinary  string
	VideoCodec    string
	Preset        string
	CRF           int
	AudioCodec    string
	AudioBitrate  string
	PixelFormat   string
	SubtitleStyle string
	Timeout       time.Duration
}

// SettingsFromConfig derives encoder parameters from cfg.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		FFmpegBinary:  cfg.FFmpegBinary(),
		VideoCodec:    cfg.Export.VideoCodec,
		Preset:        cfg.Export.Preset,
		CRF:           cfg.Export.CRF,
		AudioCodec:    cfg.Export.AudioCodec,
		AudioBitrate:  cfg.Export.AudioBitrate,
		PixelFormat:   cfg.Export.PixelFormat,
		SubtitleStyle: cfg.Export.SubtitleStyle,
		Timeout:       time.Duration(cfg.Export.TimeoutSeconds) * time.Second,
	}
}

// Job describes one render with every path already resolved.
type Job struct {
	VisualPath   string
	LoopVideo    bool
	AudioPath    string
	SubtitlePath string
	FPS          int
	OutputPath   string
}

// BuildArgs returns the ffmpeg argument list for job, without the binary.
func BuildArgs(job Job, s Settings) []string {
	var visual *ffmpeg.Stream
	if job.LoopVideo {
		visual = ffmpeg.Input(job.VisualPath, ffmpeg.KwArgs{"stream_loop": "-1"})
	} else {
		visual = ffmpeg.Input(job.VisualPath, ffmpeg.KwArgs{"loop": "1"})
	}
	narration := ffmpeg.Input(job.AudioPath)

	kwargs := ffmpeg.KwArgs{
		"r":        strconv.Itoa(timeline.NormalizeFPS(job.FPS)),
		"c:v":      s.VideoCodec,
		"preset":   s.Preset,
		"crf":      strconv.Itoa(s.CRF),
		"c:a":      s.AudioCodec,
		"b:a":      s.AudioBitrate,
		"pix_fmt":  s.PixelFormat,
		"shortest": "",
	}
	if job.SubtitlePath != "" {
		kwargs["vf"] = SubtitleFilter(job.SubtitlePath, s.SubtitleStyle)
	}

	return ffmpeg.Output([]*ffmpeg.Stream{visual.Video(), narration.Audio()}, job.OutputPath, kwargs).
		OverWriteOutput().
		GetArgs()
}

// SubtitleFilter builds the burn-in filter for an SRT file.
func SubtitleFilter(srtPath, style string) string {
	filter := "subtitles=" + escapeFilterValue(srtPath)
	if style = strings.TrimSpace(style); style != "" {
		filter += ":force_style='" + style + "'"
	}
	return filter
}

var filterEscaper = strings.NewReplacer(`\`, `\\`, `:`, `\:`, `'`, `\'`)

func escapeFilterValue(value string) string {
	return filterEscaper.Replace(value)
}
