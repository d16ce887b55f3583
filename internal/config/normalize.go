package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeComposition(); err != nil {
		return err
	}
	c.normalizeAssets()
	c.normalizeExport()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.AssetsDir, err = expandPath(c.Paths.AssetsDir); err != nil {
		return fmt.Errorf("paths.assets_dir: %w", err)
	}
	if c.Paths.AudioDir, err = expandPath(c.Paths.AudioDir); err != nil {
		return fmt.Errorf("paths.audio_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LibraryPath) == "" {
		c.Paths.LibraryPath = defaultLibraryPath
	}
	if c.Paths.LibraryPath, err = expandPath(c.Paths.LibraryPath); err != nil {
		return fmt.Errorf("paths.library_path: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeComposition() error {
	if value, ok := os.LookupEnv(envFPS); ok && strings.TrimSpace(value) != "" {
		fps, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: %w", envFPS, err)
		}
		c.Composition.FPS = fps
	}
	if value, ok := os.LookupEnv(envFallbackSeconds); ok && strings.TrimSpace(value) != "" {
		seconds, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", envFallbackSeconds, err)
		}
		c.Composition.FallbackSeconds = seconds
	}
	if c.Composition.Width <= 0 {
		c.Composition.Width = defaultWidth
	}
	if c.Composition.Height <= 0 {
		c.Composition.Height = defaultHeight
	}
	return nil
}

func (c *Config) normalizeAssets() {
	c.Assets.Images = compactList(c.Assets.Images)
	c.Assets.Videos = compactList(c.Assets.Videos)
}

func (c *Config) normalizeExport() {
	c.Export.FFmpegBinary = strings.TrimSpace(c.Export.FFmpegBinary)
	c.Export.FFprobeBinary = strings.TrimSpace(c.Export.FFprobeBinary)
	c.Export.VideoCodec = strings.TrimSpace(c.Export.VideoCodec)
	if c.Export.VideoCodec == "" {
		c.Export.VideoCodec = defaultVideoCodec
	}
	c.Export.Preset = strings.TrimSpace(c.Export.Preset)
	if c.Export.Preset == "" {
		c.Export.Preset = defaultPreset
	}
	c.Export.AudioCodec = strings.TrimSpace(c.Export.AudioCodec)
	if c.Export.AudioCodec == "" {
		c.Export.AudioCodec = defaultAudioCodec
	}
	c.Export.AudioBitrate = strings.TrimSpace(c.Export.AudioBitrate)
	if c.Export.AudioBitrate == "" {
		c.Export.AudioBitrate = defaultAudioBitrate
	}
	c.Export.PixelFormat = strings.TrimSpace(c.Export.PixelFormat)
	if c.Export.PixelFormat == "" {
		c.Export.PixelFormat = defaultPixelFormat
	}
	if c.Export.TimeoutSeconds <= 0 {
		c.Export.TimeoutSeconds = defaultExportTimeout
	}
	c.Export.OutputName = strings.TrimSpace(c.Export.OutputName)
	if c.Export.OutputName == "" {
		c.Export.OutputName = defaultOutputName
	}
	c.Export.SubtitleStyle = strings.TrimSpace(c.Export.SubtitleStyle)
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeoutSeconds <= 0 {
		c.Notifications.RequestTimeoutSeconds = defaultNtfyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func compactList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
