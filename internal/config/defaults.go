package config

const (
	defaultConfigPath       = "~/.config/storyshort/config.toml"
	defaultAssetsDir        = "~/.local/share/storyshort/assets"
	defaultAudioDir         = "~/.local/share/storyshort/audio"
	defaultOutputDir        = "~/.local/share/storyshort/output"
	defaultLogDir           = "~/.local/share/storyshort/logs"
	defaultLibraryPath      = "~/.local/share/storyshort/library.db"
	defaultAPIBind          = "127.0.0.1:8000"
	defaultFPS              = 30
	defaultFallbackSeconds  = 10.0
	defaultWidth            = 640
	defaultHeight           = 320
	defaultFFmpegBinary     = "ffmpeg"
	defaultFFprobeBinary    = "ffprobe"
	defaultVideoCodec       = "libx264"
	defaultPreset           = "veryfast"
	defaultCRF              = 23
	defaultAudioCodec       = "aac"
	defaultAudioBitrate     = "192k"
	defaultPixelFormat      = "yuv420p"
	defaultExportTimeout    = 300
	defaultOutputName       = "storyshort_output.mp4"
	defaultSubtitleStyle    = "FontName=Arial,FontSize=22,PrimaryColour=&H00FFFFFF&,OutlineColour=&H00000000&,BorderStyle=1,Outline=2,Shadow=1"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLibraryEnabled   = true
	defaultNtfyTimeout      = 10
	envFPS                  = "STORYSHORT_FPS"
	envFallbackSeconds      = "STORYSHORT_FALLBACK_SECONDS"
	maxFPS                  = 240
	maxExportTimeoutSeconds = 24 * 3600
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			AssetsDir:   defaultAssetsDir,
			AudioDir:    defaultAudioDir,
			OutputDir:   defaultOutputDir,
			LogDir:      defaultLogDir,
			LibraryPath: defaultLibraryPath,
			APIBind:     defaultAPIBind,
		},
		Composition: Composition{
			FPS:             defaultFPS,
			FallbackSeconds: defaultFallbackSeconds,
			Width:           defaultWidth,
			Height:          defaultHeight,
		},
		Assets: Assets{
			Images: []string{"/assets/1.jpg", "/assets/2.jpg", "/assets/3.jpg"},
			Videos: []string{"/assets/v1.mp4", "/assets/v2.mp4", "/assets/v3.mp4"},
		},
		Export: Export{
			FFmpegBinary:   defaultFFmpegBinary,
			FFprobeBinary:  defaultFFprobeBinary,
			VideoCodec:     defaultVideoCodec,
			Preset:         defaultPreset,
			CRF:            defaultCRF,
			AudioCodec:     defaultAudioCodec,
			AudioBitrate:   defaultAudioBitrate,
			PixelFormat:    defaultPixelFormat,
			TimeoutSeconds: defaultExportTimeout,
			OutputName:     defaultOutputName,
			SubtitleStyle:  defaultSubtitleStyle,
		},
		Library: Library{
			Enabled: defaultLibraryEnabled,
		},
		Notifications: Notifications{
			RequestTimeoutSeconds: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
