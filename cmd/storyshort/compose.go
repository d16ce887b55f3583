package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"storyshort/internal/assets"
	"storyshort/internal/composition"
	"storyshort/internal/config"
	"storyshort/internal/playback"
)

// compositionFlags are shared by every command that builds a composition.
// Audio and asset references resolve by base name inside the configured
// audio and assets directories.
type compositionFlags struct {
	scriptPath string
	scriptText string
	audioRef   string
	imageRef   string
	videoRef   string
	audioDir   string
	assetsDir  string
	seed       uint64
}

func (f *compositionFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.scriptPath, "script", "s", "", "Script file (use - for stdin)")
	flags.StringVar(&f.scriptText, "text", "", "Script text (overrides --script)")
	flags.StringVarP(&f.audioRef, "audio", "a", "", "Narration audio reference")
	flags.StringVar(&f.imageRef, "image", "", "Background image reference")
	flags.StringVar(&f.videoRef, "video", "", "Background video reference (preferred over --image)")
	flags.StringVar(&f.audioDir, "audio-dir", "", "Directory holding narration audio (overrides config)")
	flags.StringVar(&f.assetsDir, "assets-dir", "", "Directory holding background assets (overrides config)")
	flags.Uint64Var(&f.seed, "seed", 0, "Seed for background selection when --image and --video are omitted")
}

// config returns cfg with directory overrides applied.
func (f *compositionFlags) config(cfg *config.Config) (*config.Config, error) {
	out := *cfg
	if dir := strings.TrimSpace(f.audioDir); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve audio dir: %w", err)
		}
		out.Paths.AudioDir = expanded
	}
	if dir := strings.TrimSpace(f.assetsDir); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve assets dir: %w", err)
		}
		out.Paths.AssetsDir = expanded
	}
	return &out, nil
}

func (f *compositionFlags) readScript(stdin io.Reader) (string, error) {
	if f.scriptText != "" {
		return f.scriptText, nil
	}
	path := strings.TrimSpace(f.scriptPath)
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read script from stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read script: %w", err)
		}
		return string(data), nil
	}
}

// build assembles a composition from the flags without resolving its duration.
func (f *compositionFlags) build(cmd *cobra.Command, cfg *config.Config) (*composition.Composition, error) {
	if strings.TrimSpace(f.audioRef) == "" {
		return nil, errors.New("--audio is required")
	}
	text, err := f.readScript(cmd.InOrStdin())
	if err != nil {
		return nil, err
	}

	pair := composition.AssetPair{ImageRef: f.imageRef, VideoRef: f.videoRef}
	if strings.TrimSpace(pair.ImageRef) == "" && strings.TrimSpace(pair.VideoRef) == "" {
		seed := f.seed
		if !cmd.Flags().Changed("seed") {
			seed = uint64(time.Now().UnixNano())
		}
		pair = assets.Pick(cfg.Assets.Images, cfg.Assets.Videos, assets.NewChooser(seed))
	}

	return composition.New(composition.Input{
		Script:          text,
		AudioRef:        f.audioRef,
		Assets:          pair,
		FPS:             cfg.Composition.FPS,
		FallbackSeconds: cfg.Composition.FallbackSeconds,
	}), nil
}

// resolve loads comp into a host and waits for its audio metadata. The
// returned host keeps the fallback timing when the lookup fails.
func (c *commandContext) resolve(ctx context.Context, cfg *config.Config, comp *composition.Composition) *playback.Host {
	host := playback.NewHost(c.loggerValue())
	host.Load(comp)
	<-host.Watch(ctx, c.audioSourceFor(cfg))
	return host
}
