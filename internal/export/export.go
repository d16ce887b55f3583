package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"storyshort/internal/composition"
	"storyshort/internal/config"
	"storyshort/internal/fileutil"
	"storyshort/internal/logging"
	"storyshort/internal/media/audio"
	"storyshort/internal/subtitles"
)

var (
	// ErrNoVisual is returned when the composition has no background reference.
	ErrNoVisual = errors.New("composition has no background visual")
	// ErrVisualMissing is returned when the background file does not exist.
	ErrVisualMissing = errors.New("background visual not found")
	// ErrAudioMissing is returned when the narration file does not exist.
	ErrAudioMissing = errors.New("narration audio not found")
	// ErrBusy is returned when another export holds the output lock.
	ErrBusy = errors.New("another export is in progress")
)

const (
	lockFileName    = ".export.lock"
	stderrTailBytes = 4096
)

// Result describes a finished export.
type Result struct {
	CompositionID string        `json:"composition_id"`
	OutputPath    string        `json:"output_path"`
	Seconds       float64       `json:"seconds"`
	Frames        int           `json:"frames"`
	Degraded      bool          `json:"degraded"`
	Cues          int           `json:"cues"`
	Elapsed       time.Duration `json:"elapsed"`
}

// Exporter renders compositions into the configured output directory.
type Exporter struct {
	settings  Settings
	assetsDir string
	audioDir  string
	outputDir string
	source    audio.Source
	logger    *slog.Logger
}

// New constructs an exporter. source is used to resolve the narration length
// when the composition is still on its placeholder duration; it may be nil.
func New(cfg *config.Config, source audio.Source, logger *slog.Logger) *Exporter {
	return &Exporter{
		settings:  SettingsFromConfig(cfg),
		assetsDir: cfg.Paths.AssetsDir,
		audioDir:  cfg.Paths.AudioDir,
		outputDir: cfg.Paths.OutputDir,
		source:    source,
		logger:    logging.NewComponentLogger(logger, "exporter"),
	}
}

// DefaultOutputPath is where Export writes when no destination is given.
func (e *Exporter) DefaultOutputPath(comp *composition.Composition) string {
	return filepath.Join(e.outputDir, "output_"+strings.ReplaceAll(comp.ID(), "-", "")+".mp4")
}

// Export renders comp to dest, or to DefaultOutputPath when dest is empty.
func (e *Exporter) Export(ctx context.Context, comp *composition.Composition, dest string) (Result, error) {
	if comp == nil {
		return Result{}, errors.New("export: nil composition")
	}
	ctx = logging.WithStage(logging.WithCompositionID(ctx, comp.ID()), "export")
	logger := logging.WithContext(ctx, e.logger)

	visual := comp.Visual()
	if strings.TrimSpace(visual.Ref) == "" {
		return Result{}, ErrNoVisual
	}
	visualPath, err := e.resolve(e.assetsDir, visual.Ref, ErrVisualMissing)
	if err != nil {
		return Result{}, err
	}
	audioPath, err := e.resolve(e.audioDir, comp.AudioRef(), ErrAudioMissing)
	if err != nil {
		return Result{}, err
	}

	comp = e.resolveDuration(ctx, logger, comp, audioPath)
	if dest == "" {
		dest = e.DefaultOutputPath(comp)
	}

	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("ensure output directory: %w", err)
	}
	lock := flock.New(filepath.Join(e.outputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return Result{}, fmt.Errorf("acquire export lock: %w", err)
	}
	if !locked {
		return Result{}, ErrBusy
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release export lock", logging.Error(err))
		}
	}()

	cleanWorkDirs(e.outputDir, logger)
	workDir, err := os.MkdirTemp(e.outputDir, workDirPrefix+"*")
	if err != nil {
		return Result{}, fmt.Errorf("create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	cues := subtitles.BuildCues(comp)
	job := Job{
		VisualPath: visualPath,
		LoopVideo:  visual.Looping(),
		AudioPath:  audioPath,
		FPS:        comp.FPS(),
		OutputPath: filepath.Join(workDir, "render.mp4"),
	}
	if len(cues) > 0 {
		job.SubtitlePath = filepath.Join(workDir, "subtitles.srt")
		if err := subtitles.WriteSRTFile(job.SubtitlePath, cues); err != nil {
			return Result{}, err
		}
	}

	args := BuildArgs(job, e.settings)
	logger.Info("export started",
		logging.String("visual", visualPath),
		logging.String(logging.FieldAudioRef, comp.AudioRef()),
		logging.Int("frames", comp.TotalFrames()),
		logging.Int("cues", len(cues)),
	)
	logger.Debug("ffmpeg command", logging.String("args", strings.Join(args, " ")))

	start := time.Now()
	if err := e.run(ctx, args); err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return Result{}, fmt.Errorf("ensure destination directory: %w", err)
	}
	if err := fileutil.CopyFileVerified(job.OutputPath, dest); err != nil {
		return Result{}, fmt.Errorf("publish export: %w", err)
	}

	result := Result{
		CompositionID: comp.ID(),
		OutputPath:    dest,
		Seconds:       comp.Seconds(),
		Frames:        comp.TotalFrames(),
		Degraded:      comp.Timing().Fallback,
		Cues:          len(cues),
		Elapsed:       time.Since(start),
	}
	logger.Info("export finished",
		logging.String("output", dest),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

func (e *Exporter) resolve(dir, ref string, missing error) (string, error) {
	path, err := fileutil.ResolveWithin(dir, ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", missing, err)
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", missing, path)
	}
	return path, nil
}

func (e *Exporter) resolveDuration(ctx context.Context, logger *slog.Logger, comp *composition.Composition, audioPath string) *composition.Composition {
	if !comp.Timing().Fallback || e.source == nil {
		return comp
	}
	seconds, err := e.source.Duration(ctx, audioPath)
	if err != nil {
		logging.WarnWithContext(logger, "narration duration unavailable", "export_duration_fallback",
			logging.Error(err),
			logging.Float64("fallback_seconds", comp.Seconds()),
			logging.String(logging.FieldImpact, "subtitle timing uses the placeholder duration"),
		)
		return comp
	}
	return comp.WithDuration(seconds)
}

func (e *Exporter) run(ctx context.Context, args []string) error {
	if e.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.settings.Timeout)
		defer cancel()
	}
	binary := e.settings.FFmpegBinary
	if binary == "" {
		binary = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg: %w", ctx.Err())
		}
		return fmt.Errorf("ffmpeg failed: %w: %s", err, tail(stderr.String(), stderrTailBytes))
	}
	return nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
