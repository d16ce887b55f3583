package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"

	"storyshort/internal/fileutil"
	"storyshort/internal/media/ffprobe"
)

// ErrNoDuration is returned when a source cannot determine a usable duration.
var ErrNoDuration = errors.New("audio duration unavailable")

// Source reports the duration in seconds of an audio reference.
type Source interface {
	Duration(ctx context.Context, ref string) (float64, error)
}

// FFprobeSource inspects audio with ffprobe. Remote references are probed
// directly; local ones are resolved inside Dir when it is set.
type FFprobeSource struct {
	Binary string
	Dir    string
}

// Duration implements Source.
func (s FFprobeSource) Duration(ctx context.Context, ref string) (float64, error) {
	target := strings.TrimSpace(ref)
	if !fileutil.IsRemote(target) {
		path, err := fileutil.ResolveWithin(s.Dir, target)
		if err != nil {
			return 0, err
		}
		target = path
	}
	result, err := ffprobe.Inspect(ctx, s.Binary, target)
	if err != nil {
		return 0, err
	}
	seconds := result.AudioDurationSeconds()
	if seconds <= 0 {
		return 0, fmt.Errorf("%w: ffprobe reported no duration for %s", ErrNoDuration, target)
	}
	return seconds, nil
}

// DecoderSource decodes local audio files to count samples.
type DecoderSource struct {
	Dir string
}

// Duration implements Source.
func (s DecoderSource) Duration(ctx context.Context, ref string) (float64, error) {
	if fileutil.IsRemote(ref) {
		return 0, fmt.Errorf("%w: decoder source needs a local file, got %s", ErrNoDuration, ref)
	}
	path, err := fileutil.ResolveWithin(s.Dir, ref)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open audio: %w", err)
	}
	streamer, format, err := decode(file, filepath.Ext(path))
	if err != nil {
		_ = file.Close()
		return 0, err
	}
	defer streamer.Close()

	samples := streamer.Len()
	if samples <= 0 || format.SampleRate <= 0 {
		return 0, fmt.Errorf("%w: %s has no samples", ErrNoDuration, path)
	}
	return format.SampleRate.D(samples).Seconds(), nil
}

func decode(rc io.ReadCloser, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch strings.ToLower(ext) {
	case ".mp3":
		streamer, format, err = mp3.Decode(rc)
	case ".wav":
		streamer, format, err = wav.Decode(rc)
	case ".flac":
		streamer, format, err = flac.Decode(rc)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: unsupported audio extension %q", ErrNoDuration, ext)
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode %s audio: %w", strings.TrimPrefix(ext, "."), err)
	}
	return streamer, format, nil
}

// ChainSource asks each source in turn and returns the first usable duration.
type ChainSource []Source

// Duration implements Source.
func (c ChainSource) Duration(ctx context.Context, ref string) (float64, error) {
	var errs []error
	for _, src := range c {
		if src == nil {
			continue
		}
		seconds, err := src.Duration(ctx, ref)
		if err == nil && seconds > 0 {
			return seconds, nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return 0, ErrNoDuration
	}
	return 0, errors.Join(errs...)
}
