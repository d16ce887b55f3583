package timeline

import "math"

const (
	// DefaultFPS is the frame rate used when none is configured.
	DefaultFPS = 30
	// DefaultFallbackSeconds is the placeholder duration used before audio
	// metadata resolves.
	DefaultFallbackSeconds = 10.0
)

// Resolution is the playback length derived from audio metadata.
type Resolution struct {
	Seconds float64 `json:"seconds"`
	Frames  int     `json:"frames"`
	FPS     int     `json:"fps"`
	// Fallback is true when Seconds came from the placeholder rather than the
	// audio asset.
	Fallback bool `json:"fallback"`
}

// Resolve computes the playback duration. metadataSeconds is used when it is
// positive and finite, otherwise fallbackSeconds is. An unusable fallback or
// fps is replaced by the package defaults so the result is always renderable.
func Resolve(metadataSeconds, fallbackSeconds float64, fps int) Resolution {
	fps = NormalizeFPS(fps)
	if ValidSeconds(metadataSeconds) {
		return Resolution{Seconds: metadataSeconds, Frames: FrameCount(metadataSeconds, fps), FPS: fps}
	}
	if !ValidSeconds(fallbackSeconds) {
		fallbackSeconds = DefaultFallbackSeconds
	}
	return Resolution{
		Seconds:  fallbackSeconds,
		Frames:   FrameCount(fallbackSeconds, fps),
		FPS:      fps,
		Fallback: true,
	}
}

// FrameCount returns ceil(seconds*fps), never less than one frame.
func FrameCount(seconds float64, fps int) int {
	if !ValidSeconds(seconds) || fps <= 0 {
		return 1
	}
	frames := math.Ceil(seconds * float64(fps))
	if frames < 1 {
		return 1
	}
	if frames > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(frames)
}

// ValidSeconds reports whether seconds is a usable positive, finite duration.
func ValidSeconds(seconds float64) bool {
	return seconds > 0 && !math.IsInf(seconds, 0) && !math.IsNaN(seconds)
}

// NormalizeFPS returns fps, or DefaultFPS when fps is not positive.
func NormalizeFPS(fps int) int {
	if fps <= 0 {
		return DefaultFPS
	}
	return fps
}

// Clamp limits frame to [0, total-1].
func Clamp(frame, total int) int {
	if total <= 0 || frame < 0 {
		return 0
	}
	if frame >= total {
		return total - 1
	}
	return frame
}

// FrameSeconds converts a frame index to its start time in seconds.
func FrameSeconds(frame, fps int) float64 {
	return float64(frame) / float64(NormalizeFPS(fps))
}
