package composition

import (
	"time"

	"github.com/google/uuid"

	"storyshort/internal/script"
	"storyshort/internal/timeline"
)

// Input carries everything needed to build a Composition.
type Input struct {
	Script          string
	AudioRef        string
	Assets          AssetPair
	FPS             int
	FallbackSeconds float64
}

// Composition is the immutable bundle rendered by a playback host.
type Composition struct {
	id        string
	script    string
	segments  []string
	visual    Visual
	audioRef  string
	fallback  float64
	timing    timeline.Resolution
	createdAt time.Time
}

// New builds a composition using the fallback duration. Blank scripts are
// accepted and render without subtitles.
func New(in Input) *Composition {
	fallback := in.FallbackSeconds
	if !timeline.ValidSeconds(fallback) {
		fallback = timeline.DefaultFallbackSeconds
	}
	return &Composition{
		id:        uuid.NewString(),
		script:    in.Script,
		segments:  script.Segment(script.Normalize(in.Script)),
		visual:    SelectVisual(in.Assets),
		audioRef:  in.AudioRef,
		fallback:  fallback,
		timing:    timeline.Resolve(0, fallback, in.FPS),
		createdAt: time.Now().UTC(),
	}
}

// WithDuration returns a copy whose timing is resolved from metadataSeconds.
// Invalid durations resolve to the fallback. Prior timing is discarded.
func (c *Composition) WithDuration(metadataSeconds float64) *Composition {
	next := *c
	next.timing = timeline.Resolve(metadataSeconds, c.fallback, c.timing.FPS)
	return &next
}

func (c *Composition) ID() string                  { return c.id }
func (c *Composition) Script() string              { return c.script }
func (c *Composition) Visual() Visual              { return c.visual }
func (c *Composition) AudioRef() string            { return c.audioRef }
func (c *Composition) FPS() int                    { return c.timing.FPS }
func (c *Composition) Seconds() float64            { return c.timing.Seconds }
func (c *Composition) TotalFrames() int            { return c.timing.Frames }
func (c *Composition) Timing() timeline.Resolution { return c.timing }
func (c *Composition) CreatedAt() time.Time        { return c.createdAt }

// SegmentCount returns the number of display units, at least one.
func (c *Composition) SegmentCount() int { return len(c.segments) }

// Segments returns a copy of the cached display units.
func (c *Composition) Segments() []string {
	out := make([]string, len(c.segments))
	copy(out, c.segments)
	return out
}

// Segment returns the display unit at index, or "" when out of range.
func (c *Composition) Segment(index int) string {
	if index < 0 || index >= len(c.segments) {
		return ""
	}
	return c.segments[index]
}

// HasSubtitles reports whether the script produced any displayable text.
func (c *Composition) HasSubtitles() bool {
	return !script.IsPlaceholder(c.segments)
}

// Spans returns the frame range of every displayed segment.
func (c *Composition) Spans() []timeline.Span {
	if !c.HasSubtitles() {
		return nil
	}
	return timeline.Spans(len(c.segments), c.timing.Seconds, c.timing.FPS, c.timing.Frames)
}
