package playback

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"storyshort/internal/composition"
	"storyshort/internal/logging"
	"storyshort/internal/media/audio"
	"storyshort/internal/timeline"
)

// ErrNoComposition is returned by transport operations before Load.
var ErrNoComposition = errors.New("no composition loaded")

// Phase is the transport state of a Host.
type Phase string

const (
	PhaseEmpty         Phase = "empty"
	PhaseUninitialized Phase = "uninitialized"
	PhaseReady         Phase = "ready"
	PhasePlaying       Phase = "playing"
	PhasePaused        Phase = "paused"
)

// Status is a point-in-time view of the host.
type Status struct {
	CompositionID string  `json:"composition_id" yaml:"composition_id"`
	Phase         Phase   `json:"phase" yaml:"phase"`
	Resolved      bool    `json:"resolved" yaml:"resolved"`
	Frame         int     `json:"frame" yaml:"frame"`
	TotalFrames   int     `json:"total_frames" yaml:"total_frames"`
	FPS           int     `json:"fps" yaml:"fps"`
	Seconds       float64 `json:"seconds" yaml:"seconds"`
	Fallback      bool    `json:"fallback" yaml:"fallback"`
	AudioRef      string  `json:"audio_ref" yaml:"audio_ref"`
}

// Option configures a Host.
type Option func(*Host)

// WithResolvedHook registers fn to run, outside the host lock, each time
// audio metadata finalizes a composition's timing.
func WithResolvedHook(fn func(*composition.Composition)) Option {
	return func(h *Host) {
		h.onResolved = fn
	}
}

// Host owns the cursor and transport state for one composition at a time.
type Host struct {
	mu         sync.Mutex
	comp       *composition.Composition
	frame      int
	phase      Phase
	resolved   bool
	logger     *slog.Logger
	onResolved func(*composition.Composition)
}

// NewHost constructs an empty host.
func NewHost(logger *slog.Logger, opts ...Option) *Host {
	h := &Host{
		phase:  PhaseEmpty,
		logger: logging.NewComponentLogger(logger, "playback"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Load replaces the active composition and resets the host to the
// uninitialized state on fallback bounds.
func (h *Host) Load(comp *composition.Composition) composition.RenderDescriptor {
	h.mu.Lock()
	h.comp = comp
	h.frame = 0
	h.phase = PhaseUninitialized
	h.resolved = false
	desc := comp.Describe(0)
	h.mu.Unlock()

	h.logger.Info("composition loaded",
		logging.String(logging.FieldCompositionID, comp.ID()),
		logging.String(logging.FieldAudioRef, comp.AudioRef()),
		logging.Int("segments", comp.SegmentCount()),
		logging.Int("fallback_frames", comp.TotalFrames()),
	)
	return desc
}

// ApplyMetadata finalizes the active composition's bounds from ev. It returns
// false when the event is stale, failed, or the bounds were already resolved.
func (h *Host) ApplyMetadata(ev audio.MetadataEvent) bool {
	h.mu.Lock()
	if h.comp == nil || ev.AudioRef != h.comp.AudioRef() {
		h.mu.Unlock()
		h.logger.Debug("discarding stale audio metadata", logging.String(logging.FieldAudioRef, ev.AudioRef))
		return false
	}
	if h.resolved {
		h.mu.Unlock()
		return false
	}
	if ev.Err != nil {
		id := h.comp.ID()
		h.mu.Unlock()
		logging.WarnWithContext(h.logger, "audio metadata unavailable", "audio_metadata_failed",
			logging.String(logging.FieldCompositionID, id),
			logging.String(logging.FieldAudioRef, ev.AudioRef),
			logging.Error(ev.Err),
			logging.String(logging.FieldImpact, "playback continues on placeholder duration"),
			logging.String(logging.FieldErrorHint, "verify the narration file exists and ffprobe can read it"),
		)
		return false
	}

	next := h.comp.WithDuration(ev.DurationSeconds)
	h.comp = next
	h.resolved = true
	if h.phase == PhaseUninitialized {
		h.phase = PhaseReady
	}
	if last := next.TotalFrames() - 1; h.frame > last {
		h.frame = last
	}
	hook := h.onResolved
	h.mu.Unlock()

	if next.Timing().Fallback {
		logging.WarnWithContext(h.logger, "audio reported no usable duration", "audio_duration_invalid",
			logging.String(logging.FieldCompositionID, next.ID()),
			logging.Float64("reported_seconds", ev.DurationSeconds),
			logging.String(logging.FieldImpact, "subtitle timing uses the placeholder duration"),
		)
	} else {
		h.logger.Info("audio metadata resolved",
			logging.String(logging.FieldCompositionID, next.ID()),
			logging.Float64("seconds", next.Seconds()),
			logging.Int("frames", next.TotalFrames()),
		)
	}
	if hook != nil {
		hook(next)
	}
	return true
}

// Watch resolves the active composition's audio duration through src and
// applies the result. The returned channel is closed once the event has been
// applied or discarded, or ctx is cancelled.
func (h *Host) Watch(ctx context.Context, src audio.Source) <-chan struct{} {
	done := make(chan struct{})
	comp := h.Composition()
	if comp == nil || comp.AudioRef() == "" || src == nil {
		close(done)
		return done
	}
	events := audio.Watch(ctx, src, comp.AudioRef())
	go func() {
		defer close(done)
		for ev := range events {
			h.ApplyMetadata(ev)
		}
	}()
	return done
}

// Play starts advancing the cursor on Tick. Playing from the last frame
// rewinds to the start.
func (h *Host) Play() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.comp == nil {
		return ErrNoComposition
	}
	if h.frame >= h.comp.TotalFrames()-1 {
		h.frame = 0
	}
	h.phase = PhasePlaying
	return nil
}

// Pause freezes the cursor.
func (h *Host) Pause() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.comp == nil {
		return ErrNoComposition
	}
	if h.phase == PhasePlaying {
		h.phase = PhasePaused
	}
	return nil
}

// Scrub moves the cursor to frame, clamped into [0, totalFrames-1], and
// returns the descriptor for the new position.
func (h *Host) Scrub(frame int) (composition.RenderDescriptor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.comp == nil {
		return composition.RenderDescriptor{}, ErrNoComposition
	}
	h.frame = timeline.Clamp(frame, h.comp.TotalFrames())
	return h.comp.Describe(h.frame), nil
}

// Tick returns the descriptor for the current frame and, while playing,
// advances the cursor. Reaching the last frame pauses playback. The boolean
// is false when nothing is playing.
func (h *Host) Tick() (composition.RenderDescriptor, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.comp == nil || h.phase != PhasePlaying {
		return composition.RenderDescriptor{}, false
	}
	desc := h.comp.Describe(h.frame)
	if h.frame >= h.comp.TotalFrames()-1 {
		h.phase = PhasePaused
	} else {
		h.frame++
	}
	return desc, true
}

// Current returns the descriptor for the cursor position.
func (h *Host) Current() (composition.RenderDescriptor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.comp == nil {
		return composition.RenderDescriptor{}, ErrNoComposition
	}
	return h.comp.Describe(h.frame), nil
}

// Composition returns the active composition, or nil before Load.
func (h *Host) Composition() *composition.Composition {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.comp
}

// Status reports the host's transport state.
func (h *Host) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	status := Status{Phase: h.phase, Resolved: h.resolved, Frame: h.frame}
	if h.comp != nil {
		timing := h.comp.Timing()
		status.CompositionID = h.comp.ID()
		status.TotalFrames = timing.Frames
		status.FPS = timing.FPS
		status.Seconds = timing.Seconds
		status.Fallback = timing.Fallback
		status.AudioRef = h.comp.AudioRef()
	}
	return status
}
