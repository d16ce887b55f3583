package playback

import (
	"context"
	"time"

	"storyshort/internal/composition"
	"storyshort/internal/timeline"
)

// Renderer paints one frame.
type Renderer interface {
	Render(composition.RenderDescriptor)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(composition.RenderDescriptor)

func (f RendererFunc) Render(desc composition.RenderDescriptor) { f(desc) }

// Run ticks the host at the active composition's frame rate and hands every
// rendered frame to r until ctx is cancelled.
func (h *Host) Run(ctx context.Context, r Renderer) error {
	interval := h.interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if desc, ok := h.Tick(); ok && r != nil {
				r.Render(desc)
			}
			if next := h.interval(); next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

func (h *Host) interval() time.Duration {
	fps := timeline.DefaultFPS
	if comp := h.Composition(); comp != nil {
		fps = comp.FPS()
	}
	return time.Second / time.Duration(timeline.NormalizeFPS(fps))
}
