package api

import (
	"storyshort/internal/composition"
	"storyshort/internal/library"
	"storyshort/internal/playback"
)

// FromComposition converts a composition to its API representation.
func FromComposition(comp *composition.Composition) Composition {
	if comp == nil {
		return Composition{}
	}
	timing := comp.Timing()
	dto := Composition{
		ID:          comp.ID(),
		Script:      comp.Script(),
		Segments:    comp.Segments(),
		AudioRef:    comp.AudioRef(),
		Visual:      fromVisual(comp.Visual()),
		FPS:         timing.FPS,
		Seconds:     timing.Seconds,
		TotalFrames: timing.Frames,
		Fallback:    timing.Fallback,
	}
	for _, span := range comp.Spans() {
		dto.Spans = append(dto.Spans, Span{Index: span.Index, StartFrame: span.Start, EndFrame: span.End})
	}
	if created := comp.CreatedAt(); !created.IsZero() {
		dto.CreatedAt = created.UTC().Format(dateTimeFormat)
	}
	return dto
}

// FromDescriptor converts a render descriptor.
func FromDescriptor(desc composition.RenderDescriptor) Frame {
	return Frame{
		Frame:        desc.Frame,
		Visual:       fromVisual(desc.Visual),
		SubtitleText: desc.SubtitleText,
		Segment:      desc.Segment,
		AudioRef:     desc.AudioRef,
	}
}

// FromStatus converts a host status.
func FromStatus(status playback.Status) PlaybackStatus {
	return PlaybackStatus{
		CompositionID: status.CompositionID,
		Phase:         string(status.Phase),
		Resolved:      status.Resolved,
		Frame:         status.Frame,
		TotalFrames:   status.TotalFrames,
		FPS:           status.FPS,
		Seconds:       status.Seconds,
		Fallback:      status.Fallback,
		AudioRef:      status.AudioRef,
	}
}

// FromRecords converts stored compositions.
func FromRecords(records []*library.Record) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(records))
	for _, rec := range records {
		entry := HistoryEntry{
			ID:           rec.ID,
			Script:       rec.Script,
			SegmentCount: rec.SegmentCount,
			AudioRef:     rec.AudioRef,
			Visual:       Visual{Kind: rec.VisualKind, Ref: rec.VisualRef},
			Seconds:      rec.Seconds,
			Frames:       rec.Frames,
			Degraded:     rec.Degraded,
		}
		if !rec.CreatedAt.IsZero() {
			entry.CreatedAt = rec.CreatedAt.UTC().Format(dateTimeFormat)
		}
		out = append(out, entry)
	}
	return out
}

func fromVisual(v composition.Visual) Visual {
	return Visual{Kind: string(v.Kind), Ref: v.Ref}
}
