package composition

import "storyshort/internal/timeline"

// RenderDescriptor is the renderable state of a single frame.
type RenderDescriptor struct {
	Frame        int    `json:"frame" yaml:"frame"`
	Visual       Visual `json:"visual" yaml:"visual"`
	SubtitleText string `json:"subtitle_text" yaml:"subtitle_text"`
	// Segment is the active segment index or timeline.NoSegment.
	Segment  int    `json:"segment" yaml:"segment"`
	AudioRef string `json:"audio_ref" yaml:"audio_ref"`
}

// Describe returns the render descriptor for frame. Frames past the last
// segment, or before zero, carry no subtitle text.
func (c *Composition) Describe(frame int) RenderDescriptor {
	desc := RenderDescriptor{
		Frame:    frame,
		Visual:   c.visual,
		Segment:  timeline.NoSegment,
		AudioRef: c.audioRef,
	}
	if !c.HasSubtitles() {
		return desc
	}
	index, ok := timeline.ActiveIndex(frame, len(c.segments), c.timing.Seconds, c.timing.FPS)
	if !ok {
		return desc
	}
	desc.Segment = index
	desc.SubtitleText = c.segments[index]
	return desc
}
