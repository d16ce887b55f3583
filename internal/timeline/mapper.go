package timeline

import "math"

// NoSegment is the index reported when a frame maps to no subtitle.
const NoSegment = -1

// FramesPerSegment returns the real-valued number of frames each segment is
// displayed for. It is zero when the inputs cannot describe a timeline.
func FramesPerSegment(segmentCount int, totalSeconds float64, fps int) float64 {
	if segmentCount <= 0 || fps <= 0 || !ValidSeconds(totalSeconds) {
		return 0
	}
	return totalSeconds * float64(fps) / float64(segmentCount)
}

// ActiveIndex returns the segment shown at frame. The boolean is false when
// the frame falls outside [0, segmentCount), in which case the index is
// NoSegment.
func ActiveIndex(frame, segmentCount int, totalSeconds float64, fps int) (int, bool) {
	per := FramesPerSegment(segmentCount, totalSeconds, fps)
	if per == 0 || frame < 0 {
		return NoSegment, false
	}
	index := math.Floor(float64(frame) / per)
	if index >= float64(segmentCount) {
		return NoSegment, false
	}
	return int(index), true
}

// Span is the inclusive frame range during which a segment is active.
type Span struct {
	Index int `json:"index"`
	Start int `json:"start_frame"`
	End   int `json:"end_frame"`
}

// Spans lists the frame ranges ActiveIndex assigns to each segment within the
// first totalFrames frames. Segments that receive no frame are omitted.
func Spans(segmentCount int, totalSeconds float64, fps, totalFrames int) []Span {
	if FramesPerSegment(segmentCount, totalSeconds, fps) == 0 || totalFrames <= 0 {
		return nil
	}
	spans := make([]Span, 0, segmentCount)
	current := Span{Index: NoSegment}
	for frame := 0; frame < totalFrames; frame++ {
		index, ok := ActiveIndex(frame, segmentCount, totalSeconds, fps)
		if !ok {
			break
		}
		if index != current.Index {
			if current.Index != NoSegment {
				spans = append(spans, current)
			}
			current = Span{Index: index, Start: frame}
		}
		current.End = frame
	}
	if current.Index != NoSegment {
		spans = append(spans, current)
	}
	return spans
}
