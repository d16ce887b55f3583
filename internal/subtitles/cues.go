package subtitles

import (
	"math"
	"time"

	"storyshort/internal/composition"
)

// Cue is one timed subtitle line.
type Cue struct {
	Index int           `json:"index" yaml:"index"`
	Start time.Duration `json:"start" yaml:"start"`
	End   time.Duration `json:"end" yaml:"end"`
	Text  string        `json:"text" yaml:"text"`
}

// BuildCues splits the composition's resolved duration evenly across its
// segments. A composition without subtitle text yields no cues.
func BuildCues(comp *composition.Composition) []Cue {
	if comp == nil || !comp.HasSubtitles() {
		return nil
	}
	return cuesFor(comp.Segments(), comp.Seconds())
}

func cuesFor(segments []string, seconds float64) []Cue {
	n := len(segments)
	if n == 0 || seconds <= 0 {
		return nil
	}
	per := seconds / float64(n)
	cues := make([]Cue, 0, n)
	for i, text := range segments {
		start := float64(i) * per
		end := math.Min(seconds, float64(i+1)*per)
		cues = append(cues, Cue{
			Index: i + 1,
			Start: toDuration(start),
			End:   toDuration(end),
			Text:  text,
		})
	}
	return cues
}

func toDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds*1000)) * time.Millisecond
}
