package subtitles

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/asticode/go-astisub"
)

const durationToleranceSeconds = 0.5

// WriteSRT renders cues as SRT. Writing zero cues produces no output.
func WriteSRT(w io.Writer, cues []Cue) error {
	if len(cues) == 0 {
		return nil
	}
	subs := astisub.NewSubtitles()
	for _, cue := range cues {
		item := &astisub.Item{
			Index:   cue.Index,
			StartAt: cue.Start,
			EndAt:   cue.End,
		}
		for _, line := range strings.Split(cue.Text, "\n") {
			item.Lines = append(item.Lines, astisub.Line{Items: []astisub.LineItem{{Text: line}}})
		}
		subs.Items = append(subs.Items, item)
	}
	if err := subs.WriteToSRT(w); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

// WriteSRTFile writes cues to path. The file is created even when empty so
// callers can rely on its existence.
func WriteSRTFile(path string, cues []Cue) error {
	var buf bytes.Buffer
	if err := WriteSRT(&buf, cues); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write srt file: %w", err)
	}
	return nil
}

// ReadSRT parses SRT content into cues.
func ReadSRT(r io.Reader) ([]Cue, error) {
	subs, err := astisub.ReadFromSRT(r)
	if err != nil {
		return nil, fmt.Errorf("parse srt: %w", err)
	}
	cues := make([]Cue, 0, len(subs.Items))
	for i, item := range subs.Items {
		cues = append(cues, Cue{
			Index: i + 1,
			Start: item.StartAt,
			End:   item.EndAt,
			Text:  itemText(item),
		})
	}
	return cues, nil
}

func itemText(item *astisub.Item) string {
	lines := make([]string, 0, len(item.Lines))
	for _, line := range item.Lines {
		parts := make([]string, 0, len(line.Items))
		for _, li := range line.Items {
			parts = append(parts, li.Text)
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}

// FormatTimestamp renders d as an SRT timestamp (HH:MM:SS,mmm).
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Round(time.Millisecond).Milliseconds()
	hours := ms / 3_600_000
	ms -= hours * 3_600_000
	minutes := ms / 60_000
	ms -= minutes * 60_000
	seconds := ms / 1000
	ms -= seconds * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, ms)
}

// Validate checks cues for format problems. An empty result means the cues
// passed. When mediaSeconds is positive the last cue must end within half a
// second of it.
func Validate(cues []Cue, mediaSeconds float64) []string {
	if len(cues) == 0 {
		return []string{"empty_subtitle_file"}
	}
	var issues []string
	var prevEnd time.Duration
	for _, cue := range cues {
		if cue.End <= cue.Start {
			issues = append(issues, fmt.Sprintf("cue %d: non_positive_duration", cue.Index))
		}
		if cue.Start < prevEnd {
			issues = append(issues, fmt.Sprintf("cue %d: overlaps_previous", cue.Index))
		}
		if strings.TrimSpace(cue.Text) == "" {
			issues = append(issues, fmt.Sprintf("cue %d: empty_text", cue.Index))
		}
		prevEnd = cue.End
	}
	if mediaSeconds > 0 {
		delta := mediaSeconds - prevEnd.Seconds()
		if math.Abs(delta) > durationToleranceSeconds {
			issues = append(issues, fmt.Sprintf("duration_mismatch: delta=%.1fs", delta))
		}
	}
	return issues
}
