package subtitles_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"storyshort/internal/composition"
	"storyshort/internal/subtitles"
)

func resolved(script string, seconds float64) *composition.Composition {
	comp := composition.New(composition.Input{Script: script, AudioRef: "a.mp3", FPS: 30, FallbackSeconds: 10})
	return comp.WithDuration(seconds)
}

func TestBuildCuesSplitsEvenly(t *testing.T) {
	cues := subtitles.BuildCues(resolved("A cat sat. It slept. The end!", 9))
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(cues))
	}
	want := []subtitles.Cue{
		{Index: 1, Start: 0, End: 3 * time.Second, Text: "A cat sat."},
		{Index: 2, Start: 3 * time.Second, End: 6 * time.Second, Text: "It slept."},
		{Index: 3, Start: 6 * time.Second, End: 9 * time.Second, Text: "The end!"},
	}
	for i := range want {
		if cues[i] != want[i] {
			t.Fatalf("cue %d = %+v, want %+v", i, cues[i], want[i])
		}
	}
}

func TestBuildCuesUsesFallbackBeforeMetadata(t *testing.T) {
	comp := composition.New(composition.Input{Script: "One. Two.", FPS: 30, FallbackSeconds: 10})
	cues := subtitles.BuildCues(comp)
	if len(cues) != 2 || cues[1].End != 10*time.Second {
		t.Fatalf("expected cues over the 10s placeholder, got %+v", cues)
	}
}

func TestBuildCuesEmptyScript(t *testing.T) {
	if cues := subtitles.BuildCues(resolved("   ", 5)); len(cues) != 0 {
		t.Fatalf("expected no cues for blank script, got %+v", cues)
	}
	if cues := subtitles.BuildCues(nil); cues != nil {
		t.Fatalf("expected nil cues for nil composition, got %+v", cues)
	}
}

func TestBuildCuesLastEndsAtDuration(t *testing.T) {
	cues := subtitles.BuildCues(resolved("a. b. c. d. e. f. g.", 10))
	if len(cues) != 7 {
		t.Fatalf("expected 7 cues, got %d", len(cues))
	}
	if cues[6].End != 10*time.Second {
		t.Fatalf("expected last cue to end at 10s, got %v", cues[6].End)
	}
	for i := 1; i < len(cues); i++ {
		if cues[i].Start != cues[i-1].End {
			t.Fatalf("cue %d does not start where cue %d ends", i+1, i)
		}
	}
}

func TestWriteSRTRoundTrips(t *testing.T) {
	cues := subtitles.BuildCues(resolved("A cat sat. It slept. The end!", 9))
	var buf bytes.Buffer
	if err := subtitles.WriteSRT(&buf, cues); err != nil {
		t.Fatalf("WriteSRT returned error: %v", err)
	}
	content := buf.String()
	for _, want := range []string{"00:00:00,000 --> 00:00:03,000", "00:00:06,000 --> 00:00:09,000", "It slept."} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in srt:\n%s", want, content)
		}
	}

	parsed, err := subtitles.ReadSRT(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ReadSRT returned error: %v", err)
	}
	if len(parsed) != len(cues) {
		t.Fatalf("expected %d cues after parse, got %d", len(cues), len(parsed))
	}
	for i := range cues {
		if parsed[i].Start != cues[i].Start || parsed[i].End != cues[i].End || parsed[i].Text != cues[i].Text {
			t.Fatalf("cue %d changed: %+v vs %+v", i, parsed[i], cues[i])
		}
	}
}

func TestWriteSRTNoCuesWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	if err := subtitles.WriteSRT(&buf, nil); err != nil {
		t.Fatalf("WriteSRT returned error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected empty output, got %q", buf.String())
	}
}

func TestWriteSRTFileCreatesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.srt")
	if err := subtitles.WriteSRTFile(path, nil); err != nil {
		t.Fatalf("WriteSRTFile returned error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat srt: %v", err)
	}
	if info.Size() != 0 {
		t.Fatalf("expected empty file, got %d bytes", info.Size())
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00,000"},
		{1500 * time.Millisecond, "00:00:01,500"},
		{time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond, "01:02:03,004"},
		{-time.Second, "00:00:00,000"},
	}
	for _, tt := range tests {
		if got := subtitles.FormatTimestamp(tt.in); got != tt.want {
			t.Fatalf("FormatTimestamp(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	good := subtitles.BuildCues(resolved("One. Two.", 4))
	if issues := subtitles.Validate(good, 4); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
	if issues := subtitles.Validate(good, 10); len(issues) != 1 || !strings.HasPrefix(issues[0], "duration_mismatch") {
		t.Fatalf("expected duration mismatch, got %v", issues)
	}
	if issues := subtitles.Validate(nil, 0); len(issues) != 1 || issues[0] != "empty_subtitle_file" {
		t.Fatalf("expected empty file issue, got %v", issues)
	}
	bad := []subtitles.Cue{
		{Index: 1, Start: 2 * time.Second, End: time.Second, Text: "x"},
		{Index: 2, Start: 0, End: time.Second, Text: " "},
	}
	if issues := subtitles.Validate(bad, 0); len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %v", issues)
	}
}
