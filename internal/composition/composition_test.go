package composition

import (
	"testing"

	"storyshort/internal/timeline"
)

func scenario(t *testing.T) *Composition {
	t.Helper()
	c := New(Input{
		Script:          "A cat sat. It slept. The end!",
		AudioRef:        "/audio/story.mp3",
		Assets:          AssetPair{ImageRef: "/assets/1.jpg", VideoRef: "/assets/v1.mp4"},
		FPS:             30,
		FallbackSeconds: 10,
	})
	return c.WithDuration(9)
}

func TestScenarioDescriptors(t *testing.T) {
	c := scenario(t)
	if c.SegmentCount() != 3 {
		t.Fatalf("expected 3 segments, got %d", c.SegmentCount())
	}
	if c.TotalFrames() != 270 {
		t.Fatalf("expected 270 frames, got %d", c.TotalFrames())
	}
	tests := []struct {
		frame int
		text  string
	}{
		{0, "A cat sat."},
		{89, "A cat sat."},
		{90, "It slept."},
		{269, "The end!"},
		{270, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		desc := c.Describe(tt.frame)
		if desc.SubtitleText != tt.text {
			t.Errorf("frame %d: subtitle %q, want %q", tt.frame, desc.SubtitleText, tt.text)
		}
		if desc.AudioRef != "/audio/story.mp3" {
			t.Errorf("frame %d: audio ref %q", tt.frame, desc.AudioRef)
		}
	}
	if got := c.Describe(270).Segment; got != timeline.NoSegment {
		t.Fatalf("expected NoSegment past the end, got %d", got)
	}
}

func TestVideoTakesPrecedence(t *testing.T) {
	c := scenario(t)
	if v := c.Describe(0).Visual; v.Kind != VisualVideo || v.Ref != "/assets/v1.mp4" {
		t.Fatalf("unexpected visual: %+v", v)
	}
	img := New(Input{Script: "Hi.", Assets: AssetPair{ImageRef: "/assets/2.jpg"}})
	if v := img.Visual(); v.Kind != VisualImage || v.Ref != "/assets/2.jpg" {
		t.Fatalf("unexpected image visual: %+v", v)
	}
	if img.Visual().Looping() {
		t.Fatal("image visual should not loop")
	}
}

func TestDescribeIsIdempotent(t *testing.T) {
	c := scenario(t)
	for _, frame := range []int{0, 45, 135, 269, 500} {
		if a, b := c.Describe(frame), c.Describe(frame); a != b {
			t.Fatalf("frame %d: descriptors differ: %+v vs %+v", frame, a, b)
		}
	}
}

func TestFallbackTimingBeforeMetadata(t *testing.T) {
	c := New(Input{Script: "One. Two.", AudioRef: "a.mp3", FPS: 30, FallbackSeconds: 10})
	timing := c.Timing()
	if !timing.Fallback || timing.Seconds != 10 || timing.Frames != 300 {
		t.Fatalf("unexpected fallback timing: %+v", timing)
	}
	if got := c.Describe(299).SubtitleText; got != "Two." {
		t.Fatalf("frame 299 subtitle %q", got)
	}
}

func TestWithDurationReturnsNewValue(t *testing.T) {
	base := New(Input{Script: "One. Two.", AudioRef: "a.mp3", FPS: 30, FallbackSeconds: 10})
	resolved := base.WithDuration(4)
	if base.TotalFrames() != 300 {
		t.Fatalf("base composition mutated: %d frames", base.TotalFrames())
	}
	if resolved.TotalFrames() != 120 || resolved.Timing().Fallback {
		t.Fatalf("unexpected resolved timing: %+v", resolved.Timing())
	}
	if resolved.ID() != base.ID() {
		t.Fatal("expected timing update to keep composition identity")
	}
	again := resolved.WithDuration(0)
	if again.Seconds() != 10 || !again.Timing().Fallback {
		t.Fatalf("invalid duration should resolve to fallback, got %+v", again.Timing())
	}
}

func TestBlankScriptHasNoSubtitles(t *testing.T) {
	c := New(Input{Script: "  ", AudioRef: "a.mp3"})
	if c.HasSubtitles() {
		t.Fatal("expected no subtitles")
	}
	desc := c.Describe(0)
	if desc.SubtitleText != "" || desc.Segment != timeline.NoSegment {
		t.Fatalf("unexpected descriptor: %+v", desc)
	}
	if c.Spans() != nil {
		t.Fatal("expected no spans")
	}
}

func TestSegmentsReturnsCopy(t *testing.T) {
	c := scenario(t)
	segs := c.Segments()
	segs[0] = "changed"
	if c.Segment(0) != "A cat sat." {
		t.Fatal("Segments exposed internal storage")
	}
	if c.Segment(5) != "" {
		t.Fatal("expected empty string for out-of-range segment")
	}
}

func TestInputsPassThroughUnmodified(t *testing.T) {
	text := "Cafe\u0301 opened.\r\nIt rained."
	ref := " https://cdn.example.com/audio/a.mp3?sig=x "
	c := New(Input{Script: text, AudioRef: ref})
	if c.Script() != text {
		t.Fatalf("Script = %q, want %q", c.Script(), text)
	}
	if c.AudioRef() != ref || c.Describe(0).AudioRef != ref {
		t.Fatalf("audio ref changed: %q / %q", c.AudioRef(), c.Describe(0).AudioRef)
	}
	if c.SegmentCount() != 2 || c.Segment(0) != "Caf\u00e9 opened." || c.Segment(1) != "It rained." {
		t.Fatalf("unexpected segments: %q", c.Segments())
	}
}
