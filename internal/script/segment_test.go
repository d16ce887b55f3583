package script

import (
	"reflect"
	"strings"
	"testing"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single sentence", "Hello.", []string{"Hello."}},
		{"two sentences", "Hi. Bye!", []string{"Hi.", "Bye!"}},
		{"empty", "", []string{""}},
		{"whitespace only", "   \n\t", []string{""}},
		{"no terminator", "just some words", []string{"just some words"}},
		{"question and newline", "Ready?\n\nGo now", []string{"Ready?", "Go now"}},
		{"ellipsis", "Wait... Now!", []string{"Wait...", "Now!"}},
		{"terminator without whitespace", "v1.2 is out. Yes", []string{"v1.2 is out.", "Yes"}},
		{"trailing whitespace", "One. Two.   ", []string{"One.", "Two."}},
		{"leading whitespace", "  One. Two", []string{"One.", "Two"}},
		{"non-ascii space", "Ça va. Oui.", []string{"Ça va.", "Oui."}},
		{"scenario", "A cat sat. It slept. The end!", []string{"A cat sat.", "It slept.", "The end!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Segment(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSegmentElementsNonEmpty(t *testing.T) {
	inputs := []string{
		"A. B. C.",
		"First!  Second?\tThird.",
		". . .",
		"!? Hm. ",
	}
	for _, input := range inputs {
		segments := Segment(input)
		if len(segments) == 0 {
			t.Fatalf("Segment(%q) returned no segments", input)
		}
		for i, seg := range segments {
			if strings.TrimSpace(seg) == "" {
				t.Fatalf("Segment(%q)[%d] is blank", input, i)
			}
		}
	}
}

func TestSegmentReconstructsScript(t *testing.T) {
	input := "The fox ran. It hid!  Why? Nobody knows"
	joined := strings.Join(Segment(input), " ")
	if strings.Join(strings.Fields(joined), " ") != strings.Join(strings.Fields(input), " ") {
		t.Fatalf("segments do not reconstruct script: %q", joined)
	}
}

func TestIsPlaceholder(t *testing.T) {
	if !IsPlaceholder(Segment("")) {
		t.Fatal("expected blank script to produce placeholder")
	}
	if IsPlaceholder(Segment("Hi.")) {
		t.Fatal("did not expect placeholder for real sentence")
	}
}

func TestNormalize(t *testing.T) {
	decomposed := "Cafe\u0301.\r\nNext."
	got := Normalize(decomposed)
	if got != "Caf\u00e9.\nNext." {
		t.Fatalf("Normalize = %q", got)
	}
	if segs := Segment(got); len(segs) != 2 {
		t.Fatalf("expected 2 segments after normalize, got %q", segs)
	}
}
