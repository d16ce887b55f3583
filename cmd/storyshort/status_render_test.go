package main

import (
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"

	"storyshort/internal/deps"
)

func TestRenderStatusLinePlain(t *testing.T) {
	line := renderStatusLine("FFmpeg", statusOK, "/usr/bin/ffmpeg", false)
	if line != "  FFmpeg:                [OK] /usr/bin/ffmpeg" {
		t.Fatalf("unexpected line %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatal("plain output should not contain ANSI codes")
	}
}

func TestRenderStatusLineColorized(t *testing.T) {
	text.EnableColors()
	line := renderStatusLine("FFmpeg", statusError, "missing", true)
	if !strings.Contains(line, "\x1b[") || !strings.Contains(line, "[ERROR] missing") {
		t.Fatalf("expected colorized error line, got %q", line)
	}
}

func TestDepKind(t *testing.T) {
	cases := []struct {
		status deps.Status
		want   statusKind
	}{
		{deps.Status{Available: true}, statusOK},
		{deps.Status{Optional: true}, statusWarn},
		{deps.Status{}, statusError},
	}
	for _, tc := range cases {
		if got := depKind(tc.status); got != tc.want {
			t.Fatalf("depKind(%+v) = %v, want %v", tc.status, got, tc.want)
		}
	}
}
