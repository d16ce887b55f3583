package deps

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Detail != "" {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be unavailable with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected blank result: %#v", results[2])
	}
}

func writeFFmpeg(t *testing.T, listing string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg")
	body := "#!/bin/sh\ncat <<'OUT'\n" + listing + "\nOUT\n"
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write ffmpeg stub: %v", err)
	}
	return path
}

func TestCheckFFmpegFilterPresent(t *testing.T) {
	listing := `Filters:
  T.. = Timeline support
 ... scale             V->V       Scale the input video size.
 ... subtitles         V->V       Render text subtitles onto input video using the libass library.`
	status := CheckFFmpegFilter(context.Background(), writeFFmpeg(t, listing), SubtitlesFilter)
	if !status.Available {
		t.Fatalf("expected filter to be available, got %#v", status)
	}
}

func TestCheckFFmpegFilterMissing(t *testing.T) {
	listing := ` ... scale             V->V       Scale the input video size.`
	status := CheckFFmpegFilter(context.Background(), writeFFmpeg(t, listing), SubtitlesFilter)
	if status.Available || status.Detail == "" {
		t.Fatalf("expected missing filter, got %#v", status)
	}
}

func TestCheckFFmpegFilterMissingBinary(t *testing.T) {
	status := CheckFFmpegFilter(context.Background(), "clearly-not-present-ffmpeg", SubtitlesFilter)
	if status.Available {
		t.Fatal("expected unavailable status")
	}
}
