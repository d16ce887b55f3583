package ffprobe

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestParseAndDuration(t *testing.T) {
	payload := []byte(`{
		"streams": [
			{"index": 0, "codec_name": "mp3", "codec_type": "audio", "duration": "12.480000", "sample_rate": "24000", "channels": 1}
		],
		"format": {"filename": "story.mp3", "duration": "12.504000", "bit_rate": "32000", "format_name": "mp3"}
	}`)
	result, err := Parse(payload)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(result.AudioStreams()) != 1 {
		t.Fatalf("expected 1 audio stream, got %d", len(result.AudioStreams()))
	}
	if result.AudioDurationSeconds() != 12.504 {
		t.Fatalf("unexpected duration: %v", result.AudioDurationSeconds())
	}
	if result.BitRate() != 32000 {
		t.Fatalf("unexpected bitrate: %d", result.BitRate())
	}
}

func TestAudioDurationFallsBackToStreams(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", Duration: "99"},
			{CodecType: "audio", Duration: "7.5"},
			{CodecType: "audio", Duration: "8.25"},
		},
		Format: Format{Duration: "N/A"},
	}
	if got := result.AudioDurationSeconds(); got != 8.25 {
		t.Fatalf("expected longest audio stream duration, got %v", got)
	}
}

func TestDurationHandlesInvalidNumbers(t *testing.T) {
	result := Result{Format: Format{Duration: "bad", BitRate: "nope"}}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.AudioDurationSeconds() != 0 {
		t.Fatalf("expected unusable duration to report 0, got %v", result.AudioDurationSeconds())
	}
	if result.BitRate() != 0 {
		t.Fatalf("expected bitrate 0, got %d", result.BitRate())
	}
}

func TestInspectUsesBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a POSIX shell")
	}
	dir := t.TempDir()
	stub := filepath.Join(dir, "ffprobe")
	script := "#!/bin/sh\necho '{\"format\":{\"duration\":\"3.000000\"}}'\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	result, err := Inspect(context.Background(), stub, "narration.mp3")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if result.AudioDurationSeconds() != 3 {
		t.Fatalf("unexpected duration %v", result.AudioDurationSeconds())
	}
	if _, err := Inspect(context.Background(), stub, "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
