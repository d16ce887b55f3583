// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video stream properties
//   - Format: container-level metadata (duration, size, bitrate)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Narration assets are often short mp3 files whose container duration is
// missing when served over HTTP; AudioDurationSeconds falls back to the audio
// stream durations in that case.
package ffprobe
