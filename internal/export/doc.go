// Package export renders a composition to an MP4 with ffmpeg.
//
// The background visual loops under the narration track (a video with
// -stream_loop, a still image with -loop), subtitles are burned in from an SRT
// sidecar, and encoding stops at the shorter stream. Media references are
// resolved by base name inside the configured asset and audio directories.
// Concurrent exports into the same output directory are serialized with a
// file lock.
package export
