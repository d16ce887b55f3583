// Package subtitles turns a composition's segments into an SRT sidecar.
//
// Cue boundaries use the same proportional split as on-screen playback, so a
// player showing the sidecar agrees with the preview frame for frame. Reading
// and writing go through go-astisub.
package subtitles
