// Package api serves the composition preview over HTTP.
//
// A gin router wraps a single playback.Host: clients post a generation result
// (script plus narration reference) to swap the active composition, drive
// play/pause/scrub, fetch render descriptors for arbitrary frames, download
// the SRT sidecar, and trigger an MP4 export. A failed request never replaces
// the active composition.
//
// DTOs use camelCase JSON tags for browser consumers and RFC3339 timestamps
// with milliseconds.
package api
