// Package composition holds the immutable description of one narrated video:
// script segments, timing, background visual and narration audio.
//
// A Composition is never modified after construction. Timing updates (for
// example when audio metadata arrives) produce a new value via WithDuration so
// a reader holding the previous pointer keeps a consistent view. Describe is
// the per-frame entry point used by renderers; it only indexes cached segment
// data and is safe to call at the frame rate.
package composition
