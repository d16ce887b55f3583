// Package timeline converts audio durations into frame bounds and maps a frame
// cursor onto the active subtitle segment.
//
// Resolve derives total seconds and ceil(seconds*fps) frames, falling back to a
// configured placeholder duration until audio metadata is known. ActiveIndex
// spreads segments evenly across the real-valued frame range and reports
// frames past the last segment as out of range instead of saturating, so the
// final sentence never lingers beyond the narration.
package timeline
