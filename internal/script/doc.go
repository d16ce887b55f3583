// Package script turns narration text into the ordered sentence units shown as
// subtitles.
//
// Segment is pure and deterministic: it splits on a sentence terminator (.,
// ?, !) that is immediately followed by whitespace, keeps the terminator with
// its sentence, and drops the separating whitespace. An input without any
// usable sentence yields a single placeholder segment holding the trimmed
// input, which callers treat as "no subtitle" when it is empty.
package script
