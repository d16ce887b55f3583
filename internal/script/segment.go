package script

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Segment splits text into sentence units. The result always has at least one
// element.
func Segment(text string) []string {
	segments := make([]string, 0, strings.Count(text, ". ")+1)
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		next := i + size
		if !isTerminator(r) || next >= len(text) {
			i = next
			continue
		}
		ws, wsSize := utf8.DecodeRuneInString(text[next:])
		if !unicode.IsSpace(ws) {
			i = next
			continue
		}
		segments = appendSegment(segments, text[start:next])
		i = next + wsSize
		for i < len(text) {
			ws, wsSize = utf8.DecodeRuneInString(text[i:])
			if !unicode.IsSpace(ws) {
				break
			}
			i += wsSize
		}
		start = i
	}
	segments = appendSegment(segments, text[start:])
	if len(segments) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return segments
}

// IsPlaceholder reports whether segments is the single empty segment produced
// for blank input.
func IsPlaceholder(segments []string) bool {
	return len(segments) == 1 && segments[0] == ""
}

// Normalize prepares generated text for segmentation: line endings become \n
// and the text is put in Unicode NFC so visually identical scripts segment the
// same way.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFC.String(text)
}

func appendSegment(segments []string, fragment string) []string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return segments
	}
	return append(segments, fragment)
}

func isTerminator(r rune) bool {
	return r == '.' || r == '?' || r == '!'
}
