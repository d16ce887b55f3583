package logging

import "strings"

// FormatSubject builds the composition/stage subject string used in console output.
func FormatSubject(compositionID, stage string) string {
	compositionID = strings.TrimSpace(compositionID)
	stage = strings.TrimSpace(stage)
	if len(compositionID) > 8 {
		compositionID = compositionID[:8]
	}
	switch {
	case compositionID != "" && stage != "":
		return compositionID + " · " + stage
	case compositionID != "":
		return compositionID
	default:
		return stage
	}
}
