package deps

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// SubtitlesFilter is the ffmpeg filter used to burn captions into exports.
const SubtitlesFilter = "subtitles"

// CheckFFmpegFilter reports whether the ffmpeg at binary was built with the
// named filter. Builds without libass lack "subtitles", and exports then fail
// only after the render has started.
func CheckFFmpegFilter(ctx context.Context, binary, filter string) Status {
	binary = strings.TrimSpace(binary)
	result := Status{
		Name:        "FFmpeg " + filter + " filter",
		Command:     binary,
		Description: "Required to burn subtitles into exports",
	}
	if binary == "" {
		result.Detail = "command not configured"
		return result
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		result.Detail = fmt.Sprintf("binary %q not found", binary)
		return result
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	out, err := exec.CommandContext(checkCtx, path, "-hide_banner", "-filters").Output()
	if err != nil {
		result.Detail = fmt.Sprintf("list filters: %v", err)
		return result
	}
	if !hasFilter(out, filter) {
		result.Detail = fmt.Sprintf("filter %q not compiled in", filter)
		return result
	}
	result.Available = true
	return result
}

// hasFilter scans `ffmpeg -filters` output, whose rows look like
// " ... subtitles         V->V       Render text subtitles ...".
func hasFilter(listing []byte, filter string) bool {
	scanner := bufio.NewScanner(bytes.NewReader(listing))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[1] == filter {
			return true
		}
	}
	return false
}
