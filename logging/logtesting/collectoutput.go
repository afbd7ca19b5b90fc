package logtesting

import (
	"bytes"
	"strings"

	"github.com/caffeine-storm/shipyard/logging"
)

// Runs 'fn' with every logger redirected into a buffer and returns the
// non-empty lines that were logged.
func CollectOutput(fn func()) []string {
	buf := &bytes.Buffer{}
	reset := logging.Redirect(buf)
	defer reset()

	fn()

	var lines []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
