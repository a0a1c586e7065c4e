package runner

import "strings"

// lastLines returns the last n non-empty lines from external tool output,
// joined for inclusion in an error message
func lastLines(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}
