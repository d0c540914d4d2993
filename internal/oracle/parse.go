package oracle

import (
	"regexp"
	"strings"
)

var thinkRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripReasoning removes <think>...</think> blocks that reasoning models
// emit before their actual answer. Must run before any line-format parsing,
// otherwise prose inside the block can shadow the expected lines.
func StripReasoning(text string) string {
	return strings.TrimSpace(thinkRe.ReplaceAllString(text, ""))
}

// ParseLabeledLines scans free-form text for lines of the form
// "<label>: <value>" and returns the first value found for each requested
// label. Label matching is case-insensitive and tolerates leading list
// markers. Labels that never appear are absent from the result, so callers
// can apply their own defaults.
func ParseLabeledLines(text string, labels ...string) map[string]string {
	out := make(map[string]string, len(labels))

	for _, raw := range strings.Split(StripReasoning(text), "\n") {
		line := strings.TrimLeft(strings.TrimSpace(raw), "-*•> \t")
		for _, label := range labels {
			if len(line) <= len(label) {
				continue
			}
			if !strings.EqualFold(line[:len(label)], label) {
				continue
			}
			rest := strings.TrimLeft(line[len(label):], "*")
			if !strings.HasPrefix(rest, ":") {
				continue
			}
			if _, seen := out[label]; seen {
				continue
			}
			value := strings.TrimPrefix(rest, ":")
			out[label] = strings.Trim(value, "* \t")
		}
	}

	return out
}
