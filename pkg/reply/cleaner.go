// Package reply post-processes raw model replies
package reply

import "strings"

// Cleaner drops a conversational first line from a reply
type Cleaner struct {
	// Preambles are matched as case-sensitive substrings of the first line
	Preambles []string
}

// NewCleaner creates a Cleaner for the given preamble substrings
func NewCleaner(preambles []string) Cleaner {
	return Cleaner{Preambles: append([]string(nil), preambles...)}
}

// Clean returns raw without its first line when that line contains a preamble,
// otherwise raw unchanged. On a match the remaining lines are rejoined with "\n",
// so CR line endings and the final newline are dropped.
func (c Cleaner) Clean(raw string) string {
	lines := splitLines(raw)
	if len(lines) == 0 {
		return raw
	}

	for _, p := range c.Preambles {
		if p != "" && strings.Contains(lines[0], p) {
			return strings.Join(lines[1:], "\n")
		}
	}
	return raw
}

// splitLines splits on "\n" with an optional preceding "\r". A trailing
// newline does not produce an empty final line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
