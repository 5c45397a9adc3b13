package source

import "strings"

// ExtractLines returns lines start..end (1-based, inclusive) of text.
// If either bound is nil the text is returned unchanged. Bounds are clamped
// to the text, so an out-of-range request yields "" rather than an error.
func ExtractLines(text string, start, end *int) string {
	if start == nil || end == nil {
		return text
	}

	lines := strings.Split(text, "\n")
	lo := clamp(*start-1, len(lines))
	hi := clamp(*end, len(lines))
	if lo >= hi {
		return ""
	}
	return strings.Join(lines[lo:hi], "\n")
}

// clamp resolves a slice index the way negative-index-aware slicing does:
// negatives count from the end, and the result is limited to [0, n].
func clamp(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}
