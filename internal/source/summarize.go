package source

import "strings"

// Method is a line that looks like a method declaration.
type Method struct {
	Line      int    `json:"line"`
	Signature string `json:"signature"`
}

// Metadata summarizes recovered source.
type Metadata struct {
	TotalLines   int      `json:"total_lines"`
	SizeBytes    int      `json:"size_bytes"`
	MethodsCount int      `json:"methods_count"`
	Methods      []Method `json:"methods"`
}

// Summarize counts lines and bytes and lists method-like lines.
//
// The method detection is a heuristic: a line qualifies when it contains an
// access modifier substring (public, private or protected), both
// parentheses, and either '{' or ';'. It ignores package-private methods,
// counts field initializers that call constructors, and can match text in
// comments. Use the outline package when accuracy matters.
func Summarize(text string) Metadata {
	lines := strings.Split(text, "\n")
	methods := []Method{}
	for i, line := range lines {
		if !looksLikeMethod(line) {
			continue
		}
		methods = append(methods, Method{Line: i + 1, Signature: signature(line)})
	}
	return Metadata{
		TotalLines:   len(lines),
		SizeBytes:    len(text),
		MethodsCount: len(methods),
		Methods:      methods,
	}
}

func looksLikeMethod(line string) bool {
	hasModifier := strings.Contains(line, "public") ||
		strings.Contains(line, "private") ||
		strings.Contains(line, "protected")
	return hasModifier &&
		strings.Contains(line, "(") && strings.Contains(line, ")") &&
		(strings.Contains(line, "{") || strings.Contains(line, ";"))
}

func signature(line string) string {
	if i := strings.Index(line, "{"); i >= 0 {
		return strings.TrimSpace(line[:i])
	}
	if i := strings.Index(line, ";"); i >= 0 {
		return strings.TrimSpace(line[:i])
	}
	return strings.TrimSpace(line)
}
