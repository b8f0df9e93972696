// Package hint fetches and formats on-demand hints for lesson questions.
package hint

import (
	"regexp"
	"strings"
)

// Hint is a parsed hint with an optional suggested next step.
type Hint struct {
	Text string
	Next string
}

// nextMarkers are tried in order; the first one present splits the text.
var nextMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Next step:\s*`),
	regexp.MustCompile(`(?i)Next:\s*`),
	regexp.MustCompile(`(?i)Next steps?:\s*`),
	regexp.MustCompile(`(?i)Suggestion:\s*`),
}

var (
	paragraphBreak = regexp.MustCompile(`\n\n+`)
	leadingQuotes  = regexp.MustCompile(`^\s*["'“”]+`)
	trailingQuotes = regexp.MustCompile(`["'“”]+\s*$`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// Parse splits raw hint text into the hint and its next step. Without a
// marker phrase the first two paragraphs are used.
func Parse(raw string) Hint {
	if raw == "" {
		return Hint{}
	}
	normalized := strings.ReplaceAll(raw, "\r", "\n")

	for _, m := range nextMarkers {
		loc := m.FindStringIndex(normalized)
		if loc == nil {
			continue
		}
		before := strings.TrimSpace(normalized[:loc[0]])
		after := strings.TrimSpace(normalized[loc[1]:])
		return Hint{Text: Sanitize(before), Next: Sanitize(after)}
	}

	var parts []string
	for _, p := range paragraphBreak.Split(normalized, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	var h Hint
	if len(parts) > 0 {
		h.Text = Sanitize(parts[0])
	}
	if len(parts) > 1 {
		h.Next = Sanitize(parts[1])
	}
	return h
}

// Sanitize removes emphasis asterisks and surrounding quotes and collapses
// whitespace.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	out := strings.ReplaceAll(s, "*", "")
	out = leadingQuotes.ReplaceAllString(out, "")
	out = trailingQuotes.ReplaceAllString(out, "")
	out = whitespaceRun.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
