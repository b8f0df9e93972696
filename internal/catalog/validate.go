package catalog

import (
	"fmt"
	"strings"
)

// validateLevels performs all structural checks on id-sorted levels.
// Returns a combined error describing all problems found, or nil if valid.
func validateLevels(levels []Level) error {
	var errs []string

	if len(levels) == 0 {
		errs = append(errs, "catalog has no levels")
	}

	// Ids must be 1..n so that level n-1 is always the prerequisite of n.
	for i, l := range levels {
		if l.ID != i+1 {
			errs = append(errs, fmt.Sprintf("level at position %d has id %d, want %d", i+1, l.ID, i+1))
		}
	}

	for _, l := range levels {
		prefix := fmt.Sprintf("level %d", l.ID)
		if strings.TrimSpace(l.Title) == "" {
			errs = append(errs, prefix+": missing title")
		}
		if len(l.Questions) == 0 {
			errs = append(errs, prefix+": no questions")
		}
		if l.RequiredScore < 0 || l.RequiredScore > len(l.Questions) {
			errs = append(errs, fmt.Sprintf("%s: requiredScore must be in [0, %d], got %d", prefix, len(l.Questions), l.RequiredScore))
		}
		if l.Difficulty < 1 {
			errs = append(errs, fmt.Sprintf("%s: difficulty must be >= 1, got %d", prefix, l.Difficulty))
		}

		for qi, q := range l.Questions {
			qp := fmt.Sprintf("%s question %d", prefix, qi+1)
			if strings.TrimSpace(q.Prompt) == "" {
				errs = append(errs, qp+": missing prompt")
			}
			if len(q.Options) < 2 {
				errs = append(errs, fmt.Sprintf("%s: need at least 2 options, got %d", qp, len(q.Options)))
			}
			if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
				errs = append(errs, fmt.Sprintf("%s: answerIndex %d out of range", qp, q.AnswerIndex))
			}
		}

		c := l.Content
		if c.Visual.Summary == "" || c.Auditory.Summary == "" || c.Reading.Summary == "" || c.Kinesthetic.Summary == "" {
			errs = append(errs, prefix+": every learning style needs a summary")
		}
		if strings.TrimSpace(c.Auditory.Narration) == "" {
			errs = append(errs, prefix+": missing narration")
		}
		if !c.Kinesthetic.Manipulative.Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown manipulative %q", prefix, c.Kinesthetic.Manipulative))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
