// Package catalogtest builds small catalogs for tests.
package catalogtest

import (
	"fmt"
	"testing"

	"github.com/abhisek/adaptly/internal/catalog"
)

// Level returns a valid level whose questions all have option 0 as the answer.
func Level(id, requiredScore, questions int) catalog.Level {
	l := catalog.Level{
		ID:            id,
		Title:         fmt.Sprintf("Level %d", id),
		Difficulty:    1,
		RequiredScore: requiredScore,
		Content: catalog.Content{
			Visual:      catalog.VisualContent{Summary: "visual"},
			Auditory:    catalog.AuditoryContent{Summary: "auditory", Narration: fmt.Sprintf("narration %d", id)},
			Reading:     catalog.ReadingContent{Summary: "reading"},
			Kinesthetic: catalog.KinestheticContent{Summary: "kinesthetic", Manipulative: catalog.ManipulativeFraction},
		},
	}
	for i := 0; i < questions; i++ {
		l.Questions = append(l.Questions, catalog.Question{
			Prompt:      fmt.Sprintf("L%d Q%d", id, i+1),
			Options:     []string{"right", "wrong"},
			AnswerIndex: 0,
			Explanation: "because",
		})
	}
	return l
}

// New builds a catalog or fails the test.
func New(t testing.TB, levels ...catalog.Level) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(levels)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}
