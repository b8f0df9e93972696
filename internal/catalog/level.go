package catalog

// Level is one lesson in the catalog. Level n requires level n-1 to be
// completed; level 1 is always available.
type Level struct {
	ID            int        `yaml:"id"`
	Title         string     `yaml:"title"`
	Description   string     `yaml:"description"`
	Difficulty    int        `yaml:"difficulty"` // display only
	RequiredScore int        `yaml:"requiredScore"`
	Questions     []Question `yaml:"questions"`
	Content       Content    `yaml:"content"`
}

// QuestionCount returns the number of questions in the level.
func (l Level) QuestionCount() int {
	return len(l.Questions)
}

// Passes reports whether score meets the level's required score.
func (l Level) Passes(score int) bool {
	return score >= l.RequiredScore
}

// Question is a multiple-choice question.
type Question struct {
	Prompt      string   `yaml:"prompt"`
	Options     []string `yaml:"options"`
	AnswerIndex int      `yaml:"answerIndex"`
	Explanation string   `yaml:"explanation"`
}

// IsCorrect reports whether option i is the answer.
func (q Question) IsCorrect(i int) bool {
	return i == q.AnswerIndex
}

// Answer returns the text of the correct option.
func (q Question) Answer() string {
	return q.Options[q.AnswerIndex]
}

// Content holds the per-style presentation of a level.
type Content struct {
	Visual      VisualContent      `yaml:"visual"`
	Auditory    AuditoryContent    `yaml:"auditory"`
	Reading     ReadingContent     `yaml:"reading"`
	Kinesthetic KinestheticContent `yaml:"kinesthetic"`
}

type VisualContent struct {
	Summary string `yaml:"summary"`
	Diagram string `yaml:"diagram"`
	Caption string `yaml:"caption"`
}

type AuditoryContent struct {
	Summary   string `yaml:"summary"`
	Blurb     string `yaml:"blurb"`
	Narration string `yaml:"narration"`
}

type ReadingContent struct {
	Summary string   `yaml:"summary"`
	Intro   string   `yaml:"intro"`
	Points  []string `yaml:"points"`
}

type KinestheticContent struct {
	Summary      string       `yaml:"summary"`
	Manipulative Manipulative `yaml:"manipulative"`
	Prompt       string       `yaml:"prompt"`
}

// Manipulative names the interactive tool shown to kinesthetic learners.
type Manipulative string

const (
	ManipulativeFraction Manipulative = "fraction" // one adjustable fraction
	ManipulativeCompare  Manipulative = "compare"  // two fractions side by side
	ManipulativeAdd      Manipulative = "add"      // sum of two fractions
	ManipulativeOperate  Manipulative = "operate"  // two fractions and an operator
)

// Valid reports whether m is a known manipulative.
func (m Manipulative) Valid() bool {
	switch m {
	case ManipulativeFraction, ManipulativeCompare, ManipulativeAdd, ManipulativeOperate:
		return true
	}
	return false
}
