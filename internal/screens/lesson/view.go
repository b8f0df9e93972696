package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptly/internal/session"
	"github.com/abhisek/adaptly/internal/ui/components"
	"github.com/abhisek/adaptly/internal/ui/theme"
)

func (s *LessonScreen) View(width, height int) string {
	inner := min(width-4, 90)
	if s.lesson.Phase() == session.PhaseCompleted {
		return s.renderCompleted(width, height)
	}

	level := s.lesson.Level()
	var sections []string

	sections = append(sections, theme.Card.Width(inner).Render(s.renderer.Render(level, inner-4)))

	counter := theme.Subtitle.Render(fmt.Sprintf("Question %d of %d  ·  Score %d  ·  Attempts %d",
		s.lesson.QuestionIndex()+1, level.QuestionCount(), s.lesson.Score(), s.lesson.Attempts()))
	sections = append(sections, counter, s.choice().View(inner))

	if verdict := s.renderVerdict(inner); verdict != "" {
		sections = append(sections, verdict)
	}
	sections = append(sections, s.renderActions())

	if panel := s.renderHint(inner); panel != "" {
		sections = append(sections, panel)
	}
	if s.status != "" {
		sections = append(sections, theme.Incorrect.Render(s.status))
	}

	body := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().Width(width).Height(height).Padding(1, 2).Render(body)
}

func (s *LessonScreen) renderVerdict(width int) string {
	if s.lesson.Phase() != session.PhaseSubmitted {
		return ""
	}
	if !s.lesson.LastCorrect() {
		return theme.Incorrect.Render("Not quite. Have another go.")
	}
	out := theme.Correct.Render("Correct!")
	if exp := s.lesson.Explanation(); exp != "" {
		out += "\n" + theme.Body.Width(width).Render(exp)
	}
	return out
}

func (s *LessonScreen) renderActions() string {
	next := "Next question"
	if s.lesson.IsLastQuestion() {
		next = "Finish level"
	}
	return components.ButtonRow(
		components.Button{Key: "Enter", Label: "Submit", Active: s.lesson.Can(session.ActionSubmit)},
		components.Button{Key: "Enter", Label: "Try again", Active: s.lesson.Can(session.ActionRetry)},
		components.Button{Key: "Enter", Label: next, Active: s.lesson.Can(session.ActionAdvance)},
		components.Button{Key: "h", Label: "AI Hint", Active: !s.hintLoading},
	)
}

func (s *LessonScreen) renderHint(width int) string {
	switch {
	case s.hintLoading:
		return theme.Hint.Render(s.spinner.View() + " Thinking...")
	case s.hint == nil:
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.Badge.Render("AI Hint"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(width - 4).Render(s.hint.Text))
	if s.hint.Next != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Subtitle.Render("Next step"))
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(width - 4).Render(s.hint.Next))
	}
	return theme.Card.Width(width).Render(b.String())
}

func (s *LessonScreen) renderCompleted(width, height int) string {
	r := s.lesson.Result()
	level := s.lesson.Level()

	var lines []string
	if level.Passes(r.Score) {
		lines = append(lines, theme.Title.Render("Level complete!"))
		if next, ok := s.env.Catalog.Next(level.ID); ok {
			lines = append(lines, theme.Correct.Render(fmt.Sprintf("%s is now unlocked.", next.Title)))
		} else {
			lines = append(lines, theme.Correct.Render("You have finished every level."))
		}
	} else {
		lines = append(lines,
			theme.Title.Render("Lesson ended"),
			theme.Incorrect.Render(fmt.Sprintf("You need %d correct answers to unlock the next level.", level.RequiredScore)),
		)
	}
	lines = append(lines, "", theme.Body.Render(fmt.Sprintf("Score %d of %d  ·  Attempts %d", r.Score, level.QuestionCount(), r.Attempts)))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}
