package lesson

import (
	"github.com/abhisek/adaptly/internal/hint"
)

// hintMsg carries a finished hint request back to the UI loop.
type hintMsg hint.Result

// effectDoneMsg is sent when a renderer effect such as narration ends.
type effectDoneMsg struct {
	Err error
}
