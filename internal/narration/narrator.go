// Package narration reads lesson scripts aloud.
package narration

import (
	"context"
	"errors"
)

// ErrUnsupported is returned by narrators that cannot produce audio.
var ErrUnsupported = errors.New("narration is not supported")

// Narrator speaks text. Speak cancels any narration already in progress.
type Narrator interface {
	Speak(ctx context.Context, text string) error
	Cancel()
	IsSpeaking() bool
}

// Silent is a Narrator without audio output.
type Silent struct{}

func (Silent) Speak(context.Context, string) error { return ErrUnsupported }
func (Silent) Cancel()                             {}
func (Silent) IsSpeaking() bool                    { return false }
