package narration

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"go.uber.org/zap"
)

// PlayerFunc builds the command that plays an audio file.
type PlayerFunc func(ctx context.Context, path string) *exec.Cmd

// CommandPlayer returns a PlayerFunc running name with args followed by the file path.
func CommandPlayer(name string, args ...string) PlayerFunc {
	return func(ctx context.Context, path string) *exec.Cmd {
		return exec.CommandContext(ctx, name, append(append([]string{}, args...), path)...)
	}
}

// TTS synthesizes text to a cached MP3 and plays it with an external player.
type TTS struct {
	synth  Synthesizer
	cache  Cache
	player PlayerFunc
	log    *zap.Logger

	mu sync.Mutex
	// gen is bumped by every Speak and Cancel. A Speak only starts its
	// player if gen is unchanged once its audio is ready.
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTTS builds a narrator. log may be nil.
func NewTTS(synth Synthesizer, cache Cache, player PlayerFunc, log *zap.Logger) *TTS {
	if log == nil {
		log = zap.NewNop()
	}
	return &TTS{synth: synth, cache: cache, player: player, log: log}
}

// Speak stops any current narration, prepares audio for text and starts
// playback. It returns once playback has started. A Speak overtaken by a
// later Speak or Cancel while synthesizing returns nil without playing.
func (t *TTS) Speak(ctx context.Context, text string) error {
	t.mu.Lock()
	t.gen++
	gen := t.gen
	cancel, done := t.detachLocked()
	t.mu.Unlock()
	stop(cancel, done)

	path, err := t.cache.Ensure(ctx, t.synth, text)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.gen != gen {
		t.log.Debug("narration superseded before playback")
		return nil
	}

	playCtx, playCancel := context.WithCancel(context.Background())
	cmd := t.player(playCtx, path)
	if err := cmd.Start(); err != nil {
		playCancel()
		return fmt.Errorf("start player: %w", err)
	}

	finished := make(chan struct{})
	t.cancel = playCancel
	t.done = finished

	go func() {
		defer close(finished)
		defer playCancel()
		if err := cmd.Wait(); err != nil && playCtx.Err() == nil {
			t.log.Warn("narration player failed", zap.Error(err))
		}
	}()
	return nil
}

// Cancel stops playback, abandons any Speak still synthesizing and waits
// for the player to exit.
func (t *TTS) Cancel() {
	t.mu.Lock()
	t.gen++
	cancel, done := t.detachLocked()
	t.mu.Unlock()
	stop(cancel, done)
}

func (t *TTS) detachLocked() (context.CancelFunc, chan struct{}) {
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	return cancel, done
}

func stop(cancel context.CancelFunc, done chan struct{}) {
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// IsSpeaking reports whether a player is still running.
func (t *TTS) IsSpeaking() bool {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}
