package narration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

// Synthesizer turns text into MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// GoogleSynthesizer uses Google Cloud Text-to-Speech. Credentials are found
// through GOOGLE_APPLICATION_CREDENTIALS.
type GoogleSynthesizer struct {
	client *texttospeech.Client
	voice  string
	lang   string
}

// NewGoogleSynthesizer creates a client for the given voice, e.g. "en-US-Standard-F".
func NewGoogleSynthesizer(ctx context.Context, lang, voice string) (*GoogleSynthesizer, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create TTS client: %w", err)
	}
	return &GoogleSynthesizer{client: client, voice: voice, lang: lang}, nil
}

func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: g.lang,
			Name:         g.voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}
	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	return resp.AudioContent, nil
}

// Close releases the client connection.
func (g *GoogleSynthesizer) Close() error {
	return g.client.Close()
}

// Cache stores synthesized audio on disk keyed by the text's SHA-256.
type Cache struct {
	Dir string
}

// Path returns the file path for text's audio.
func (c Cache) Path(text string) string {
	sum := sha256.Sum256([]byte(text))
	return filepath.Join(c.Dir, hex.EncodeToString(sum[:])+".mp3")
}

// Ensure returns the cached file for text, synthesizing it first if needed.
func (c Cache) Ensure(ctx context.Context, s Synthesizer, text string) (string, error) {
	p := c.Path(text)
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}
	audio, err := s.Synthesize(ctx, text)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}
	// Readers never see a partial file.
	tmp, err := os.CreateTemp(c.Dir, ".narration-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(audio); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("close audio: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("store audio: %w", err)
	}
	return p, nil
}
