package style

import (
	"context"
	"testing"

	"github.com/abhisek/adaptly/internal/store"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"visual", Visual, false},
		{" Auditory ", Auditory, false},
		{"READING", Reading, false},
		{"kinesthetic", Kinesthetic, false},
		{"olfactory", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLabels(t *testing.T) {
	tests := []struct {
		s      Style
		label  string
		helper string
	}{
		{Visual, "Visual", "Diagrams, charts, and images"},
		{Auditory, "Auditory", "Listen to explanations"},
		{Reading, "Reading/Writing", "Detailed text and notes"},
		{Kinesthetic, "Kinesthetic", "Hands-on, interactive demos"},
	}
	for _, tt := range tests {
		if got := tt.s.Label(); got != tt.label {
			t.Errorf("%s.Label() = %q, want %q", tt.s, got, tt.label)
		}
		if got := tt.s.Helper(); got != tt.helper {
			t.Errorf("%s.Helper() = %q, want %q", tt.s, got, tt.helper)
		}
	}
	if Reading.Title() != "Reading" {
		t.Errorf("Title() = %q", Reading.Title())
	}
}

func TestLoadSave(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()

	if _, ok := Load(ctx, kv, nil); ok {
		t.Fatal("Load on empty store reported a style")
	}
	if err := Save(ctx, kv, Kinesthetic); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok := Load(ctx, kv, nil)
	if !ok || got != Kinesthetic {
		t.Errorf("Load = %q, %v", got, ok)
	}
	if err := Save(ctx, kv, Style("smell")); err == nil {
		t.Error("Save accepted an unknown style")
	}

	_ = kv.Set(ctx, Key, "telepathic")
	if _, ok := Load(ctx, kv, nil); ok {
		t.Error("Load accepted an unknown stored value")
	}

	if err := Clear(ctx, kv); err != nil {
		t.Fatal(err)
	}
	if _, ok := Load(ctx, kv, nil); ok {
		t.Error("style still present after Clear")
	}
}
