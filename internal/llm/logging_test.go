package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/adaptly/internal/store"
)

type recordingRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingRecordsEvents(t *testing.T) {
	repo := &recordingRepo{}
	core, logs := observer.New(zapcore.DebugLevel)
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"hint":"h","next_step":"n"}`), Usage: Usage{InputTokens: 7, OutputTokens: 3}},
		MockResponse{Err: &ErrRateLimit{}},
	)
	p := WithLogging(mock, "mock", repo, zap.New(core))
	ctx := WithPurpose(context.Background(), "hint")

	if _, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "q"}}, Schema: hintSchema()}); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}

	if len(repo.events) != 2 {
		t.Fatalf("events = %d, want 2", len(repo.events))
	}
	ok, failed := repo.events[0], repo.events[1]
	if !ok.Success || ok.Purpose != "hint" || ok.InputTokens != 7 || ok.Model != "mock" {
		t.Errorf("ok event = %+v", ok)
	}
	if !strings.Contains(ok.RequestBody, "[system]\nsys") || !strings.Contains(ok.RequestBody, "[schema: test-hint]") {
		t.Errorf("RequestBody = %q", ok.RequestBody)
	}
	if ok.ResponseBody != `{"hint":"h","next_step":"n"}` {
		t.Errorf("ResponseBody = %q", ok.ResponseBody)
	}
	if failed.Success || failed.ErrorMessage == "" {
		t.Errorf("failed event = %+v", failed)
	}
	if logs.FilterMessage("llm request failed").Len() != 1 {
		t.Error("failure not logged")
	}
}

func TestLoggingSurvivesRepoFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`"x"`)}), "mock", repo, zap.New(core))

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if logs.FilterMessage("record llm event failed").Len() != 1 {
		t.Error("repo failure not logged")
	}
}

func TestLoggingWithoutRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`"x"`)}), "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatal(err)
	}
}

func TestPurposeDefault(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Errorf("PurposeFrom = %q", got)
	}
}

func TestMockProviderValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"hint":"only"}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: hintSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Errorf("err = %v, want ErrInvalidResponse", err)
	}
	if _, err := mock.Generate(context.Background(), Request{}); err == nil {
		t.Error("empty queue returned no error")
	}
}

func TestModelCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("no cost for gpt-4o-mini")
	}
	if got := c.Cost(1_000_000, 1_000_000); got < 0.749 || got > 0.751 {
		t.Errorf("Cost = %v, want 0.75", got)
	}
	if LookupCost("abacus-1") != nil {
		t.Error("unknown model has a cost")
	}
}
