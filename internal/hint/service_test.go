package hint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/abhisek/adaptly/internal/llm"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

type staticTokens string

func (s staticTokens) Token(context.Context) (string, bool) { return string(s), s != "" }

func hintServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestAPIFetcherSendsPromptAndToken(t *testing.T) {
	var gotAuth, gotPrompt string
	srv := hintServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/ai/hint" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		var body hintRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotPrompt = body.Prompt
		_ = json.NewEncoder(w).Encode(hintResponse{Hint: "Halve it.\nNext step: try 1/2"})
	})

	svc := NewService(NewAPIFetcher(srv.URL+"/", time.Second, staticTokens("tok")), nil)
	res := svc.Fetch(context.Background(), "What is 1/2 of 1?")

	if res.Err != nil {
		t.Fatalf("Err = %v", res.Err)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotPrompt != "What is 1/2 of 1?" {
		t.Errorf("prompt = %q", gotPrompt)
	}
	want := Hint{Text: "Halve it.", Next: "try 1/2"}
	if res.Hint != want {
		t.Errorf("Hint = %+v, want %+v", res.Hint, want)
	}
}

func TestAPIFetcherOmitsAuthWithoutToken(t *testing.T) {
	srv := hintServer(t, func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Errorf("Authorization = %q, want none", h)
		}
		_ = json.NewEncoder(w).Encode(hintResponse{Hint: "ok"})
	})

	for _, tokens := range []TokenSource{nil, staticTokens("")} {
		svc := NewService(NewAPIFetcher(srv.URL, time.Second, tokens), nil)
		if res := svc.Fetch(context.Background(), "q"); res.Hint.Text != "ok" {
			t.Errorf("Hint = %+v", res.Hint)
		}
	}
}

func TestPlaceholders(t *testing.T) {
	notOK := hintServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})
	empty := hintServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hint":""}`))
	})
	gone := httptest.NewServer(http.NotFoundHandler())
	gone.Close()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"non-ok status", notOK.URL, NoHintText},
		{"empty hint", empty.URL, NoHintText},
		{"transport error", gone.URL, FailedText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(NewAPIFetcher(tt.url, time.Second, nil), nil)
			res := svc.Fetch(context.Background(), "q")
			if res.Err == nil {
				t.Error("Err = nil")
			}
			if res.Hint.Text != tt.want || res.Hint.Next != "" {
				t.Errorf("Hint = %+v, want %q", res.Hint, tt.want)
			}
		})
	}
}

// blockingFetcher blocks the first call until its context is cancelled.
type blockingFetcher struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
}

func (f *blockingFetcher) FetchHint(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()
	if n == 1 {
		close(f.started)
		<-ctx.Done()
		return "", ctx.Err()
	}
	return "answer for " + prompt, nil
}

func TestLatestRequestWins(t *testing.T) {
	f := &blockingFetcher{started: make(chan struct{})}
	svc := NewService(f, nil)

	first := make(chan Result, 1)
	go func() { first <- svc.Fetch(context.Background(), "old") }()
	<-f.started

	second := svc.Fetch(context.Background(), "new")
	old := <-first

	if svc.IsCurrent(old.Seq) {
		t.Error("superseded result still current")
	}
	if !svc.IsCurrent(second.Seq) {
		t.Error("latest result not current")
	}
	if second.Hint.Text != "answer for new" {
		t.Errorf("Hint = %+v", second.Hint)
	}
}

func TestInvalidate(t *testing.T) {
	svc := NewService(&blockingFetcher{started: make(chan struct{}), calls: 1}, nil)
	res := svc.Fetch(context.Background(), "q")
	svc.Invalidate()
	if svc.IsCurrent(res.Seq) {
		t.Error("result current after Invalidate")
	}
}

func TestLLMFetcher(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"hint":"Find a common denominator.","next_step":"Rewrite both as sixths."}`),
	})
	svc := NewService(NewLLMFetcher(mock), nil)

	res := svc.Fetch(context.Background(), "1/2 + 1/3")
	want := Hint{Text: "Find a common denominator.", Next: "Rewrite both as sixths."}
	if res.Err != nil || res.Hint != want {
		t.Errorf("res = %+v, want %+v", res, want)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d", mock.CallCount())
	}
}
