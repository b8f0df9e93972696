package hint

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Placeholder texts shown when a hint cannot be produced.
const (
	NoHintText = "No hint available"
	FailedText = "Failed to fetch hint"
)

// Result is the outcome of one Fetch. Results whose Seq is no longer current
// must be discarded by the caller.
type Result struct {
	Seq  uint64
	Hint Hint
	Err  error
}

// Service issues hint requests where only the latest request's result counts.
// Starting a new request cancels the one in flight.
type Service struct {
	fetcher Fetcher
	log     *zap.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewService returns a service over fetcher. A nil logger discards output.
func NewService(fetcher Fetcher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{fetcher: fetcher, log: log}
}

// Begin supersedes any in-flight request and reserves a new sequence number.
// The returned context is cancelled when a later request begins.
func (s *Service) Begin(ctx context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	ctx, s.cancel = context.WithCancel(ctx)
	return ctx, s.seq
}

// Fetch supersedes prior requests and blocks until this one finishes. Failures
// become placeholder hints; Err is kept for logging.
func (s *Service) Fetch(ctx context.Context, prompt string) Result {
	ctx, seq := s.Begin(ctx)
	return s.Run(ctx, seq, prompt)
}

// Run performs the request reserved by Begin.
func (s *Service) Run(ctx context.Context, seq uint64, prompt string) Result {
	raw, err := s.fetcher.FetchHint(ctx, prompt)
	switch {
	case err == nil:
		return Result{Seq: seq, Hint: Parse(raw)}
	case errors.Is(err, ErrNoHint):
		return Result{Seq: seq, Hint: Hint{Text: NoHintText}, Err: err}
	default:
		if s.IsCurrent(seq) {
			s.log.Warn("fetch hint failed", zap.Uint64("seq", seq), zap.Error(err))
		}
		return Result{Seq: seq, Hint: Hint{Text: FailedText}, Err: err}
	}
}

// IsCurrent reports whether seq belongs to the latest request.
func (s *Service) IsCurrent(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seq == s.seq
}

// Invalidate discards any in-flight request, e.g. when the question changes.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
}
