package llmobs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"stock-verdict/internal/interfaces"
	"stock-verdict/internal/metrics"
)

type stubProvider struct {
	reply string
	err   error
	calls int
}

func (s *stubProvider) Name() string     { return "stub" }
func (s *stubProvider) Configured() bool { return true }
func (s *stubProvider) Complete(context.Context, interfaces.CompletionRequest) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestWrapPassesThrough(t *testing.T) {
	stub := &stubProvider{reply: `{"signal":"BUY"}`}
	p := Wrap(stub, metrics.New(prometheus.NewRegistry()))

	if p.Name() != "stub" || !p.Configured() {
		t.Errorf("Expected wrapper to expose stub identity, got %s/%v", p.Name(), p.Configured())
	}

	got, err := p.Complete(context.Background(), interfaces.CompletionRequest{User: "hi"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != stub.reply {
		t.Errorf("Expected %q, got %q", stub.reply, got)
	}
	if stub.calls != 1 {
		t.Errorf("Expected 1 call, got %d", stub.calls)
	}
}

func TestWrapReturnsError(t *testing.T) {
	want := errors.New("boom")
	p := Wrap(&stubProvider{err: want}, nil)

	if _, err := p.Complete(context.Background(), interfaces.CompletionRequest{}); !errors.Is(err, want) {
		t.Errorf("Expected %v, got %v", want, err)
	}
}
