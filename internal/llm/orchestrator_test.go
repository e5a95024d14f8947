package llm

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"RealEgo_Backend/internal/models"
)

type fakeStream struct {
	tokens []string
	err    error
	closed bool
}

func (s *fakeStream) Recv() (string, error) {
	if len(s.tokens) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	t := s.tokens[0]
	s.tokens = s.tokens[1:]
	return t, nil
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakeProvider struct {
	reply     string
	err       error
	stream    *fakeStream
	streamErr error
	requests  []CompletionRequest
}

func (p *fakeProvider) Complete(_ context.Context, req CompletionRequest) (string, error) {
	p.requests = append(p.requests, req)
	return p.reply, p.err
}

func (p *fakeProvider) Stream(_ context.Context, req CompletionRequest) (TokenStream, error) {
	p.requests = append(p.requests, req)
	if p.streamErr != nil {
		return nil, p.streamErr
	}
	return p.stream, nil
}

type fakeRecaller struct {
	memories []string
	calls    int
}

func (r *fakeRecaller) Recall(_ context.Context, _ string, _ int64) []string {
	r.calls++
	return r.memories
}

func TestConverseBuildsTwoMessagePrompt(t *testing.T) {
	provider := &fakeProvider{reply: "You live in Beijing."}
	recaller := &fakeRecaller{memories: []string{}}
	o := NewOrchestrator(provider, recaller, nil)

	reply := o.Converse(context.Background(), ConverseRequest{
		AccountID: 1,
		Username:  "tera",
		Profile:   models.Profile{FullName: "Tera", Location: "Beijing"},
		Message:   "What's my location?",
	}, false)

	if got := reply.Text(); got != "You live in Beijing." {
		t.Fatalf("reply = %q", got)
	}
	if len(provider.requests) != 1 {
		t.Fatalf("provider called %d times, want 1", len(provider.requests))
	}
	msgs := provider.requests[0].Messages
	if len(msgs) != 2 || msgs[0].Role != RoleSystem || msgs[1].Role != RoleUser {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
	if msgs[1].Content != "What's my location?" {
		t.Errorf("user message = %q", msgs[1].Content)
	}

	system := msgs[0].Content
	if !strings.Contains(system, "You are a helpful assistant for tera.") {
		t.Errorf("missing greeting: %q", system)
	}
	if !strings.Contains(system, "Location: Beijing") {
		t.Errorf("missing location: %q", system)
	}
	if strings.Contains(system, "Birth Date:") {
		t.Errorf("empty field rendered: %q", system)
	}
	if !strings.HasSuffix(system, "Relevant Memories:\n") {
		t.Errorf("memories block should be empty: %q", system)
	}
	if recaller.calls != 1 {
		t.Errorf("recall called %d times, want 1", recaller.calls)
	}
}

func TestBuildSystemPromptOrder(t *testing.T) {
	p := models.Profile{FullName: "Tera", WorkHistory: "Engineer", BirthPlace: "Harbin"}
	got := BuildSystemPrompt("tera", p, []string{"likes tea", "has a cat"})

	name := strings.Index(got, "Name: Tera")
	place := strings.Index(got, "Birth Place: Harbin")
	work := strings.Index(got, "Work: Engineer")
	if name < 0 || place < 0 || work < 0 || !(name < place && place < work) {
		t.Errorf("fields out of order: %q", got)
	}
	if !strings.Contains(got, "- likes tea\n- has a cat\n") {
		t.Errorf("memories not bulleted in order: %q", got)
	}
}

func TestConverseFallsBackOnError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream 500")}
	o := NewOrchestrator(provider, &fakeRecaller{}, nil)

	got := o.Converse(context.Background(), ConverseRequest{Username: "tera", Message: "hi"}, false).Text()
	if got != FallbackReply {
		t.Errorf("reply = %q, want fallback", got)
	}
}

func TestStreamedReplyYieldsFragmentsInOrder(t *testing.T) {
	stream := &fakeStream{tokens: []string{"Hel", "lo", "!"}}
	o := NewOrchestrator(&fakeProvider{stream: stream}, &fakeRecaller{}, nil)

	reply := o.Converse(context.Background(), ConverseRequest{Message: "hi"}, true)

	var parts []string
	for f := range reply.Fragments() {
		parts = append(parts, f)
	}
	if strings.Join(parts, "|") != "Hel|lo|!" {
		t.Errorf("fragments = %v", parts)
	}
	if !stream.closed {
		t.Error("stream not closed after iteration")
	}
	if again := reply.Text(); again != "" {
		t.Errorf("second iteration yielded %q", again)
	}
}

func TestStreamedReplyFallbacks(t *testing.T) {
	t.Run("open fails", func(t *testing.T) {
		o := NewOrchestrator(&fakeProvider{streamErr: errors.New("dial")}, &fakeRecaller{}, nil)
		if got := o.Converse(context.Background(), ConverseRequest{}, true).Text(); got != FallbackReply {
			t.Errorf("got %q", got)
		}
	})

	t.Run("fails before first token", func(t *testing.T) {
		stream := &fakeStream{err: errors.New("reset")}
		o := NewOrchestrator(&fakeProvider{stream: stream}, &fakeRecaller{}, nil)
		if got := o.Converse(context.Background(), ConverseRequest{}, true).Text(); got != FallbackReply {
			t.Errorf("got %q", got)
		}
	})

	t.Run("fails mid stream", func(t *testing.T) {
		stream := &fakeStream{tokens: []string{"partial"}, err: errors.New("reset")}
		o := NewOrchestrator(&fakeProvider{stream: stream}, &fakeRecaller{}, nil)
		if got := o.Converse(context.Background(), ConverseRequest{}, true).Text(); got != "partial" {
			t.Errorf("got %q", got)
		}
	})
}

func TestStreamClosedOnEarlyBreak(t *testing.T) {
	stream := &fakeStream{tokens: []string{"a", "b", "c"}}
	o := NewOrchestrator(&fakeProvider{stream: stream}, &fakeRecaller{}, nil)

	for range o.Converse(context.Background(), ConverseRequest{}, true).Fragments() {
		break
	}
	if !stream.closed {
		t.Error("stream not closed on early break")
	}
}

func TestReplyCloseReleasesUnreadStream(t *testing.T) {
	stream := &fakeStream{tokens: []string{"a", "b"}}
	o := NewOrchestrator(&fakeProvider{stream: stream}, &fakeRecaller{}, nil)

	reply := o.Converse(context.Background(), ConverseRequest{}, true)
	if err := reply.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !stream.closed {
		t.Fatal("stream not closed")
	}
	if got := reply.Text(); got != "" {
		t.Errorf("closed reply yielded %q", got)
	}
	if err := reply.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
