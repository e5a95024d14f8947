/**
* Name: 			orchestrator.go
* Description: 		프롬프트 구성 및 LLM 호출
* Workflow: 		기억 검색, 시스템 프롬프트 생성, 단일 응답 또는 토큰 스트림 반환
 */

package llm

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"RealEgo_Backend/internal/models"
)

// Recaller is the memory lookup the orchestrator needs.
type Recaller interface {
	Recall(ctx context.Context, query string, accountID int64) []string
}

type ConverseRequest struct {
	AccountID int64
	Username  string
	Profile   models.Profile
	Message   string
}

// Prompt is the full conversation context sent to the model.
type Prompt struct {
	System   string
	User     string
	Memories []string
}

func (p Prompt) messages() []Message {
	return []Message{
		{Role: RoleSystem, Content: p.System},
		{Role: RoleUser, Content: p.User},
	}
}

type Orchestrator struct {
	provider Provider
	memory   Recaller
	logger   *slog.Logger
}

func NewOrchestrator(provider Provider, memory Recaller, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{provider: provider, memory: memory, logger: logger}
}

// Prepare recalls memories once and renders the system prompt.
func (o *Orchestrator) Prepare(ctx context.Context, req ConverseRequest) Prompt {
	memories := o.memory.Recall(ctx, req.Message, req.AccountID)
	system := BuildSystemPrompt(req.Username, req.Profile, memories)
	o.logger.Debug("Orchestrator.Prepare(): constructed system prompt",
		"account_id", req.AccountID, "memories", len(memories), "prompt", system)
	return Prompt{System: system, User: req.Message, Memories: memories}
}

// Produce calls the model. Failures never surface: the reply degrades to FallbackReply.
func (o *Orchestrator) Produce(ctx context.Context, prompt Prompt, streamed bool) *Reply {
	req := CompletionRequest{Messages: prompt.messages()}

	if !streamed {
		text, err := o.provider.Complete(ctx, req)
		if err != nil {
			o.logger.Error("Orchestrator.Produce(): LLM error", "error", err)
			text = FallbackReply
		}
		return completeReply(text)
	}

	stream, err := o.provider.Stream(ctx, req)
	if err != nil {
		o.logger.Error("Orchestrator.Produce(): LLM stream error", "error", err)
		return completeReply(FallbackReply)
	}
	return streamReply(stream, o.logger)
}

// Converse is Prepare followed by Produce.
func (o *Orchestrator) Converse(ctx context.Context, req ConverseRequest, streamed bool) *Reply {
	return o.Produce(ctx, o.Prepare(ctx, req), streamed)
}

// Reply is a finite, single-use sequence of text fragments.
// A complete reply is a single fragment. Close releases an unread stream.
type Reply struct {
	seq       iter.Seq[string]
	used      atomic.Bool
	closer    func() error
	closeOnce sync.Once
	closeErr  error
}

func completeReply(text string) *Reply {
	return &Reply{seq: func(yield func(string) bool) {
		yield(text)
	}}
}

func streamReply(stream TokenStream, logger *slog.Logger) *Reply {
	r := &Reply{closer: stream.Close}
	r.seq = func(yield func(string) bool) {
		defer r.Close()
		delivered := false
		for {
			delta, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				logger.Error("Reply: LLM stream interrupted", "error", err)
				if !delivered {
					yield(FallbackReply)
				}
				return
			}
			delivered = true
			if !yield(delta) {
				return
			}
		}
	}
	return r
}

// Close releases the upstream stream. Safe to call more than once and after iteration.
func (r *Reply) Close() error {
	r.closeOnce.Do(func() {
		r.used.Store(true)
		if r.closer != nil {
			r.closeErr = r.closer()
		}
	})
	return r.closeErr
}

// Fragments iterates the reply. A second call yields nothing.
func (r *Reply) Fragments() iter.Seq[string] {
	return func(yield func(string) bool) {
		if r.used.Swap(true) {
			return
		}
		r.seq(yield)
	}
}

// Text drains the reply into a single string.
func (r *Reply) Text() string {
	var b strings.Builder
	for fragment := range r.Fragments() {
		b.WriteString(fragment)
	}
	return b.String()
}
