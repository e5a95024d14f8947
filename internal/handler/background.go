package handler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// 응답 이후 실행되는 작업 제한 시간
const backgroundTimeout = 30 * time.Second

// Background runs post-response work detached from the request lifetime.
type Background struct {
	wg     sync.WaitGroup
	logger *slog.Logger
}

func NewBackground(logger *slog.Logger) *Background {
	return &Background{logger: logger}
}

// Go runs fn with a context that survives the request but keeps its values.
func (b *Background) Go(parent context.Context, name string, fn func(ctx context.Context)) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("background task panicked", "task", name, "panic", r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), backgroundTimeout)
		defer cancel()
		fn(ctx)
	}()
}

// Wait blocks until queued tasks finish or ctx is done.
func (b *Background) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
