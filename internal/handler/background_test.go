package handler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func TestBackgroundOutlivesRequestContext(t *testing.T) {
	b := NewBackground(slog.New(slog.NewTextHandler(io.Discard, nil)))
	reqCtx, cancel := context.WithCancel(context.Background())

	var ran atomic.Bool
	release := make(chan struct{})
	b.Go(reqCtx, "test", func(ctx context.Context) {
		<-release
		if ctx.Err() == nil {
			ran.Store(true)
		}
	})
	cancel()
	close(release)

	ctx, done := context.WithTimeout(context.Background(), time.Second)
	defer done()
	if err := b.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	if !ran.Load() {
		t.Error("task context was cancelled with the request")
	}
}

func TestBackgroundRecoversPanic(t *testing.T) {
	b := NewBackground(slog.New(slog.NewTextHandler(io.Discard, nil)))
	b.Go(context.Background(), "boom", func(context.Context) { panic("boom") })

	ctx, done := context.WithTimeout(context.Background(), time.Second)
	defer done()
	if err := b.Wait(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestBackgroundWaitTimesOut(t *testing.T) {
	b := NewBackground(slog.New(slog.NewTextHandler(io.Discard, nil)))
	block := make(chan struct{})
	defer close(block)
	b.Go(context.Background(), "slow", func(context.Context) { <-block })

	ctx, done := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer done()
	if err := b.Wait(ctx); err == nil {
		t.Error("expected Wait to time out")
	}
}
