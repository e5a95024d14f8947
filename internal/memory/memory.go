/**
* Name: 			memory.go
* Description: 		장기 기억 서비스 어댑터
* Workflow: 		기억 저장, 의미 검색, 실패 시 로그만 남기고 빈 결과 반환
 */

package memory

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"
)

// 기본 검색 결과 개수
const defaultRecallLimit = 10

// Ack is the backend's acknowledgement of a stored snippet.
type Ack struct {
	ID     string          `json:"id,omitempty"`
	Status string          `json:"status,omitempty"`
	Raw    json.RawMessage `json:"raw,omitempty"`
}

// Backend is an external (or embedded) long-term memory store.
type Backend interface {
	Add(ctx context.Context, userID, snippet string) (*Ack, error)
	Search(ctx context.Context, userID, query string) ([]string, error)
}

// Adapter gives best-effort semantics over a Backend: errors are logged, never returned.
type Adapter struct {
	backend Backend
	timeout time.Duration
	logger  *slog.Logger
}

func NewAdapter(backend Backend, timeout time.Duration, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{backend: backend, timeout: timeout, logger: logger}
}

// Remember stores a snippet for the account. Returns nil when the backend fails.
func (a *Adapter) Remember(ctx context.Context, snippet string, accountID int64) *Ack {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	ack, err := a.backend.Add(ctx, userKey(accountID), snippet)
	if err != nil {
		a.logger.Error("memory.Remember(): error adding memory", "account_id", accountID, "error", err)
		return nil
	}
	a.logger.Info("memory.Remember(): memory add job submitted", "account_id", accountID, "status", ack.Status)
	return ack
}

// Recall returns snippets relevant to query, ranked by the backend. Never nil.
func (a *Adapter) Recall(ctx context.Context, query string, accountID int64) []string {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	results, err := a.backend.Search(ctx, userKey(accountID), query)
	if err != nil {
		a.logger.Error("memory.Recall(): error searching memory", "account_id", accountID, "error", err)
		return []string{}
	}
	if results == nil {
		return []string{}
	}
	return results
}

func userKey(accountID int64) string {
	return strconv.FormatInt(accountID, 10)
}
