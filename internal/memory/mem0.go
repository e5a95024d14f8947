package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Mem0Client talks to a mem0-compatible memory HTTP API.
type Mem0Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewMem0Client(baseURL, apiKey string, timeout time.Duration) *Mem0Client {
	return &Mem0Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type mem0Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type mem0AddRequest struct {
	Messages  []mem0Message `json:"messages"`
	UserID    string        `json:"user_id"`
	AsyncMode bool          `json:"async_mode"`
}

type mem0SearchRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
}

type mem0Event struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Add submits the snippet as a background (async) memory job.
func (c *Mem0Client) Add(ctx context.Context, userID, snippet string) (*Ack, error) {
	body, err := c.post(ctx, "/v1/memories/", mem0AddRequest{
		Messages:  []mem0Message{{Role: "user", Content: snippet}},
		UserID:    userID,
		AsyncMode: true,
	})
	if err != nil {
		return nil, err
	}

	ack := &Ack{Raw: json.RawMessage(body)}
	var events []mem0Event
	if err := json.Unmarshal(body, &events); err == nil && len(events) > 0 {
		ack.ID = firstNonEmpty(events[0].ID, events[0].EventID)
		ack.Status = events[0].Status
		return ack, nil
	}
	var event mem0Event
	if err := json.Unmarshal(body, &event); err == nil {
		ack.ID = firstNonEmpty(event.ID, event.EventID)
		ack.Status = event.Status
	}
	return ack, nil
}

// Search returns memory texts. The API answers either a bare list or {"results": [...]}.
func (c *Mem0Client) Search(ctx context.Context, userID, query string) ([]string, error) {
	body, err := c.post(ctx, "/v1/memories/search/", mem0SearchRequest{Query: query, UserID: userID})
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		var wrapped struct {
			Results []json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("decode search response: %w", err)
		}
		items = wrapped.Results
	}

	memories := make([]string, 0, len(items))
	for _, item := range items {
		if text := memoryText(item); text != "" {
			memories = append(memories, text)
		}
	}
	return memories, nil
}

func (c *Mem0Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	if c.baseURL == "" {
		return nil, errors.New("mem0: base URL not configured")
	}
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Token "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mem0 %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("mem0 %s: status %d: %s", path, resp.StatusCode, string(body))
	}
	return body, nil
}

// memoryText accepts {"memory": "..."} objects or plain strings.
func memoryText(item json.RawMessage) string {
	var obj struct {
		Memory string `json:"memory"`
	}
	if err := json.Unmarshal(item, &obj); err == nil && obj.Memory != "" {
		return obj.Memory
	}
	var s string
	if err := json.Unmarshal(item, &s); err == nil {
		return s
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
