package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"RealEgo_Backend/internal/llm"
	"RealEgo_Backend/internal/models"
)

type trackedStream struct {
	sliceStream
	closed *atomic.Bool
}

func (s *trackedStream) Close() error {
	s.closed.Store(true)
	return nil
}

type trackingProvider struct {
	fakeProvider
	closed atomic.Bool
	opened atomic.Int32
}

func (p *trackingProvider) Stream(context.Context, llm.CompletionRequest) (llm.TokenStream, error) {
	p.opened.Add(1)
	return &trackedStream{sliceStream: sliceStream{tokens: []string{"never", "read"}}, closed: &p.closed}, nil
}

// failingStore breaks selected operations after authentication has succeeded.
type failingStore struct {
	Store
	failProfile bool
	failAppend  bool
}

func (s failingStore) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	if s.failProfile {
		return nil, errors.New("profiles table locked")
	}
	return s.Store.GetProfile(ctx, userID)
}

func (s failingStore) AppendMessage(ctx context.Context, userID int64, role models.Role, content string) (*models.ChatMessage, error) {
	if s.failAppend {
		return nil, errors.New("chat_messages table locked")
	}
	return s.Store.AppendMessage(ctx, userID, role, content)
}

func readEvents(t *testing.T, w *httptest.ResponseRecorder) []ChatEvent {
	t.Helper()
	var events []ChatEvent
	scanner := bufio.NewScanner(w.Body)
	for scanner.Scan() {
		var ev ChatEvent
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("line %q is not JSON: %v", scanner.Text(), err)
		}
		events = append(events, ev)
	}
	return events
}

func TestRunChatClosesStreamWhenClientGoesAway(t *testing.T) {
	provider := &trackingProvider{}
	env := newTestEnv(t, func(d *Deps) { d.Provider = provider })
	account, _ := env.createAccount(t, "tera")

	errGone := errors.New("client gone")
	emit := func(ev ChatEvent) error {
		if ev.Content == "Stream started" {
			return errGone
		}
		return nil
	}

	err := env.handler.runChat(context.Background(), account, "hello", emit)
	if !errors.Is(err, errGone) {
		t.Fatalf("runChat error = %v, want client gone", err)
	}
	if provider.opened.Load() != 1 {
		t.Fatalf("stream opened %d times", provider.opened.Load())
	}
	if !provider.closed.Load() {
		t.Error("LLM stream left open after emit failure")
	}
	env.drain(t)
}

func TestChatStreamEndsWithErrorEvent(t *testing.T) {
	var db Store
	env := newTestEnv(t, func(d *Deps) {
		db = d.Store
		d.Store = failingStore{Store: d.Store, failProfile: true}
	})
	account, token := env.createAccount(t, "tera")

	w := env.do(jsonRequest(http.MethodPost, "/chat/stream", `{"message":"hello"}`), token)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}

	events := readEvents(t, w)
	if len(events) < 2 {
		t.Fatalf("events = %+v", events)
	}
	if events[0] != (ChatEvent{Type: EventLog, Content: "Loading profile..."}) {
		t.Errorf("first event = %+v", events[0])
	}
	last := events[len(events)-1]
	if last.Type != EventError || last.Content != chatFailedDetail {
		t.Errorf("last event = %+v", last)
	}
	for _, ev := range events {
		if ev.Type == EventResponseChunk || ev.Content == "Done" {
			t.Errorf("unexpected event after failure: %+v", ev)
		}
		if strings.Contains(ev.Content, "locked") {
			t.Errorf("storage detail leaked: %+v", ev)
		}
	}

	// 스트림 실패와 무관하게 사용자 메시지는 저장되어 있어야 함
	messages, err := db.ListRecentMessages(context.Background(), account.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 || messages[0].Role != models.RoleUser || messages[0].Content != "hello" {
		t.Errorf("transcript = %+v", messages)
	}
}

func TestChatStreamSaveFailureIsServerError(t *testing.T) {
	env := newTestEnv(t, func(d *Deps) {
		d.Store = failingStore{Store: d.Store, failAppend: true}
	})
	_, token := env.createAccount(t, "tera")

	w := env.do(jsonRequest(http.MethodPost, "/chat/stream", `{"message":"hello"}`), token)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); strings.Contains(ct, "ndjson") {
		t.Errorf("stream started before the message was stored: %q", ct)
	}
	if got := decode[ErrorResponse](t, w).Detail; strings.Contains(got, "locked") {
		t.Errorf("storage detail leaked: %q", got)
	}
}

func TestLoginUnknownUserMatchesWrongPassword(t *testing.T) {
	env := newTestEnv(t, nil)
	env.createAccount(t, "tera")

	login := func(username, password string) *httptest.ResponseRecorder {
		form := url.Values{"username": {username}, "password": {password}}
		req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return env.do(req, "")
	}

	unknown := login("nobody", "secret")
	wrong := login("tera", "wrong")
	if unknown.Code != http.StatusUnauthorized || wrong.Code != http.StatusUnauthorized {
		t.Fatalf("codes = %d, %d", unknown.Code, wrong.Code)
	}
	if unknown.Body.String() != wrong.Body.String() {
		t.Errorf("bodies differ: %s vs %s", unknown.Body.String(), wrong.Body.String())
	}
}
