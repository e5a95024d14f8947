package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestChatSocket(t *testing.T) {
	env := newTestEnv(t, nil)
	_, token := env.createAccount(t, "tera")

	server := httptest.NewServer(env.router)
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/chat"

	t.Run("rejects missing token", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err == nil {
			t.Fatal("expected dial to fail")
		}
		if resp == nil || resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("unexpected response: %v", resp)
		}
	})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+token, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	if err := conn.WriteJSON(ChatRequest{Message: "hello"}); err != nil {
		t.Fatal(err)
	}

	var reply strings.Builder
	for {
		var ev ChatEvent
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("read: %v", err)
		}
		if ev.Type == EventError {
			t.Fatalf("error event: %s", ev.Content)
		}
		if ev.Type == EventResponseChunk {
			reply.WriteString(ev.Content)
		}
		if ev.Type == EventLog && ev.Content == "Done" {
			break
		}
	}
	if reply.String() != "You live in Beijing." {
		t.Errorf("reply = %q", reply.String())
	}

	if err := conn.WriteJSON(ChatRequest{Message: ""}); err != nil {
		t.Fatal(err)
	}
	var ev ChatEvent
	if err := conn.ReadJSON(&ev); err != nil || ev.Type != EventError {
		t.Errorf("empty message: %+v, %v", ev, err)
	}

	conn.Close()
	env.drain(t)
}
