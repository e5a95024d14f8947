package handler

import (
	"net/http"
	"strings"

	"RealEgo_Backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ChatSocket godoc
// @Summary      채팅 WebSocket 연결
// @Description  /chat/stream 과 같은 이벤트를 WebSocket 텍스트 프레임으로 전송합니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  클라이언트는 `ws://` 또는 `wss://` 스킴으로 연결하고 {"message": "..."} 프레임을 보냅니다.
// @Description  인증은 HTTP Header가 아닌 **쿼리 파라미터('token')**를 통해 수행됩니다.
// @Tags         Chat
// @Param        token query string true "로그인 시 발급받은 토큰"
// @Success      101 {string} string "101 Switching Protocols"
// @Failure      401 {object} handler.ErrorResponse "토큰 누락 또는 유효하지 않은 토큰"
// @Router       /ws/chat [get]
func (h *Handler) ChatSocket(c *gin.Context) {
	account, err := middleware.Authenticate(c.Request.Context(), h.tokens, h.store, c.Query("token"))
	if err != nil {
		middleware.Unauthorized(c)
		return
	}

	// WebSocket 연결 업그레이드과 종료
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("ChatSocket(): failed to upgrade to WebSocket", "account_id", account.ID, "error", err)
		return
	}
	defer conn.Close()
	h.logger.Info("WebSocket connection established", "account_id", account.ID)

	emit := func(ev ChatEvent) error {
		return conn.WriteJSON(ev)
	}

	// 요청 하나씩 순차 처리
	for {
		var req ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("ChatSocket(): read error", "account_id", account.ID, "error", err)
			}
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			if err := emit(ChatEvent{Type: EventError, Content: "Message cannot be empty"}); err != nil {
				return
			}
			continue
		}

		ctx := c.Request.Context()
		err := h.saveUserMessage(ctx, account.ID, req.Message)
		if err == nil {
			err = h.runChat(ctx, account, req.Message, emit)
		}
		if err != nil {
			h.logger.Error("ChatSocket(): chat failed", "account_id", account.ID, "error", err)
			if err := emit(ChatEvent{Type: EventError, Content: chatFailedDetail}); err != nil {
				return
			}
		}
	}
}
