/**
* Name: 			chat_handler.go
* Description: 		채팅 HTTP 핸들러
* Workflow: 		프로필 로드, 사용자 메시지 저장, 기억 검색, LLM 응답 스트리밍, 응답 저장/기억 등록은 백그라운드 처리
 */

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"RealEgo_Backend/internal/llm"
	"RealEgo_Backend/internal/middleware"
	"RealEgo_Backend/internal/models"

	"github.com/gin-gonic/gin"
)

// 스트림 이벤트 타입
const (
	EventLog           = "log"
	EventResponseChunk = "response_chunk"
	EventError         = "error"
)

type ChatRequest struct {
	Message string `json:"message" example:"What's my location?"`
}

type ChatResponse struct {
	Response string `json:"response" example:"You live in Beijing."`
}

type SpeakRequest struct {
	Text string `json:"text" example:"Hello"`
}

// ChatEvent is one newline-delimited record of the chat stream.
type ChatEvent struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type HistoryResponse struct {
	History []models.ChatMessage `json:"history"`
}

type emitFunc func(ChatEvent) error

func logEvent(content string) ChatEvent {
	return ChatEvent{Type: EventLog, Content: content}
}

// 스트림 오류 이벤트 메시지, 상세 원인은 로그에만 남김
const chatFailedDetail = "Failed to process chat request"

// saveUserMessage stores the incoming message before any reply is produced.
func (h *Handler) saveUserMessage(ctx context.Context, accountID int64, message string) error {
	if _, err := h.store.AppendMessage(ctx, accountID, models.RoleUser, message); err != nil {
		return fmt.Errorf("save user message: %w", err)
	}
	return nil
}

// runChat drives one conversation turn and reports progress through emit.
// The caller has already stored the user message; the reply and the memory
// write are queued after the last fragment has been emitted.
func (h *Handler) runChat(ctx context.Context, account *models.Account, message string, emit emitFunc) error {
	if err := emit(logEvent("Loading profile...")); err != nil {
		return err
	}
	profile, err := h.store.GetProfile(ctx, account.ID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if err := emit(logEvent("Profile loaded")); err != nil {
		return err
	}

	if err := emit(logEvent("Searching memories...")); err != nil {
		return err
	}
	prompt := h.chat.Prepare(ctx, llm.ConverseRequest{
		AccountID: account.ID,
		Username:  account.Username,
		Profile:   *profile,
		Message:   message,
	})
	if err := emit(logEvent(fmt.Sprintf("Found %d memories", len(prompt.Memories)))); err != nil {
		return err
	}

	if err := emit(logEvent("Waiting for LLM...")); err != nil {
		return err
	}
	reply := h.chat.Produce(ctx, prompt, true)
	defer reply.Close()
	if err := emit(logEvent("Stream started")); err != nil {
		return err
	}

	var full strings.Builder
	for fragment := range reply.Fragments() {
		full.WriteString(fragment)
		if err := emit(ChatEvent{Type: EventResponseChunk, Content: fragment}); err != nil {
			return err
		}
	}
	if err := emit(logEvent("Response complete")); err != nil {
		return err
	}

	if err := emit(logEvent("Queueing background work...")); err != nil {
		return err
	}
	h.persistReply(ctx, account.ID, message, full.String())
	return emit(logEvent("Done"))
}

// persistReply stores the assistant message and pushes the exchange to memory.
func (h *Handler) persistReply(ctx context.Context, accountID int64, message, reply string) {
	h.tasks.Go(ctx, "save assistant message", func(ctx context.Context) {
		if _, err := h.store.AppendMessage(ctx, accountID, models.RoleAssistant, reply); err != nil {
			h.logger.Error("failed to save assistant message", "account_id", accountID, "error", err)
		}
	})
	h.tasks.Go(ctx, "remember interaction", func(ctx context.Context) {
		h.memory.Remember(ctx, fmt.Sprintf("User: %s\nAssistant: %s", message, reply), accountID)
	})
}

func bindChatRequest(c *gin.Context) (string, bool) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		abortWithDetail(c, http.StatusBadRequest, "Message cannot be empty")
		return "", false
	}
	return req.Message, true
}

// Chat godoc
// @Summary      채팅 (단일 응답)
// @Description  프로필과 관련 기억을 바탕으로 LLM 응답 전체를 한 번에 반환합니다.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.ChatRequest true "사용자 메시지"
// @Success      200 {object} handler.ChatResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /chat/ [post]
func (h *Handler) Chat(c *gin.Context) {
	message, ok := bindChatRequest(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	account := middleware.CurrentAccount(c)

	if err := h.saveUserMessage(ctx, account.ID, message); err != nil {
		internalError(c, h.logger, "Failed to save message", err)
		return
	}
	profile, err := h.store.GetProfile(ctx, account.ID)
	if err != nil {
		internalError(c, h.logger, "Failed to load profile", err)
		return
	}

	text := h.chat.Converse(ctx, llm.ConverseRequest{
		AccountID: account.ID,
		Username:  account.Username,
		Profile:   *profile,
		Message:   message,
	}, false).Text()

	h.persistReply(ctx, account.ID, message, text)
	c.JSON(http.StatusOK, ChatResponse{Response: text})
}

// ChatStream godoc
// @Summary      채팅 (스트리밍)
// @Description  진행 로그와 응답 조각을 줄 단위 JSON(NDJSON)으로 스트리밍합니다.
// @Description  각 줄은 {"type": "log"|"response_chunk"|"error", "content": "..."} 형식입니다.
// @Tags         Chat
// @Accept       json
// @Produce      application/x-ndjson
// @Security     BearerAuth
// @Param        request body handler.ChatRequest true "사용자 메시지"
// @Success      200 {object} handler.ChatEvent
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse "사용자 메시지 저장 실패"
// @Router       /chat/stream [post]
func (h *Handler) ChatStream(c *gin.Context) {
	message, ok := bindChatRequest(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	account := middleware.CurrentAccount(c)

	// 스트림 시작 전에 사용자 메시지 저장, 실패 시 일반 오류 응답
	if err := h.saveUserMessage(ctx, account.ID, message); err != nil {
		internalError(c, h.logger, "Failed to save message", err)
		return
	}

	c.Header("Content-Type", "application/x-ndjson")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	enc := json.NewEncoder(c.Writer)
	emit := func(ev ChatEvent) error {
		if err := enc.Encode(ev); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	}

	if err := h.runChat(ctx, account, message, emit); err != nil {
		h.logger.Error("chat stream failed", "account_id", account.ID, "error", err)
		_ = emit(ChatEvent{Type: EventError, Content: chatFailedDetail})
	}
}

// ChatHistory godoc
// @Summary      대화 기록 조회
// @Description  프로필의 history_limit 만큼 최근 메시지를 오래된 순으로 반환합니다.
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.HistoryResponse
// @Failure      401 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /chat/history [get]
func (h *Handler) ChatHistory(c *gin.Context) {
	ctx := c.Request.Context()
	account := middleware.CurrentAccount(c)

	profile, err := h.store.GetProfile(ctx, account.ID)
	if err != nil {
		internalError(c, h.logger, "Failed to load profile", err)
		return
	}
	messages, err := h.store.ListRecentMessages(ctx, account.ID, profile.EffectiveHistoryLimit())
	if err != nil {
		internalError(c, h.logger, "Failed to fetch history", err)
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	c.JSON(http.StatusOK, HistoryResponse{History: messages})
}

// Speak godoc
// @Summary      텍스트 음성 합성
// @Description  Google TTS로 텍스트를 MP3 오디오로 변환합니다.
// @Tags         Chat
// @Accept       json
// @Produce      audio/mpeg
// @Security     BearerAuth
// @Param        request body handler.SpeakRequest true "합성할 텍스트"
// @Success      200 {file} file "MP3 오디오"
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse
// @Failure      503 {object} handler.ErrorResponse
// @Router       /chat/speak [post]
func (h *Handler) Speak(c *gin.Context) {
	if h.speaker == nil {
		abortWithDetail(c, http.StatusServiceUnavailable, "Speech synthesis is not configured")
		return
	}
	var req SpeakRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		abortWithDetail(c, http.StatusBadRequest, "Text cannot be empty")
		return
	}
	audio, err := h.speaker.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		internalError(c, h.logger, "Speech synthesis failed", err)
		return
	}
	c.Data(http.StatusOK, "audio/mpeg", audio)
}
