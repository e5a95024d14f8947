/**
* Name: 			handler.go
* Description: 		HTTP 핸들러 공통 의존성
* Workflow: 		저장소, LLM, 기억, 업로드 어댑터 주입 및 공통 응답 형식
 */

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"RealEgo_Backend/internal/llm"
	"RealEgo_Backend/internal/memory"
	"RealEgo_Backend/internal/models"

	"github.com/gin-gonic/gin"
)

type AccountStore interface {
	CreateAccount(ctx context.Context, username, passwordHash string) (*models.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
}

type ProfileStore interface {
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (*models.Profile, error)
}

type MessageStore interface {
	AppendMessage(ctx context.Context, userID int64, role models.Role, content string) (*models.ChatMessage, error)
	ListRecentMessages(ctx context.Context, userID int64, limit int) ([]models.ChatMessage, error)
}

// Store is everything the handlers persist. *storage.DB satisfies it.
type Store interface {
	AccountStore
	ProfileStore
	MessageStore
	HealthCheck(ctx context.Context) error
}

type Memory interface {
	Recall(ctx context.Context, query string, accountID int64) []string
	Remember(ctx context.Context, snippet string, accountID int64) *memory.Ack
}

type VoiceExtractor interface {
	ExtractFromVoice(ctx context.Context, audio []byte, filename, currentTimeline string) (string, string, error)
}

type Uploader interface {
	Upload(ctx context.Context, data []byte, accountID int64, filename, contentType string) (string, error)
}

type Speaker interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// FileResolver maps an object key to a local path. Only the disk backend provides one.
type FileResolver interface {
	Path(key string) (string, error)
}

type TokenService interface {
	GenerateToken(username string) (string, error)
	ValidateToken(token string) (string, error)
}

// Deps wires the handler. Extractor, Speaker and Files are optional.
type Deps struct {
	Store     Store
	Tokens    TokenService
	Provider  llm.Provider
	Memory    Memory
	Extractor VoiceExtractor
	Uploader  Uploader
	Speaker   Speaker
	Files     FileResolver
	Logger    *slog.Logger
}

type Handler struct {
	store     Store
	tokens    TokenService
	chat      *llm.Orchestrator
	memory    Memory
	extractor VoiceExtractor
	uploader  Uploader
	speaker   Speaker
	files     FileResolver
	tasks     *Background
	logger    *slog.Logger
}

func New(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:     d.Store,
		tokens:    d.Tokens,
		chat:      llm.NewOrchestrator(d.Provider, d.Memory, logger),
		memory:    d.Memory,
		extractor: d.Extractor,
		uploader:  d.Uploader,
		speaker:   d.Speaker,
		files:     d.Files,
		tasks:     NewBackground(logger),
		logger:    logger,
	}
}

// Background exposes the deferred persistence queue for draining on shutdown.
func (h *Handler) Background() *Background {
	return h.tasks
}

type ErrorResponse struct {
	Detail string `json:"detail" example:"Username already registered"`
}

func abortWithDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Detail: detail})
}

func internalError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "path", c.FullPath(), "error", err)
	abortWithDetail(c, http.StatusInternalServerError, msg)
}
