package handler

import (
	"log/slog"
	"os"
	"path/filepath"

	"RealEgo_Backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterConfig struct {
	FrontendDir        string
	LoginRatePerMinute int
	Logger             *slog.Logger
}

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	limiter := middleware.LoginRateLimiter(cfg.LoginRatePerMinute)
	router.POST("/token", limiter, h.Login)
	router.POST("/register", limiter, h.Register)
	router.GET("/health", h.Health)
	router.GET("/ws/chat", h.ChatSocket)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	protected := router.Group("/", middleware.AuthMiddleware(h.tokens, h.store))
	{
		protected.GET("/users/me", h.Me)
		protected.GET("/users/me/profile", h.GetProfile)
		protected.PUT("/users/me/profile", h.UpdateProfile)
		protected.POST("/users/me/profile/voice", h.UpdateProfileFromVoice)

		protected.POST("/chat/", h.Chat)
		protected.POST("/chat/stream", h.ChatStream)
		protected.GET("/chat/history", h.ChatHistory)
		protected.POST("/chat/speak", h.Speak)

		protected.POST("/upload/", h.Upload)
		protected.GET("/files/*key", h.ServeFile)
	}

	registerFrontend(router, cfg.FrontendDir, logger)
	return router
}

// 프론트엔드 정적 파일, 디렉토리가 없으면 생략
func registerFrontend(router *gin.Engine, dir string, logger *slog.Logger) {
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logger.Warn("frontend directory not found, static files disabled", "dir", dir)
		return
	}
	router.StaticFile("/", filepath.Join(dir, "index.html"))
	router.StaticFile("/home.html", filepath.Join(dir, "home.html"))
	if info, err := os.Stat(filepath.Join(dir, "static")); err == nil && info.IsDir() {
		router.Static("/static", filepath.Join(dir, "static"))
	}
}
