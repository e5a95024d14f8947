/**
* Name: 			config.go
* Description: 		환경 변수 기반 서버 설정
* Workflow: 		.env 로드, 기본값 적용, 검증
 */

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "default_secret_key"

type Config struct {
	Port     int
	LogLevel string

	DBDriver    string
	DatabaseURL string

	JWTSecret   string
	TokenExpiry time.Duration

	DefaultUsername string
	DefaultPassword string

	// LLM
	LLMProvider        string
	LLMBaseURL         string
	LLMAPIKey          string
	LLMModel           string
	Transcriber        string
	TranscriptionModel string
	SpeechLanguage     string
	GoogleCredentials  string

	// Memory
	MemoryBackend   string
	Mem0APIURL      string
	Mem0APIKey      string
	MemoryTimeout   time.Duration
	MemoryLocalPath string
	EmbeddingModel  string

	// Object storage
	StorageBackend  string
	S3Endpoint      string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	LocalStorageDir string

	FrontendDir        string
	LoginRatePerMinute int
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Port:     envInt("PORT", 8080),
		LogLevel: envStr("LOG_LEVEL", "info"),

		DBDriver:    envStr("DB_DRIVER", "sqlite"),
		DatabaseURL: envStr("DATABASE_URL", "./realego.db"),

		JWTSecret:   envStr("JWT_SECRET_KEY", ""),
		TokenExpiry: time.Duration(envInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,

		DefaultUsername: envStr("DEFAULT_USERNAME", "tera"),
		DefaultPassword: envStr("DEFAULT_PASSWORD", "tera"),

		LLMProvider:        envStr("LLM_PROVIDER", "openai"),
		LLMBaseURL:         envStr("LLM_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		LLMAPIKey:          envStr("LLM_API_KEY", ""),
		LLMModel:           envStr("LLM_MODEL", ""),
		Transcriber:        envStr("TRANSCRIBER", "openai"),
		TranscriptionModel: envStr("TRANSCRIPTION_MODEL", "whisper-1"),
		SpeechLanguage:     envStr("SPEECH_LANGUAGE", "zh-CN"),
		GoogleCredentials:  envStr("GOOGLE_APPLICATION_CREDENTIALS", ""),

		MemoryBackend:   envStr("MEMORY_BACKEND", "mem0"),
		Mem0APIURL:      envStr("MEM0_API_URL", ""),
		Mem0APIKey:      envStr("MEM0_API_KEY", ""),
		MemoryTimeout:   time.Duration(envInt("MEMORY_TIMEOUT_SECONDS", 5)) * time.Second,
		MemoryLocalPath: envStr("MEMORY_LOCAL_PATH", "./data/memory"),
		EmbeddingModel:  envStr("EMBEDDING_MODEL", "text-embedding-3-small"),

		StorageBackend:  envStr("STORAGE_BACKEND", "s3"),
		S3Endpoint:      envStr("S3_ENDPOINT", "tos-s3-cn-beijing.volces.com"),
		S3Region:        envStr("S3_REGION", "cn-beijing"),
		S3Bucket:        envStr("S3_BUCKET", "realego-data"),
		S3AccessKey:     envStr("S3_ACCESS_KEY", ""),
		S3SecretKey:     envStr("S3_SECRET_KEY", ""),
		LocalStorageDir: envStr("LOCAL_STORAGE_DIR", "./data/uploads"),

		FrontendDir:        envStr("FRONTEND_DIR", "./frontend"),
		LoginRatePerMinute: envInt("LOGIN_RATE_PER_MINUTE", 20),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret
		slog.Warn("JWT_SECRET_KEY is not set, using default key")
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if c.TokenExpiry <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	switch c.LLMProvider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("LLM_PROVIDER must be openai or anthropic, got %q", c.LLMProvider)
	}
	switch c.Transcriber {
	case "openai", "google":
	default:
		return fmt.Errorf("TRANSCRIBER must be openai or google, got %q", c.Transcriber)
	}
	switch c.MemoryBackend {
	case "mem0", "local":
	default:
		return fmt.Errorf("MEMORY_BACKEND must be mem0 or local, got %q", c.MemoryBackend)
	}
	if c.MemoryTimeout <= 0 {
		return fmt.Errorf("MEMORY_TIMEOUT_SECONDS must be positive")
	}
	switch c.StorageBackend {
	case "s3", "local":
	default:
		return fmt.Errorf("STORAGE_BACKEND must be s3 or local, got %q", c.StorageBackend)
	}
	if c.LoginRatePerMinute < 1 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive, got %d", c.LoginRatePerMinute)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
