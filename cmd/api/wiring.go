package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"RealEgo_Backend/internal/auth"
	"RealEgo_Backend/internal/config"
	"RealEgo_Backend/internal/handler"
	"RealEgo_Backend/internal/llm"
	"RealEgo_Backend/internal/memory"
	"RealEgo_Backend/internal/objectstore"
	"RealEgo_Backend/internal/storage"
)

// 기본 계정 생성, 이미 있으면 그대로 둠
func seedDefaultAccount(ctx context.Context, db *storage.DB, username, password string, logger *slog.Logger) error {
	if username == "" {
		return nil
	}
	if _, err := db.GetAccountByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("look up default account: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	account, err := db.CreateAccount(ctx, username, hash)
	if err != nil && !errors.Is(err, storage.ErrUsernameExists) {
		return fmt.Errorf("create default account: %w", err)
	}
	if account != nil {
		logger.Info("default account created", "account_id", account.ID, "username", username)
	}
	return nil
}

// buildDeps constructs the external adapters selected by configuration.
func buildDeps(ctx context.Context, cfg *config.Config, logger *slog.Logger) (handler.Deps, func(), error) {
	var closers []func() error
	cleanup := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("failed to close client", "error", err)
			}
		}
	}

	deps := handler.Deps{Logger: logger}
	openaiClient := llm.NewOpenAIClient(cfg.LLMBaseURL, cfg.LLMAPIKey)

	switch cfg.LLMProvider {
	case "anthropic":
		deps.Provider = llm.NewAnthropicProvider(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	default:
		deps.Provider = llm.NewOpenAIProvider(openaiClient, cfg.LLMModel)
	}

	var transcriber llm.Transcriber
	switch cfg.Transcriber {
	case "google":
		g, err := llm.NewGoogleTranscriber(ctx, cfg.GoogleCredentials, cfg.SpeechLanguage)
		if err != nil {
			logger.Warn("speech-to-text unavailable, voice profile updates disabled", "error", err)
		} else {
			transcriber = g
			closers = append(closers, g.Close)
		}
	default:
		transcriber = llm.NewOpenAITranscriber(openaiClient, cfg.TranscriptionModel)
	}
	if transcriber != nil {
		deps.Extractor = llm.NewVoiceExtractor(transcriber, deps.Provider, logger)
	}

	if cfg.GoogleCredentials != "" {
		tts, err := llm.NewTTSClient(ctx, cfg.GoogleCredentials, cfg.SpeechLanguage)
		if err != nil {
			logger.Warn("text-to-speech unavailable", "error", err)
		} else {
			deps.Speaker = tts
			closers = append(closers, tts.Close)
		}
	}

	var backend memory.Backend
	switch cfg.MemoryBackend {
	case "local":
		store, err := memory.NewLocalStore(cfg.MemoryLocalPath, memory.NewOpenAIEmbedder(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModel))
		if err != nil {
			cleanup()
			return deps, nil, fmt.Errorf("open local memory: %w", err)
		}
		backend = store
	default:
		if cfg.Mem0APIURL == "" {
			logger.Warn("MEM0_API_URL is not set, memory calls will fail and be ignored")
		}
		backend = memory.NewMem0Client(cfg.Mem0APIURL, cfg.Mem0APIKey, cfg.MemoryTimeout)
	}
	deps.Memory = memory.NewAdapter(backend, cfg.MemoryTimeout, logger)

	switch cfg.StorageBackend {
	case "local":
		disk, err := objectstore.NewDiskBackend(cfg.LocalStorageDir)
		if err != nil {
			cleanup()
			return deps, nil, err
		}
		deps.Uploader = objectstore.New(disk)
		deps.Files = disk
	default:
		s3Backend, err := objectstore.NewS3Backend(ctx, objectstore.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			cleanup()
			return deps, nil, err
		}
		deps.Uploader = objectstore.New(s3Backend)
	}

	return deps, cleanup, nil
}
