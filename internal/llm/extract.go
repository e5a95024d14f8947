package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	ErrTranscription = errors.New("transcription failed")
	ErrExtraction    = errors.New("extraction failed")
)

const extractorSystemPrompt = "You are a precise data extractor. Output JSON only."

// VoiceExtractor turns a spoken clip into timeline updates.
type VoiceExtractor struct {
	transcriber Transcriber
	provider    Provider
	logger      *slog.Logger
}

func NewVoiceExtractor(transcriber Transcriber, provider Provider, logger *slog.Logger) *VoiceExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &VoiceExtractor{transcriber: transcriber, provider: provider, logger: logger}
}

// ExtractFromVoice returns the transcript and the model's timeline JSON object.
// Merging into the stored timeline is left to the caller.
func (e *VoiceExtractor) ExtractFromVoice(ctx context.Context, audio []byte, filename, currentTimeline string) (string, string, error) {
	transcript, err := e.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		e.logger.Error("VoiceExtractor: transcription error", "error", err)
		return "", "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	if strings.TrimSpace(transcript) == "" {
		return "", "", fmt.Errorf("%w: empty transcript", ErrTranscription)
	}
	e.logger.Info("VoiceExtractor: transcribed text", "chars", len(transcript))

	raw, err := e.provider.Complete(ctx, CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: extractorSystemPrompt},
			{Role: RoleUser, Content: buildExtractionPrompt(currentTimeline, transcript)},
		},
		JSON: true,
	})
	if err != nil {
		e.logger.Error("VoiceExtractor: extraction error", "error", err)
		return transcript, "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	extracted, err := normalizeJSONObject(raw)
	if err != nil {
		return transcript, "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return transcript, extracted, nil
}

// normalizeJSONObject strips markdown fences and checks the payload is a JSON object.
func normalizeJSONObject(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return "", fmt.Errorf("model output is not a JSON object: %w", err)
	}
	return s, nil
}
