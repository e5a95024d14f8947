/**
* Name: 			stt.go
* Description: 		음성 전사 (STT)
* Workflow: 		Google Speech 클라이언트 생성, 오디오 전송, 텍스트 수신
 */

package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

// Transcriber converts an audio clip to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

type GoogleTranscriber struct {
	client   *speech.Client
	language string
}

// STT 클라이언트 초기화
func NewGoogleTranscriber(ctx context.Context, credentialsFile, language string) (*GoogleTranscriber, error) {
	if credentialsFile == "" {
		return nil, errors.New("NewGoogleTranscriber(): GOOGLE_APPLICATION_CREDENTIALS is not set")
	}
	client, err := speech.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("NewGoogleTranscriber(): failed to create speech client: %w", err)
	}
	return &GoogleTranscriber{client: client, language: language}, nil
}

// 인코딩은 지정하지 않음, WAV/FLAC 헤더로 자동 판별
func (g *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			LanguageCode:               g.language,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("recognize %s: %w", filename, err)
	}

	var parts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		parts = append(parts, result.Alternatives[0].Transcript)
	}
	text := strings.TrimSpace(strings.Join(parts, " "))
	slog.Debug("GoogleTranscriber.Transcribe(): final result", "file", filename, "chars", len(text))
	return text, nil
}

func (g *GoogleTranscriber) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
