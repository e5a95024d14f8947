/**
* Name: 			tts.go
* Description: 		TTS 서버 연결
* Workflow: 		TTS 클라이언트 생성, 텍스트 전송, 오디오 수신
 */

package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
)

// TTS 연결 정보
type TTSClient struct {
	client   *texttospeech.Client
	language string
}

// TTS 클라이언트 초기화
func NewTTSClient(ctx context.Context, credentialsFile, language string) (*TTSClient, error) {
	if credentialsFile == "" {
		return nil, errors.New("NewTTSClient(): GOOGLE_APPLICATION_CREDENTIALS is not set")
	}
	client, err := texttospeech.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("NewTTSClient(): failed to create TTS client: %w", err)
	}
	return &TTSClient{client: client, language: language}, nil
}

// 텍스트를 MP3 오디오로 변환
func (t *TTSClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: t.language,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := t.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	slog.Debug("TTSClient.Synthesize(): succeeded", "bytes", len(resp.AudioContent))
	return resp.AudioContent, nil
}

// TTS 클라이언트 종료
func (t *TTSClient) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}
