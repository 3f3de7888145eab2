package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/asrayg/betterforms/config"
	"github.com/asrayg/betterforms/internal/apperror"
	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const transcriptionPrompt = "Transcribe the spoken audio verbatim. " +
	"Return only the transcript text, with no commentary, labels, or formatting."

// TranscriptionService turns a previously uploaded audio recording into
// text. Single-shot and opaque: the call either yields a transcript or
// fails, with nothing persisted either way.
type TranscriptionService interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

type transcriptionService struct {
	model   *genai.GenerativeModel
	storage StorageService
}

func NewTranscriptionService(cfg *config.Config, storage StorageService) (TranscriptionService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. TranscriptionService will be non-functional.")
		return &transcriptionService{storage: storage}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &transcriptionService{
		model:   client.GenerativeModel("gemini-1.5-flash"),
		storage: storage,
	}, nil
}

func (s *transcriptionService) Transcribe(ctx context.Context, audioURL string) (string, error) {
	if s.model == nil {
		return "", apperror.New(apperror.KindUpstream, "transcription service is not configured")
	}

	audioData, err := s.storage.Download(ctx, audioURL)
	if err != nil {
		return "", err
	}
	if len(audioData) == 0 {
		return "", apperror.New(apperror.KindInvalid, "audio object is empty")
	}

	resp, err := s.model.GenerateContent(ctx,
		genai.Blob{MIMEType: "audio/webm", Data: audioData},
		genai.Text(transcriptionPrompt),
	)
	if err != nil {
		log.Error().Err(err).Str("audioURL", audioURL).Msg("Transcribe: Gemini API error")
		return "", apperror.Wrap(apperror.KindUpstream, "transcription failed", err)
	}

	transcript, err := transcriptFromResponse(resp)
	if err != nil {
		log.Warn().Err(err).Str("audioURL", audioURL).Msg("Transcribe: unusable response from Gemini")
		return "", err
	}

	log.Info().Str("audioURL", audioURL).Int("chars", len(transcript)).Msg("Audio transcribed")
	return transcript, nil
}

// transcriptFromResponse extracts the transcript text from a Gemini response.
// Safety-blocked candidates carry a nil Content.
func transcriptFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", apperror.New(apperror.KindUpstream, "transcription returned no content")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	transcript := strings.TrimSpace(b.String())
	if transcript == "" {
		return "", apperror.New(apperror.KindUpstream, "transcription returned no text")
	}
	return transcript, nil
}
