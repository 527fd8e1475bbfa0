// Package speech contains the speech-to-text backends used by the transcriber.
package speech

import (
	"context"
	"errors"
	"fmt"

	"complaint-triage-go/internal/audio"
	"complaint-triage-go/internal/config"
	"complaint-triage-go/internal/logger"
)

// ErrUnintelligible means the service heard the audio but produced no text for it.
var ErrUnintelligible = errors.New("speech: audio could not be understood")

// RequestError wraps a failure to reach the service or a service-side error.
type RequestError struct {
	Backend string
	Err     error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Backend, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Recognizer is a speech-to-text service.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, data *audio.Data) (string, error)
}

// New picks the backend named by cfg.SpeechBackend.
func New(cfg config.Config, log *logger.Logger) (Recognizer, error) {
	switch cfg.SpeechBackend {
	case "google":
		if cfg.GoogleAPIKey == "" {
			return nil, fmt.Errorf("GOOGLE_SPEECH_API_KEY not set")
		}
		return NewGoogle(GoogleConfig{
			BaseURL:  cfg.GoogleSpeechURL,
			APIKey:   cfg.GoogleAPIKey,
			Language: cfg.SpeechLanguage,
			Timeout:  cfg.HTTPTimeout,
			Retries:  cfg.Retries,
		}, log), nil
	case "whisper":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return NewWhisper(WhisperConfig{
			APIKey:   cfg.OpenAIAPIKey,
			Model:    cfg.WhisperModel,
			Language: cfg.SpeechLanguage,
		}), nil
	case "stub":
		return &Stub{Text: cfg.StubTranscript}, nil
	default:
		return nil, fmt.Errorf("unknown STT_BACKEND %q", cfg.SpeechBackend)
	}
}
