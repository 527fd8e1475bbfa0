package speech

import (
	"bytes"
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"complaint-triage-go/internal/audio"
)

var _ Recognizer = (*Whisper)(nil)

type WhisperConfig struct {
	APIKey   string
	BaseURL  string // optional, e.g. an OpenAI-compatible gateway
	Model    string // default whisper-1
	Language string // BCP-47 tag; only the primary subtag is sent
}

// Whisper transcribes through the OpenAI audio API.
type Whisper struct {
	client   *openai.Client
	model    string
	language string
}

func NewWhisper(cfg WhisperConfig) *Whisper {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.Whisper1
	}
	lang, _, _ := strings.Cut(cfg.Language, "-")
	return &Whisper{
		client:   openai.NewClientWithConfig(oc),
		model:    model,
		language: strings.ToLower(lang),
	}
}

func (w *Whisper) Name() string { return "whisper" }

func (w *Whisper) Recognize(ctx context.Context, data *audio.Data) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: "complaint.wav",
		Reader:   bytes.NewReader(data.WAV),
		Language: w.language,
	})
	if err != nil {
		return "", &RequestError{Backend: w.Name(), Err: err}
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrUnintelligible
	}
	return text, nil
}
