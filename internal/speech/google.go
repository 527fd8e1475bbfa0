package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"complaint-triage-go/internal/audio"
	"complaint-triage-go/internal/logger"
)

var _ Recognizer = (*Google)(nil)

// GoogleConfig configures the Cloud Speech-to-Text v1 REST client.
type GoogleConfig struct {
	BaseURL  string // default https://speech.googleapis.com
	APIKey   string
	Language string // default en-US
	Timeout  time.Duration
	Retries  uint64 // extra attempts after the first; 0 = single call
}

// Google calls speech:recognize with the whole recording inline.
type Google struct {
	cfg    GoogleConfig
	client *http.Client
	log    *logger.Logger
}

func NewGoogle(cfg GoogleConfig, log *logger.Logger) *Google {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://speech.googleapis.com"
	}
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Google{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.Component("speech.google"),
	}
}

func (g *Google) Name() string { return "google" }

type recognizeRequest struct {
	Config recognitionConfig `json:"config"`
	Audio  recognitionAudio  `json:"audio"`
}

type recognitionConfig struct {
	Encoding          string `json:"encoding"`
	SampleRateHertz   int    `json:"sampleRateHertz"`
	AudioChannelCount int    `json:"audioChannelCount"`
	LanguageCode      string `json:"languageCode"`
}

type recognitionAudio struct {
	Content string `json:"content"`
}

type recognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func (g *Google) Recognize(ctx context.Context, data *audio.Data) (string, error) {
	payload, err := json.Marshal(recognizeRequest{
		Config: recognitionConfig{
			Encoding:          "LINEAR16",
			SampleRateHertz:   data.SampleRate,
			AudioChannelCount: data.Channels,
			LanguageCode:      g.cfg.Language,
		},
		Audio: recognitionAudio{Content: base64.StdEncoding.EncodeToString(data.WAV)},
	})
	if err != nil {
		return "", fmt.Errorf("encode recognize request: %w", err)
	}

	endpoint := strings.TrimRight(g.cfg.BaseURL, "/") + "/v1/speech:recognize?key=" + url.QueryEscape(g.cfg.APIKey)
	log := g.log.WithField("bytes", len(data.WAV)).WithField("sample_rate", data.SampleRate)

	var parsed recognizeResponse
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := g.client.Do(req)
		if err != nil {
			log.WithField("error", err.Error()).Warn("recognize request failed")
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		log.WithField("http_status", resp.StatusCode).Debug("recognize response received")

		parsed = recognizeResponse{}
		if resp.StatusCode >= 400 {
			msg := strings.TrimSpace(string(body))
			if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
				msg = parsed.Error.Message
			}
			statusErr := fmt.Errorf("status %d: %s", resp.StatusCode, msg)
			if resp.StatusCode < 500 {
				return backoff.Permanent(statusErr)
			}
			return statusErr
		}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return backoff.Permanent(fmt.Errorf("json decode error: %v body=%s", err, string(body)))
		}
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), g.cfg.Retries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return "", &RequestError{Backend: g.Name(), Err: err}
	}

	var parts []string
	for _, r := range parsed.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		if t := strings.TrimSpace(r.Alternatives[0].Transcript); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return "", ErrUnintelligible
	}
	return strings.Join(parts, " "), nil
}
