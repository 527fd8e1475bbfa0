package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"complaint-triage-go/internal/logger"
)

var _ Analyzer = (*Remote)(nil)

// RemoteConfig points at a spaCy-style analysis service.
type RemoteConfig struct {
	URL     string
	Timeout time.Duration
	Retries uint64
}

// Remote posts {"text": ...} and expects a Doc shaped JSON body back.
type Remote struct {
	cfg    RemoteConfig
	client *http.Client
	log    *logger.Logger
}

func NewRemote(cfg RemoteConfig, log *logger.Logger) *Remote {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Remote{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.Component("nlp.remote"),
	}
}

func (r *Remote) Name() string { return "remote" }

func (r *Remote) Analyze(ctx context.Context, text string) (*Doc, error) {
	payload, _ := json.Marshal(map[string]string{"text": text})

	var doc Doc
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.URL, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := r.client.Do(req)
		if err != nil {
			r.log.WithError(err).Warn("nlp request failed")
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			return fmt.Errorf("nlp server error: %s", string(body))
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("nlp client error: status %d: %s", resp.StatusCode, string(body)))
		}
		doc = Doc{}
		if err := json.Unmarshal(body, &doc); err != nil {
			return backoff.Permanent(fmt.Errorf("json decode error: %v body=%s", err, string(body)))
		}
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), r.cfg.Retries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return nil, fmt.Errorf("nlp analyze: %w", err)
	}
	r.log.WithField("tokens", len(doc.Tokens)).WithField("ents", len(doc.Entities)).Debug("analysis received")
	return &doc, nil
}
