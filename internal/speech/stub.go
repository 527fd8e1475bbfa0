package speech

import (
	"context"
	"strings"

	"complaint-triage-go/internal/audio"
)

var _ Recognizer = (*Stub)(nil)

// Stub answers without any network. RecognizeFunc wins over Text/Err when set.
type Stub struct {
	Text          string
	Err           error
	RecognizeFunc func(ctx context.Context, data *audio.Data) (string, error)
}

func (s *Stub) Name() string { return "stub" }

func (s *Stub) Recognize(ctx context.Context, data *audio.Data) (string, error) {
	if s.RecognizeFunc != nil {
		return s.RecognizeFunc(ctx, data)
	}
	if s.Err != nil {
		return "", s.Err
	}
	if strings.TrimSpace(s.Text) == "" {
		return "", ErrUnintelligible
	}
	return s.Text, nil
}
