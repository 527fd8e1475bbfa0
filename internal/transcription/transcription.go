package transcription

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"complaint-triage-go/internal/audio"
	"complaint-triage-go/internal/logger"
	"complaint-triage-go/internal/speech"
)

// Texts returned in place of a transcript when the speech service fails.
const (
	Unintelligible      = "Audio could not be understood."
	requestFailedPrefix = "Could not request results; "
)

// RequestFailed is the text returned when the speech service could not be reached.
func RequestFailed(err error) string {
	return requestFailedPrefix + err.Error()
}

// IsFailure reports whether text is one of the failure messages rather than speech.
func IsFailure(text string) bool {
	return text == Unintelligible || strings.HasPrefix(text, requestFailedPrefix)
}

// Transcriber turns an audio file into text: normalize to wav, load it whole,
// send it to the recognizer once.
type Transcriber struct {
	norm *audio.Normalizer
	rec  speech.Recognizer
	log  *logger.Logger
}

func New(norm *audio.Normalizer, rec speech.Recognizer, log *logger.Logger) *Transcriber {
	if log == nil {
		log = logger.Nop()
	}
	return &Transcriber{norm: norm, rec: rec, log: log.Component("transcription")}
}

// Transcribe returns the recognised text. Speech service failures come back as
// text (Unintelligible or RequestFailed) with a nil error; only a file that
// cannot be converted or decoded returns an error.
func (t *Transcriber) Transcribe(ctx context.Context, path string) (string, error) {
	log := t.log.WithField("path", path).WithField("backend", t.rec.Name())

	wavPath, err := t.norm.Normalize(ctx, path)
	if err != nil {
		return "", err
	}
	data, err := audio.Load(wavPath)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", wavPath, err)
	}
	log.WithField("duration", data.Duration().String()).Info("submitting audio for recognition")

	text, err := t.rec.Recognize(ctx, data)
	switch {
	case err == nil:
		log.WithField("chars", len(text)).Info("transcription complete")
		return text, nil
	case errors.Is(err, speech.ErrUnintelligible):
		log.Warn("audio could not be understood")
		return Unintelligible, nil
	default:
		log.WithField("error", err.Error()).Warn("speech request failed")
		return RequestFailed(err), nil
	}
}
