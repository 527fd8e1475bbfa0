// Package app wires the pipeline from configuration.
package app

import (
	"fmt"

	"complaint-triage-go/internal/audio"
	"complaint-triage-go/internal/config"
	"complaint-triage-go/internal/extractor"
	"complaint-triage-go/internal/logger"
	"complaint-triage-go/internal/nlp"
	"complaint-triage-go/internal/processor"
	"complaint-triage-go/internal/speech"
	"complaint-triage-go/internal/transcription"
)

// Build constructs the speech backend, the analyser and the processor on top of them.
func Build(cfg config.Config, log *logger.Logger) (*processor.Processor, error) {
	rec, err := speech.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("speech backend: %w", err)
	}
	analyzer, err := nlp.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("nlp backend: %w", err)
	}
	log.WithField("stt_backend", rec.Name()).WithField("nlp_backend", analyzer.Name()).Info("pipeline configured")

	norm := audio.NewNormalizer(audio.FFmpeg{Path: cfg.FFmpegPath}, log)
	tr := transcription.New(norm, rec, log)
	return processor.New(tr, extractor.New(analyzer, log), log), nil
}
