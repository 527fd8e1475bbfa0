package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pemistahl/lingua-go"

	"complaint-triage-go/internal/actionable"
	"complaint-triage-go/internal/extractor"
	"complaint-triage-go/internal/logger"
	"complaint-triage-go/internal/transcription"
	"complaint-triage-go/internal/types"
)

// Languages the transcript language is detected among.
var Languages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Italian,
	lingua.Dutch,
}

// Processor runs one recording (or one text) through transcription, extraction and routing.
type Processor struct {
	tr       *transcription.Transcriber
	ex       *extractor.Extractor
	detector lingua.LanguageDetector
	log      *logger.Logger
}

// New builds a Processor. tr may be nil when only text input is processed.
func New(tr *transcription.Transcriber, ex *extractor.Extractor, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Nop()
	}
	return &Processor{
		tr:       tr,
		ex:       ex,
		detector: lingua.NewLanguageDetectorBuilder().FromLanguages(Languages...).Build(),
		log:      log.Component("processor"),
	}
}

// Process transcribes the recording at path and extracts the complaint. The
// error is non-nil only when the file could not be converted or decoded; the
// partial result is returned alongside it.
func (p *Processor) Process(ctx context.Context, path string) (types.ProcessResult, error) {
	start := time.Now()
	res := types.ProcessResult{ID: uuid.New().String(), AudioPath: path}
	log := p.log.WithField("id", res.ID).WithField("audio_path", path)

	if p.tr == nil {
		err := fmt.Errorf("no transcriber configured")
		res.Error = err.Error()
		return res, err
	}

	text, err := p.tr.Transcribe(ctx, path)
	if err != nil {
		log.WithField("error", err.Error()).Warn("transcription error")
		res.Error = fmt.Sprintf("transcription error: %v", err)
		res.DurationMs = time.Since(start).Milliseconds()
		return res, err
	}

	p.fill(ctx, &res, text)
	res.DurationMs = time.Since(start).Milliseconds()
	log.WithField("issue", res.Record.Issue).
		WithField("urgency", res.Record.Urgency).
		WithField("transcribed", res.Transcribed).
		WithField("duration_ms", res.DurationMs).
		Info("recording processed")
	return res, nil
}

// ProcessText skips transcription and treats text as the transcript.
func (p *Processor) ProcessText(ctx context.Context, text string) types.ProcessResult {
	start := time.Now()
	res := types.ProcessResult{ID: uuid.New().String()}
	p.fill(ctx, &res, text)
	res.DurationMs = time.Since(start).Milliseconds()
	return res
}

func (p *Processor) fill(ctx context.Context, res *types.ProcessResult, text string) {
	res.Transcript = text
	res.Transcribed = !transcription.IsFailure(text)
	res.Language = "unknown"
	if res.Transcribed {
		res.Language = p.detectLanguage(text)
	}
	// Failure messages go through extraction too and come out mostly as defaults.
	res.Record = p.ex.Extract(ctx, text)
	res.Action = actionable.Generate(res.Record)
}

func (p *Processor) detectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return "unknown"
	}
	lang, ok := p.detector.DetectLanguageOf(text)
	if !ok {
		return "unknown"
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
