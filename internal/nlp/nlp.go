// Package nlp provides text analysers that return lemmatised tokens and named entities.
package nlp

import (
	"context"
	"fmt"

	"complaint-triage-go/internal/config"
	"complaint-triage-go/internal/logger"
)

// Token is one word of the analysed text.
type Token struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
}

// Entity is a labelled span, e.g. {"heathrow", "GPE"}.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Doc is the analysis of one text, tokens and entities in reading order.
type Doc struct {
	Tokens   []Token  `json:"tokens"`
	Entities []Entity `json:"ents"`
}

// Analyzer is the NLP service the extractor depends on.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, text string) (*Doc, error)
}

// Entity labels for places. FACILITY is the spelling some models use for FAC.
const (
	LabelGPE      = "GPE"
	LabelFacility = "FAC"
	LabelFacAlt   = "FACILITY"
	LabelLocation = "LOC"
)

// New picks the analyser named by cfg.NLPBackend.
func New(cfg config.Config, log *logger.Logger) (Analyzer, error) {
	switch cfg.NLPBackend {
	case "local":
		l, err := NewLocal()
		if err != nil {
			return nil, err
		}
		return l, nil
	case "remote":
		if cfg.NLPURL == "" {
			return nil, fmt.Errorf("NLP_URL not set")
		}
		return NewRemote(RemoteConfig{
			URL:     cfg.NLPURL,
			Timeout: cfg.HTTPTimeout,
			Retries: cfg.Retries,
		}, log), nil
	case "stub":
		return Fields{}, nil
	default:
		return nil, fmt.Errorf("unknown NLP_BACKEND %q", cfg.NLPBackend)
	}
}
