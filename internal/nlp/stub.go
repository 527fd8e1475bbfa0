package nlp

import (
	"context"
	"strings"
	"unicode"
)

var (
	_ Analyzer = (*Stub)(nil)
	_ Analyzer = Fields{}
)

// Stub returns a canned Doc or error. AnalyzeFunc wins when set.
type Stub struct {
	Doc         *Doc
	Err         error
	AnalyzeFunc func(ctx context.Context, text string) (*Doc, error)
}

func (s *Stub) Name() string { return "stub" }

func (s *Stub) Analyze(ctx context.Context, text string) (*Doc, error) {
	if s.AnalyzeFunc != nil {
		return s.AnalyzeFunc(ctx, text)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Doc == nil {
		return &Doc{}, nil
	}
	return s.Doc, nil
}

// Fields splits on anything that is not a letter or digit, uses the word
// itself as lemma and finds no entities.
type Fields struct{}

func (Fields) Name() string { return "fields" }

func (Fields) Analyze(_ context.Context, text string) (*Doc, error) {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	doc := &Doc{Tokens: make([]Token, 0, len(words))}
	for _, w := range words {
		doc.Tokens = append(doc.Tokens, Token{Text: w, Lemma: strings.ToLower(w)})
	}
	return doc, nil
}
