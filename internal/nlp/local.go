package nlp

import (
	"context"
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
)

var _ Analyzer = (*Local)(nil)

// Local analyses text in-process: prose for tokens, tags and entities,
// golem for English lemmas.
type Local struct {
	lem   *golem.Lemmatizer
	model *prose.Model
}

// NewLocal loads the English lemma dictionary and the tagging and NER
// models. Build it once and share it.
func NewLocal() (*Local, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load lemma dictionary: %w", err)
	}
	warm, err := prose.NewDocument("")
	if err != nil {
		return nil, fmt.Errorf("load prose model: %w", err)
	}
	return &Local{lem: lem, model: warm.Model}, nil
}

func (l *Local) Name() string { return "local" }

func (l *Local) Analyze(ctx context.Context, text string) (*Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pd, err := l.document(text)
	if err != nil {
		return nil, err
	}

	doc := &Doc{}
	for _, tok := range pd.Tokens() {
		doc.Tokens = append(doc.Tokens, Token{Text: tok.Text, Lemma: l.lemma(tok.Text, tok.Tag)})
	}
	for _, ent := range pd.Entities() {
		doc.Entities = append(doc.Entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	return doc, nil
}

func (l *Local) document(text string) (*prose.Document, error) {
	pd, err := prose.NewDocument(text, prose.UsingModel(l.model))
	if err != nil {
		return nil, fmt.Errorf("prose: %w", err)
	}
	return pd, nil
}

// Singular nouns are their own lemma; the dictionary has no part of speech
// and would turn "cleaning" into "clean".
func (l *Local) lemma(word, tag string) string {
	w := strings.ToLower(word)
	if tag == "NN" || tag == "NNP" {
		return w
	}
	return strings.ToLower(l.lem.Lemma(w))
}
