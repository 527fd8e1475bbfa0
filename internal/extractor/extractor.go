// Package extractor maps a complaint transcript onto a ComplaintRecord with
// keyword lookups over lemmas, named entities and a gate/terminal pattern.
package extractor

import (
	"context"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"complaint-triage-go/internal/logger"
	"complaint-triage-go/internal/nlp"
	"complaint-triage-go/internal/types"
)

var (
	IssueTypes    = []string{"baggage", "delay", "cleaning", "security", "staff", "maintenance", "toilet", "gate"}
	UrgencyLevels = []string{"urgent", "immediate", "high", "low", "normal"}
	PlaceLabels   = []string{nlp.LabelGPE, nlp.LabelFacility, nlp.LabelFacAlt, nlp.LabelLocation}
)

const (
	DefaultIssue    = "general"
	DefaultUrgency  = "normal"
	DefaultLocation = "unknown"
)

var locationPattern = regexp.MustCompile(`(gate\s\d+|terminal\s\d+)`)

type Extractor struct {
	nlp nlp.Analyzer
	log *logger.Logger
}

func New(a nlp.Analyzer, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &Extractor{nlp: a, log: log.Component("extractor")}
}

// Extract never fails. Issue is the first matching lemma, urgency the last,
// location the first place entity or else the first gate/terminal mention.
func (e *Extractor) Extract(ctx context.Context, rawText string) types.ComplaintRecord {
	lower := strings.ToLower(rawText)

	doc, err := e.nlp.Analyze(ctx, lower)
	if err != nil {
		e.log.WithError(err).WithField("analyzer", e.nlp.Name()).Warn("analysis failed, falling back to defaults")
	}
	if err != nil || doc == nil {
		doc = &nlp.Doc{}
	}

	issue := ""
	urgency := DefaultUrgency
	for _, tok := range doc.Tokens {
		if issue == "" && slices.Contains(IssueTypes, tok.Lemma) {
			issue = tok.Lemma
		}
		if slices.Contains(UrgencyLevels, tok.Lemma) {
			urgency = tok.Lemma
		}
	}

	location := ""
	for _, ent := range doc.Entities {
		if slices.Contains(PlaceLabels, ent.Label) {
			location = titleCase(ent.Text)
			break
		}
	}
	if location == "" {
		if m := locationPattern.FindString(lower); m != "" {
			location = titleCase(m)
		}
	}

	rec := types.ComplaintRecord{
		Issue:    orDefault(issue, DefaultIssue),
		Urgency:  urgency,
		Location: orDefault(location, DefaultLocation),
		RawText:  rawText,
	}
	e.log.WithField("issue", rec.Issue).
		WithField("urgency", rec.Urgency).
		WithField("location", rec.Location).
		Debug("complaint extracted")
	return rec
}

func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
