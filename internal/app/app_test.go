package app

import (
	"context"
	"testing"

	"complaint-triage-go/internal/config"
	"complaint-triage-go/internal/logger"
)

func TestBuildWithStubs(t *testing.T) {
	cfg := config.Config{SpeechBackend: "stub", NLPBackend: "stub", FFmpegPath: "ffmpeg"}
	p, err := Build(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	res := p.ProcessText(context.Background(), "Lost baggage at terminal 1, urgent")
	if res.Record.Issue != "baggage" || res.Record.Location != "Terminal 1" || res.Record.Urgency != "urgent" {
		t.Errorf("unexpected record %+v", res.Record)
	}
}

func TestBuildRejectsUnknownBackends(t *testing.T) {
	if _, err := Build(config.Config{SpeechBackend: "nope", NLPBackend: "stub"}, logger.Nop()); err == nil {
		t.Error("expected error for unknown speech backend")
	}
	if _, err := Build(config.Config{SpeechBackend: "stub", NLPBackend: "nope"}, logger.Nop()); err == nil {
		t.Error("expected error for unknown nlp backend")
	}
}
