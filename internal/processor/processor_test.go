package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"complaint-triage-go/internal/audio"
	"complaint-triage-go/internal/extractor"
	"complaint-triage-go/internal/nlp"
	"complaint-triage-go/internal/speech"
	"complaint-triage-go/internal/transcription"
)

type noConversion struct{}

func (noConversion) Convert(ctx context.Context, src, dst string) error {
	return errors.New("ffmpeg not available in tests")
}

func writeWav(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	enc := wav.NewEncoder(f, 16000, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 16000},
		Data:           make([]int, 1600),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

func newProcessor(rec speech.Recognizer) *Processor {
	tr := transcription.New(audio.NewNormalizer(noConversion{}, nil), rec, nil)
	return New(tr, extractor.New(nlp.Fields{}, nil), nil)
}

func TestProcessRecording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complaint.wav")
	writeWav(t, path)
	p := newProcessor(&speech.Stub{Text: "The toilet near Gate 12 is broken, this is urgent"})

	res, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.ID == "" {
		t.Error("missing result id")
	}
	if !res.Transcribed {
		t.Error("expected transcribed=true")
	}
	if res.Language != "en" {
		t.Errorf("Language = %q, want en", res.Language)
	}
	if res.Record.Issue != "toilet" || res.Record.Urgency != "urgent" || res.Record.Location != "Gate 12" {
		t.Errorf("unexpected record %+v", res.Record)
	}
	if res.Record.RawText != res.Transcript {
		t.Errorf("raw text %q differs from transcript %q", res.Record.RawText, res.Transcript)
	}
	if res.Action.Department != "Facilities" || res.Action.Priority != "P1" {
		t.Errorf("unexpected action %+v", res.Action)
	}
}

func TestProcessUnintelligibleStillExtracts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mumble.wav")
	writeWav(t, path)
	p := newProcessor(&speech.Stub{Err: speech.ErrUnintelligible})

	res, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Transcript != transcription.Unintelligible {
		t.Errorf("Transcript = %q", res.Transcript)
	}
	if res.Transcribed {
		t.Error("expected transcribed=false")
	}
	if res.Language != "unknown" {
		t.Errorf("Language = %q, want unknown", res.Language)
	}
	if res.Record.Issue != "general" || res.Record.Urgency != "normal" || res.Record.Location != "unknown" {
		t.Errorf("unexpected record %+v", res.Record)
	}
}

func TestProcessConversionFailure(t *testing.T) {
	p := newProcessor(&speech.Stub{Text: "unused"})

	res, err := p.Process(context.Background(), filepath.Join(t.TempDir(), "complaint.m4a"))
	if err == nil {
		t.Fatal("expected error")
	}
	if res.Error == "" || res.AudioPath == "" {
		t.Errorf("expected partial result with error, got %+v", res)
	}
}

func TestProcessText(t *testing.T) {
	p := New(nil, extractor.New(nlp.Fields{}, nil), nil)
	res := p.ProcessText(context.Background(), "There was a delay and also baggage issue at terminal 5")
	if res.Record.Issue != "delay" || res.Record.Location != "Terminal 5" {
		t.Errorf("unexpected record %+v", res.Record)
	}
	if res.Action.Department != "Flight Operations" {
		t.Errorf("unexpected action %+v", res.Action)
	}
}

func TestProcessWithoutTranscriber(t *testing.T) {
	p := New(nil, extractor.New(nlp.Fields{}, nil), nil)
	if _, err := p.Process(context.Background(), "x.wav"); err == nil {
		t.Fatal("expected error without transcriber")
	}
}
