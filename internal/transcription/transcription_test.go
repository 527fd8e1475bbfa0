package transcription

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"complaint-triage-go/internal/audio"
	"complaint-triage-go/internal/speech"
)

// copyConverter stands in for ffmpeg by copying a prepared wav to dst.
type copyConverter struct {
	wav   string
	calls int
	err   error
}

func (c *copyConverter) Convert(ctx context.Context, src, dst string) error {
	c.calls++
	if c.err != nil {
		return c.err
	}
	b, err := os.ReadFile(c.wav)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, b, 0o644)
}

func writeSilence(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	enc := wav.NewEncoder(f, 8000, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           make([]int, 800),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

func newTranscriber(t *testing.T, rec speech.Recognizer) (*Transcriber, *copyConverter, string) {
	t.Helper()
	dir := t.TempDir()
	fixture := filepath.Join(dir, "fixture.wav")
	writeSilence(t, fixture)
	conv := &copyConverter{wav: fixture}
	return New(audio.NewNormalizer(conv, nil), rec, nil), conv, dir
}

func TestTranscribeWavReturnsText(t *testing.T) {
	var got *audio.Data
	rec := &speech.Stub{RecognizeFunc: func(ctx context.Context, d *audio.Data) (string, error) {
		got = d
		return "the toilet near gate 12 is broken", nil
	}}
	tr, conv, dir := newTranscriber(t, rec)

	text, err := tr.Transcribe(context.Background(), filepath.Join(dir, "fixture.wav"))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "the toilet near gate 12 is broken" {
		t.Errorf("unexpected text %q", text)
	}
	if conv.calls != 0 {
		t.Errorf("wav input was converted %d times", conv.calls)
	}
	if got == nil || got.SampleRate != 8000 || got.Frames() != 800 {
		t.Errorf("recognizer got unexpected audio: %+v", got)
	}
}

func TestTranscribeConvertsOtherFormats(t *testing.T) {
	tr, conv, dir := newTranscriber(t, &speech.Stub{Text: "baggage delay"})
	src := filepath.Join(dir, "complaint.mp3")
	if err := os.WriteFile(src, []byte("ID3"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := tr.Transcribe(context.Background(), src)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "baggage delay" {
		t.Errorf("unexpected text %q", text)
	}
	if conv.calls != 1 {
		t.Errorf("expected one conversion, got %d", conv.calls)
	}
	if _, err := os.Stat(filepath.Join(dir, "complaint.wav")); err != nil {
		t.Errorf("converted sibling wav missing: %v", err)
	}
}

func TestTranscribeUnintelligible(t *testing.T) {
	tr, _, dir := newTranscriber(t, &speech.Stub{Err: speech.ErrUnintelligible})

	text, err := tr.Transcribe(context.Background(), filepath.Join(dir, "fixture.wav"))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "Audio could not be understood." {
		t.Errorf("unexpected text %q", text)
	}
	if !IsFailure(text) {
		t.Error("IsFailure should recognise the unintelligible message")
	}
}

func TestTranscribeRequestFailure(t *testing.T) {
	reqErr := &speech.RequestError{Backend: "google", Err: errors.New("connection refused")}
	tr, _, dir := newTranscriber(t, &speech.Stub{Err: reqErr})

	text, err := tr.Transcribe(context.Background(), filepath.Join(dir, "fixture.wav"))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if !strings.HasPrefix(text, "Could not request results; ") || !strings.Contains(text, "connection refused") {
		t.Errorf("unexpected text %q", text)
	}
	if !IsFailure(text) {
		t.Error("IsFailure should recognise the request failure message")
	}
}

func TestTranscribeCorruptFileReturnsError(t *testing.T) {
	tr, _, dir := newTranscriber(t, &speech.Stub{Text: "unused"})
	bad := filepath.Join(dir, "corrupt.wav")
	if err := os.WriteFile(bad, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := tr.Transcribe(context.Background(), bad); !errors.Is(err, audio.ErrInvalidWAV) {
		t.Fatalf("expected ErrInvalidWAV, got %v", err)
	}
}

func TestTranscribeConversionErrorPropagates(t *testing.T) {
	tr, conv, dir := newTranscriber(t, &speech.Stub{Text: "unused"})
	conv.err = errors.New("Invalid data found when processing input")

	if _, err := tr.Transcribe(context.Background(), filepath.Join(dir, "notes.ogg")); err == nil {
		t.Fatal("expected conversion error")
	}
}

func TestIsFailure(t *testing.T) {
	if IsFailure("the gate was closed") {
		t.Error("ordinary text reported as failure")
	}
}
