// Package audio turns a complaint recording into an in-memory wav buffer
// that speech backends can consume.
package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"complaint-triage-go/internal/logger"
)

// TargetExt is the container every recording is normalised to.
const TargetExt = ".wav"

// SupportedFormats lists the extensions the pipeline accepts.
var SupportedFormats = []string{".wav", ".mp3", ".ogg", ".flac", ".m4a"}

// IsSupported reports whether path has one of SupportedFormats (case-insensitive).
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range SupportedFormats {
		if ext == f {
			return true
		}
	}
	return false
}

// WavPath returns the sibling path with the same base name and a .wav extension.
func WavPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + TargetExt
}

// Converter re-encodes src into a wav file at dst.
type Converter interface {
	Convert(ctx context.Context, src, dst string) error
}

// FFmpeg converts with the ffmpeg binary.
type FFmpeg struct {
	Path string // binary name or path; "ffmpeg" when empty
}

func (f FFmpeg) Convert(ctx context.Context, src, dst string) error {
	bin := f.Path
	if bin == "" {
		bin = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, bin, "-y", "-i", src, "-acodec", "pcm_s16le", dst)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg error: %w\nStderr: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Normalizer makes sure a recording is a wav file before it is loaded.
type Normalizer struct {
	conv Converter
	log  *logger.Logger
}

func NewNormalizer(conv Converter, log *logger.Logger) *Normalizer {
	if log == nil {
		log = logger.Nop()
	}
	return &Normalizer{conv: conv, log: log.Component("audio.normalizer")}
}

// Normalize returns path itself for wav input, otherwise converts it to the
// sibling WavPath and returns that. The converted file is left on disk.
func (n *Normalizer) Normalize(ctx context.Context, path string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) == TargetExt {
		return path, nil
	}
	dst := WavPath(path)
	log := n.log.WithField("src", path).WithField("dst", dst)
	log.Info("converting recording to wav")
	if err := n.conv.Convert(ctx, path, dst); err != nil {
		log.WithField("error", err.Error()).Warn("conversion failed")
		return "", fmt.Errorf("convert %s: %w", path, err)
	}
	return dst, nil
}
