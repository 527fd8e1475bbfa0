package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is read once from the environment at startup.
type Config struct {
	Port string

	// STT
	SpeechBackend   string // google | whisper | stub
	GoogleAPIKey    string
	GoogleSpeechURL string
	SpeechLanguage  string
	OpenAIAPIKey    string
	WhisperModel    string
	StubTranscript  string

	// NLP
	NLPBackend string // local | remote | stub
	NLPURL     string

	FFmpegPath  string
	HTTPTimeout time.Duration
	Retries     uint64
	UploadDir   string
}

// Load reads Config from the process environment. Call godotenv.Load first if a .env file should apply.
func Load() (Config, error) {
	cfg := Config{
		Port:            envOr("PORT", "8080"),
		SpeechBackend:   strings.ToLower(envOr("STT_BACKEND", "google")),
		GoogleAPIKey:    os.Getenv("GOOGLE_SPEECH_API_KEY"),
		GoogleSpeechURL: envOr("GOOGLE_SPEECH_URL", "https://speech.googleapis.com"),
		SpeechLanguage:  envOr("SPEECH_LANGUAGE", "en-US"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		WhisperModel:    envOr("WHISPER_MODEL", "whisper-1"),
		StubTranscript:  os.Getenv("STUB_TRANSCRIPT"),
		NLPBackend:      strings.ToLower(envOr("NLP_BACKEND", "local")),
		NLPURL:          os.Getenv("NLP_URL"),
		FFmpegPath:      envOr("FFMPEG_PATH", "ffmpeg"),
		UploadDir:       envOr("UPLOAD_DIR", os.TempDir()),
	}

	timeoutSec, err := strconv.Atoi(envOr("HTTP_TIMEOUT_SEC", "30"))
	if err != nil || timeoutSec <= 0 {
		return Config{}, fmt.Errorf("invalid HTTP_TIMEOUT_SEC %q", os.Getenv("HTTP_TIMEOUT_SEC"))
	}
	cfg.HTTPTimeout = time.Duration(timeoutSec) * time.Second

	retries, err := strconv.ParseUint(envOr("SERVICE_RETRIES", "0"), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("invalid SERVICE_RETRIES %q: %w", os.Getenv("SERVICE_RETRIES"), err)
	}
	cfg.Retries = retries

	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
