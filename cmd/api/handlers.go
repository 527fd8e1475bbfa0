package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"complaint-triage-go/internal/audio"
	"complaint-triage-go/internal/logger"
	"complaint-triage-go/internal/processor"
)

const maxUploadBytes = 64 << 20

type extractRequest struct {
	Text string `json:"text"`
}

func newMux(proc *processor.Processor, uploadDir string, log *logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		log.WithRequest(r).Debug("health check")
		fmt.Fprint(w, "ok")
	})

	// text in, complaint record out
	mux.HandleFunc("/extract", func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.WithRequest(r).WithField("handler", "extract")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req extractRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			reqLog.WithField("error", err.Error()).Warn("bad extract body")
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		res := proc.ProcessText(r.Context(), req.Text)
		reqLog.WithField("issue", res.Record.Issue).Info("extract finished")
		writeJSON(w, http.StatusOK, res.Record, reqLog)
	})

	// audio upload in, full result out
	mux.HandleFunc("/process", func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.WithRequest(r).WithField("handler", "process")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, hdr, err := r.FormFile("audio")
		if err != nil {
			reqLog.WithField("error", err.Error()).Warn("missing audio upload")
			http.Error(w, "missing audio file field", http.StatusBadRequest)
			return
		}
		defer file.Close()

		if !audio.IsSupported(hdr.Filename) {
			reqLog.WithField("filename", hdr.Filename).Warn("unsupported audio format")
			http.Error(w, fmt.Sprintf("unsupported audio format; want one of %s", strings.Join(audio.SupportedFormats, ", ")), http.StatusUnsupportedMediaType)
			return
		}

		path := filepath.Join(uploadDir, uuid.New().String()+strings.ToLower(filepath.Ext(hdr.Filename)))
		if err := saveUpload(file, path); err != nil {
			reqLog.WithField("error", err.Error()).Error("failed to store upload")
			http.Error(w, "failed to store upload", http.StatusInternalServerError)
			return
		}
		// both the upload and any converted wav belong to this request
		defer os.Remove(path)
		defer os.Remove(audio.WavPath(path))

		start := time.Now()
		res, err := proc.Process(r.Context(), path)
		reqLog = reqLog.WithField("duration_ms", time.Since(start).Milliseconds())
		status := http.StatusOK
		if err != nil {
			reqLog.WithField("error", err.Error()).Warn("processor returned error")
			status = http.StatusUnprocessableEntity
		} else {
			reqLog.WithField("issue", res.Record.Issue).Info("processor finished")
		}
		res.AudioPath = hdr.Filename
		writeJSON(w, status, res, reqLog)
	})

	return mux
}

func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func writeJSON(w http.ResponseWriter, status int, v any, log interface{ Errorf(string, ...any) }) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Errorf("failed to write response: %v", err)
	}
}
