package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"complaint-triage-go/internal/app"
	"complaint-triage-go/internal/config"
	"complaint-triage-go/internal/logger"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "complaint-triage-go").Info("starting service")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	proc, err := app.Build(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to build pipeline")
	}

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newMux(proc, cfg.UploadDir, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
