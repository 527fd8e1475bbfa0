// Command triage transcribes one complaint recording (or takes text) and
// prints the extracted complaint as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"complaint-triage-go/internal/app"
	"complaint-triage-go/internal/config"
	"complaint-triage-go/internal/logger"
	"complaint-triage-go/internal/report"
	"complaint-triage-go/internal/types"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run returns 0 on success, 1 when processing or the report fails and 2 on bad usage.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("triage", flag.ContinueOnError)
	fs.SetOutput(stderr)
	text := fs.String("text", "", "complaint text; skips transcription")
	reportPath := fs.String("report", "", "also write the result to this .xlsx file")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), `Usage: triage [-text "..."] [-report out.xlsx] [audio-file]`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *text == "" && fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	log := logger.NewWithOutput(stderr)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		return 1
	}
	if *text != "" {
		// text mode never touches the speech service
		cfg.SpeechBackend = "stub"
	}
	proc, err := app.Build(cfg, log)
	if err != nil {
		log.WithError(err).Error("failed to build pipeline")
		return 1
	}

	var res types.ProcessResult
	if *text != "" {
		res = proc.ProcessText(ctx, *text)
	} else {
		res, err = proc.Process(ctx, fs.Arg(0))
		if err != nil {
			log.WithError(err).Error("processing failed")
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(res); encErr != nil {
		log.WithError(encErr).Error("failed to write result")
	}

	if *reportPath != "" {
		if repErr := report.Write(*reportPath, res); repErr != nil {
			log.WithError(repErr).Error("failed to write report")
			return 1
		}
		log.WithField("report", *reportPath).Info("report written")
	}
	if err != nil {
		return 1
	}
	return 0
}
