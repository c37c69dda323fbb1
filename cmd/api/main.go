package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"media-scribe-go/internal/api"
	"media-scribe-go/internal/config"
	"media-scribe-go/internal/logger"
	"media-scribe-go/internal/media"
	"media-scribe-go/internal/pipeline"
	"media-scribe-go/internal/source"
	"media-scribe-go/internal/transcription"
	"media-scribe-go/internal/workspace"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "media-scribe-go").Info("starting service")

	cfg := config.Load()
	if cfg.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY not set; transcription calls will be rejected upstream")
	}

	ws, err := workspace.New(cfg.WorkspaceDir, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize workspace")
	}
	log.WithField("workspace_dir", ws.Dir()).Info("workspace ready")

	orch := &pipeline.Orchestrator{
		Workspace:   ws,
		YouTube:     source.NewYouTubeResolver(ws, log),
		Downloader:  source.NewURLDownloader(ws, log),
		Transcoder:  media.NewFFmpeg(ws, log, cfg.FFmpegPath),
		Transcriber: transcription.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.WhisperModel, log),
		Log:         log,
	}

	router := api.New(orch, ws, log).Router()

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
