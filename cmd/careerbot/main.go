package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MikeSquared-Agency/careerbot/internal/api"
	"github.com/MikeSquared-Agency/careerbot/internal/chat"
	"github.com/MikeSquared-Agency/careerbot/internal/config"
	"github.com/MikeSquared-Agency/careerbot/internal/events"
	"github.com/MikeSquared-Agency/careerbot/internal/gemini"
	"github.com/MikeSquared-Agency/careerbot/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("careerbot starting", "port", cfg.Port)

	if cfg.GeminiAPIKey == "" {
		slog.Error("GEMINI_API_KEY is required")
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		slog.Error("failed to create upload dir", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	// Gemini client
	llm := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	slog.Info("gemini client ready", "model", cfg.GeminiModel)

	// Session store
	store := session.NewStore(chat.SystemPrompt, nil)

	// NATS announcer (optional — careerbot works without a broker, just no events)
	var announcer *events.Announcer
	if cfg.NatsURL != "" {
		var err error
		announcer, err = events.NewAnnouncer(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer announcer.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured — running without event announcements")
	}

	// Orchestrator — the conversation pipeline
	orch := chat.New(store, llm, announcer, slog.Default())

	// HTTP API
	srv := api.NewServer(cfg.Port, orch, cfg.UploadDir, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	// Announce registration
	if err := announcer.Publish(events.SubjectRegistered, map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"port":      cfg.Port,
		"model":     cfg.GeminiModel,
	}); err != nil {
		slog.Warn("failed to publish registration", "error", err)
	}

	slog.Info("careerbot ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	slog.Info("careerbot stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
