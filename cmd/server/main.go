package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/nutrisync/macrolens/internal/analyzer"
	"github.com/nutrisync/macrolens/internal/config"
	"github.com/nutrisync/macrolens/internal/llm"
	"github.com/nutrisync/macrolens/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	llmProvider, err := llm.NewOpenAI(&cfg.Groq)
	if err != nil {
		log.Fatalf("failed to create LLM provider: %v", err)
	}

	analyzer := analyzer.New(llmProvider, cfg.Groq)

	srv := server.New(*cfg, analyzer)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port, "model", cfg.Groq.Model, "groq_configured", cfg.Groq.Configured())
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
