package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lexiquest/lexiquest/internal/config"
	"github.com/lexiquest/lexiquest/internal/engine"
	"github.com/lexiquest/lexiquest/internal/generator"
	"github.com/lexiquest/lexiquest/internal/handlers"
	"github.com/lexiquest/lexiquest/internal/logger"
	"github.com/lexiquest/lexiquest/internal/middleware"
	"github.com/lexiquest/lexiquest/internal/services"
	"github.com/lexiquest/lexiquest/internal/session"
	"github.com/lexiquest/lexiquest/pkg/fallback"
	"github.com/lexiquest/lexiquest/pkg/textfilter"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting LexiQuest API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	var llmService services.LLMService
	switch strings.ToLower(cfg.LLMProvider) {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Error("Gemini API key is required when using gemini provider")
			os.Exit(1)
		}
		llmService = services.NewGeminiService(cfg.GeminiAPIKey, cfg.ModelName, log)
		log.Info("Using Gemini LLM provider")
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Error("Anthropic API key is required when using anthropic provider")
			os.Exit(1)
		}
		llmService = services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)
		log.Info("Using Anthropic LLM provider")
	case "mock":
		// Stories come entirely from the built-in library. Useful for
		// local development without an API key.
		mock := services.NewMockLLM()
		mock.SetChatError(errors.New("mock provider has no model"))
		llmService = mock
		log.Info("Using mock LLM provider, serving built-in stories")
	default:
		log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider, "supported", []string{"gemini", "anthropic", "mock"})
		os.Exit(1)
	}

	initCtx, initCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer initCancel()
	if err := llmService.InitModel(initCtx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}

	filter := textfilter.New()
	library := fallback.New(time.Now().UnixNano())
	gen := generator.New(llmService, library, filter, log).WithTimeout(cfg.LLMTimeout)

	store := session.NewStore(session.Config{
		MaxSessions:     cfg.MaxSessions,
		SessionTimeout:  cfg.SessionTimeout,
		CleanupInterval: cfg.CleanupInterval,
	}, nil)

	eng := engine.New(store, gen, filter, nil, log).WithMaxBacktrack(cfg.MaxBacktrack)

	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler())
	mux.Handle("/v1/stats", handlers.NewStatsHandler(eng))

	gameHandler := handlers.NewGameHandler(eng, log)
	mux.Handle("/v1/game/", gameHandler)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, nil)
	var handler http.Handler = mux
	handler = limiter.Middleware(handler)
	handler = middleware.CORS(nil)(handler)
	handler = middleware.RequestLogger(log)(handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
