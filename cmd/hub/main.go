package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chat-relay/infrastructure/ws"
	"chat-relay/moderation"
	"chat-relay/observability"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"chat-relay/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so every defer executes before the
// process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Moderation
	replacement, err := censorRune(config.CensorReplacement)
	if err != nil {
		return err
	}
	moderator, err := moderation.NewModerator(censoredWords(config.CensoredWords), replacement)
	if err != nil {
		return fmt.Errorf("building moderator: %w", err)
	}

	// 3. Hub, supervision, observability
	stats := observability.NewHubStats()
	registry := runtime.NewRegistry()
	hub := runtime.NewHub(log, registry, stats, moderator, config.BufferSize)
	service := services.NewRelayService(hub)

	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(hub)
	sup.Add(workers.NewHeartbeatWorker(log, stats, config.HeartbeatInterval))

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sup.Run(ctx)

	// 5. HTTP server with the websocket endpoint
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	wsServer := ws.NewServer(log, service, stats, config.ConnectionBufferSize)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           ws.NewRouter(wsServer, stats),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting hub server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("hub server error: %w", err)
		}
	}()

	// 6. Wait for stop or error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 7. Final cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown error", "error", err)
	}
	sup.Stop()
	log.Info("Program stopped cleanly")

	return nil
}

func censoredWords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if w := strings.TrimSpace(p); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func censorRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf("CENSOR_REPLACEMENT must be a single character, got %q", str)
	}
	return r[0], nil
}
