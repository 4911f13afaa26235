package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timecapsule/timecapsule/internal/adapter/llm"
	"github.com/timecapsule/timecapsule/internal/config"
	"github.com/timecapsule/timecapsule/internal/service"
	"github.com/timecapsule/timecapsule/internal/store"
	transport "github.com/timecapsule/timecapsule/internal/transport/http"
	"github.com/timecapsule/timecapsule/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting time capsule service...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Model: %s", cfg.LLMModel)

	// Initialize store
	db, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize chat client
	chatClient := llm.NewChatClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize service
	svc := service.New(db, chatClient, cfg, policyEngine)

	// Create HTTP server
	server := transport.NewServer(svc)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Time capsule service stopped")
}

// newStore selects the storage backend: an empty DATABASE_URL means the
// process-lifetime in-memory store, anything else a SQLite DSN.
func newStore(cfg *config.Config) (store.Store, error) {
	if cfg.DatabaseURL == "" {
		log.Printf("Database: in-memory")
		return store.NewMemoryStore(), nil
	}
	log.Printf("Database: %s", cfg.DatabaseURL)
	return store.NewSQLiteStore(cfg.DatabaseURL)
}
