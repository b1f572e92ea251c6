package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Chasso/cdk-local-testing/internal/config"
	"github.com/Chasso/cdk-local-testing/internal/dispatch"
	"github.com/Chasso/cdk-local-testing/internal/store"
	"github.com/Chasso/cdk-local-testing/pkg/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize dependencies. A conflicting route manifest fails here,
	// before the server ever listens.
	container, err := server.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Close()

	// Against DynamoDB Local no deployment pipeline provisions the
	// table, so surface a missing one at startup instead of on the
	// first request
	if cfg.IsLocal {
		checkCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		status, err := store.TableStatus(checkCtx, container.Client, cfg.TableName)
		cancel()
		if err != nil {
			log.Printf("Warning: table %s is not reachable (%v); run cmd/create-table to provision it", cfg.TableName, err)
		} else {
			log.Printf("Table %s is %s", cfg.TableName, status)
		}
	}

	// Mount the routing table on the local emulation engine
	router := dispatch.NewRouter(cfg, container.Dispatcher)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s (table %s)", cfg.Port, cfg.TableName)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
