package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/rah-0/launchpad/docs"
	"github.com/rah-0/launchpad/internal/api"
	"github.com/rah-0/launchpad/internal/config"
	"github.com/rah-0/launchpad/internal/launch"
	"github.com/rah-0/launchpad/internal/logging"
	"github.com/rah-0/launchpad/internal/storage"
)

// Command line flags
var (
	configDir = flag.String("config", ".", "Directory containing "+config.FileName)
	port      = flag.Int("port", 0, "Port to listen on (overrides http.port)")
)

func main() {
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logManager := logging.NewSlogManager()
	logManager.Setup(nil, config.GetString("logLevel"))
	log := logManager.Logger()

	if err := run(log); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	storageLog := logging.NewStorageLogger(nil, config.GetString("logLevel"))
	backend, err := storage.NewBackend(config.GetStorageConfig(), storageLog)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer backend.Close()

	if seedFile := config.GetString("seedFile"); seedFile != "" {
		doc, err := storage.LoadDocument(seedFile)
		if err != nil {
			return err
		}
		if err := backend.Seed(context.Background(), doc); err != nil {
			return fmt.Errorf("seeding storage: %w", err)
		}
		log.Info("Seed document loaded", "file", seedFile,
			"missions", len(doc.Missions), "astronauts", len(doc.Astronauts), "vehicles", len(doc.Vehicles))
	}

	svc, err := launch.NewService(backend, backend, launch.Options{Logger: log})
	if err != nil {
		return fmt.Errorf("creating launch service: %w", err)
	}

	handler := api.NewHandler(svc, log)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	listenPort := config.GetInt("http.port")
	if *port != 0 {
		listenPort = *port
	}
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", listenPort),
		Handler: mux,
	}

	// Create a channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", "port", listenPort, "storage", config.GetStorageConfig().Type)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-stop:
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	log.Info("Shutting down server")

	// Create a context with a timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	svc.Timers().Reset()

	log.Info("Server exited gracefully")
	return nil
}
