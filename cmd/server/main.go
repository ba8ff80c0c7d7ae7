package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"roamscope/internal/adapter/kafka"
	"roamscope/internal/adapter/pifetch"
	"roamscope/internal/config"
	"roamscope/internal/handler"
	"roamscope/internal/hub"
	"roamscope/internal/observability"
	"roamscope/internal/repository/sqlite"
	"roamscope/internal/service"
	"roamscope/internal/watcher"
)

func main() {
	// Command line flags override the config file
	addr := flag.String("addr", "", "HTTP listen address")
	dbPath := flag.String("db", "", "SQLite database path")
	configPath := flag.String("config", "", "config file path")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Roamscope server...")

	// Load configuration
	var (
		cfg        *config.Config
		loadedFrom string
		err        error
	)
	if *configPath != "" {
		cfg, loadedFrom, err = config.LoadFromPath(*configPath)
	} else {
		cfg, loadedFrom, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if loadedFrom != "" {
		log.Printf("Config loaded from %s", loadedFrom)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	// Initialize SQLite repository
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repo.Close()
	log.Printf("Database opened: %s", cfg.Database.Path)

	// Initialize metrics
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	// Initialize event bus
	eventBus := service.NewEventBus()

	// Initialize SSE hub
	sseHub := hub.New(metrics)
	go sseHub.Run()

	// Connect event bus to SSE hub
	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for event := range eventChan {
			sseHub.Broadcast(event)
		}
	}()

	// Initialize services
	surveySvc := service.NewSurveyService(repo, eventBus, metrics)
	analysisSvc := service.NewAnalysisService(repo, eventBus, metrics, service.AnalysisOptions{
		TargetSSID:        cfg.Analysis.TargetSSID,
		HandoverThreshold: cfg.Analysis.HandoverThreshold,
		TopNetworks:       cfg.Analysis.TopNetworks,
	})
	validationSvc := service.NewValidationService(repo, eventBus, metrics, cfg.Baselines, cfg.Analysis.TargetSSID)

	// Optional Kafka analysis sink
	if cfg.Kafka.Enabled {
		producer := kafka.NewWriter(cfg.Kafka)
		defer producer.Close()
		analysisSvc.SetPublisher(producer)
		log.Printf("Publishing analyses to Kafka topic %s", cfg.Kafka.Topic)
	}

	// Background workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	// Drop-directory auto-import
	if cfg.Watch.Enabled {
		w := watcher.New(cfg.Watch.Dir, surveySvc).WithDebounce(cfg.WatchDebounce())
		go func() {
			if err := w.ImportExisting(workerCtx); err != nil {
				log.Printf("Failed to import existing captures: %v", err)
			}
			if err := w.Watch(workerCtx); err != nil && err != context.Canceled {
				log.Printf("Watcher stopped: %v", err)
			}
		}()
	}

	// One-shot capture fetch from the survey Pi
	if cfg.PiFetch.Enabled {
		fetcher := pifetch.New(cfg.PiFetch, cfg.PiFetchTimeout(), surveySvc)
		go func() {
			floors, err := fetcher.Fetch(workerCtx)
			if err != nil {
				log.Printf("Pi fetch failed: %v", err)
				return
			}
			log.Printf("Pi fetch imported %d floors", len(floors))
		}()
	}

	// Setup routes
	mux := http.NewServeMux()

	surveyHandler := handler.NewSurveyHandler(surveySvc, analysisSvc, validationSvc)
	surveyHandler.Register(mux)

	// SSE events endpoint
	mux.Handle("GET /events", sseHub)

	// Prometheus metrics endpoint
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Apply middleware
	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger,
		handler.Metrics(metrics),
	)

	// Create server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      finalHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	workerCancel()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
