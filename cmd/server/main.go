package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/audio"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/config"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/handler"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/middleware"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/repository/postgres"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/search"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/service"
	"github.com/ivaiklatam/knoxia-transcriptor-docker/internal/speech"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	documentoRepo := postgres.NewDocumentoRepository(repoConfig)
	syncStatusRepo := postgres.NewSyncStatusRepository(repoConfig)
	parametroRepo := postgres.NewParametroRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// External collaborators
	searchClient := search.NewClient(search.Config{
		Endpoint: cfg.SearchEndpoint,
		APIKey:   cfg.SearchKey,
		Index:    cfg.SearchIndex,
		Indexer:  cfg.SearchIndexer,
	}, nil, logger)

	recognizer := speech.NewAzureRecognizer(speech.Config{
		Key:      cfg.SpeechKey,
		Region:   cfg.SpeechRegion,
		Language: cfg.SpeechLanguage,
	}, nil, logger)

	formats, err := audio.NewFormatRegistry()
	if err != nil {
		log.Fatalf("Failed to load format registry: %v", err)
	}
	fetcher := audio.NewDownloader(&http.Client{Timeout: 2 * time.Minute}, cfg.ScratchDir, logger)
	transcoder := audio.NewFFmpegTranscoder(cfg.FFmpegPath, logger)

	// Create services
	transcriptionService := service.NewTranscriptionService(formats, fetcher, transcoder, recognizer, logger)
	syncService := service.NewSyncService(searchClient, documentoRepo, syncStatusRepo, parametroRepo, txManager, logger)
	triggerService := service.NewTriggerService(searchClient, syncService, cfg.IndexerWait, logger)

	// Create handlers
	transcribeHandler := handler.NewTranscribeHandler(transcriptionService, logger)
	syncHandler := handler.NewSyncHandler(syncService, logger)
	indexerHandler := handler.NewIndexerHandler(triggerService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.HandleFunc("GET /transcribe", transcribeHandler.Transcribe)
	mux.HandleFunc("POST /run-indexer", indexerHandler.Run)
	mux.HandleFunc("POST /sync-search-to-sql", syncHandler.Sync)

	// Build middleware chain, innermost first
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})
	root = corsHandler.Handler(root)

	// The trigger endpoint blocks for cfg.IndexerWait plus the sync run, so
	// the write timeout has to leave room for it.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.IndexerWait + 5*time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
