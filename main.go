package main

import (
	"os"
	"sync"
	"time"

	"github.com/emzola/librarium/clients"
	"github.com/emzola/librarium/config"
	"github.com/emzola/librarium/handler"
	"github.com/emzola/librarium/internal/jsonlog"
	"github.com/emzola/librarium/internal/storage"
	"github.com/emzola/librarium/repository"
	"github.com/emzola/librarium/repository/postgres"
	"github.com/emzola/librarium/service"
	"github.com/jellydator/ttlcache/v3"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

// @title  Librarium API
// @version 1.0.0
// @description This is an API service for managing a library catalog and book loans.
// @BasePath /
func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration
	cfg, err := config.Decode()
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	// Media storage backend
	var store storage.Storage
	switch cfg.Storage.Backend {
	case "s3":
		client, err := clients.NewS3Client(cfg)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		store = storage.NewS3(client, cfg.S3.Bucket)
	default:
		store = storage.NewFileSystem(cfg.Storage.Root)
	}

	// Other shared resources: waitgroup and in-memory cache for one-time passcodes
	var wg sync.WaitGroup
	cache := ttlcache.New(ttlcache.WithTTL[string, string](10 * time.Minute))
	go cache.Start()

	// Application layers
	repo := repository.New(db)
	service := service.New(cfg, &wg, logger, cache, repo, store)
	handler := handler.New(cfg, logger, service)

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve(&wg, logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}
