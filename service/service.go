package service

import (
	"sync"

	"github.com/emzola/librarium/config"
	"github.com/emzola/librarium/internal/jsonlog"
	"github.com/emzola/librarium/internal/storage"
	"github.com/emzola/librarium/repository"
	"github.com/jellydator/ttlcache/v3"
)

type Service interface {
	books
	authors
	publishers
	loans
	users
	tokens
	failedValidation(map[string]string) error
}

// service defines the app's service layer.
type service struct {
	config config.Config
	wg     *sync.WaitGroup
	logger *jsonlog.Logger
	cache  *ttlcache.Cache[string, string]
	repo   repository.Repository
	store  storage.Storage
}

// New creates a new instance of Service.
func New(cfg config.Config, wg *sync.WaitGroup, logger *jsonlog.Logger, cache *ttlcache.Cache[string, string], repo repository.Repository, store storage.Storage) *service {
	return &service{
		config: cfg,
		wg:     wg,
		logger: logger,
		cache:  cache,
		repo:   repo,
		store:  store,
	}
}
