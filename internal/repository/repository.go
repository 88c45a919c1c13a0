package repository

import (
	"github.com/workforce-hub/hrms/backend/internal/config"
	"github.com/workforce-hub/hrms/backend/internal/store"
)

type Repository struct {
	cfg   *config.Config
	store *store.DocumentStore
}

func NewRepository(cfg *config.Config, store *store.DocumentStore) *Repository {
	return &Repository{
		cfg:   cfg,
		store: store,
	}
}
