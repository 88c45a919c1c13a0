package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/workforce-hub/hrms/backend/internal/config"
	"github.com/workforce-hub/hrms/backend/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func newTestRepository(t *testing.T) (*Repository, *store.DocumentStore) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Auth.BcryptCost = bcrypt.MinCost

	s := store.NewDocumentStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, s.Ensure())

	return NewRepository(cfg, s), s
}

func readFile(t *testing.T, s *store.DocumentStore) []byte {
	t.Helper()
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	return data
}
