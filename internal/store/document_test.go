package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforce-hub/hrms/backend/internal/domain"
)

func newTestStore(t *testing.T) *DocumentStore {
	t.Helper()
	return NewDocumentStore(filepath.Join(t.TempDir(), "data", "users.json"))
}

func TestEnsureCreatesEmptyDocument(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Ensure())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":[],"employees":[]}`, string(data))
}

func TestEnsureIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Ensure())
	first, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	require.NoError(t, s.Ensure())
	second, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEnsureKeepsExistingFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"users":[{"loginId":"A1","email":"a@x.com"}]}`), 0o644))

	require.NoError(t, s.Ensure())

	doc, err := s.Load()
	require.NoError(t, err)
	require.Len(t, doc.Users, 1)
	assert.Equal(t, "A1", doc.Users[0].LoginID)
}

func TestEnsureFailsWhenDirectoryCannotBeCreated(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s := NewDocumentStore(filepath.Join(blocker, "data", "users.json"))
	err := s.Ensure()

	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestLoadDefaultsMissingCollections(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	// 原始数据只有 users，没有 employees
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"users":[]}`), 0o644))

	doc, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, doc.Users)
	assert.NotNil(t, doc.Employees)
	assert.Empty(t, doc.Employees)
}

func TestLoadRejectsCorruptData(t *testing.T) {
	cases := map[string]string{
		"invalid json":     `{"users": [`,
		"root is array":    `[]`,
		"root is null":     `null`,
		"users not array":  `{"users": {}, "employees": []}`,
		"employees string": `{"users": [], "employees": "x"}`,
		"user wrong shape": `{"users": [1, 2]}`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
			require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))

			_, err := s.Load()
			assert.ErrorIs(t, err, domain.ErrCorruptData)
		})
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	doc := &Document{
		Users: []domain.User{{LoginID: "ABJODO20240001", Email: "a@x.com", Name: "John Doe", Role: domain.RoleAdmin}},
		Employees: []domain.Employee{{
			ID: "E1", CompanyID: "C1", Email: "e1@x.com", Status: domain.StatusPresent, CheckInTime: "09:00",
		}},
	}
	require.NoError(t, s.Store(doc))
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)

	require.NoError(t, s.Store(loaded))
	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestUpdateDoesNotPersistOnError(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Ensure())
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Update(func(doc *Document) error {
		doc.Users = append(doc.Users, domain.User{LoginID: "X"})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestConcurrentUpdatesAreNotLost(t *testing.T) {
	s := newTestStore(t)
	const writers = 20

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.Update(func(doc *Document) error {
				doc.Employees = append(doc.Employees, domain.Employee{ID: fmt.Sprintf("E%d", i)})
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	doc, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, doc.Employees, writers)
}

func TestStoreLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Ensure())
	require.NoError(t, s.Store(&Document{}))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "users.json", entries[0].Name())
}

func TestUpdateKeepsUnknownFields(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{
  "version": 3,
  "users": [{"loginId": "A1", "email": "a@x.com", "theme": "dark"}],
  "employees": [
    {"id": "E1", "companyId": "C1", "email": "e1@x.com", "status": "absent", "joinDate": "2024-01-01"},
    {"id": "E2", "companyId": "C1", "email": "e2@x.com", "status": "absent"}
  ]
}`), 0o644))

	err := s.Update(func(doc *Document) error {
		doc.Employees[1].Status = domain.StatusPresent
		return nil
	})
	require.NoError(t, err)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": 3`)
	assert.Contains(t, string(data), `"theme": "dark"`)
	assert.Contains(t, string(data), `"joinDate": "2024-01-01"`)

	doc, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPresent, doc.Employees[1].Status)
}

func TestStoreFileMode(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Ensure())

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, defaultFileMode, info.Mode().Perm())

	// 已有文件的权限在写回后保持不变
	require.NoError(t, os.Chmod(s.Path(), 0o640))
	require.NoError(t, s.Store(&Document{}))

	info, err = os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}
