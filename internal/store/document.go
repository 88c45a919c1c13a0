package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/workforce-hub/hrms/backend/internal/domain"
	"github.com/workforce-hub/hrms/backend/internal/rawjson"
)

// Document 是持久化的全部数据
type Document struct {
	Users     []domain.User     `json:"users"`
	Employees []domain.Employee `json:"employees"`

	// 根对象上的其他字段，写回时原样保留
	extra map[string]json.RawMessage
}

var documentKeys = rawjson.Keys(reflect.TypeOf(Document{}))

const defaultFileMode fs.FileMode = 0o644

func newDocument() *Document {
	return &Document{
		Users:     []domain.User{},
		Employees: []domain.Employee{},
	}
}

// DocumentStore 把文档保存在一个 JSON 文件中，每次调用都会重新读取文件。
// 锁只能保证同一进程内的调用串行执行。
type DocumentStore struct {
	path string
	mu   sync.RWMutex
}

func NewDocumentStore(path string) *DocumentStore {
	return &DocumentStore{path: path}
}

func (s *DocumentStore) Path() string {
	return s.path
}

// Ensure 在文件不存在时创建目录和空文档，已有文件不会被修改
func (s *DocumentStore) Ensure() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ensure()
}

func (s *DocumentStore) Load() (*Document, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load()
}

func (s *DocumentStore) Store(doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store(doc)
}

// View 读取文档交给 fn，fn 中的修改不会写回
func (s *DocumentStore) View(fn func(doc *Document) error) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update 在写锁内完成一次读取、修改、写回。fn 返回错误时不写回。
func (s *DocumentStore) Update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensure(); err != nil {
		return err
	}

	doc, err := s.load()
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	return s.store(doc)
}

func (s *DocumentStore) ensure() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: create data directory: %w", domain.ErrIO, err)
	}

	_, err := os.Stat(s.path)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return s.store(newDocument())
	default:
		return fmt.Errorf("%w: stat %s: %w", domain.ErrIO, s.path, err)
	}
}

func (s *DocumentStore) load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrIO, s.path, err)
	}

	return decode(data)
}

func (s *DocumentStore) store(doc *Document) error {
	data, err := encode(doc)
	if err != nil {
		return fmt.Errorf("%w: encode document: %w", domain.ErrIO, err)
	}

	// 替换后的文件沿用原文件的权限
	mode := defaultFileMode
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}

	// 先写临时文件，再 rename 替换原文件
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", domain.ErrIO, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %w", domain.ErrIO, tmpName, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: chmod %s: %w", domain.ErrIO, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync %s: %w", domain.ErrIO, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %w", domain.ErrIO, tmpName, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %w", domain.ErrIO, s.path, err)
	}

	return nil
}

func decode(data []byte) (*Document, error) {
	// 先按原始结构解析，确认根节点是对象且两个集合都是数组
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorruptData, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: root is not an object", domain.ErrCorruptData)
	}

	doc := newDocument()
	if err := decodeCollection(raw, "users", &doc.Users); err != nil {
		return nil, err
	}
	if err := decodeCollection(raw, "employees", &doc.Employees); err != nil {
		return nil, err
	}
	for k, v := range raw {
		if _, ok := documentKeys[k]; ok {
			continue
		}
		if doc.extra == nil {
			doc.extra = make(map[string]json.RawMessage)
		}
		doc.extra[k] = v
	}

	return doc, nil
}

func decodeCollection[T any](raw map[string]json.RawMessage, key string, dst *[]T) error {
	value, ok := raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return nil
	}

	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return fmt.Errorf("%w: %q is not an array", domain.ErrCorruptData, key)
	}

	if err := json.Unmarshal(trimmed, dst); err != nil {
		return fmt.Errorf("%w: %q: %w", domain.ErrCorruptData, key, err)
	}
	if *dst == nil {
		*dst = []T{}
	}

	return nil
}

func encode(doc *Document) ([]byte, error) {
	out := *doc
	if out.Users == nil {
		out.Users = []domain.User{}
	}
	if out.Employees == nil {
		out.Employees = []domain.Employee{}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	data, err = rawjson.Merge(data, documentKeys, doc.extra)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
