package recents

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	_ "github.com/mattn/go-sqlite3"
)

// Persisted keys, one list per category.
const (
	KeyFiles   = "recentFiles"
	KeyFolders = "recentFolders"
)

// Store persists one string list per key. Delete removes the key itself, so a
// cleared list cannot be told apart from one that was never written.
type Store interface {
	Load(key string) (values []string, ok bool, err error)
	Save(key string, values []string) error
	Delete(key string) error
}

// TOMLStore keeps all keys in a single TOML document.
type TOMLStore struct {
	mu   sync.Mutex
	path string
}

// NewTOMLStore returns a store backed by the file at path. The file is
// created on the first Save.
func NewTOMLStore(path string) *TOMLStore {
	return &TOMLStore{path: path}
}

func (s *TOMLStore) read() (map[string][]string, error) {
	data := make(map[string][]string)
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return data, nil
	}
	if _, err := toml.DecodeFile(s.path, &data); err != nil {
		return nil, fmt.Errorf("recents: parse %s: %w", s.path, err)
	}
	return data, nil
}

func (s *TOMLStore) write(data map[string][]string) error {
	if len(data) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("recents: remove %s: %w", s.path, err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("recents: create dir: %w", err)
	}
	// Encode next to the target and rename over it, so a failed write
	// leaves the previous history intact.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return fmt.Errorf("recents: write %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())
	if err := toml.NewEncoder(tmp).Encode(data); err != nil {
		tmp.Close()
		return fmt.Errorf("recents: encode %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("recents: write %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("recents: replace %s: %w", s.path, err)
	}
	return nil
}

// Load implements Store.
func (s *TOMLStore) Load(key string) ([]string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.read()
	if err != nil {
		return nil, false, err
	}
	values, ok := data[key]
	return values, ok, nil
}

// Save implements Store.
func (s *TOMLStore) Save(key string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.read()
	if err != nil {
		return err
	}
	data[key] = values
	return s.write(data)
}

// Delete implements Store. The file is removed once no keys remain.
func (s *TOMLStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.write(data)
}

// SQLiteStore keeps keys as rows of a small key/value table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and creates if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize recents store: %w", err)
	}
	return s, nil
}

// init creates the database schema
func (s *SQLiteStore) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS recents (
		key TEXT PRIMARY KEY,
		items TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load implements Store.
func (s *SQLiteStore) Load(key string) ([]string, bool, error) {
	var raw string
	err := s.db.QueryRow(`SELECT items FROM recents WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query %s: %w", key, err)
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return values, true, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(key string, values []string) error {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO recents (key, items) VALUES (?, ?)`, key, string(raw))
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM recents WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
