package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/AlvesR0/rss-telegram-bot/pkg/domain"
)

// FileStore keeps one pretty-printed JSON blob per record in a single
// directory, named "<owner>-<pin>.json". Enumeration is a directory read.
type FileStore struct {
	dir string
}

// NewFileStore creates the store, making the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create sources dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Load reads and decodes the record for the key, ErrNotFound if absent.
func (s *FileStore) Load(_ context.Context, key domain.Key) (*domain.Record, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read record %s: %w", fileName(key), err)
	}

	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", fileName(key), err)
	}
	return &rec, nil
}

// Save encodes and writes the record for the key, replacing any previous one.
func (s *FileStore) Save(_ context.Context, key domain.Key, rec *domain.Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record %s: %w", fileName(key), err)
	}
	if err := os.WriteFile(s.path(key), data, 0o600); err != nil {
		return fmt.Errorf("write record %s: %w", fileName(key), err)
	}
	return nil
}

// Delete removes the record for the key. Deleting a missing key is an error.
func (s *FileStore) Delete(_ context.Context, key domain.Key) error {
	if err := os.Remove(s.path(key)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete record %s: %w", fileName(key), err)
	}
	return nil
}

// List enumerates all stored keys. Files that don't parse as a key are
// logged and skipped, a stray file must not break the polling pass.
func (s *FileStore) List(_ context.Context) ([]domain.Key, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read sources dir %s: %w", s.dir, err)
	}

	keys := make([]domain.Key, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key, ok := parseFileName(entry.Name())
		if !ok {
			lgr.Printf("[WARN] skipping unrecognized file %q in sources dir", entry.Name())
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *FileStore) path(key domain.Key) string {
	return filepath.Join(s.dir, fileName(key))
}

func fileName(key domain.Key) string {
	return fmt.Sprintf("%d-%d.json", key.Owner, key.Pin)
}

// parseFileName recovers the key from a storage file name. The split uses
// the last dash so negative owner IDs (telegram group chats) round-trip.
func parseFileName(name string) (domain.Key, bool) {
	base, found := strings.CutSuffix(name, ".json")
	if !found {
		return domain.Key{}, false
	}

	sep := strings.LastIndexByte(base, '-')
	if sep <= 0 {
		return domain.Key{}, false
	}

	owner, err := strconv.ParseInt(base[:sep], 10, 64)
	if err != nil {
		return domain.Key{}, false
	}
	pin, err := strconv.Atoi(base[sep+1:])
	if err != nil {
		return domain.Key{}, false
	}
	return domain.Key{Owner: owner, Pin: pin}, true
}
