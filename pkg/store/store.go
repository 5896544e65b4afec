// Package store persists feed records keyed by owner and pin. Two backends
// are provided: flat JSON files and SQLite. The key encoding is kept here so
// the scheduler and bot never see storage-internal naming.
package store

import (
	"context"
	"errors"

	"github.com/AlvesR0/rss-telegram-bot/pkg/domain"
)

// ErrNotFound is returned by Load when no record exists for the key.
var ErrNotFound = errors.New("record not found")

// Store is the keyed persistence interface for feed records.
type Store interface {
	Load(ctx context.Context, key domain.Key) (*domain.Record, error)
	Save(ctx context.Context, key domain.Key, rec *domain.Record) error
	Delete(ctx context.Context, key domain.Key) error
	List(ctx context.Context) ([]domain.Key, error)
}
