package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlvesR0/rss-telegram-bot/pkg/domain"
)

func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	s, err := NewSQLStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLStore_SaveLoad(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	key := domain.Key{Owner: 100500, Pin: 1234}
	rec := &domain.Record{
		URL:      "https://example.com/feed",
		UniqueBy: domain.UniqueByGuid,
		Extract:  domain.ExtractFindImage,
		SendTo:   100500,
	}
	rec.SetLastPost("g1")

	require.NoError(t, s.Save(ctx, key, rec))

	loaded, err := s.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, rec, loaded)
}

func TestSQLStore_SaveOverwrites(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	key := domain.Key{Owner: 1, Pin: 1111}
	rec := &domain.Record{URL: "u", UniqueBy: domain.UniqueByLink, Extract: domain.ExtractRaw, SendTo: 1}
	require.NoError(t, s.Save(ctx, key, rec))

	rec.SetLastPost("fresh")
	rec.Extract = domain.ExtractFindImage
	require.NoError(t, s.Save(ctx, key, rec))

	loaded, err := s.Load(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, loaded.LastPost)
	assert.Equal(t, "fresh", *loaded.LastPost)
	assert.Equal(t, domain.ExtractFindImage, loaded.Extract)

	keys, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 1, "upsert must not duplicate the key")
}

func TestSQLStore_LoadMissing(t *testing.T) {
	s := newTestSQLStore(t)

	_, err := s.Load(context.Background(), domain.Key{Owner: 1, Pin: 2222})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStore_NilLastPost(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	key := domain.Key{Owner: 5, Pin: 5555}
	require.NoError(t, s.Save(ctx, key, &domain.Record{URL: "u", UniqueBy: domain.UniqueByGuid, Extract: domain.ExtractRaw, SendTo: 5}))

	loaded, err := s.Load(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, loaded.LastPost, "a record without baseline stays baseline-less")
}

func TestSQLStore_Delete(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	key := domain.Key{Owner: 7, Pin: 3333}
	require.NoError(t, s.Save(ctx, key, &domain.Record{URL: "u", UniqueBy: domain.UniqueByLink, Extract: domain.ExtractRaw, SendTo: 7}))
	require.NoError(t, s.Delete(ctx, key))

	_, err := s.Load(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, key), ErrNotFound)
}

func TestSQLStore_List(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	rec := &domain.Record{URL: "u", UniqueBy: domain.UniqueByLink, Extract: domain.ExtractRaw}
	require.NoError(t, s.Save(ctx, domain.Key{Owner: 2, Pin: 2222}, rec))
	require.NoError(t, s.Save(ctx, domain.Key{Owner: 1, Pin: 1111}, rec))
	require.NoError(t, s.Save(ctx, domain.Key{Owner: -100200, Pin: 9999}, rec))

	keys, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Key{
		{Owner: -100200, Pin: 9999},
		{Owner: 1, Pin: 1111},
		{Owner: 2, Pin: 2222},
	}, keys)
}

func TestSQLStore_PinScopedPerOwner(t *testing.T) {
	s := newTestSQLStore(t)
	ctx := context.Background()

	// same pin for different owners must not collide
	require.NoError(t, s.Save(ctx, domain.Key{Owner: 1, Pin: 1234},
		&domain.Record{URL: "https://one.example.com", UniqueBy: domain.UniqueByLink, Extract: domain.ExtractRaw, SendTo: 1}))
	require.NoError(t, s.Save(ctx, domain.Key{Owner: 2, Pin: 1234},
		&domain.Record{URL: "https://two.example.com", UniqueBy: domain.UniqueByLink, Extract: domain.ExtractRaw, SendTo: 2}))

	one, err := s.Load(ctx, domain.Key{Owner: 1, Pin: 1234})
	require.NoError(t, err)
	assert.Equal(t, "https://one.example.com", one.URL)

	two, err := s.Load(ctx, domain.Key{Owner: 2, Pin: 1234})
	require.NoError(t, err)
	assert.Equal(t, "https://two.example.com", two.URL)
}
