package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlvesR0/rss-telegram-bot/pkg/domain"
)

func TestFileStore_SaveLoad(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
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

func TestFileStore_PersistedLayout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	key := domain.Key{Owner: 42, Pin: 1111}
	rec := &domain.Record{
		URL:      "https://example.com/feed",
		UniqueBy: domain.UniqueByLink,
		Extract:  domain.ExtractRaw,
		SendTo:   42,
	}
	require.NoError(t, s.Save(ctx, key, rec))

	data, err := os.ReadFile(filepath.Join(dir, "42-1111.json"))
	require.NoError(t, err)

	// field names and enum values are the wire format, they must not drift
	assert.Contains(t, string(data), `"url": "https://example.com/feed"`)
	assert.Contains(t, string(data), `"unique_by": "Link"`)
	assert.Contains(t, string(data), `"extract_content": "Raw"`)
	assert.Contains(t, string(data), `"last_post": null`)
	assert.Contains(t, string(data), `"send_to": 42`)
}

func TestFileStore_LoadMissing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Load(context.Background(), domain.Key{Owner: 1, Pin: 2222})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "1-2222.json"), []byte("{broken"), 0o600))

	_, err = s.Load(context.Background(), domain.Key{Owner: 1, Pin: 2222})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileStore_Delete(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := domain.Key{Owner: 7, Pin: 3333}
	require.NoError(t, s.Save(ctx, key, &domain.Record{URL: "u", UniqueBy: domain.UniqueByLink, Extract: domain.ExtractRaw, SendTo: 7}))
	require.NoError(t, s.Delete(ctx, key))

	_, err = s.Load(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, key), ErrNotFound)
}

func TestFileStore_List(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	rec := &domain.Record{URL: "u", UniqueBy: domain.UniqueByLink, Extract: domain.ExtractRaw}
	require.NoError(t, s.Save(ctx, domain.Key{Owner: 1, Pin: 1111}, rec))
	require.NoError(t, s.Save(ctx, domain.Key{Owner: 1, Pin: 2222}, rec))
	require.NoError(t, s.Save(ctx, domain.Key{Owner: -100200, Pin: 9999}, rec))

	// stray files are skipped, not fatal
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nodash.json"), []byte("{}"), 0o600))

	keys, err := s.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.Key{
		{Owner: 1, Pin: 1111},
		{Owner: 1, Pin: 2222},
		{Owner: -100200, Pin: 9999},
	}, keys)
}

func TestParseFileName(t *testing.T) {
	tests := []struct {
		name string
		key  domain.Key
		ok   bool
	}{
		{"12345-1111.json", domain.Key{Owner: 12345, Pin: 1111}, true},
		{"-100200300-9999.json", domain.Key{Owner: -100200300, Pin: 9999}, true},
		{"12345-1111.txt", domain.Key{}, false},
		{"12345.json", domain.Key{}, false},
		{"-1111.json", domain.Key{}, false},
		{"abc-1111.json", domain.Key{}, false},
		{"12345-xyz.json", domain.Key{}, false},
		{".json", domain.Key{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := parseFileName(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestFileName_RoundTrip(t *testing.T) {
	for _, key := range []domain.Key{
		{Owner: 1, Pin: 1111},
		{Owner: -100200300, Pin: 9999},
		{Owner: 987654321, Pin: 4242},
	} {
		parsed, ok := parseFileName(fileName(key))
		require.True(t, ok)
		assert.Equal(t, key, parsed)
	}
}
