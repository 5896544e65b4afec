package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlvesR0/rss-telegram-bot/pkg/domain"
)

func newestFirst() []domain.Item {
	return []domain.Item{
		{Title: "A", Link: "https://example.com/a", GUID: "g3", Description: "newest"},
		{Title: "B", Link: "https://example.com/b", GUID: "g2", Description: "middle"},
		{Title: "C", Link: "https://example.com/c", GUID: "g1", Description: "oldest"},
	}
}

func strPtr(s string) *string { return &s }

func TestDiff_NoBaseline(t *testing.T) {
	rec := &domain.Record{UniqueBy: domain.UniqueByGuid}

	notifs, token, ok := Diff(rec, newestFirst())
	assert.Empty(t, notifs, "fresh record must not backfill history")
	require.True(t, ok)
	assert.Equal(t, "g3", token)
}

func TestDiff_BaselineInMiddle(t *testing.T) {
	rec := &domain.Record{UniqueBy: domain.UniqueByGuid, LastPost: strPtr("g2")}

	notifs, token, ok := Diff(rec, newestFirst())
	require.Len(t, notifs, 1)
	assert.Equal(t, "A", notifs[0].Title)
	require.True(t, ok)
	assert.Equal(t, "g3", token)
}

func TestDiff_BaselineIsNewest(t *testing.T) {
	rec := &domain.Record{UniqueBy: domain.UniqueByGuid, LastPost: strPtr("g3")}

	notifs, token, ok := Diff(rec, newestFirst())
	assert.Empty(t, notifs)
	require.True(t, ok)
	assert.Equal(t, "g3", token)
}

func TestDiff_BaselineNotFound(t *testing.T) {
	rec := &domain.Record{UniqueBy: domain.UniqueByGuid, LastPost: strPtr("gone")}

	notifs, token, ok := Diff(rec, newestFirst())
	require.Len(t, notifs, 3, "unknown baseline treats every item as new")
	assert.Equal(t, "A", notifs[0].Title)
	assert.Equal(t, "B", notifs[1].Title)
	assert.Equal(t, "C", notifs[2].Title)
	require.True(t, ok)
	assert.Equal(t, "g3", token)
}

func TestDiff_EmptyFetch(t *testing.T) {
	rec := &domain.Record{UniqueBy: domain.UniqueByGuid, LastPost: strPtr("g1")}

	notifs, token, ok := Diff(rec, nil)
	assert.Empty(t, notifs)
	assert.False(t, ok, "empty fetch must not move the cursor")
	assert.Empty(t, token)
}

func TestDiff_ByLink(t *testing.T) {
	rec := &domain.Record{UniqueBy: domain.UniqueByLink, LastPost: strPtr("https://example.com/b")}

	notifs, token, ok := Diff(rec, newestFirst())
	require.Len(t, notifs, 1)
	assert.Equal(t, "https://example.com/a", notifs[0].URL)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/a", token)
}

func TestDiff_Idempotent(t *testing.T) {
	rec := &domain.Record{UniqueBy: domain.UniqueByGuid, LastPost: strPtr("g2")}
	items := newestFirst()

	notifs, token, ok := Diff(rec, items)
	require.Len(t, notifs, 1)
	require.True(t, ok)
	rec.SetLastPost(token)

	// second run over the same snapshot sees nothing new
	notifs, token, ok = Diff(rec, items)
	assert.Empty(t, notifs)
	require.True(t, ok)
	assert.Equal(t, "g3", token)
}

func TestDiff_NotificationContents(t *testing.T) {
	rec := &domain.Record{UniqueBy: domain.UniqueByGuid, LastPost: strPtr("g2")}

	notifs, _, _ := Diff(rec, newestFirst())
	require.Len(t, notifs, 1)
	assert.Equal(t, "A", notifs[0].Title)
	assert.Equal(t, "https://example.com/a", notifs[0].URL)
	assert.Equal(t, "newest", notifs[0].Content)
}
