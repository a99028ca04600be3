package redis

import (
	"context"
	"testing"
	"time"

	"skillCompare/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SelectionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSelectionStore(client), mr
}

func TestSelectionStore_LoadMissing(t *testing.T) {
	store, _ := newTestStore(t)

	entries, err := store.Load(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSelectionStore_SaveLoadRoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	saved := []domain.ComparisonEntry{
		{ID: "c2", Title: "Go", Slug: "go", Price: 10},
		{ID: "c1", Title: "React", Slug: "react", Price: 19.99},
	}

	require.NoError(t, store.Save(ctx, "v1", saved))
	loaded, err := store.Load(ctx, "v1")

	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
	assert.Equal(t, time.Duration(0), mr.TTL(selectionKey("v1")), "selections never expire")

	mr.FastForward(24 * 365 * time.Hour)
	assert.True(t, mr.Exists(selectionKey("v1")))
}

func TestSelectionStore_SaveEmptyOverwrites(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "v1", []domain.ComparisonEntry{{ID: "c1"}}))

	require.NoError(t, store.Save(ctx, "v1", nil))
	loaded, err := store.Load(ctx, "v1")

	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSelectionStore_LoadCorrupt(t *testing.T) {
	store, mr := newTestStore(t)
	require.NoError(t, mr.Set(selectionKey("v1"), "not json"))

	_, err := store.Load(context.Background(), "v1")

	assert.Error(t, err)
}

func TestEncodeSelection_Shape(t *testing.T) {
	img := "https://img.example/react.png"
	raw, err := encodeSelection([]domain.ComparisonEntry{{
		ID:       "c1",
		Title:    "React",
		Slug:     "react",
		ImageURL: &img,
		Price:    19.99,
		Rating:   4.7,
		Platform: domain.PlatformRef{Name: "Udemy", Slug: "udemy"},
		Category: domain.CategoryRef{Name: "Web Development"},
	}})
	require.NoError(t, err)

	assert.JSONEq(t, `{"courses":[{
		"id":"c1","title":"React","slug":"react","image_url":"https://img.example/react.png",
		"price":19.99,"rating":4.7,
		"platform":{"name":"Udemy","slug":"udemy"},
		"category":{"name":"Web Development"}
	}]}`, string(raw))
}

func TestEncodeSelection_EmptyIsArray(t *testing.T) {
	raw, err := encodeSelection(nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{"courses":[]}`, string(raw))
}

func TestDecodeSelection_Corrupt(t *testing.T) {
	_, err := decodeSelection([]byte(`{"courses":`))

	assert.Error(t, err)
}

func TestSelectionKey(t *testing.T) {
	assert.Equal(t, "skillcompare-comparison:abc", selectionKey("abc"))
}
