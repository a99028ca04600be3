package comparison

import (
	"context"
	"errors"
	"testing"

	"skillCompare/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	saves int
}

func (f *failingStore) Load(context.Context, string) ([]domain.ComparisonEntry, error) {
	return nil, errors.New("storage unavailable")
}

func (f *failingStore) Save(context.Context, string, []domain.ComparisonEntry) error {
	f.saves++
	return errors.New("storage unavailable")
}

func entry(id string) domain.ComparisonEntry {
	return domain.ComparisonEntry{ID: id, Title: "Course " + id, Slug: "course-" + id}
}

func idsOf(entries []domain.ComparisonEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestSelection_CapacityIsThree(t *testing.T) {
	ctx := context.Background()
	sel := NewSelection("v1", nil, NewMemoryStore())

	for _, id := range []string{"a", "b", "c"} {
		added, err := sel.Add(ctx, entry(id))
		require.NoError(t, err)
		assert.True(t, added)
	}

	added, err := sel.Add(ctx, entry("d"))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.False(t, added)
	assert.Equal(t, []string{"a", "b", "c"}, sel.IDs())
	assert.False(t, sel.Has("d"))
}

func TestSelection_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	sel := NewSelection("v1", nil, nil)

	_, _ = sel.Add(ctx, entry("a"))
	_, _ = sel.Add(ctx, entry("b"))
	added, err := sel.Add(ctx, entry("a"))

	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"a", "b"}, sel.IDs())
}

func TestSelection_DuplicateAtCapacityIsNotAnError(t *testing.T) {
	ctx := context.Background()
	sel := NewSelection("v1", []domain.ComparisonEntry{entry("a"), entry("b"), entry("c")}, nil)

	added, err := sel.Add(ctx, entry("b"))

	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 3, sel.Len())
}

func TestSelection_Remove(t *testing.T) {
	ctx := context.Background()
	sel := NewSelection("v1", nil, nil)
	_, _ = sel.Add(ctx, entry("a"))
	_, _ = sel.Add(ctx, entry("b"))
	_, _ = sel.Add(ctx, entry("c"))

	sel.Remove(ctx, "b")
	assert.False(t, sel.Has("b"))
	assert.Equal(t, []string{"a", "c"}, sel.IDs())

	sel.Remove(ctx, "zzz")
	assert.Equal(t, []string{"a", "c"}, sel.IDs())
	assert.True(t, sel.IsOpen())
}

func TestSelection_RemoveLastClosesAndAddReopens(t *testing.T) {
	ctx := context.Background()
	sel := NewSelection("v1", nil, nil)
	_, _ = sel.Add(ctx, entry("a"))
	require.True(t, sel.IsOpen())

	sel.Remove(ctx, "a")
	assert.Equal(t, 0, sel.Len())
	assert.False(t, sel.IsOpen())

	_, _ = sel.Add(ctx, entry("b"))
	assert.True(t, sel.IsOpen())
}

func TestSelection_Clear(t *testing.T) {
	ctx := context.Background()
	sel := NewSelection("v1", nil, nil)
	_, _ = sel.Add(ctx, entry("a"))
	_, _ = sel.Add(ctx, entry("b"))

	sel.Clear(ctx)

	assert.Equal(t, 0, sel.Len())
	assert.False(t, sel.IsOpen())
	assert.Empty(t, sel.Snapshot().Courses)
	assert.NotNil(t, sel.Snapshot().Courses)
}

func TestSelection_SetVisibleIndependentOfEntries(t *testing.T) {
	ctx := context.Background()
	sel := NewSelection("v1", nil, nil)
	_, _ = sel.Add(ctx, entry("a"))

	sel.SetVisible(false)
	assert.False(t, sel.IsOpen())
	assert.Equal(t, 1, sel.Len())

	sel.SetVisible(true)
	assert.True(t, sel.IsOpen())

	// removing a non-last entry leaves a collapsed bar collapsed
	_, _ = sel.Add(ctx, entry("b"))
	sel.SetVisible(false)
	sel.Remove(ctx, "a")
	assert.False(t, sel.IsOpen())
}

func TestSelection_PersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sel := NewSelection("v1", nil, store)

	_, _ = sel.Add(ctx, entry("a"))
	_, _ = sel.Add(ctx, entry("b"))
	saved, _ := store.Load(ctx, "v1")
	assert.Equal(t, []string{"a", "b"}, idsOf(saved))

	sel.Remove(ctx, "a")
	saved, _ = store.Load(ctx, "v1")
	assert.Equal(t, []string{"b"}, idsOf(saved))

	sel.Clear(ctx)
	saved, _ = store.Load(ctx, "v1")
	assert.Empty(t, saved)
}

func TestSelection_PersistFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{}
	sel := NewSelection("v1", nil, store)

	added, err := sel.Add(ctx, entry("a"))

	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"a"}, sel.IDs())
	assert.Equal(t, 1, store.saves)
}

func TestSelection_PersistsAfterCallerCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := NewMemoryStore()
	sel := NewSelection("v1", nil, store)
	cancel()

	_, err := sel.Add(ctx, entry("a"))
	require.NoError(t, err)

	saved, _ := store.Load(context.Background(), "v1")
	assert.Equal(t, []string{"a"}, idsOf(saved))
}

func TestSelection_EntriesIsACopy(t *testing.T) {
	ctx := context.Background()
	sel := NewSelection("v1", nil, nil)
	_, _ = sel.Add(ctx, entry("a"))

	got := sel.Entries()
	got[0].ID = "mutated"

	assert.Equal(t, []string{"a"}, sel.IDs())
}

func TestNewSelection_NormalizesLoadedEntries(t *testing.T) {
	loaded := []domain.ComparisonEntry{entry("a"), entry(""), entry("a"), entry("b"), entry("c"), entry("d")}

	sel := NewSelection("v1", loaded, nil)

	assert.Equal(t, []string{"a", "b", "c"}, sel.IDs())
	assert.False(t, sel.IsOpen())
}
