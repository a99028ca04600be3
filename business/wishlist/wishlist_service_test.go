package wishlist

import (
	"context"
	"testing"

	"skillCompare/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWishlistRepo struct {
	items map[string]bool
}

func (f *fakeWishlistRepo) Toggle(_ context.Context, userID, courseID string) (bool, error) {
	key := userID + "/" + courseID
	if f.items[key] {
		delete(f.items, key)
		return false, nil
	}
	f.items[key] = true
	return true, nil
}

func (f *fakeWishlistRepo) Exists(_ context.Context, userID, courseID string) (bool, error) {
	return f.items[userID+"/"+courseID], nil
}

func (f *fakeWishlistRepo) ListByUser(_ context.Context, userID string) ([]domain.Wishlist, error) {
	var out []domain.Wishlist
	for key := range f.items {
		if len(key) > len(userID) && key[:len(userID)+1] == userID+"/" {
			out = append(out, domain.Wishlist{UserID: userID, CourseID: key[len(userID)+1:]})
		}
	}
	return out, nil
}

type fakeCourseRepo struct{}

func (fakeCourseRepo) FindPublishedByID(_ context.Context, id string) (domain.Course, error) {
	if id != "c1" {
		return domain.Course{}, domain.ErrCourseNotFound
	}
	return domain.Course{ID: id}, nil
}

func TestToggle(t *testing.T) {
	repo := &fakeWishlistRepo{items: map[string]bool{}}
	svc := NewWishlistService(repo, fakeCourseRepo{})
	ctx := context.Background()

	on, err := svc.Toggle(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.True(t, on)

	has, err := svc.IsWishlisted(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.True(t, has)

	items, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c1", items[0].CourseID)

	on, err = svc.Toggle(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.False(t, on)

	items, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestToggleUnknownCourse(t *testing.T) {
	repo := &fakeWishlistRepo{items: map[string]bool{}}
	svc := NewWishlistService(repo, fakeCourseRepo{})

	_, err := svc.Toggle(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	assert.Empty(t, repo.items)
}
