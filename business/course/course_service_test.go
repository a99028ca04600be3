package course

import (
	"context"
	"errors"
	"strings"
	"testing"

	"skillCompare/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourseRepo struct {
	courses     map[string]domain.Course
	lastFilter  domain.CourseFilter
	searchLimit int
	searchCalls int
	batchErr    error
}

func newFakeCourseRepo(courses ...domain.Course) *fakeCourseRepo {
	m := map[string]domain.Course{}
	for _, c := range courses {
		m[c.ID] = c
	}
	return &fakeCourseRepo{courses: m}
}

func (f *fakeCourseRepo) FindPublishedBySlug(_ context.Context, slug string) (domain.Course, error) {
	for _, c := range f.courses {
		if c.Slug == slug && c.Published() {
			return c, nil
		}
	}
	return domain.Course{}, domain.ErrCourseNotFound
}

func (f *fakeCourseRepo) FindPublishedByIDs(_ context.Context, ids []string) ([]domain.Course, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	var out []domain.Course
	// reversed to prove the service restores the requested order
	for i := len(ids) - 1; i >= 0; i-- {
		if c, ok := f.courses[ids[i]]; ok && c.Published() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) Browse(_ context.Context, filter domain.CourseFilter) ([]domain.Course, int64, error) {
	f.lastFilter = filter
	return nil, 25, nil
}

func (f *fakeCourseRepo) Search(_ context.Context, _ string, limit int) ([]domain.Course, error) {
	f.searchCalls++
	f.searchLimit = limit
	var out []domain.Course
	for _, c := range f.courses {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCourseRepo) Related(context.Context, string, string, int) ([]domain.Course, error) {
	return nil, errors.New("related query failed")
}

func (f *fakeCourseRepo) Featured(context.Context, int) ([]domain.Course, error) {
	return nil, nil
}

func (f *fakeCourseRepo) ListAdmin(context.Context, string, int, int) ([]domain.Course, int64, error) {
	return nil, 0, nil
}

func (f *fakeCourseRepo) FindByID(_ context.Context, id string) (domain.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return domain.Course{}, domain.ErrCourseNotFound
	}
	return c, nil
}

func (f *fakeCourseRepo) SlugTaken(_ context.Context, slug, excludeID string) (bool, error) {
	for _, c := range f.courses {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourseRepo) Create(_ context.Context, c *domain.Course) error {
	c.ID = uuid.NewString()
	f.courses[c.ID] = *c
	return nil
}

func (f *fakeCourseRepo) Update(_ context.Context, c *domain.Course) error {
	f.courses[c.ID] = *c
	return nil
}

func (f *fakeCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.courses[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(f.courses, id)
	return nil
}

type fakeReviews struct{}

func (fakeReviews) ListByCourse(context.Context, string, int) ([]domain.Review, error) {
	return []domain.Review{{ID: "r1", Rating: 5, Body: "Great course overall"}}, nil
}

type fakeWishlist struct{ has bool }

func (f fakeWishlist) Exists(context.Context, string, string) (bool, error) { return f.has, nil }

type fakeRefs struct{}

func (fakeRefs) FindByID(_ context.Context, id string) (domain.Platform, error) {
	if id == "p1" {
		return domain.Platform{ID: "p1", Name: "Udemy"}, nil
	}
	return domain.Platform{}, domain.ErrPlatformNotFound
}

type fakeCategories struct{}

func (fakeCategories) FindByID(_ context.Context, id string) (domain.Category, error) {
	if id == "c1" {
		return domain.Category{ID: "c1", Name: "Web Development"}, nil
	}
	return domain.Category{}, domain.ErrCategoryNotFound
}

func course(id, slug string, status domain.CourseStatus) domain.Course {
	return domain.Course{ID: id, Title: "Course " + id, Slug: slug, Status: status}
}

func newService(repo *fakeCourseRepo, wishlisted bool) *courseService {
	return NewCourseService(repo, fakeReviews{}, fakeWishlist{has: wishlisted}, fakeRefs{}, fakeCategories{}, validator.New())
}

func validInput() CourseInput {
	return CourseInput{
		Title:       "Complete React Developer",
		Description: "Build real projects with React, hooks and the context API.",
		Level:       domain.LevelBeginner,
		Status:      domain.CourseStatusPublished,
		Price:       19.99,
		Skills:      []string{"React", "JavaScript"},
		PlatformID:  "p1",
		CategoryID:  "c1",
	}
}

func TestBrowse_NormalizesPaging(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := newService(repo, false)

	page, err := svc.Browse(context.Background(), domain.CourseFilter{Page: 0, PageSize: 500, Level: "EXPERT", Query: "  go  "})

	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastFilter.Page)
	assert.Equal(t, BrowsePageSize, repo.lastFilter.PageSize)
	assert.Empty(t, repo.lastFilter.Level)
	assert.Equal(t, "go", repo.lastFilter.Query)
	assert.Equal(t, 3, page.TotalPages)
	assert.NotNil(t, page.Courses)
}

func TestSearch_QueryBounds(t *testing.T) {
	repo := newFakeCourseRepo(course("a", "a", domain.CourseStatusPublished))
	svc := newService(repo, false)
	ctx := context.Background()

	got, err := svc.Search(ctx, "   ", 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = svc.Search(ctx, strings.Repeat("x", SearchMaxQuery+1), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, repo.searchCalls)

	got, err = svc.Search(ctx, "react", 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, SearchDefaultLimit, repo.searchLimit)

	_, _ = svc.Search(ctx, "react", 99)
	assert.Equal(t, SearchMaxLimit, repo.searchLimit)
}

func TestGetBySlug(t *testing.T) {
	repo := newFakeCourseRepo(course("a", "react", domain.CourseStatusPublished), course("b", "draft", domain.CourseStatusDraft))
	svc := newService(repo, true)
	ctx := context.Background()

	detail, err := svc.GetBySlug(ctx, "react", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "a", detail.Course.ID)
	assert.Len(t, detail.Reviews, 1)
	assert.NotNil(t, detail.Related, "related lookup failure degrades to empty")
	assert.True(t, detail.Wishlisted)

	anon, err := svc.GetBySlug(ctx, "react", "")
	require.NoError(t, err)
	assert.False(t, anon.Wishlisted)

	_, err = svc.GetBySlug(ctx, "draft", "")
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestFindByIDs_CapsDedupesAndKeepsOrder(t *testing.T) {
	repo := newFakeCourseRepo(
		course("a", "a", domain.CourseStatusPublished),
		course("b", "b", domain.CourseStatusPublished),
		course("c", "c", domain.CourseStatusPublished),
		course("d", "d", domain.CourseStatusPublished),
	)
	svc := newService(repo, false)

	got, err := svc.FindByIDs(context.Background(), []string{"b", "b", "", "missing", "a", "d", "c"})

	require.NoError(t, err)
	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"b", "a"}, ids)
}

func TestFindByIDs_EmptyAndFailure(t *testing.T) {
	repo := newFakeCourseRepo(course("a", "a", domain.CourseStatusPublished))
	svc := newService(repo, false)

	got, err := svc.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	repo.batchErr = errors.New("db down")
	got, err = svc.FindByIDs(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCreateCourse(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := newService(repo, false)

	c, err := svc.CreateCourse(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, "complete-react-developer", c.Slug)
	assert.Equal(t, "English", c.Language)
	assert.Equal(t, []string{"React", "JavaScript"}, c.SkillList())

	_, err = svc.CreateCourse(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrCourseExists)
}

func TestCreateCourse_Validation(t *testing.T) {
	svc := newService(newFakeCourseRepo(), false)
	ctx := context.Background()

	in := validInput()
	in.Title = "Go"
	_, err := svc.CreateCourse(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	in = validInput()
	in.Price = -1
	_, err = svc.CreateCourse(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validInput()
	in.Level = "EXPERT"
	_, err = svc.CreateCourse(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validInput()
	in.PlatformID = "nope"
	_, err = svc.CreateCourse(ctx, in)
	assert.ErrorIs(t, err, domain.ErrPlatformNotFound)

	in = validInput()
	in.CategoryID = "nope"
	_, err = svc.CreateCourse(ctx, in)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestUpdateCourse_KeepsOwnSlug(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := newService(repo, false)
	ctx := context.Background()
	created, err := svc.CreateCourse(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Price = 0
	updated, err := svc.UpdateCourse(ctx, created.ID, in)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 0.0, updated.Price)

	_, err = svc.UpdateCourse(ctx, "missing", in)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestDeleteCourse(t *testing.T) {
	repo := newFakeCourseRepo(course("a", "a", domain.CourseStatusPublished))
	svc := newService(repo, false)

	require.NoError(t, svc.DeleteCourse(context.Background(), "a"))
	assert.ErrorIs(t, svc.DeleteCourse(context.Background(), "a"), domain.ErrCourseNotFound)
}
