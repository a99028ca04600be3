package course

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"skillCompare/domain"
	"skillCompare/pkg/logger"
	"skillCompare/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
)

const (
	BrowsePageSize     = 12
	AdminPageSize      = 20
	FeaturedLimit      = 8
	RelatedLimit       = 4
	DetailReviews      = 10
	SearchMaxQuery     = 100
	SearchMaxLimit     = 20
	SearchDefaultLimit = 8
)

// CourseRepository contract interface
type CourseRepository interface {
	FindPublishedBySlug(ctx context.Context, slug string) (domain.Course, error)
	FindPublishedByIDs(ctx context.Context, ids []string) ([]domain.Course, error)
	Browse(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, int64, error)
	Search(ctx context.Context, q string, limit int) ([]domain.Course, error)
	Related(ctx context.Context, categoryID, excludeID string, limit int) ([]domain.Course, error)
	Featured(ctx context.Context, limit int) ([]domain.Course, error)
	ListAdmin(ctx context.Context, q string, page, pageSize int) ([]domain.Course, int64, error)
	FindByID(ctx context.Context, id string) (domain.Course, error)
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, course *domain.Course) error
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id string) error
}

type ReviewRepository interface {
	ListByCourse(ctx context.Context, courseID string, limit int) ([]domain.Review, error)
}

type WishlistRepository interface {
	Exists(ctx context.Context, userID, courseID string) (bool, error)
}

type PlatformRepository interface {
	FindByID(ctx context.Context, id string) (domain.Platform, error)
}

type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (domain.Category, error)
}

type courseService struct {
	courseRepo   CourseRepository
	reviewRepo   ReviewRepository
	wishlistRepo WishlistRepository
	platformRepo PlatformRepository
	categoryRepo CategoryRepository
	validate     *validator.Validate
}

func NewCourseService(
	courseRepo CourseRepository,
	reviewRepo ReviewRepository,
	wishlistRepo WishlistRepository,
	platformRepo PlatformRepository,
	categoryRepo CategoryRepository,
	validate *validator.Validate,
) *courseService {
	return &courseService{
		courseRepo:   courseRepo,
		reviewRepo:   reviewRepo,
		wishlistRepo: wishlistRepo,
		platformRepo: platformRepo,
		categoryRepo: categoryRepo,
		validate:     validate,
	}
}

// CourseDetail is a course page: the course, its latest reviews and a
// few related courses from the same category.
type CourseDetail struct {
	Course     domain.Course   `json:"course"`
	Skills     []string        `json:"skills"`
	Reviews    []domain.Review `json:"reviews"`
	Related    []domain.Course `json:"related"`
	Wishlisted bool            `json:"wishlisted"`
}

type CourseInput struct {
	Title           string              `json:"title" validate:"required,min=5"`
	Description     string              `json:"description" validate:"required,min=20"`
	ShortDesc       string              `json:"short_desc"`
	Instructor      string              `json:"instructor"`
	Language        string              `json:"language"`
	Level           domain.Level        `json:"level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED ALL_LEVELS"`
	Status          domain.CourseStatus `json:"status" validate:"required,oneof=DRAFT PUBLISHED ARCHIVED"`
	Price           float64             `json:"price" validate:"gte=0"`
	OriginalPrice   *float64            `json:"original_price" validate:"omitempty,gte=0"`
	Duration        *int                `json:"duration" validate:"omitempty,gte=0"`
	LessonsCount    *int                `json:"lessons_count" validate:"omitempty,gte=0"`
	HasCertificate  bool                `json:"has_certificate"`
	HasJobSupport   bool                `json:"has_job_support"`
	URL             *string             `json:"url" validate:"omitempty,url"`
	ImageURL        *string             `json:"image_url" validate:"omitempty,url"`
	EnrollmentCount int                 `json:"enrollment_count" validate:"gte=0"`
	Skills          []string            `json:"skills" validate:"omitempty,dive,required"`
	PlatformID      string              `json:"platform_id" validate:"required"`
	CategoryID      string              `json:"category_id" validate:"required"`
}

func (s *courseService) Browse(ctx context.Context, filter domain.CourseFilter) (domain.CoursePage, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when browse courses")
		return domain.CoursePage{}, fmt.Errorf("context error: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.PageSize = BrowsePageSize
	filter.Query = strings.TrimSpace(filter.Query)
	if filter.Level != "" && !filter.Level.Valid() {
		filter.Level = ""
	}

	courses, total, err := s.courseRepo.Browse(ctx, filter)
	if err != nil {
		logger.Error("Failed to browse courses", err)
		return domain.CoursePage{}, err
	}

	return newPage(courses, total, filter.Page, filter.PageSize), nil
}

func newPage(courses []domain.Course, total int64, page, pageSize int) domain.CoursePage {
	if courses == nil {
		courses = []domain.Course{}
	}
	return domain.CoursePage{
		Courses:    courses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}

// Search is the quick search box. A query outside 1..100 characters
// yields no results rather than an error.
func (s *courseService) Search(ctx context.Context, q string, limit int) ([]domain.CourseSummary, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when search courses")
		return nil, fmt.Errorf("context error: %w", err)
	}

	metrics.SearchRequests.Inc()

	q = strings.TrimSpace(q)
	if n := utf8.RuneCountInString(q); n == 0 || n > SearchMaxQuery {
		return []domain.CourseSummary{}, nil
	}

	switch {
	case limit <= 0:
		limit = SearchDefaultLimit
	case limit > SearchMaxLimit:
		limit = SearchMaxLimit
	}

	courses, err := s.courseRepo.Search(ctx, q, limit)
	if err != nil {
		logger.Error("Failed to search courses", err)
		return nil, err
	}

	out := make([]domain.CourseSummary, len(courses))
	for i, c := range courses {
		out[i] = c.Summary()
	}
	return out, nil
}

func (s *courseService) GetBySlug(ctx context.Context, courseSlug, userID string) (CourseDetail, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get course by slug")
		return CourseDetail{}, fmt.Errorf("context error: %w", err)
	}

	c, err := s.courseRepo.FindPublishedBySlug(ctx, courseSlug)
	if err != nil {
		if !errors.Is(err, domain.ErrCourseNotFound) {
			logger.Error("Failed to find course by slug", err)
		}
		return CourseDetail{}, err
	}

	detail := CourseDetail{
		Course:  c,
		Skills:  c.SkillList(),
		Reviews: []domain.Review{},
		Related: []domain.Course{},
	}

	reviews, err := s.reviewRepo.ListByCourse(ctx, c.ID, DetailReviews)
	if err != nil {
		logger.Error("Failed to list course reviews", err)
		return CourseDetail{}, err
	}
	if reviews != nil {
		detail.Reviews = reviews
	}

	related, err := s.courseRepo.Related(ctx, c.CategoryID, c.ID, RelatedLimit)
	if err != nil {
		logger.Warn("Failed to find related courses", err)
	} else if related != nil {
		detail.Related = related
	}

	if userID != "" {
		wishlisted, err := s.wishlistRepo.Exists(ctx, userID, c.ID)
		if err != nil {
			logger.Warn("Failed to check wishlist", err)
		}
		detail.Wishlisted = wishlisted
	}

	return detail, nil
}

func (s *courseService) Featured(ctx context.Context) ([]domain.Course, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get featured courses")
		return nil, fmt.Errorf("context error: %w", err)
	}

	courses, err := s.courseRepo.Featured(ctx, FeaturedLimit)
	if err != nil {
		logger.Error("Failed to find featured courses", err)
		return nil, err
	}
	if courses == nil {
		courses = []domain.Course{}
	}

	return courses, nil
}

// FindByIDs returns published courses for up to domain.MaxCompareCourses
// ids, in the order asked. Unknown ids are dropped and a failed lookup
// gives an empty list.
func (s *courseService) FindByIDs(ctx context.Context, ids []string) ([]domain.Course, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when find courses by ids")
		return nil, fmt.Errorf("context error: %w", err)
	}

	wanted := make([]string, 0, domain.MaxCompareCourses)
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		wanted = append(wanted, id)
		if len(wanted) == domain.MaxCompareCourses {
			break
		}
	}
	if len(wanted) == 0 {
		return []domain.Course{}, nil
	}

	found, err := s.courseRepo.FindPublishedByIDs(ctx, wanted)
	if err != nil {
		logger.Error("Failed to find courses by ids", err)
		return []domain.Course{}, nil
	}

	byID := make(map[string]domain.Course, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	out := make([]domain.Course, 0, len(wanted))
	for _, id := range wanted {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *courseService) ListAdmin(ctx context.Context, q string, page int) (domain.CoursePage, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when list admin courses")
		return domain.CoursePage{}, fmt.Errorf("context error: %w", err)
	}

	if page < 1 {
		page = 1
	}

	courses, total, err := s.courseRepo.ListAdmin(ctx, strings.TrimSpace(q), page, AdminPageSize)
	if err != nil {
		logger.Error("Failed to list courses", err)
		return domain.CoursePage{}, err
	}

	return newPage(courses, total, page, AdminPageSize), nil
}

func (s *courseService) GetByID(ctx context.Context, id string) (domain.Course, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get course by id")
		return domain.Course{}, fmt.Errorf("context error: %w", err)
	}

	c, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find course", err)
		return domain.Course{}, err
	}
	return c, nil
}

func (s *courseService) CreateCourse(ctx context.Context, in CourseInput) (domain.Course, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create course")
		return domain.Course{}, fmt.Errorf("context error: %w", err)
	}

	c, err := s.prepare(ctx, in, "")
	if err != nil {
		return domain.Course{}, err
	}

	if err := s.courseRepo.Create(ctx, &c); err != nil {
		logger.Error("failed to create new course", err)
		return domain.Course{}, fmt.Errorf("failed to create course: %w", err)
	}

	logger.Info("course created successfully", "course_id", c.ID, "slug", c.Slug)
	return s.courseRepo.FindByID(ctx, c.ID)
}

func (s *courseService) UpdateCourse(ctx context.Context, id string, in CourseInput) (domain.Course, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating course")
		return domain.Course{}, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.courseRepo.FindByID(ctx, id); err != nil {
		logger.Error("course not found", err)
		return domain.Course{}, err
	}

	c, err := s.prepare(ctx, in, id)
	if err != nil {
		return domain.Course{}, err
	}
	c.ID = id

	if err := s.courseRepo.Update(ctx, &c); err != nil {
		logger.Error("failed to update course", err)
		return domain.Course{}, err
	}

	return s.courseRepo.FindByID(ctx, id)
}

func (s *courseService) DeleteCourse(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting course")
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete course", err)
		return err
	}

	logger.Info("course deleted successfully", "course_id", id)
	return nil
}

// prepare validates input and builds the course row. excludeID is the
// course being updated, if any.
func (s *courseService) prepare(ctx context.Context, in CourseInput, excludeID string) (domain.Course, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	if err := s.validate.Struct(in); err != nil {
		logger.Error("Invalid course data", err)
		return domain.Course{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	if _, err := s.platformRepo.FindByID(ctx, in.PlatformID); err != nil {
		logger.Error("Invalid course platform", err)
		return domain.Course{}, err
	}
	if _, err := s.categoryRepo.FindByID(ctx, in.CategoryID); err != nil {
		logger.Error("Invalid course category", err)
		return domain.Course{}, err
	}

	courseSlug := slug.Make(in.Title)
	taken, err := s.courseRepo.SlugTaken(ctx, courseSlug, excludeID)
	if err != nil {
		logger.Error("Failed to check course slug", err)
		return domain.Course{}, err
	}
	if taken {
		return domain.Course{}, domain.ErrCourseExists
	}

	language := strings.TrimSpace(in.Language)
	if language == "" {
		language = "English"
	}

	c := domain.Course{
		Title:           in.Title,
		Slug:            courseSlug,
		Description:     in.Description,
		ShortDesc:       in.ShortDesc,
		Instructor:      in.Instructor,
		Language:        language,
		Level:           in.Level,
		Status:          in.Status,
		Price:           in.Price,
		OriginalPrice:   in.OriginalPrice,
		Duration:        in.Duration,
		LessonsCount:    in.LessonsCount,
		HasCertificate:  in.HasCertificate,
		HasJobSupport:   in.HasJobSupport,
		URL:             in.URL,
		ImageURL:        in.ImageURL,
		EnrollmentCount: in.EnrollmentCount,
		PlatformID:      in.PlatformID,
		CategoryID:      in.CategoryID,
	}
	c.SetSkills(in.Skills)

	return c, nil
}
