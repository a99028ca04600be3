package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skillCompare/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{
		DB: db,
	}
}

func (r *CourseRepository) withRefs(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Preload("Platform").Preload("Category")
}

func (r *CourseRepository) published(ctx context.Context) *gorm.DB {
	return r.withRefs(ctx).Where("courses.status = ?", domain.CourseStatusPublished)
}

// validIDs drops anything postgres would reject as a uuid.
func validIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			out = append(out, id)
		}
	}
	return out
}

func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

func (r *CourseRepository) FindPublishedByID(ctx context.Context, id string) (domain.Course, error) {
	if err := ctx.Err(); err != nil {
		return domain.Course{}, fmt.Errorf("context error: %w", err)
	}

	if _, err := uuid.Parse(id); err != nil {
		return domain.Course{}, domain.ErrCourseNotFound
	}

	var course domain.Course
	err := r.published(ctx).Where("courses.id = ?", id).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Course{}, domain.ErrCourseNotFound
		}
		return domain.Course{}, fmt.Errorf("failed to find course: %w", err)
	}

	return course, nil
}

// FindPublishedByIDs returns the published courses among ids in no
// particular order. Unknown ids are skipped.
func (r *CourseRepository) FindPublishedByIDs(ctx context.Context, ids []string) ([]domain.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	ids = validIDs(ids)
	if len(ids) == 0 {
		return []domain.Course{}, nil
	}

	var courses []domain.Course
	if err := r.published(ctx).Where("courses.id IN ?", ids).Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to find courses: %w", err)
	}

	return courses, nil
}

func (r *CourseRepository) FindPublishedBySlug(ctx context.Context, slug string) (domain.Course, error) {
	if err := ctx.Err(); err != nil {
		return domain.Course{}, fmt.Errorf("context error: %w", err)
	}

	var course domain.Course
	err := r.published(ctx).Where("courses.slug = ?", slug).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Course{}, domain.ErrCourseNotFound
		}
		return domain.Course{}, fmt.Errorf("failed to find course: %w", err)
	}

	return course, nil
}

func (r *CourseRepository) Browse(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Model(&domain.Course{}).Where("courses.status = ?", domain.CourseStatusPublished)

	if filter.Query != "" {
		like := likePattern(filter.Query)
		query = query.Where(
			"LOWER(courses.title) LIKE ? OR LOWER(courses.description) LIKE ? OR LOWER(courses.instructor) LIKE ?",
			like, like, like,
		)
	}
	if filter.CategorySlug != "" {
		query = query.Where("courses.category_id IN (?)",
			r.DB.Model(&domain.Category{}).Select("id").Where("slug = ?", filter.CategorySlug))
	}
	if filter.PlatformSlug != "" {
		query = query.Where("courses.platform_id IN (?)",
			r.DB.Model(&domain.Platform{}).Select("id").Where("slug = ?", filter.PlatformSlug))
	}
	if filter.Level != "" {
		query = query.Where("courses.level = ?", filter.Level)
	}
	if filter.Language != "" {
		query = query.Where("courses.language = ?", filter.Language)
	}
	if filter.Certificate {
		query = query.Where("courses.has_certificate = ?", true)
	}
	if filter.JobSupport {
		query = query.Where("courses.has_job_support = ?", true)
	}
	if filter.MinPrice != nil {
		query = query.Where("courses.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("courses.price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	var courses []domain.Course
	err := query.
		Preload("Platform").
		Preload("Category").
		Order(sortClause(filter.Sort)).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&courses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to browse courses: %w", err)
	}

	return courses, total, nil
}

func sortClause(sort string) string {
	switch sort {
	case domain.SortPriceAsc:
		return "courses.price ASC"
	case domain.SortPriceDesc:
		return "courses.price DESC"
	case domain.SortNewest:
		return "courses.created_at DESC"
	default:
		return "courses.rating DESC, courses.review_count DESC"
	}
}

// Search matches title, instructor or platform name.
func (r *CourseRepository) Search(ctx context.Context, q string, limit int) ([]domain.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	like := likePattern(q)
	var courses []domain.Course
	err := r.published(ctx).
		Where("LOWER(courses.title) LIKE ? OR LOWER(courses.instructor) LIKE ? OR courses.platform_id IN (?)",
			like, like,
			r.DB.Model(&domain.Platform{}).Select("id").Where("LOWER(name) LIKE ?", like)).
		Order("courses.rating DESC").
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search courses: %w", err)
	}

	return courses, nil
}

func (r *CourseRepository) Related(ctx context.Context, categoryID, excludeID string, limit int) ([]domain.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var courses []domain.Course
	err := r.published(ctx).
		Where("courses.category_id = ? AND courses.id <> ?", categoryID, excludeID).
		Order("courses.rating DESC").
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find related courses: %w", err)
	}

	return courses, nil
}

func (r *CourseRepository) Featured(ctx context.Context, limit int) ([]domain.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var courses []domain.Course
	err := r.published(ctx).Order("courses.rating DESC").Limit(limit).Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find featured courses: %w", err)
	}

	return courses, nil
}

// ListAdmin lists courses of every status, newest first.
func (r *CourseRepository) ListAdmin(ctx context.Context, q string, page, pageSize int) ([]domain.Course, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Model(&domain.Course{})
	if q != "" {
		query = query.Where("LOWER(courses.title) LIKE ?", likePattern(q))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	var courses []domain.Course
	err := query.
		Preload("Platform").
		Preload("Category").
		Order("courses.created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&courses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, total, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (domain.Course, error) {
	if err := ctx.Err(); err != nil {
		return domain.Course{}, fmt.Errorf("context error: %w", err)
	}

	if _, err := uuid.Parse(id); err != nil {
		return domain.Course{}, domain.ErrCourseNotFound
	}

	var course domain.Course
	err := r.withRefs(ctx).Where("courses.id = ?", id).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Course{}, domain.ErrCourseNotFound
		}
		return domain.Course{}, fmt.Errorf("failed to find course: %w", err)
	}

	return course, nil
}

// SlugTaken reports whether another course already uses slug.
func (r *CourseRepository) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Model(&domain.Course{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check course slug: %w", err)
	}

	return count > 0, nil
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Omit("Platform", "Category").Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

func (r *CourseRepository) Update(ctx context.Context, course *domain.Course) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"title":            course.Title,
		"slug":             course.Slug,
		"description":      course.Description,
		"short_desc":       course.ShortDesc,
		"instructor":       course.Instructor,
		"language":         course.Language,
		"level":            course.Level,
		"status":           course.Status,
		"price":            course.Price,
		"original_price":   course.OriginalPrice,
		"duration":         course.Duration,
		"lessons_count":    course.LessonsCount,
		"has_certificate":  course.HasCertificate,
		"has_job_support":  course.HasJobSupport,
		"url":              course.URL,
		"image_url":        course.ImageURL,
		"enrollment_count": course.EnrollmentCount,
		"skills":           course.Skills,
		"platform_id":      course.PlatformID,
		"category_id":      course.CategoryID,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Course{}).Where("id = ?", course.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCourseNotFound
	}

	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrCourseNotFound
	}

	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Course{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCourseNotFound
	}

	return nil
}
