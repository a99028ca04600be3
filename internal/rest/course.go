package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"skillCompare/business/course"
	"skillCompare/domain"
	"skillCompare/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type CourseService interface {
	Browse(ctx context.Context, filter domain.CourseFilter) (domain.CoursePage, error)
	Search(ctx context.Context, q string, limit int) ([]domain.CourseSummary, error)
	GetBySlug(ctx context.Context, slug, userID string) (course.CourseDetail, error)
	Featured(ctx context.Context) ([]domain.Course, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Course, error)
	ListAdmin(ctx context.Context, q string, page int) (domain.CoursePage, error)
	GetByID(ctx context.Context, id string) (domain.Course, error)
	CreateCourse(ctx context.Context, in course.CourseInput) (domain.Course, error)
	UpdateCourse(ctx context.Context, id string, in course.CourseInput) (domain.Course, error)
	DeleteCourse(ctx context.Context, id string) error
}

type CourseHandler struct {
	courseService CourseService
	timeout       time.Duration
}

func NewCourseHandler(courseService CourseService) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		timeout:       10 * time.Second,
	}
}

type CoursesByIDsRequest struct {
	IDs []string `json:"ids"`
}

func parseFloatParam(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (h *CourseHandler) Browse(c echo.Context) error {
	var (
		filter domain.CourseFilter
		level  string
	)

	err := echo.QueryParamsBinder(c).
		String("q", &filter.Query).
		String("category", &filter.CategorySlug).
		String("platform", &filter.PlatformSlug).
		String("level", &level).
		String("language", &filter.Language).
		Bool("certificate", &filter.Certificate).
		Bool("job_support", &filter.JobSupport).
		String("sort", &filter.Sort).
		Int("page", &filter.Page).
		BindError()
	if err != nil {
		logger.Error("Invalid course filter", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	filter.Level = domain.Level(level)

	if filter.MinPrice, err = parseFloatParam(c, "min_price"); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid min_price"})
	}
	if filter.MaxPrice, err = parseFloatParam(c, "max_price"); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid max_price"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	page, err := h.courseService.Browse(ctx, filter)
	if err != nil {
		logger.Error("Failed to browse courses", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(page))
}

func (h *CourseHandler) Search(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	courses, err := h.courseService.Search(ctx, c.QueryParam("q"), limit)
	if err != nil {
		logger.Error("Failed to search courses", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully search courses",
		"courses": courses,
	})
}

func (h *CourseHandler) Featured(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	courses, err := h.courseService.Featured(ctx)
	if err != nil {
		logger.Error("Failed to get featured courses", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get featured courses",
		"courses": courses,
	})
}

func (h *CourseHandler) GetBySlug(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	detail, err := h.courseService.GetBySlug(ctx, c.Param("slug"), currentUserID(c))
	if err != nil {
		logger.Error("Failed to get course", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(detail))
}

// ByIDs never fails on bad input; it answers with an empty list.
func (h *CourseHandler) ByIDs(c echo.Context) error {
	var req CoursesByIDsRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("Invalid by-ids request", err)
		return c.JSON(http.StatusOK, map[string]interface{}{
			"courses": []domain.Course{},
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	courses, err := h.courseService.FindByIDs(ctx, req.IDs)
	if err != nil {
		logger.Error("Failed to find courses by ids", err)
		courses = []domain.Course{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"courses": courses,
	})
}

func (h *CourseHandler) ListAdmin(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.courseService.ListAdmin(ctx, c.QueryParam("q"), page)
	if err != nil {
		logger.Error("Failed to list courses", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

func (h *CourseHandler) GetByID(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.courseService.GetByID(ctx, c.Param("id"))
	if err != nil {
		logger.Error("Failed to find course", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get course",
		"course":  found,
	})
}

func (h *CourseHandler) CreateCourse(c echo.Context) error {
	var in course.CourseInput
	if err := c.Bind(&in); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.courseService.CreateCourse(ctx, in)
	if err != nil {
		logger.Error("Failed to create course", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "course successfully created",
		"course":  created,
	})
}

func (h *CourseHandler) UpdateCourse(c echo.Context) error {
	var in course.CourseInput
	if err := c.Bind(&in); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.courseService.UpdateCourse(ctx, c.Param("id"), in)
	if err != nil {
		logger.Error("Failed to update course", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update course",
		"course":  updated,
	})
}

func (h *CourseHandler) DeleteCourse(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.courseService.DeleteCourse(ctx, id); err != nil {
		logger.Error("Failed to delete course", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "course successfully deleted",
		"course_id": id,
	})
}
