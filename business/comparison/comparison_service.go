package comparison

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillCompare/domain"
	"skillCompare/pkg/logger"
	"skillCompare/pkg/metrics"
)

type CourseRepository interface {
	FindPublishedByID(ctx context.Context, id string) (domain.Course, error)
	FindPublishedByIDs(ctx context.Context, ids []string) ([]domain.Course, error)
}

type HistoryRepository interface {
	Create(ctx context.Context, history *domain.ComparisonHistory) error
	Recent(ctx context.Context, userID string, limit int) ([]domain.ComparisonHistory, error)
}

// State is what the comparison bar renders.
type State struct {
	Courses []domain.ComparisonEntry `json:"courses"`
	Open    bool                     `json:"is_open"`
	Count   int                      `json:"count"`
	Max     int                      `json:"max"`
}

// View is the resolved comparison page.
type View struct {
	Selection State           `json:"selection"`
	Courses   []domain.Course `json:"courses"`
	Matrix    Matrix          `json:"matrix"`
}

type comparisonService struct {
	registry    *Registry
	courseRepo  CourseRepository
	historyRepo HistoryRepository
}

func NewComparisonService(registry *Registry, courseRepo CourseRepository, historyRepo HistoryRepository) *comparisonService {
	return &comparisonService{
		registry:    registry,
		courseRepo:  courseRepo,
		historyRepo: historyRepo,
	}
}

func (s *comparisonService) State(ctx context.Context, visitorID string) (State, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get comparison state")
		return State{}, fmt.Errorf("context error: %w", err)
	}

	return s.registry.Get(ctx, visitorID).Snapshot(), nil
}

// AddCourse snapshots a published course into the visitor's selection.
// added is false when the course was already selected.
func (s *comparisonService) AddCourse(ctx context.Context, visitorID, courseID string) (state State, added bool, err error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when adding course to comparison")
		return State{}, false, fmt.Errorf("context error: %w", err)
	}

	sel := s.registry.Get(ctx, visitorID)

	if sel.Has(courseID) {
		metrics.ComparisonAddTotal.WithLabelValues(metrics.AddResultDuplicate).Inc()
		return sel.Snapshot(), false, nil
	}

	course, err := s.courseRepo.FindPublishedByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			metrics.ComparisonAddTotal.WithLabelValues(metrics.AddResultNotFound).Inc()
			return sel.Snapshot(), false, err
		}
		logger.Error("failed to find course for comparison", "course_id", courseID, err)
		return sel.Snapshot(), false, fmt.Errorf("failed to find course: %w", err)
	}

	added, err = sel.Add(ctx, course.Summary())
	switch {
	case errors.Is(err, ErrCapacityExceeded):
		metrics.ComparisonAddTotal.WithLabelValues(metrics.AddResultCapacityExceeded).Inc()
		return sel.Snapshot(), false, err
	case !added:
		metrics.ComparisonAddTotal.WithLabelValues(metrics.AddResultDuplicate).Inc()
	default:
		metrics.ComparisonAddTotal.WithLabelValues(metrics.AddResultAdded).Inc()
	}

	return sel.Snapshot(), added, nil
}

func (s *comparisonService) RemoveCourse(ctx context.Context, visitorID, courseID string) (State, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when removing course from comparison")
		return State{}, fmt.Errorf("context error: %w", err)
	}

	sel := s.registry.Get(ctx, visitorID)
	sel.Remove(ctx, courseID)

	return sel.Snapshot(), nil
}

func (s *comparisonService) Clear(ctx context.Context, visitorID string) (State, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when clearing comparison")
		return State{}, fmt.Errorf("context error: %w", err)
	}

	sel := s.registry.Get(ctx, visitorID)
	sel.Clear(ctx)

	return sel.Snapshot(), nil
}

func (s *comparisonService) SetVisible(ctx context.Context, visitorID string, open bool) (State, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when toggling comparison bar")
		return State{}, fmt.Errorf("context error: %w", err)
	}

	sel := s.registry.Get(ctx, visitorID)
	sel.SetVisible(open)

	return sel.Snapshot(), nil
}

// Compare resolves the selection against the catalog and builds the
// matrix. Ids that no longer resolve are dropped; a failed fetch renders
// an empty comparison.
func (s *comparisonService) Compare(ctx context.Context, visitorID, userID string) (View, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when building comparison")
		return View{}, fmt.Errorf("context error: %w", err)
	}

	start := time.Now()
	defer func() {
		metrics.ComparisonMatrixLatency.Observe(time.Since(start).Seconds())
	}()

	sel := s.registry.Get(ctx, visitorID)
	state := sel.Snapshot()

	ids := make([]string, 0, len(state.Courses))
	for _, e := range state.Courses {
		ids = append(ids, e.ID)
	}

	courses := s.resolve(ctx, ids)

	// the visitor went away while the fetch was outstanding
	if err := ctx.Err(); err != nil {
		return View{}, fmt.Errorf("context error: %w", err)
	}

	if userID != "" && len(courses) >= 2 {
		s.recordHistory(ctx, userID, courses)
	}

	return View{
		Selection: state,
		Courses:   courses,
		Matrix:    Build(courses, FeatureRows),
	}, nil
}

// resolve fetches published courses for ids in one batch, capped at
// domain.MaxCompareCourses, and returns them in ids order.
func (s *comparisonService) resolve(ctx context.Context, ids []string) []domain.Course {
	if len(ids) > domain.MaxCompareCourses {
		ids = ids[:domain.MaxCompareCourses]
	}
	if len(ids) == 0 {
		return []domain.Course{}
	}

	metrics.ComparisonRequestedCourses.Add(float64(len(ids)))

	found, err := s.courseRepo.FindPublishedByIDs(ctx, ids)
	if err != nil {
		logger.Error("failed to resolve comparison courses", err)
		return []domain.Course{}
	}

	byID := make(map[string]domain.Course, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	courses := make([]domain.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			courses = append(courses, c)
		}
	}

	metrics.ComparisonResolvedCourses.Add(float64(len(courses)))
	return courses
}

// recordHistory stores the comparison unless the user's latest entry
// already holds the same courses in the same order.
func (s *comparisonService) recordHistory(ctx context.Context, userID string, courses []domain.Course) {
	if s.historyRepo == nil {
		return
	}

	latest, err := s.historyRepo.Recent(ctx, userID, 1)
	if err != nil {
		logger.Warn("failed to load latest comparison history", "user_id", userID, err)
		return
	}
	if len(latest) > 0 && sameCourses(latest[0], courses) {
		return
	}

	history := &domain.ComparisonHistory{UserID: userID}
	for i, c := range courses {
		history.Courses = append(history.Courses, domain.ComparisonHistoryCourse{
			CourseID: c.ID,
			Position: i,
		})
	}

	if err := s.historyRepo.Create(ctx, history); err != nil {
		logger.Warn("failed to record comparison history", "user_id", userID, err)
	}
}

func sameCourses(h domain.ComparisonHistory, courses []domain.Course) bool {
	if len(h.Courses) != len(courses) {
		return false
	}
	for i, hc := range h.Courses {
		if hc.CourseID != courses[i].ID {
			return false
		}
	}
	return true
}
