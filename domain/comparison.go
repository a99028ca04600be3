package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxCompareCourses bounds a visitor's comparison selection.
const MaxCompareCourses = 3

// ComparisonEntry is the snapshot of a course held in a comparison selection.
// Platform and category are copied at selection time.
type ComparisonEntry = CourseSummary

// ComparisonHistory records a comparison viewed by a signed-in user.
type ComparisonHistory struct {
	ID        string                    `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	UserID    string                    `json:"user_id" gorm:"column:user_id;type:uuid;not null"`
	Courses   []ComparisonHistoryCourse `json:"courses" gorm:"foreignKey:ComparisonHistoryID"`
	CreatedAt time.Time                 `json:"created_at" gorm:"column:created_at"`
}

func (ComparisonHistory) TableName() string {
	return "comparison_histories"
}

func (h *ComparisonHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

type ComparisonHistoryCourse struct {
	ID                  string `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	ComparisonHistoryID string `json:"comparison_history_id" gorm:"column:comparison_history_id;type:uuid"`
	CourseID            string `json:"course_id" gorm:"column:course_id;type:uuid"`
	Position            int    `json:"position" gorm:"column:position"`
	Course              Course `json:"course" gorm:"foreignKey:CourseID"`
}

func (ComparisonHistoryCourse) TableName() string {
	return "comparison_history_courses"
}

func (c *ComparisonHistoryCourse) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
