package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CREATE TABLE public.categories (
//     id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//     name        TEXT NOT NULL,
//     slug        TEXT NOT NULL UNIQUE,
//     icon        TEXT,
//     description TEXT,
//     created_at  TIMESTAMPTZ DEFAULT NOW(),
//     updated_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	Name        string    `json:"name" gorm:"column:name;type:text;not null"`
	Slug        string    `json:"slug" gorm:"column:slug;type:text;uniqueIndex;not null"`
	Icon        string    `json:"icon,omitempty" gorm:"column:icon;type:text"`
	Description string    `json:"description,omitempty" gorm:"column:description;type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CategoryWithCount is a category plus the number of courses filed under it.
type CategoryWithCount struct {
	Category
	CourseCount int64 `json:"course_count" gorm:"column:course_count"`
}
