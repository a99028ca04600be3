package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	UserID    string    `json:"user_id" gorm:"column:user_id;type:uuid;not null"`
	CourseID  string    `json:"course_id" gorm:"column:course_id;type:uuid;not null"`
	Rating    int       `json:"rating" gorm:"column:rating;not null"`
	Title     string    `json:"title,omitempty" gorm:"column:title;type:text"`
	Body      string    `json:"body" gorm:"column:body;type:text;not null"`
	User      *Reviewer `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Reviewer is the public face of a review author.
type Reviewer struct {
	ID    string  `json:"-" gorm:"primaryKey;type:uuid"`
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
}

func (Reviewer) TableName() string {
	return "users"
}

// RatingAggregate is what a course stores about its reviews.
type RatingAggregate struct {
	Rating      float64
	ReviewCount int
}

// AggregateRatings rounds the review average to one decimal place.
// No reviews means a zero rating.
func AggregateRatings(avg float64, count int) RatingAggregate {
	if count == 0 {
		return RatingAggregate{}
	}
	return RatingAggregate{
		Rating:      math.Round(avg*10) / 10,
		ReviewCount: count,
	}
}
