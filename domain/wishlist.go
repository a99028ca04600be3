package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Wishlist struct {
	ID        string    `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	UserID    string    `json:"user_id" gorm:"column:user_id;type:uuid;not null"`
	CourseID  string    `json:"course_id" gorm:"column:course_id;type:uuid;not null"`
	Course    Course    `json:"course" gorm:"foreignKey:CourseID"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Wishlist) TableName() string {
	return "wishlists"
}

func (w *Wishlist) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
