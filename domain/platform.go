package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Platform struct {
	ID          string    `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	Name        string    `json:"name" gorm:"column:name;type:text;not null"`
	Slug        string    `json:"slug" gorm:"column:slug;type:text;uniqueIndex;not null"`
	WebsiteURL  string    `json:"website_url,omitempty" gorm:"column:website_url;type:text"`
	Description string    `json:"description,omitempty" gorm:"column:description;type:text"`
	LogoURL     string    `json:"logo_url,omitempty" gorm:"column:logo_url;type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Platform) TableName() string {
	return "platforms"
}

func (p *Platform) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
