package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Level string

const (
	LevelBeginner     Level = "BEGINNER"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelAdvanced     Level = "ADVANCED"
	LevelAllLevels    Level = "ALL_LEVELS"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelAllLevels:
		return true
	}
	return false
}

type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "DRAFT"
	CourseStatusPublished CourseStatus = "PUBLISHED"
	CourseStatusArchived  CourseStatus = "ARCHIVED"
)

func (s CourseStatus) Valid() bool {
	switch s {
	case CourseStatusDraft, CourseStatusPublished, CourseStatusArchived:
		return true
	}
	return false
}

// Course is a single listing aggregated from a learning platform.
// Rating is the rounded (1 decimal) review average, maintained by the
// review service.
type Course struct {
	ID              string         `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	Title           string         `json:"title" gorm:"column:title;type:text;not null"`
	Slug            string         `json:"slug" gorm:"column:slug;type:text;uniqueIndex;not null"`
	Description     string         `json:"description" gorm:"column:description;type:text;not null"`
	ShortDesc       string         `json:"short_desc,omitempty" gorm:"column:short_desc;type:text"`
	Instructor      string         `json:"instructor,omitempty" gorm:"column:instructor;type:text"`
	Language        string         `json:"language" gorm:"column:language;type:text;default:English"`
	Level           Level          `json:"level" gorm:"column:level;type:text"`
	Status          CourseStatus   `json:"status" gorm:"column:status;type:text"`
	Price           float64        `json:"price" gorm:"column:price;type:numeric"`
	OriginalPrice   *float64       `json:"original_price,omitempty" gorm:"column:original_price;type:numeric"`
	Duration        *int           `json:"duration,omitempty" gorm:"column:duration"`
	LessonsCount    *int           `json:"lessons_count,omitempty" gorm:"column:lessons_count"`
	HasCertificate  bool           `json:"has_certificate" gorm:"column:has_certificate;default:false"`
	HasJobSupport   bool           `json:"has_job_support" gorm:"column:has_job_support;default:false"`
	URL             *string        `json:"url,omitempty" gorm:"column:url;type:text"`
	ImageURL        *string        `json:"image_url,omitempty" gorm:"column:image_url;type:text"`
	Rating          float64        `json:"rating" gorm:"column:rating;type:numeric"`
	ReviewCount     int            `json:"review_count" gorm:"column:review_count;default:0"`
	EnrollmentCount int            `json:"enrollment_count" gorm:"column:enrollment_count;default:0"`
	Skills          datatypes.JSON `json:"skills" gorm:"column:skills"`
	PlatformID      string         `json:"platform_id" gorm:"column:platform_id;type:uuid"`
	CategoryID      string         `json:"category_id" gorm:"column:category_id;type:uuid"`
	Platform        Platform       `json:"platform" gorm:"foreignKey:PlatformID"`
	Category        Category       `json:"category" gorm:"foreignKey:CategoryID"`
	CreatedAt       time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       time.Time      `json:"updated_at" gorm:"column:updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if len(c.Skills) == 0 {
		c.Skills = datatypes.JSON("[]")
	}
	return nil
}

func (c Course) SkillList() []string {
	var skills []string
	if len(c.Skills) == 0 {
		return skills
	}
	_ = json.Unmarshal(c.Skills, &skills)
	return skills
}

func (c *Course) SetSkills(skills []string) {
	if skills == nil {
		skills = []string{}
	}
	raw, _ := json.Marshal(skills)
	c.Skills = datatypes.JSON(raw)
}

func (c Course) Published() bool {
	return c.Status == CourseStatusPublished
}

// Summary is the lightweight projection used by search results and the
// comparison selection snapshot.
func (c Course) Summary() CourseSummary {
	return CourseSummary{
		ID:       c.ID,
		Title:    c.Title,
		Slug:     c.Slug,
		ImageURL: c.ImageURL,
		Price:    c.Price,
		Rating:   c.Rating,
		Platform: PlatformRef{Name: c.Platform.Name, Slug: c.Platform.Slug},
		Category: CategoryRef{Name: c.Category.Name},
	}
}

type PlatformRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryRef struct {
	Name string `json:"name"`
}

type CourseSummary struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Slug     string      `json:"slug"`
	ImageURL *string     `json:"image_url,omitempty"`
	Price    float64     `json:"price"`
	Rating   float64     `json:"rating"`
	Platform PlatformRef `json:"platform"`
	Category CategoryRef `json:"category"`
}

// CourseFilter narrows the public catalog listing.
type CourseFilter struct {
	Query        string
	CategorySlug string
	PlatformSlug string
	Level        Level
	Language     string
	Certificate  bool
	JobSupport   bool
	MinPrice     *float64
	MaxPrice     *float64
	Sort         string
	Page         int
	PageSize     int
}

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
	SortNewest    = "newest"
)

type CoursePage struct {
	Courses    []Course `json:"courses"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
}
