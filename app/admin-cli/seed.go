package main

import (
	"context"
	"fmt"

	"skillCompare/domain"
	"skillCompare/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SeedReport struct {
	Platforms  int
	Categories int
	Courses    int
	Users      int
}

type seedCourse struct {
	course   domain.Course
	platform string
	category string
	skills   []string
}

type seedUser struct {
	name, email, password, role string
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

var seedPlatforms = []domain.Platform{
	{Name: "Udemy", Slug: "udemy", WebsiteURL: "https://www.udemy.com", Description: "Marketplace of video courses from independent instructors."},
	{Name: "Coursera", Slug: "coursera", WebsiteURL: "https://www.coursera.org", Description: "University and industry courses with certificates."},
	{Name: "edX", Slug: "edx", WebsiteURL: "https://www.edx.org", Description: "Courses from universities, many free to audit."},
	{Name: "Pluralsight", Slug: "pluralsight", WebsiteURL: "https://www.pluralsight.com", Description: "Technology skills platform for teams."},
}

var seedCategories = []domain.Category{
	{Name: "Programming", Slug: "programming", Icon: "code", Description: "Languages, tools and software engineering."},
	{Name: "Data Science", Slug: "data-science", Icon: "chart", Description: "Statistics, machine learning and analytics."},
	{Name: "Design", Slug: "design", Icon: "palette", Description: "UX, UI and visual design."},
	{Name: "Cloud", Slug: "cloud", Icon: "cloud", Description: "Cloud platforms, DevOps and infrastructure."},
}

var seedCourses = []seedCourse{
	{
		course: domain.Course{
			Title: "Go: The Complete Developer's Guide", Slug: "go-the-complete-developers-guide",
			Description: "Master the fundamentals and advanced features of the Go programming language.",
			Instructor:  "Stephen Grider", Level: domain.LevelBeginner, Price: 19.99, OriginalPrice: floatPtr(89.99),
			Duration: intPtr(9), LessonsCount: intPtr(97), HasCertificate: true, EnrollmentCount: 142381,
			URL: strPtr("https://www.udemy.com/course/go-the-complete-developers-guide/"),
		},
		platform: "udemy", category: "programming", skills: []string{"Go", "Concurrency", "Interfaces"},
	},
	{
		course: domain.Course{
			Title: "Programming with Google Go", Slug: "programming-with-google-go",
			Description: "A three course specialization covering Go syntax, functions, methods and concurrency.",
			Instructor:  "Ian Harris", Level: domain.LevelIntermediate, Price: 49,
			Duration: intPtr(30), LessonsCount: intPtr(60), HasCertificate: true, EnrollmentCount: 58210,
			URL: strPtr("https://www.coursera.org/specializations/google-golang"),
		},
		platform: "coursera", category: "programming", skills: []string{"Go", "Goroutines"},
	},
	{
		course: domain.Course{
			Title: "CS50's Introduction to Computer Science", Slug: "cs50-introduction-to-computer-science",
			Description: "An introduction to the intellectual enterprises of computer science and the art of programming.",
			Instructor:  "David J. Malan", Level: domain.LevelAllLevels, Price: 0,
			Duration: intPtr(120), HasCertificate: false, EnrollmentCount: 4210554,
			URL: strPtr("https://www.edx.org/cs50"),
		},
		platform: "edx", category: "programming", skills: []string{"C", "Python", "SQL", "Algorithms"},
	},
	{
		course: domain.Course{
			Title: "Machine Learning Specialization", Slug: "machine-learning-specialization",
			Description: "Build machine learning models in Python using NumPy and scikit-learn.",
			Instructor:  "Andrew Ng", Level: domain.LevelBeginner, Price: 49,
			Duration: intPtr(94), LessonsCount: intPtr(180), HasCertificate: true, HasJobSupport: true, EnrollmentCount: 1203440,
			URL: strPtr("https://www.coursera.org/specializations/machine-learning-introduction"),
		},
		platform: "coursera", category: "data-science", skills: []string{"Python", "Regression", "Neural Networks"},
	},
	{
		course: domain.Course{
			Title: "Python for Data Science and Machine Learning Bootcamp", Slug: "python-for-data-science-and-machine-learning-bootcamp",
			Description: "Learn how to use NumPy, Pandas, Seaborn, Matplotlib and Scikit-Learn for data work.",
			Instructor:  "Jose Portilla", Level: domain.LevelIntermediate, Price: 14.99, OriginalPrice: floatPtr(84.99),
			Duration: intPtr(25), LessonsCount: intPtr(165), HasCertificate: true, EnrollmentCount: 731200,
		},
		platform: "udemy", category: "data-science", skills: []string{"Python", "Pandas", "Machine Learning"},
	},
	{
		course: domain.Course{
			Title: "Google UX Design Professional Certificate", Slug: "google-ux-design-professional-certificate",
			Description: "Prepare for a career in UX design with hands-on projects and a portfolio.",
			Instructor:  "Google Career Certificates", Level: domain.LevelBeginner, Price: 49,
			Duration: intPtr(200), HasCertificate: true, HasJobSupport: true, EnrollmentCount: 980011,
		},
		platform: "coursera", category: "design", skills: []string{"Figma", "Wireframing", "User Research"},
	},
	{
		course: domain.Course{
			Title: "AWS Certified Solutions Architect Associate", Slug: "aws-certified-solutions-architect-associate",
			Description: "Prepare for the AWS Solutions Architect Associate exam with labs and practice tests.",
			Instructor:  "Andru Estes", Level: domain.LevelIntermediate, Price: 29,
			Duration: intPtr(20), LessonsCount: intPtr(110), HasCertificate: true, EnrollmentCount: 88000,
		},
		platform: "pluralsight", category: "cloud", skills: []string{"AWS", "VPC", "IAM"},
	},
	{
		course: domain.Course{
			Title: "Kubernetes for Developers", Slug: "kubernetes-for-developers",
			Description: "Deploy, scale and debug applications on Kubernetes clusters as a developer.",
			Instructor:  "Linux Foundation", Level: domain.LevelAdvanced, Price: 0,
			Duration: intPtr(40), HasCertificate: false, EnrollmentCount: 65000,
		},
		platform: "edx", category: "cloud", skills: []string{"Kubernetes", "Docker", "Helm"},
	},
}

var seedUsers = []seedUser{
	{name: "Admin", email: "admin@skillcompare.dev", password: "admin12345", role: domain.RoleAdmin},
	{name: "Demo Learner", email: "demo@skillcompare.dev", password: "demo12345", role: domain.RoleUser},
}

type catalogSeeder struct {
	db *gorm.DB
}

func newCatalogSeeder(db *gorm.DB) *catalogSeeder {
	return &catalogSeeder{db: db}
}

// Seed upserts the demo data keyed by slug or email, so it can run
// repeatedly.
func (s *catalogSeeder) Seed(ctx context.Context) (SeedReport, error) {
	var report SeedReport

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		platformIDs := make(map[string]string, len(seedPlatforms))
		for _, p := range seedPlatforms {
			p := p
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "website_url", "description", "updated_at"}),
			}).Create(&p).Error
			if err != nil {
				return fmt.Errorf("seed platform %s: %w", p.Slug, err)
			}
			if err := tx.Where("slug = ?", p.Slug).First(&p).Error; err != nil {
				return fmt.Errorf("reload platform %s: %w", p.Slug, err)
			}
			platformIDs[p.Slug] = p.ID
			report.Platforms++
		}

		categoryIDs := make(map[string]string, len(seedCategories))
		for _, c := range seedCategories {
			c := c
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "icon", "description", "updated_at"}),
			}).Create(&c).Error
			if err != nil {
				return fmt.Errorf("seed category %s: %w", c.Slug, err)
			}
			if err := tx.Where("slug = ?", c.Slug).First(&c).Error; err != nil {
				return fmt.Errorf("reload category %s: %w", c.Slug, err)
			}
			categoryIDs[c.Slug] = c.ID
			report.Categories++
		}

		for _, sc := range seedCourses {
			course := sc.course
			course.Status = domain.CourseStatusPublished
			course.Language = "English"
			course.PlatformID = platformIDs[sc.platform]
			course.CategoryID = categoryIDs[sc.category]
			course.SetSkills(sc.skills)

			err := tx.Omit("Platform", "Category").Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "slug"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"title", "description", "instructor", "level", "status", "price", "original_price",
					"duration", "lessons_count", "has_certificate", "has_job_support", "url",
					"enrollment_count", "skills", "platform_id", "category_id", "updated_at",
				}),
			}).Create(&course).Error
			if err != nil {
				return fmt.Errorf("seed course %s: %w", course.Slug, err)
			}
			report.Courses++
		}

		for _, su := range seedUsers {
			hash, err := utils.HashPassword(su.password)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", su.email, err)
			}
			u := domain.User{Name: su.name, Email: su.email, Password: string(hash), Role: su.role}
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "email"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "password", "role", "updated_at"}),
			}).Create(&u).Error
			if err != nil {
				return fmt.Errorf("seed user %s: %w", su.email, err)
			}
			report.Users++
		}

		return nil
	})
	if err != nil {
		return SeedReport{}, err
	}

	return report, nil
}
