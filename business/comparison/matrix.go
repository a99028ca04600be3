package comparison

import (
	"encoding/json"
	"fmt"
	"strings"

	"skillCompare/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Directionality says which end of a feature's range wins.
type Directionality int

const (
	None Directionality = iota
	Minimize
	Maximize
)

func (d Directionality) String() string {
	switch d {
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	default:
		return "none"
	}
}

func (d Directionality) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// FeatureRow describes one row of the comparison table. Metric is only
// set for directional rows.
type FeatureRow struct {
	Label     string
	Key       string
	Direction Directionality
	Metric    func(domain.Course) float64
	Format    func(domain.Course) string
}

const emptyCell = "—"

var numberPrinter = message.NewPrinter(language.English)

// FeatureRows is the comparison table in display order.
var FeatureRows = []FeatureRow{
	{
		Label:     "Price",
		Key:       "price",
		Direction: Minimize,
		Metric:    func(c domain.Course) float64 { return c.Price },
		Format:    func(c domain.Course) string { return FormatPrice(c.Price) },
	},
	{
		Label:     "Rating",
		Key:       "rating",
		Direction: Maximize,
		Metric:    func(c domain.Course) float64 { return c.Rating },
		Format:    func(c domain.Course) string { return fmt.Sprintf("%.1f", c.Rating) },
	},
	{
		Label:  "Platform",
		Key:    "platform",
		Format: func(c domain.Course) string { return c.Platform.Name },
	},
	{
		Label:  "Category",
		Key:    "category",
		Format: func(c domain.Course) string { return c.Category.Name },
	},
	{
		Label:  "Level",
		Key:    "level",
		Format: func(c domain.Course) string { return strings.Replace(string(c.Level), "_", " ", 1) },
	},
	{
		Label:  "Language",
		Key:    "language",
		Format: func(c domain.Course) string { return c.Language },
	},
	{
		Label: "Duration",
		Key:   "duration",
		Format: func(c domain.Course) string {
			if c.Duration == nil || *c.Duration == 0 {
				return emptyCell
			}
			return fmt.Sprintf("%d hours", *c.Duration)
		},
	},
	{
		Label: "Lessons",
		Key:   "lessons_count",
		Format: func(c domain.Course) string {
			if c.LessonsCount == nil || *c.LessonsCount == 0 {
				return emptyCell
			}
			return fmt.Sprintf("%d lessons", *c.LessonsCount)
		},
	},
	{
		Label:  "Certificate",
		Key:    "has_certificate",
		Format: func(c domain.Course) string { return yesNo(c.HasCertificate) },
	},
	{
		Label:  "Job Support",
		Key:    "has_job_support",
		Format: func(c domain.Course) string { return yesNo(c.HasJobSupport) },
	},
	{
		Label:  "Enrollments",
		Key:    "enrollment_count",
		Format: func(c domain.Course) string { return numberPrinter.Sprintf("%d", c.EnrollmentCount) },
	},
}

// BestIndex returns the index of the first course holding the extreme
// metric value. ok is false for an empty list or a non-directional row.
func BestIndex(courses []domain.Course, metric func(domain.Course) float64, dir Directionality) (idx int, ok bool) {
	if len(courses) == 0 || dir == None || metric == nil {
		return 0, false
	}

	best := metric(courses[0])
	for i := 1; i < len(courses); i++ {
		v := metric(courses[i])
		if (dir == Minimize && v < best) || (dir == Maximize && v > best) {
			best = v
			idx = i
		}
	}
	return idx, true
}

type MatrixColumn struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Slug      string  `json:"slug"`
	ImageURL  *string `json:"image_url,omitempty"`
	Platform  string  `json:"platform"`
	URL       *string `json:"url,omitempty"`
	BestValue bool    `json:"best_value"`
}

type MatrixRow struct {
	Label     string         `json:"label"`
	Key       string         `json:"key"`
	Direction Directionality `json:"direction"`
	Cells     []string       `json:"cells"`
	Best      *int           `json:"best"`
}

// Matrix is the rendered comparison table. BestValue is the price winner.
type Matrix struct {
	Columns   []MatrixColumn `json:"columns"`
	Rows      []MatrixRow    `json:"rows"`
	BestValue *int           `json:"best_value"`
}

func Build(courses []domain.Course, rows []FeatureRow) Matrix {
	m := Matrix{
		Columns: make([]MatrixColumn, len(courses)),
		Rows:    make([]MatrixRow, 0, len(rows)),
	}

	for _, row := range rows {
		cells := make([]string, len(courses))
		for i, c := range courses {
			cells[i] = row.Format(c)
		}

		r := MatrixRow{
			Label:     row.Label,
			Key:       row.Key,
			Direction: row.Direction,
			Cells:     cells,
		}
		if idx, ok := BestIndex(courses, row.Metric, row.Direction); ok {
			r.Best = &idx
			if row.Key == "price" {
				best := idx
				m.BestValue = &best
			}
		}
		m.Rows = append(m.Rows, r)
	}

	for i, c := range courses {
		m.Columns[i] = MatrixColumn{
			ID:        c.ID,
			Title:     c.Title,
			Slug:      c.Slug,
			ImageURL:  c.ImageURL,
			Platform:  c.Platform.Name,
			URL:       c.URL,
			BestValue: m.BestValue != nil && *m.BestValue == i,
		}
	}

	return m
}

func FormatPrice(price float64) string {
	if price == 0 {
		return "Free"
	}
	return fmt.Sprintf("$%.2f", price)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
