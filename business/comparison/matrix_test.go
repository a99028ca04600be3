package comparison

import (
	"encoding/json"
	"testing"

	"skillCompare/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(c domain.Course) float64  { return c.Price }
func rating(c domain.Course) float64 { return c.Rating }

func coursesWithPrices(prices ...float64) []domain.Course {
	out := make([]domain.Course, len(prices))
	for i, p := range prices {
		out[i] = domain.Course{ID: string(rune('a' + i)), Price: p}
	}
	return out
}

func TestBestIndex_FirstAtExtremeWins(t *testing.T) {
	idx, ok := BestIndex(coursesWithPrices(30, 10, 10), price, Minimize)

	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestBestIndex_Maximize(t *testing.T) {
	courses := []domain.Course{{Rating: 4.2}, {Rating: 4.8}, {Rating: 4.8}}

	idx, ok := BestIndex(courses, rating, Maximize)

	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestBestIndex_AllEqualPicksFirst(t *testing.T) {
	idx, ok := BestIndex(coursesWithPrices(5, 5, 5), price, Minimize)

	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestBestIndex_NoWinner(t *testing.T) {
	_, ok := BestIndex(nil, price, Minimize)
	assert.False(t, ok)

	_, ok = BestIndex(coursesWithPrices(1, 2), price, None)
	assert.False(t, ok)
}

func TestBuild_EmptyHasNoWinners(t *testing.T) {
	m := Build(nil, FeatureRows)

	require.Len(t, m.Rows, len(FeatureRows))
	for _, row := range m.Rows {
		assert.Nil(t, row.Best, row.Key)
		assert.Empty(t, row.Cells)
	}
	assert.Nil(t, m.BestValue)
}

func TestBuild_OnlyDirectionalRowsHaveWinners(t *testing.T) {
	m := Build(coursesWithPrices(10, 20), FeatureRows)

	for _, row := range m.Rows {
		if row.Direction == None {
			assert.Nil(t, row.Best, row.Key)
		} else {
			assert.NotNil(t, row.Best, row.Key)
		}
	}
}

func TestBuild_FormatsCells(t *testing.T) {
	hours, lessons := 42, 120
	courses := []domain.Course{
		{
			Price:           19.99,
			Rating:          4.7,
			Level:           domain.LevelAllLevels,
			Language:        "English",
			Duration:        &hours,
			LessonsCount:    &lessons,
			HasCertificate:  true,
			EnrollmentCount: 780000,
			Platform:        domain.Platform{Name: "Udemy"},
			Category:        domain.Category{Name: "Web Development"},
		},
		{Price: 0, Rating: 4, Level: domain.LevelBeginner},
	}

	m := Build(courses, FeatureRows)

	cells := map[string][]string{}
	for _, row := range m.Rows {
		cells[row.Key] = row.Cells
	}
	assert.Equal(t, []string{"$19.99", "Free"}, cells["price"])
	assert.Equal(t, []string{"4.7", "4.0"}, cells["rating"])
	assert.Equal(t, []string{"ALL LEVELS", "BEGINNER"}, cells["level"])
	assert.Equal(t, []string{"42 hours", "—"}, cells["duration"])
	assert.Equal(t, []string{"120 lessons", "—"}, cells["lessons_count"])
	assert.Equal(t, []string{"Yes", "No"}, cells["has_certificate"])
	assert.Equal(t, []string{"780,000", "0"}, cells["enrollment_count"])
	assert.Equal(t, []string{"Udemy", ""}, cells["platform"])
}

func TestBuild_ZeroDurationAndLessonsAreEmpty(t *testing.T) {
	zero := 0
	m := Build([]domain.Course{{Duration: &zero, LessonsCount: &zero}}, FeatureRows)

	cells := map[string][]string{}
	for _, row := range m.Rows {
		cells[row.Key] = row.Cells
	}
	assert.Equal(t, []string{"—"}, cells["duration"])
	assert.Equal(t, []string{"—"}, cells["lessons_count"])
}

func TestBuild_BestValueMarksCheapest(t *testing.T) {
	m := Build(coursesWithPrices(19.99, 0, 5), FeatureRows)

	require.NotNil(t, m.BestValue)
	assert.Equal(t, 1, *m.BestValue)
	assert.False(t, m.Columns[0].BestValue)
	assert.True(t, m.Columns[1].BestValue)
	assert.False(t, m.Columns[2].BestValue)
}

func TestDirectionality_JSON(t *testing.T) {
	raw, err := json.Marshal([]Directionality{None, Minimize, Maximize})

	require.NoError(t, err)
	assert.JSONEq(t, `["none","minimize","maximize"]`, string(raw))
}

func TestFeatureRows_Table(t *testing.T) {
	require.Len(t, FeatureRows, 11)
	assert.Equal(t, "price", FeatureRows[0].Key)
	assert.Equal(t, Minimize, FeatureRows[0].Direction)
	assert.Equal(t, "rating", FeatureRows[1].Key)
	assert.Equal(t, Maximize, FeatureRows[1].Direction)
	for _, row := range FeatureRows[2:] {
		assert.Equal(t, None, row.Direction, row.Key)
		assert.Nil(t, row.Metric, row.Key)
	}
}
