package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateRatings(t *testing.T) {
	assert.Equal(t, RatingAggregate{Rating: 4.7, ReviewCount: 3}, AggregateRatings(14.0/3.0, 3))
	assert.Equal(t, RatingAggregate{Rating: 4.5, ReviewCount: 2}, AggregateRatings(4.5, 2))
	assert.Equal(t, RatingAggregate{}, AggregateRatings(0, 0))
}
