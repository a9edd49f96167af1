package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 4.3, RoundRating(4.333333))
	assert.Equal(t, 4.7, RoundRating(4.66))
	assert.Equal(t, 0.0, RoundRating(0))
}
