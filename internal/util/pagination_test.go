package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 1, ParseIntDefault("", 1))
	assert.Equal(t, 7, ParseIntDefault("7", 1))
	assert.Equal(t, 1, ParseIntDefault("seven", 1))
}

func TestCalculate(t *testing.T) {
	offset, limit := Calculate(1, 20)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 20, limit)

	offset, limit = Calculate(3, 10)
	assert.Equal(t, 20, offset)
	assert.Equal(t, 10, limit)

	offset, limit = Calculate(0, -5)
	assert.Equal(t, 0, offset)
	assert.Equal(t, DefaultPageSize, limit)
}
