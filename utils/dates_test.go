package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfDay(t *testing.T) {
	ts := time.Date(2024, 1, 16, 15, 42, 7, 0, time.Local)
	start := BeginningOfDay(ts)

	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.Equal(t, ts.Day(), start.Day())
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, 1, 16, 8, 0, 0, 0, time.Local)
	evening := time.Date(2024, 1, 16, 23, 59, 0, 0, time.Local)
	nextDay := time.Date(2024, 1, 17, 0, 1, 0, 0, time.Local)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(evening, nextDay))
}

func TestEndOfDayIsExclusiveBound(t *testing.T) {
	ts := time.Date(2024, 1, 16, 8, 0, 0, 0, time.Local)
	end := EndOfDay(ts)

	assert.Equal(t, 17, end.Day())
	assert.True(t, end.After(ts))
}
