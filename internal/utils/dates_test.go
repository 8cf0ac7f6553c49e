package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    time.Month
		expected int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29}, // leap year
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.November, 30},
		{2000, time.February, 29}, // divisible by 400
		{1900, time.February, 28}, // divisible by 100 but not 400
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DaysInMonth(tt.year, tt.month), "%d-%02d", tt.year, tt.month)
	}
}

func TestAddMonths(t *testing.T) {
	t.Run("Plain month", func(t *testing.T) {
		start := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC), AddMonths(start, 3))
	})

	t.Run("Crosses year", func(t *testing.T) {
		start := time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2027, 2, 5, 0, 0, 0, 0, time.UTC), AddMonths(start, 3))
	})

	t.Run("Clamps to month end", func(t *testing.T) {
		start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), AddMonths(start, 1))
		assert.Equal(t, time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC), AddMonths(time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC), 2))
	})

	t.Run("Differs from 30 day blocks", func(t *testing.T) {
		start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
		assert.NotEqual(t, start.AddDate(0, 0, 12*30), AddMonths(start, 12))
		assert.Equal(t, time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC), AddMonths(start, 12))
	})

	t.Run("Negative months", func(t *testing.T) {
		start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC), AddMonths(start, -1))
		assert.Equal(t, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), AddMonths(start, -13))
	})
}

func TestDayBounds(t *testing.T) {
	ts := time.Date(2026, 10, 15, 17, 45, 12, 0, time.UTC)
	start, end := DayBounds(ts)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), end)
}

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		d, err := ParseDate("2026-01-15", time.UTC)
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("2026/01/15", time.UTC)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date format")
	})
}

func TestWholeMonthsBetween(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, WholeMonthsBetween(start, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, WholeMonthsBetween(start, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 13, WholeMonthsBetween(start, time.Date(2027, 2, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, WholeMonthsBetween(start, time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)))
}

func TestNewLoanNumber(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	a := NewLoanNumber(now)
	b := NewLoanNumber(now)

	assert.True(t, strings.HasPrefix(a, "GL-20261015-"))
	assert.Len(t, a, len("GL-20261015-")+8)
	assert.NotEqual(t, a, b)
}

func TestNewCustomerCode(t *testing.T) {
	code := NewCustomerCode()
	assert.True(t, strings.HasPrefix(code, "CUST-"))
	assert.Len(t, code, 13)
}
