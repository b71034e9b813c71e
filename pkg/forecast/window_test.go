package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func TestNextWeekWindow(t *testing.T) {
	loc := newYork(t)

	t.Run("should start on next Sunday when now is a Wednesday", func(t *testing.T) {
		// given
		now := time.Date(2024, 6, 5, 14, 30, 0, 0, loc) // Wednesday

		// when
		window := NextWeekWindow(now, loc, time.Sunday)

		// then
		assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, loc), window.Start)
		assert.Equal(t, time.Date(2024, 6, 15, 23, 59, 59, 999_000_000, loc), window.End)
		assert.Equal(t, time.Sunday, window.Start.Weekday())
		assert.Len(t, window.Days(), 7)
	})

	t.Run("should start tomorrow when now is a Saturday", func(t *testing.T) {
		// given
		now := time.Date(2024, 6, 8, 23, 0, 0, 0, loc) // Saturday

		// when
		window := NextWeekWindow(now, loc, time.Sunday)

		// then
		assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, loc), window.Start)
		assert.Equal(t, time.Date(2024, 6, 15, 23, 59, 59, 999_000_000, loc), window.End)
	})

	t.Run("should skip to the following week when now is already the week start day", func(t *testing.T) {
		// given
		now := time.Date(2024, 6, 9, 0, 0, 0, 0, loc) // Sunday midnight

		// when
		window := NextWeekWindow(now, loc, time.Sunday)

		// then
		assert.Equal(t, time.Date(2024, 6, 16, 0, 0, 0, 0, loc), window.Start)
	})

	t.Run("should match the reference scenario", func(t *testing.T) {
		// given now = 2024-06-04 (a Tuesday)
		now := time.Date(2024, 6, 4, 9, 0, 0, 0, loc)

		// when
		window := NextWeekWindow(now, loc, time.Sunday)

		// then window = [2024-06-09, 2024-06-15]
		assert.Equal(t, "[2024-06-09, 2024-06-15]", window.String())
	})

	t.Run("should span exactly 7 calendar days across a DST transition", func(t *testing.T) {
		// given a window containing 2024-03-10, the US spring-forward date
		now := time.Date(2024, 3, 5, 12, 0, 0, 0, loc) // Tuesday

		// when
		window := NextWeekWindow(now, loc, time.Sunday)

		// then the date boundaries are unaffected by the missing hour
		assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), window.Start)
		assert.Equal(t, time.Date(2024, 3, 16, 23, 59, 59, 999_000_000, loc), window.End)

		days := window.Days()
		assert.Len(t, days, 7)
		for i, day := range days {
			assert.Equal(t, window.Start.AddDate(0, 0, i).Day(), day.Day())
		}
	})

	t.Run("should honor a non-Sunday week start day", func(t *testing.T) {
		// given
		now := time.Date(2024, 6, 5, 8, 0, 0, 0, loc) // Wednesday

		// when
		window := NextWeekWindow(now, loc, time.Monday)

		// then
		assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, loc), window.Start)
		assert.Equal(t, time.Monday, window.Start.Weekday())
	})

	t.Run("should convert now into the reference timezone first", func(t *testing.T) {
		// given 2024-06-09 01:00 UTC, which is still Saturday 2024-06-08 in New York
		now := time.Date(2024, 6, 9, 1, 0, 0, 0, time.UTC)

		// when
		window := NextWeekWindow(now, loc, time.Sunday)

		// then the window starts on the local tomorrow, Sunday 06-09
		assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, loc), window.Start)
	})
}

func TestWindow_Contains(t *testing.T) {
	loc := newYork(t)
	window := NextWeekWindow(time.Date(2024, 6, 4, 9, 0, 0, 0, loc), loc, time.Sunday)

	assert.True(t, window.Contains(time.Date(2024, 6, 9, 0, 0, 0, 0, loc)))
	assert.True(t, window.Contains(time.Date(2024, 6, 15, 23, 59, 0, 0, loc)))
	assert.False(t, window.Contains(time.Date(2024, 6, 8, 12, 0, 0, 0, loc)))
	assert.False(t, window.Contains(time.Date(2024, 6, 16, 0, 0, 0, 0, loc)))
}
