package reportwindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCompute_Daily(t *testing.T) {
	// Mid-afternoon target truncates to the containing day.
	target := time.Date(2025, time.March, 12, 15, 30, 0, 0, time.UTC)

	current, previous, err := Compute(Daily, target)
	require.NoError(t, err)

	assert.Equal(t, date(2025, time.March, 12), current.Start)
	assert.Equal(t, date(2025, time.March, 13), current.End)
	assert.Equal(t, date(2025, time.March, 11), previous.Start)
	assert.Equal(t, date(2025, time.March, 12), previous.End)
}

func TestCompute_Weekly(t *testing.T) {
	// 2025-03-12 is a Wednesday; its week runs Mon 10th through Sun 16th.
	current, previous, err := Compute(Weekly, date(2025, time.March, 12))
	require.NoError(t, err)

	assert.Equal(t, date(2025, time.March, 10), current.Start)
	assert.Equal(t, date(2025, time.March, 17), current.End)
	assert.Equal(t, date(2025, time.March, 3), previous.Start)
	assert.Equal(t, date(2025, time.March, 10), previous.End)
}

func TestCompute_Weekly_SundayBelongsToPriorWeek(t *testing.T) {
	// 2025-03-16 is a Sunday; it closes the week starting Mon 10th.
	current, _, err := Compute(Weekly, date(2025, time.March, 16))
	require.NoError(t, err)

	assert.Equal(t, date(2025, time.March, 10), current.Start)
}

func TestCompute_Monthly_MonthToDate(t *testing.T) {
	// A report for the 10th covers the 1st through end of the 10th and
	// compares against the ten days before the 1st.
	current, previous, err := Compute(Monthly, date(2025, time.March, 10))
	require.NoError(t, err)

	assert.Equal(t, date(2025, time.March, 1), current.Start)
	assert.Equal(t, date(2025, time.March, 11), current.End)
	assert.Equal(t, 10*24*time.Hour, current.Duration())
	assert.Equal(t, date(2025, time.February, 19), previous.Start)
	assert.Equal(t, date(2025, time.March, 1), previous.End)
}

func TestCompute_UnknownType(t *testing.T) {
	_, _, err := Compute("quarterly", date(2025, time.March, 10))
	assert.Error(t, err)
}

func TestWindow_Contains(t *testing.T) {
	w := Window{Start: date(2025, time.March, 1), End: date(2025, time.March, 2)}

	assert.True(t, w.Contains(date(2025, time.March, 1)))
	assert.True(t, w.Contains(time.Date(2025, time.March, 1, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.Contains(date(2025, time.March, 2)), "end is exclusive")
	assert.False(t, w.Contains(date(2025, time.February, 28)))
}

func TestGrowth(t *testing.T) {
	assert.Equal(t, 50, Growth(15, 10))
	assert.Equal(t, -50, Growth(5, 10))
	assert.Equal(t, 0, Growth(10, 10))
	assert.Equal(t, 100, Growth(7, 0), "growth from zero is pinned to 100")
	assert.Equal(t, 0, Growth(0, 0))
	assert.Equal(t, -100, Growth(0, 10))
	assert.Equal(t, 33, Growth(4, 3), "rounds to nearest integer")
}

func TestRate(t *testing.T) {
	assert.Equal(t, 50, Rate(1, 2))
	assert.Equal(t, 0, Rate(0, 5))
	assert.Equal(t, 100, Rate(5, 5))
	assert.Equal(t, 0, Rate(3, 0), "zero denominator yields 0")
	assert.Equal(t, 67, Rate(2, 3))
}
