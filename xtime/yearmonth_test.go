package xtime

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestYearMonth_Next(t *testing.T) {
	assert.Equal(t, YearMonth{2030, time.March}, YearMonth{2030, time.February}.Next())
	assert.Equal(t, YearMonth{2031, time.January}, YearMonth{2030, time.December}.Next())
}

func TestYearMonth_Until(t *testing.T) {
	start := NewYearMonth(MustParseLocalDateTime("2030-11-20T08:00"))
	end := NewYearMonth(MustParseLocalDateTime("2031-01-05T22:00"))

	assert.Equal(t, []YearMonth{
		{2030, time.November},
		{2030, time.December},
		{2031, time.January},
	}, slices.Collect(start.Until(end)))

	// single month window
	assert.Equal(t, []YearMonth{{2030, time.November}}, slices.Collect(start.Until(start)))

	// inverted window yields nothing
	assert.Empty(t, slices.Collect(end.Until(start)))
}
