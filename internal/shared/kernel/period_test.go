package kernel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPeriodValidation(t *testing.T) {
	start := NewTimestamp(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	end := start.Add(2 * time.Hour)

	period, err := NewPeriod(start, end)
	require.NoError(t, err)
	require.True(t, period.Contains(start.Add(time.Hour)))
	require.False(t, period.Contains(end.Add(time.Second)))

	_, err = NewPeriod(end, start)
	require.ErrorIs(t, err, ErrInvalidPeriod)
	require.ErrorIs(t, err, ErrValidation)

	endless, err := NewPeriod(start, Timestamp{})
	require.NoError(t, err)
	require.True(t, endless.IsEndless())
}

func TestTimePeriod(t *testing.T) {
	start, err := ParseTimeOfDay("19:00")
	require.NoError(t, err)
	end, err := ParseTimeOfDay("20:30")
	require.NoError(t, err)

	period, err := NewTimePeriod(start, end, "Europe/Brussels")
	require.NoError(t, err)
	require.Equal(t, "19:00", period.Start().String())
	require.Equal(t, "Europe/Brussels", period.Timezone())

	_, err = NewTimePeriod(end, start, "UTC")
	require.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = NewTimePeriod(start, end, "Mars/Olympus")
	require.ErrorIs(t, err, ErrValidation)
}

func TestWeekday(t *testing.T) {
	day, err := NewWeekday(3)
	require.NoError(t, err)
	require.Equal(t, Wednesday, day)

	_, err = NewWeekday(8)
	require.ErrorIs(t, err, ErrValidation)
}
