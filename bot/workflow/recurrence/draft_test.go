package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input string
		want  TimeOfDay
	}{
		{"9:00 AM", TimeOfDay{9, 0}},
		{"9:00am", TimeOfDay{9, 0}},
		{"12:15 PM", TimeOfDay{12, 15}},
		{"12:15 AM", TimeOfDay{0, 15}},
		{"21:30", TimeOfDay{21, 30}},
		{"  7:45 pm ", TimeOfDay{19, 45}},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}
}

func TestParseTimeOfDayRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "noon", "25:00", "9"} {
		_, err := ParseTimeOfDay(input)
		assert.Error(t, err, input)
	}
}

func TestDraftTimesCollapseDuplicates(t *testing.T) {
	d := NewDraft()

	first, err := ParseTimeOfDay("9:00 AM")
	require.NoError(t, err)
	second, err := ParseTimeOfDay("9:00am")
	require.NoError(t, err)

	d.AddTime(first)
	d.AddTime(second)

	assert.Equal(t, []TimeOfDay{{9, 0}}, d.Times())
}

func TestDraftModeExclusivity(t *testing.T) {
	d := NewDraft()
	d.SetWeekdayMode()
	require.NoError(t, d.AddWeekday(time.Monday))

	// A month-day entry in weekday mode fails and mutates nothing.
	err := d.AddMonthDay(15)
	assert.ErrorIs(t, err, ErrWrongMode)
	assert.Empty(t, d.MonthDays())
	assert.Equal(t, []time.Weekday{time.Monday}, d.Weekdays())

	d.SetMonthDayMode()
	err = d.AddWeekday(time.Friday)
	assert.ErrorIs(t, err, ErrWrongMode)
	assert.Equal(t, []time.Weekday{time.Monday}, d.Weekdays())
}

func TestDraftMonthDayBounds(t *testing.T) {
	d := NewDraft()
	d.SetMonthDayMode()

	assert.Error(t, d.AddMonthDay(0))
	assert.Error(t, d.AddMonthDay(32))
	assert.NoError(t, d.AddMonthDay(1))
	assert.NoError(t, d.AddMonthDay(31))
	assert.Equal(t, []int{1, 31}, d.MonthDays())
}

func TestDraftFinishDaysRequiresSelection(t *testing.T) {
	d := NewDraft()
	d.SetWeekdayMode()

	assert.Error(t, d.FinishDays())
	require.NoError(t, d.AddWeekday(time.Wednesday))
	assert.NoError(t, d.FinishDays())
	assert.True(t, d.DaysDone())
}

func TestDraftFinishTimesRequiresSelection(t *testing.T) {
	d := NewDraft()
	d.SetDaily()

	assert.Error(t, d.FinishTimes())
	d.AddTime(TimeOfDay{9, 0})
	assert.NoError(t, d.FinishTimes())
	assert.True(t, d.TimesDone())
}

func TestDraftSortedAccessors(t *testing.T) {
	d := NewDraft()
	d.SetWeekdayMode()
	require.NoError(t, d.AddWeekday(time.Friday))
	require.NoError(t, d.AddWeekday(time.Sunday))
	require.NoError(t, d.AddWeekday(time.Tuesday))
	assert.Equal(t, []time.Weekday{time.Sunday, time.Tuesday, time.Friday}, d.Weekdays())

	d.AddTime(TimeOfDay{21, 30})
	d.AddTime(TimeOfDay{9, 0})
	d.AddTime(TimeOfDay{9, 45})
	assert.Equal(t, []TimeOfDay{{9, 0}, {9, 45}, {21, 30}}, d.Times())
}
