package recurrence

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Mode is the day-repeat mode of a schedule under construction.
type Mode int

const (
	ModeUnset Mode = iota
	ModeDaily
	ModeDaysOfWeek
	ModeDaysOfMonth
)

// TimeOfDay is one confirmed firing time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Accepted textual time formats, tried in order: 12-hour with a space
// before the meridiem, 12-hour without, then 24-hour.
var timeLayouts = []string{"3:04 PM", "3:04PM", "15:04"}

// ParseTimeOfDay parses a user-supplied time of day. The meridiem is
// matched case-insensitively, so "9:00 AM" and "9:00am" are the same time.
func ParseTimeOfDay(input string) (TimeOfDay, error) {
	input = strings.ToUpper(strings.TrimSpace(input))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("unrecognized time %q, try formats like 9:00 AM or 21:30", input)
}

var (
	// ErrWrongMode means a day entry was added for a different repeat
	// mode than the draft is in. The day sets stay untouched.
	ErrWrongMode = errors.New("day selection does not match the chosen repeat mode")

	// ErrNoTimes means an expression was requested before any time of
	// day was confirmed.
	ErrNoTimes = errors.New("no times of day confirmed yet")
)

// Draft accumulates day and time selections over several turns until a
// schedule expression can be generated.
type Draft struct {
	mode      Mode
	specific  bool
	weekdays  map[time.Weekday]struct{}
	monthDays map[int]struct{}
	times     map[TimeOfDay]struct{}
	daysDone  bool
	timesDone bool
}

func NewDraft() *Draft {
	return &Draft{
		weekdays:  make(map[time.Weekday]struct{}),
		monthDays: make(map[int]struct{}),
		times:     make(map[TimeOfDay]struct{}),
	}
}

// SetDaily puts the draft in daily mode: no day selection is needed.
func (d *Draft) SetDaily() {
	d.mode = ModeDaily
	d.daysDone = true
}

// ChooseSpecific records that the user wants specific days; whether those
// are weekdays or month days is decided by the next selection.
func (d *Draft) ChooseSpecific() {
	d.specific = true
}

// SetWeekdayMode switches the draft to by-weekday selection.
func (d *Draft) SetWeekdayMode() {
	d.mode = ModeDaysOfWeek
}

// SetMonthDayMode switches the draft to by-month-day selection.
func (d *Draft) SetMonthDayMode() {
	d.mode = ModeDaysOfMonth
}

// Mode returns the current repeat mode.
func (d *Draft) Mode() Mode { return d.mode }

// SpecificChosen reports whether the user picked specific days over daily.
func (d *Draft) SpecificChosen() bool { return d.specific }

// AddWeekday records a weekday selection. Adding one while in month-day
// mode fails without mutating either day set.
func (d *Draft) AddWeekday(day time.Weekday) error {
	if d.mode != ModeDaysOfWeek {
		return ErrWrongMode
	}
	d.weekdays[day] = struct{}{}
	return nil
}

// AddMonthDay records a day-of-month selection (1-31). Adding one while in
// weekday mode fails without mutating either day set.
func (d *Draft) AddMonthDay(day int) error {
	if d.mode != ModeDaysOfMonth {
		return ErrWrongMode
	}
	if day < 1 || day > 31 {
		return fmt.Errorf("day of month must be 1-31, got %d", day)
	}
	d.monthDays[day] = struct{}{}
	return nil
}

// AddTime records a time of day; duplicates collapse by (hour, minute).
func (d *Draft) AddTime(t TimeOfDay) {
	d.times[t] = struct{}{}
}

// FinishDays marks the day selection as done. It fails when the mode
// requires days and none were selected.
func (d *Draft) FinishDays() error {
	switch d.mode {
	case ModeDaysOfWeek:
		if len(d.weekdays) == 0 {
			return errors.New("pick at least one day of the week first")
		}
	case ModeDaysOfMonth:
		if len(d.monthDays) == 0 {
			return errors.New("pick at least one day of the month first")
		}
	}
	d.daysDone = true
	return nil
}

// FinishTimes marks the time selection as done; at least one time must
// exist before an expression can be generated.
func (d *Draft) FinishTimes() error {
	if len(d.times) == 0 {
		return errors.New("pick at least one time of day first")
	}
	d.timesDone = true
	return nil
}

// DaysDone reports whether day selection has been confirmed.
func (d *Draft) DaysDone() bool { return d.daysDone }

// TimesDone reports whether time selection has been confirmed.
func (d *Draft) TimesDone() bool { return d.timesDone }

// Weekdays returns the selected weekdays in Sunday-first order.
func (d *Draft) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 0, len(d.weekdays))
	for day := range d.weekdays {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// MonthDays returns the selected month days in ascending order.
func (d *Draft) MonthDays() []int {
	days := make([]int, 0, len(d.monthDays))
	for day := range d.monthDays {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// Times returns the confirmed times sorted by hour, then minute.
func (d *Draft) Times() []TimeOfDay {
	times := make([]TimeOfDay, 0, len(d.times))
	for t := range d.times {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool {
		if times[i].Hour != times[j].Hour {
			return times[i].Hour < times[j].Hour
		}
		return times[i].Minute < times[j].Minute
	})
	return times
}
