package recurrence

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

var cronParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// Expression generates the 5-field schedule expression from the draft:
// minutes and hours are the unions over all confirmed times, and the day
// fields follow the repeat mode — wildcards for daily, an explicit
// day-of-month list for month-day mode, or an explicit day-of-week list
// for weekday mode. It fails until times have been confirmed.
func (d *Draft) Expression() (string, error) {
	if !d.timesDone || len(d.times) == 0 {
		return "", ErrNoTimes
	}

	minuteSet := make(map[int]struct{})
	hourSet := make(map[int]struct{})
	for t := range d.times {
		minuteSet[t.Minute] = struct{}{}
		hourSet[t.Hour] = struct{}{}
	}

	dom, dow := "*", "*"
	switch d.mode {
	case ModeDaysOfMonth:
		dom = joinInts(d.MonthDays())
	case ModeDaysOfWeek:
		days := d.Weekdays()
		nums := make([]int, len(days))
		for i, day := range days {
			nums[i] = int(day)
		}
		dow = joinInts(nums)
	}

	expr := fmt.Sprintf("%s %s %s * %s", joinSet(minuteSet), joinSet(hourSet), dom, dow)
	if _, err := cronParser.Parse(expr); err != nil {
		return "", fmt.Errorf("generated invalid expression %q: %w", expr, err)
	}
	return expr, nil
}

// Validate checks that an expression parses as a standard 5-field schedule.
func Validate(expr string) error {
	_, err := cronParser.Parse(expr)
	return err
}

// NextRun computes the next firing time of an expression in the given
// timezone, used for the confirmation prompt after a schedule is built.
func NextRun(expr, timezone string, now time.Time) (time.Time, error) {
	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return time.Time{}, err
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("loading timezone %q: %w", timezone, err)
	}
	return schedule.Next(now.In(loc)), nil
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func joinSet(set map[int]struct{}) string {
	nums := make([]int, 0, len(set))
	for n := range set {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return joinInts(nums)
}
