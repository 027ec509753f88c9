package recurrence

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"TaskBadger/bot/workflow"
)

// Option keys for the schedule menus.
const (
	optDaily     = "daily"
	optSpecific  = "specific"
	optWeekdays  = "weekdays"
	optMonthDays = "monthdays"
	optDone      = "done"
)

var weekdayOptions = []workflow.Option{
	{Key: "0", Label: "Sunday"},
	{Key: "1", Label: "Monday"},
	{Key: "2", Label: "Tuesday"},
	{Key: "3", Label: "Wednesday"},
	{Key: "4", Label: "Thursday"},
	{Key: "5", Label: "Friday"},
	{Key: "6", Label: "Saturday"},
	{Key: optDone, Label: "Done"},
}

type step = workflow.Step[State, *Draft, *Machine]

// NewOrchestrator builds the schedule-construction workflow. It is invoked
// as a nested sub-workflow from the task graph; the caller reads the
// generated expression off the draft once the machine reaches Complete.
func NewOrchestrator(log *slog.Logger) *workflow.Orchestrator[State, *Draft, *Machine] {
	o := workflow.NewOrchestrator[State, *Draft, *Machine](StateComplete, nil, log)

	o.Configure(StateDailyOrSpecific, step{
		Prompt: "How should this task repeat?",
		Options: []workflow.Option{
			{Key: optDaily, Label: "Every day"},
			{Key: optSpecific, Label: "Specific days"},
		},
		Handle: handleDailyOrSpecific,
	})

	o.Configure(StateWeekOrMonthDays, step{
		Prompt: "Which kind of days?",
		Options: []workflow.Option{
			{Key: optWeekdays, Label: "Days of the week"},
			{Key: optMonthDays, Label: "Days of the month"},
		},
		Handle: handleWeekOrMonthDays,
	})

	o.Configure(StateDaysOfWeek, step{
		Prompt:  "Pick a day of the week, one at a time. Say \"done\" when finished.",
		Options: weekdayOptions,
		Handle:  handleDayOfWeek,
	})

	o.Configure(StateDaysOfMonth, step{
		Prompt: "Which days of the month (1-31)? One at a time; say \"done\" when finished.",
		Handle: handleDayOfMonth,
	})

	o.Configure(StateTimesOfDay, step{
		Prompt: "What times of day? For example 9:00 AM or 21:30. One at a time; say \"done\" when finished.",
		Handle: handleTimeOfDay,
	})

	o.Configure(StateComplete, step{
		Prompt: "Schedule set.",
	})

	return o
}

func handleDailyOrSpecific(m *Machine, input string) error {
	opt, err := workflow.ResolveInput(input, []workflow.Option{
		{Key: optDaily, Label: "Every day"},
		{Key: optSpecific, Label: "Specific days"},
	})
	if err != nil {
		return err
	}

	if opt.Key == optDaily {
		m.Draft().SetDaily()
	} else {
		m.Draft().ChooseSpecific()
	}
	return nil
}

func handleWeekOrMonthDays(m *Machine, input string) error {
	opt, err := workflow.ResolveInput(input, []workflow.Option{
		{Key: optWeekdays, Label: "Days of the week"},
		{Key: optMonthDays, Label: "Days of the month"},
	})
	if err != nil {
		return err
	}

	if opt.Key == optWeekdays {
		m.Draft().SetWeekdayMode()
	} else {
		m.Draft().SetMonthDayMode()
	}
	return nil
}

func handleDayOfWeek(m *Machine, input string) error {
	opt, err := workflow.ResolveInput(input, weekdayOptions)
	if err != nil {
		return err
	}
	if opt.Key == optDone {
		return m.Draft().FinishDays()
	}

	num, err := strconv.Atoi(opt.Key)
	if err != nil {
		return err
	}
	return m.Draft().AddWeekday(time.Weekday(num))
}

func handleDayOfMonth(m *Machine, input string) error {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, "done") {
		return m.Draft().FinishDays()
	}

	day, err := strconv.Atoi(input)
	if err != nil {
		return errors.New("send a day of the month (1-31) or \"done\"")
	}
	return m.Draft().AddMonthDay(day)
}

func handleTimeOfDay(m *Machine, input string) error {
	if strings.EqualFold(strings.TrimSpace(input), "done") {
		return m.Draft().FinishTimes()
	}

	t, err := ParseTimeOfDay(input)
	if err != nil {
		return err
	}
	m.Draft().AddTime(t)
	return nil
}
