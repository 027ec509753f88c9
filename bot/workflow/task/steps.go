package task

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"TaskBadger/bot/workflow"
	"TaskBadger/bot/workflow/recurrence"
)

// Menu hub option keys, one per editable field.
const (
	optName        = "name"
	optDescription = "description"
	optTimezone    = "timezone"
	optCompleted   = "completed"
	optSkipped     = "skipped"
	optSchedule    = "schedule"
	optBadger      = "badger"
	optDueDates    = "duedates"
	optDone        = "done"
)

var hubOptions = []workflow.Option{
	{Key: optName, Label: "Name"},
	{Key: optDescription, Label: "Description"},
	{Key: optTimezone, Label: "Timezone"},
	{Key: optCompleted, Label: "Completed messages"},
	{Key: optSkipped, Label: "Skipped messages"},
	{Key: optSchedule, Label: "Schedule"},
	{Key: optBadger, Label: "Badger reminders"},
	{Key: optDueDates, Label: "Due dates"},
	{Key: optDone, Label: "I'm done"},
}

var hubTargets = map[string]State{
	optName:        StateName,
	optDescription: StateDescription,
	optTimezone:    StateTimezone,
	optCompleted:   StateCompletedMessage,
	optSkipped:     StateSkippedMessage,
	optSchedule:    StateRecurrenceToggle,
	optBadger:      StateEscalationToggle,
	optDueDates:    StateDueDates,
	optDone:        StateEnd,
}

var yesNoOptions = []workflow.Option{
	{Key: "yes", Label: "Yes"},
	{Key: "no", Label: "No"},
}

var dueDateLayouts = []string{"2006-01-02 15:04", "2006-01-02"}

type step = workflow.Step[State, *Draft, *Machine]

// NewOrchestrator builds the task-authoring workflow shared by the create
// and change flavors; only the completion callback differs per manager.
func NewOrchestrator(onComplete workflow.CompletionFunc[*Draft], log *slog.Logger) *workflow.Orchestrator[State, *Draft, *Machine] {
	o := workflow.NewOrchestrator[State, *Draft, *Machine](StateEnd, onComplete, log)

	o.Configure(StateName, step{
		Prompt: "What should this task be called?",
		Handle: handleName,
	})
	o.Configure(StateDescription, step{
		Prompt: "Describe the task in a sentence or two.",
		Handle: handleDescription,
	})
	o.Configure(StateTimezone, step{
		Prompt: "Which timezone is this task in? For example America/Denver.",
		Handle: handleTimezone,
	})
	o.Configure(StateCompletedMessage, step{
		Prompt: "What should I say when you complete it? One message per line.",
		Handle: handleCompletedMessage,
	})
	o.Configure(StateSkippedMessage, step{
		Prompt: "And what should I say when you skip it? One message per line.",
		Handle: handleSkippedMessage,
	})
	o.Configure(StateRecurrenceToggle, step{
		Prompt:  "Should this task repeat on a schedule?",
		Options: yesNoOptions,
		Handle:  handleRecurrenceToggle,
	})
	o.Configure(StateRecurrenceExpression, step{
		Prompt: "Let's build the schedule.",
		Handle: handleRecurrenceExpression,
	})
	o.Configure(StateRecurrenceExpiry, step{
		Prompt: "When should the schedule expire? YYYY-MM-DD, or \"never\".",
		Handle: handleRecurrenceExpiry,
	})
	o.Configure(StateRecurrenceThreshold, step{
		Prompt: "How long after a scheduled time does completing it still count? For example 2h or 30m.",
		Handle: handleRecurrenceThreshold,
	})
	o.Configure(StateEscalationToggle, step{
		Prompt:  "Should I badger you with reminders once it's overdue?",
		Options: yesNoOptions,
		Handle:  handleEscalationToggle,
	})
	o.Configure(StateEscalationFrequency, step{
		Prompt: "How often should I badger you? For example 30m or 2h.",
		Handle: handleEscalationFrequency,
	})
	o.Configure(StateEscalationMessages, step{
		Prompt: "What should the badger messages say? One per line.",
		Handle: handleEscalationMessages,
	})
	o.Configure(StateDueDates, step{
		Prompt: "When is this task due? YYYY-MM-DD HH:MM; comma-separate several dates.",
		Handle: handleDueDates,
	})
	o.Configure(StateUserDirection, step{
		Prompt:  "What would you like to edit?",
		Options: hubOptions,
		Handle:  handleUserDirection,
	})
	o.Configure(StateEnd, step{
		Prompt: "✅ Task saved.",
	})

	return o
}

func handleName(m *Machine, input string) error {
	name := strings.TrimSpace(input)
	if len(name) < 2 {
		return errors.New("the name needs at least 2 characters — what should it be called?")
	}
	m.Draft().Name = name
	return nil
}

func handleDescription(m *Machine, input string) error {
	desc := strings.TrimSpace(input)
	if desc == "" {
		return errors.New("please send a short description")
	}
	m.Draft().Description = desc
	return nil
}

func handleTimezone(m *Machine, input string) error {
	tz := strings.TrimSpace(input)
	if tz == "" {
		return errors.New("please send a timezone like America/Denver")
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("I don't know the timezone %q — try one like America/Denver", tz)
	}
	m.Draft().Timezone = tz
	return nil
}

func handleCompletedMessage(m *Machine, input string) error {
	msgs := splitLines(input)
	if len(msgs) == 0 {
		return errors.New("please send at least one message")
	}
	m.Draft().CompletedMessages = msgs
	return nil
}

func handleSkippedMessage(m *Machine, input string) error {
	msgs := splitLines(input)
	if len(msgs) == 0 {
		return errors.New("please send at least one message")
	}
	m.Draft().SkippedMessages = msgs
	return nil
}

func handleRecurrenceToggle(m *Machine, input string) error {
	opt, err := workflow.ResolveInput(input, yesNoOptions)
	if err != nil {
		return err
	}
	if opt.Key == "yes" {
		m.Draft().EnableRecurrence()
	} else {
		m.Draft().DisableRecurrence()
	}
	return nil
}

// handleRecurrenceExpression receives the expression generated by the
// nested schedule sub-workflow, never raw user text; the manager feeds it
// in when the sub-workflow completes.
func handleRecurrenceExpression(m *Machine, input string) error {
	expr := strings.TrimSpace(input)
	if expr == "" {
		return errors.New("the schedule isn't finished yet")
	}
	if err := recurrence.Validate(expr); err != nil {
		return fmt.Errorf("invalid schedule expression: %w", err)
	}
	m.Draft().Recurrence.Expression = expr
	return nil
}

func handleRecurrenceExpiry(m *Machine, input string) error {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, "never") || strings.EqualFold(input, "none") {
		m.Draft().Recurrence.Expiry = time.Time{}
		return nil
	}

	expiry, err := parseInTimezone(input, []string{"2006-01-02"}, m.Draft().Timezone)
	if err != nil {
		return errors.New("send an expiry date as YYYY-MM-DD, or \"never\"")
	}
	m.Draft().Recurrence.Expiry = expiry
	return nil
}

func handleRecurrenceThreshold(m *Machine, input string) error {
	d, err := time.ParseDuration(strings.TrimSpace(input))
	if err != nil || d <= 0 {
		return errors.New("send a duration like 2h or 30m")
	}
	m.Draft().Recurrence.CompletionThreshold = d
	return nil
}

func handleEscalationToggle(m *Machine, input string) error {
	opt, err := workflow.ResolveInput(input, yesNoOptions)
	if err != nil {
		return err
	}
	if opt.Key == "yes" {
		m.Draft().EnableEscalation()
	} else {
		m.Draft().DisableEscalation()
	}
	return nil
}

func handleEscalationFrequency(m *Machine, input string) error {
	d, err := time.ParseDuration(strings.TrimSpace(input))
	if err != nil || d <= 0 {
		return errors.New("send a duration like 30m or 2h")
	}
	m.Draft().Escalation.Frequency = d
	return nil
}

func handleEscalationMessages(m *Machine, input string) error {
	msgs := splitLines(input)
	if len(msgs) == 0 {
		return errors.New("please send at least one message")
	}
	m.Draft().Escalation.Messages = msgs
	return nil
}

func handleDueDates(m *Machine, input string) error {
	parts := strings.Split(input, ",")
	dates := make([]time.Time, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		date, err := parseInTimezone(part, dueDateLayouts, m.Draft().Timezone)
		if err != nil {
			return fmt.Errorf("couldn't read %q — use YYYY-MM-DD HH:MM", part)
		}
		dates = append(dates, date)
	}
	if len(dates) == 0 {
		return errors.New("send at least one due date as YYYY-MM-DD HH:MM")
	}
	m.Draft().DueDates = dates
	return nil
}

// handleUserDirection resolves a hub menu selection and arms the override
// that redirects the next transition to the chosen field.
func handleUserDirection(m *Machine, input string) error {
	opt, err := workflow.ResolveInput(input, hubOptions)
	if err != nil {
		return err
	}

	if opt.Key == optDueDates && m.Draft().HasRecurrence() {
		return errors.New("this task repeats on a schedule, so due dates don't apply — edit or disable the schedule first")
	}

	m.SetOverride(hubTargets[opt.Key])
	return nil
}

func splitLines(input string) []string {
	var msgs []string
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			msgs = append(msgs, line)
		}
	}
	return msgs
}

func parseInTimezone(value string, layouts []string, timezone string) (time.Time, error) {
	loc := time.UTC
	if timezone != "" {
		if l, err := time.LoadLocation(timezone); err == nil {
			loc = l
		}
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
