package recurrence

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"TaskBadger/bot/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func driveSchedule(t *testing.T, inputs []string) (*Machine, workflow.Response) {
	t.Helper()

	orch := NewOrchestrator(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m := NewMachine()
	m.Advance()

	resp := orch.Start(m)
	for _, input := range inputs {
		var err error
		resp, err = orch.Continue(context.Background(), m, input)
		require.NoError(t, err, "input %q", input)
		require.NotEqual(t, workflow.KindError, resp.Kind, "input %q rejected: %s", input, resp.Text)
	}
	return m, resp
}

func TestScheduleWorkflowDaily(t *testing.T) {
	m, resp := driveSchedule(t, []string{"Every day", "9:00 AM", "done"})

	assert.Equal(t, workflow.KindCompleted, resp.Kind)

	expr, err := m.Draft().Expression()
	require.NoError(t, err)
	assert.Equal(t, "0 9 * * *", expr)
}

func TestScheduleWorkflowWeekdays(t *testing.T) {
	m, resp := driveSchedule(t, []string{
		"Specific days", "week", "Monday", "Friday", "done",
		"7:30 AM", "done",
	})

	assert.Equal(t, workflow.KindCompleted, resp.Kind)

	expr, err := m.Draft().Expression()
	require.NoError(t, err)
	assert.Equal(t, "30 7 * * 1,5", expr)
}

func TestScheduleWorkflowMonthDays(t *testing.T) {
	m, resp := driveSchedule(t, []string{
		"Specific days", "month", "1", "15", "done",
		"21:00", "done",
	})

	assert.Equal(t, workflow.KindCompleted, resp.Kind)

	expr, err := m.Draft().Expression()
	require.NoError(t, err)
	assert.Equal(t, "0 21 1,15 * *", expr)
}

func TestScheduleWorkflowRejectsFinishingWithoutDays(t *testing.T) {
	orch := NewOrchestrator(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m := NewMachine()
	m.Advance()

	for _, input := range []string{"Specific days", "week"} {
		_, err := orch.Continue(context.Background(), m, input)
		require.NoError(t, err)
	}

	resp, err := orch.Continue(context.Background(), m, "done")
	require.NoError(t, err)
	assert.Equal(t, workflow.KindError, resp.Kind)
	assert.Equal(t, StateDaysOfWeek, m.Current())
}
