package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTask() *Task {
	t := NewTask("chat-1", "user-1")
	t.Name = "Walk dog"
	t.Timezone = "America/Denver"
	return t
}

func TestNewTaskDefaults(t *testing.T) {
	task := NewTask("chat-1", "user-1")

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "chat-1", task.ConversationID)
	assert.Equal(t, "user-1", task.UserID)
	assert.True(t, task.IsActive)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestValidateAcceptsCompleteTask(t *testing.T) {
	assert.NoError(t, validTask().Validate())
}

func TestValidateRejectsShortName(t *testing.T) {
	task := validTask()
	task.Name = "x"
	assert.Error(t, task.Validate())
}

func TestValidateRejectsMissingTimezone(t *testing.T) {
	task := validTask()
	task.Timezone = ""
	assert.Error(t, task.Validate())
}

func TestValidateRejectsBadID(t *testing.T) {
	task := validTask()
	task.ID = "not-a-uuid"
	assert.Error(t, task.Validate())
}

func TestValidateRecurrenceNeedsExpression(t *testing.T) {
	task := validTask()
	task.Recurrence = &Recurrence{}
	assert.Error(t, task.Validate())

	task.Recurrence.Expression = "0 9 * * *"
	assert.NoError(t, task.Validate())
}

func TestValidateEscalationNeedsPositiveFrequency(t *testing.T) {
	task := validTask()
	task.Escalation = &Escalation{}
	assert.Error(t, task.Validate())

	task.Escalation.Frequency = 30 * time.Minute
	assert.NoError(t, task.Validate())
}

func TestIsRecurring(t *testing.T) {
	task := validTask()
	assert.False(t, task.IsRecurring())

	task.Recurrence = &Recurrence{Expression: "0 9 * * *"}
	require.True(t, task.IsRecurring())
}
