package task

import (
	"testing"
	"time"

	"TaskBadger/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftFromTaskIsIndependentCopy(t *testing.T) {
	original := existingTask()
	original.Recurrence = &entity.Recurrence{Expression: "0 9 * * *"}
	original.Escalation = &entity.Escalation{Frequency: time.Hour, Messages: []string{"Oi!"}}

	d := DraftFromTask(original)
	d.Name = "Feed cat"
	d.Recurrence.Expression = "30 21 * * *"
	d.Escalation.Messages[0] = "changed"
	d.CompletedMessages[0] = "changed"

	// Editing the draft never leaks into the loaded task.
	assert.Equal(t, "Walk dog", original.Name)
	assert.Equal(t, "0 9 * * *", original.Recurrence.Expression)
	assert.Equal(t, "Oi!", original.Escalation.Messages[0])
	assert.Equal(t, "Good job!", original.CompletedMessages[0])
}

func TestEnableRecurrenceClearsDueDates(t *testing.T) {
	d := DraftFromTask(existingTask())
	require.NotEmpty(t, d.DueDates)

	d.EnableRecurrence()
	assert.Empty(t, d.DueDates)
	assert.True(t, d.HasRecurrence())

	d.DisableRecurrence()
	assert.False(t, d.HasRecurrence())
}

func TestEnableRecurrenceKeepsExistingSubDraft(t *testing.T) {
	d := DraftFromTask(existingTask())
	d.EnableRecurrence()
	d.Recurrence.Expression = "0 9 * * *"

	// Re-enabling is idempotent; the collected schedule survives.
	d.EnableRecurrence()
	assert.Equal(t, "0 9 * * *", d.Recurrence.Expression)
}

func TestDraftTaskKeepsIdentity(t *testing.T) {
	original := existingTask()
	d := DraftFromTask(original)
	d.Description = "Around the park"

	out := d.Task()
	assert.Equal(t, original.ID, out.ID)
	assert.Equal(t, original.CreatedAt, out.CreatedAt)
	assert.Equal(t, "Around the park", out.Description)
	assert.False(t, out.UpdatedAt.IsZero())
	assert.NoError(t, out.Validate())
}

func TestNewDraftTaskSetsCreatedAt(t *testing.T) {
	d := NewDraft("chat-1", "user-1")
	d.Name = "Walk dog"
	d.Timezone = "UTC"

	out := d.Task()
	assert.False(t, out.CreatedAt.IsZero())
	assert.True(t, out.IsActive)
	assert.NoError(t, out.Validate())
}
