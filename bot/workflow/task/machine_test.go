package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func advanceTo(t *testing.T, m *Machine, want State) {
	t.Helper()
	m.Advance()
	require.Equal(t, want, m.Current())
}

func TestCreateWalksEveryFieldOnce(t *testing.T) {
	m := NewMachine(KindCreate, NewDraft("chat-1", "user-1"))

	advanceTo(t, m, StateName)
	advanceTo(t, m, StateDescription)
	advanceTo(t, m, StateTimezone)
	advanceTo(t, m, StateCompletedMessage)
	advanceTo(t, m, StateSkippedMessage)
	advanceTo(t, m, StateRecurrenceToggle)

	// Recurrence declined, escalation declined: one-shot task with due dates.
	advanceTo(t, m, StateEscalationToggle)
	advanceTo(t, m, StateDueDates)
	advanceTo(t, m, StateEnd)
}

func TestCreateWithRecurrenceSkipsDueDates(t *testing.T) {
	d := NewDraft("chat-1", "user-1")
	m := NewMachine(KindCreate, d)
	m.state = StateRecurrenceToggle

	d.EnableRecurrence()
	advanceTo(t, m, StateRecurrenceExpression)
	advanceTo(t, m, StateRecurrenceExpiry)
	advanceTo(t, m, StateRecurrenceThreshold)
	advanceTo(t, m, StateEscalationToggle)

	// A recurring task never collects fixed due dates.
	advanceTo(t, m, StateEnd)
}

func TestCreateWithEscalation(t *testing.T) {
	d := NewDraft("chat-1", "user-1")
	m := NewMachine(KindCreate, d)
	m.state = StateEscalationToggle

	d.EnableEscalation()
	advanceTo(t, m, StateEscalationFrequency)
	advanceTo(t, m, StateEscalationMessages)
	advanceTo(t, m, StateDueDates)
	advanceTo(t, m, StateEnd)
}

func TestChangeStartsAtMenuHub(t *testing.T) {
	m := NewMachine(KindChange, NewDraft("chat-1", "user-1"))

	advanceTo(t, m, StateUserDirection)

	// The hub loops until a selection arms an override.
	assert.Equal(t, StateUserDirection, m.Next())
}

func TestOverrideIsConsumedOnce(t *testing.T) {
	m := NewMachine(KindChange, NewDraft("chat-1", "user-1"))
	m.Advance()

	m.SetOverride(StateName)
	assert.Equal(t, StateName, m.Next())

	advanceTo(t, m, StateName)

	// Override consumed: the field returns to the hub instead of
	// continuing down the linear create path.
	assert.Equal(t, StateUserDirection, m.Next())
	advanceTo(t, m, StateUserDirection)

	// Back at the hub the redirect flag is gone.
	m.SetOverride(StateDescription)
	advanceTo(t, m, StateDescription)
	advanceTo(t, m, StateUserDirection)
}

func TestOverrideToEndCompletes(t *testing.T) {
	m := NewMachine(KindChange, NewDraft("chat-1", "user-1"))
	m.Advance()

	m.SetOverride(StateEnd)
	advanceTo(t, m, StateEnd)
	assert.False(t, m.viaOverride)
}

func TestChangeRecurrenceBranchReturnsToHub(t *testing.T) {
	d := NewDraft("chat-1", "user-1")
	m := NewMachine(KindChange, d)
	m.Advance()

	m.SetOverride(StateRecurrenceToggle)
	advanceTo(t, m, StateRecurrenceToggle)

	// Turning the schedule on pulls the whole recurrence branch even in
	// change mode; the branch end returns to the hub.
	d.EnableRecurrence()
	advanceTo(t, m, StateRecurrenceExpression)
	advanceTo(t, m, StateRecurrenceExpiry)
	advanceTo(t, m, StateRecurrenceThreshold)
	advanceTo(t, m, StateUserDirection)
}

func TestChangeEscalationBranchReturnsToHub(t *testing.T) {
	d := NewDraft("chat-1", "user-1")
	m := NewMachine(KindChange, d)
	m.Advance()

	m.SetOverride(StateEscalationToggle)
	advanceTo(t, m, StateEscalationToggle)

	d.EnableEscalation()
	advanceTo(t, m, StateEscalationFrequency)
	advanceTo(t, m, StateEscalationMessages)
	advanceTo(t, m, StateUserDirection)
}

func TestChangeToggleDeclinedReturnsToHub(t *testing.T) {
	d := NewDraft("chat-1", "user-1")
	m := NewMachine(KindChange, d)
	m.Advance()

	m.SetOverride(StateRecurrenceToggle)
	advanceTo(t, m, StateRecurrenceToggle)

	// "no" leaves the toggle off; a menu-reached toggle goes straight
	// back to the hub instead of on to escalation.
	d.DisableRecurrence()
	advanceTo(t, m, StateUserDirection)
}

func TestNextIsPure(t *testing.T) {
	m := NewMachine(KindCreate, NewDraft("chat-1", "user-1"))

	assert.Equal(t, StateName, m.Next())
	assert.Equal(t, StateName, m.Next())
	assert.Equal(t, StateStart, m.Current())

	m.SetOverride(StateTimezone)
	assert.Equal(t, StateTimezone, m.Next())
	assert.Equal(t, StateTimezone, m.Next())
	assert.Equal(t, StateStart, m.Current())
}
