package task

// State is a node in the task-authoring graph.
type State int

const (
	StateStart State = iota
	StateName
	StateDescription
	StateTimezone
	StateCompletedMessage
	StateSkippedMessage
	StateRecurrenceToggle
	StateRecurrenceExpression
	StateRecurrenceExpiry
	StateRecurrenceThreshold
	StateEscalationToggle
	StateEscalationFrequency
	StateEscalationMessages
	StateDueDates
	StateUserDirection
	StateEnd
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StateName:
		return "WaitingForName"
	case StateDescription:
		return "WaitingForDescription"
	case StateTimezone:
		return "WaitingForTimezone"
	case StateCompletedMessage:
		return "WaitingForCompletedMessage"
	case StateSkippedMessage:
		return "WaitingForSkippedMessage"
	case StateRecurrenceToggle:
		return "WaitingForRecurrenceToggle"
	case StateRecurrenceExpression:
		return "WaitingForRecurrenceExpression"
	case StateRecurrenceExpiry:
		return "WaitingForRecurrenceExpiry"
	case StateRecurrenceThreshold:
		return "WaitingForRecurrenceCompletionThreshold"
	case StateEscalationToggle:
		return "WaitingForEscalationToggle"
	case StateEscalationFrequency:
		return "WaitingForEscalationFrequency"
	case StateEscalationMessages:
		return "WaitingForEscalationMessages"
	case StateDueDates:
		return "WaitingForDueDates"
	case StateUserDirection:
		return "WaitingForUserDirection"
	case StateEnd:
		return "End"
	}
	return "Unknown"
}

// Kind distinguishes the two flavors sharing the graph: create walks every
// field once, change hops between fields from the menu hub.
type Kind int

const (
	KindCreate Kind = iota
	KindChange
)

// Machine walks the task-authoring graph. The next state is a pure
// function of the current state and the draft's toggle flags; input text
// never reaches the graph, handlers apply it to the draft first.
//
// A pending state override, set by the menu hub's handler, replaces the
// default transition target exactly once and then clears. A field reached
// that way returns to the hub after one edit instead of continuing along
// the linear path.
type Machine struct {
	kind        Kind
	state       State
	draft       *Draft
	override    *State
	viaOverride bool
}

func NewMachine(kind Kind, draft *Draft) *Machine {
	return &Machine{kind: kind, state: StateStart, draft: draft}
}

func (m *Machine) Kind() Kind { return m.kind }

func (m *Machine) Current() State { return m.state }

func (m *Machine) Draft() *Draft { return m.draft }

// SetOverride arms a one-shot redirect consumed by the next Advance.
func (m *Machine) SetOverride(target State) {
	m.override = &target
}

// Next computes the following state without moving.
func (m *Machine) Next() State {
	if m.override != nil {
		return *m.override
	}
	return m.defaultNext()
}

// Advance moves to Next's result. Consuming an override marks the new
// state as menu-reached so its own next transition returns to the hub.
func (m *Machine) Advance() {
	next := m.Next()
	fromOverride := m.override != nil
	m.override = nil
	m.state = next
	m.viaOverride = fromOverride && next != StateUserDirection && next != StateEnd
}

func (m *Machine) defaultNext() State {
	d := m.draft
	switch m.state {
	case StateStart:
		if m.kind == KindChange {
			return StateUserDirection
		}
		return StateName

	case StateName:
		if m.viaOverride {
			return StateUserDirection
		}
		return StateDescription
	case StateDescription:
		if m.viaOverride {
			return StateUserDirection
		}
		return StateTimezone
	case StateTimezone:
		if m.viaOverride {
			return StateUserDirection
		}
		return StateCompletedMessage
	case StateCompletedMessage:
		if m.viaOverride {
			return StateUserDirection
		}
		return StateSkippedMessage
	case StateSkippedMessage:
		if m.viaOverride {
			return StateUserDirection
		}
		return StateRecurrenceToggle

	case StateRecurrenceToggle:
		if d.HasRecurrence() {
			return StateRecurrenceExpression
		}
		if m.viaOverride {
			return StateUserDirection
		}
		return StateEscalationToggle
	case StateRecurrenceExpression:
		return StateRecurrenceExpiry
	case StateRecurrenceExpiry:
		return StateRecurrenceThreshold
	case StateRecurrenceThreshold:
		if m.kind == KindChange {
			return StateUserDirection
		}
		return StateEscalationToggle

	case StateEscalationToggle:
		if d.HasEscalation() {
			return StateEscalationFrequency
		}
		if m.viaOverride {
			return StateUserDirection
		}
		if d.HasRecurrence() {
			return StateEnd
		}
		return StateDueDates
	case StateEscalationFrequency:
		return StateEscalationMessages
	case StateEscalationMessages:
		if m.kind == KindChange {
			return StateUserDirection
		}
		if d.HasRecurrence() {
			return StateEnd
		}
		return StateDueDates

	case StateDueDates:
		if m.viaOverride {
			return StateUserDirection
		}
		return StateEnd

	case StateUserDirection:
		// The menu hub re-prompts until a valid selection arms an override.
		return StateUserDirection
	}
	return StateEnd
}
