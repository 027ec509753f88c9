package recurrence

// State is a node in the schedule-construction graph.
type State int

const (
	StateStart State = iota
	StateDailyOrSpecific
	StateWeekOrMonthDays
	StateDaysOfWeek
	StateDaysOfMonth
	StateTimesOfDay
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StateDailyOrSpecific:
		return "WaitingForDailyOrSpecific"
	case StateWeekOrMonthDays:
		return "WaitingForWeekOrMonthDays"
	case StateDaysOfWeek:
		return "WaitingForDaysOfWeek"
	case StateDaysOfMonth:
		return "WaitingForDaysOfMonth"
	case StateTimesOfDay:
		return "WaitingForTimesOfDay"
	case StateComplete:
		return "Complete"
	}
	return "Unknown"
}

// Machine walks the schedule-construction graph. Selection states loop on
// themselves until the draft's done flags flip, so multi-select turns
// re-prompt in place.
type Machine struct {
	state State
	draft *Draft
}

func NewMachine() *Machine {
	return &Machine{state: StateStart, draft: NewDraft()}
}

func (m *Machine) Current() State { return m.state }

func (m *Machine) Draft() *Draft { return m.draft }

// Next computes the following state purely from the current state and the
// draft's flags.
func (m *Machine) Next() State {
	d := m.draft
	switch m.state {
	case StateStart:
		return StateDailyOrSpecific
	case StateDailyOrSpecific:
		switch {
		case d.mode == ModeDaily:
			return StateTimesOfDay
		case d.specific:
			return StateWeekOrMonthDays
		default:
			return StateDailyOrSpecific
		}
	case StateWeekOrMonthDays:
		switch d.mode {
		case ModeDaysOfWeek:
			return StateDaysOfWeek
		case ModeDaysOfMonth:
			return StateDaysOfMonth
		default:
			return StateWeekOrMonthDays
		}
	case StateDaysOfWeek, StateDaysOfMonth:
		if d.daysDone {
			return StateTimesOfDay
		}
		return m.state
	case StateTimesOfDay:
		if d.timesDone {
			return StateComplete
		}
		return StateTimesOfDay
	}
	return StateComplete
}

func (m *Machine) Advance() {
	m.state = m.Next()
}
