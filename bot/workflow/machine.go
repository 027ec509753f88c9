package workflow

// Machine is a resumable state machine over an enumerated state type.
// Next is a pure function of the current state and the machine's data;
// Advance applies it. Both are total: invalid input is rejected by the
// per-state handlers before the graph is ever consulted.
type Machine[S comparable] interface {
	// Current returns the state the machine is waiting in.
	Current() S

	// Next computes the state Advance would move to, without moving.
	Next() S

	// Advance moves the machine to Next's result, consuming any pending
	// state override.
	Advance()
}

// DraftMachine is a Machine that additionally carries the mutable draft
// being built across turns.
type DraftMachine[S comparable, D any] interface {
	Machine[S]

	// Draft returns the draft owned by this machine instance.
	Draft() D
}
