package workflow

import "errors"

// Kind classifies a workflow response toward the transport.
type Kind int

const (
	// KindError means the last input was rejected; the session stays in
	// the same state and Text carries a corrective prompt.
	KindError Kind = iota

	// KindNeedMoreInput means the workflow advanced and is waiting for
	// the user's next message.
	KindNeedMoreInput

	// KindCompleted means the workflow reached its end state and the
	// completion callback has run.
	KindCompleted
)

// Response is what a workflow turn hands back to the transport.
type Response struct {
	Kind    Kind
	Text    string
	Options []Option
}

// Errors surfaced at the feature-manager boundary. They are terminal for
// the single call only; the session itself is never torn down by them.
var (
	ErrAlreadyInWorkflow = errors.New("a workflow is already active for this conversation")
	ErrNoActiveWorkflow  = errors.New("no active workflow for this conversation")
)
