package workflow

import (
	"context"
	"fmt"
	"log/slog"
)

// Handler validates one raw user message for a state and applies it to the
// machine's draft. A non-nil error rejects the input: the session stays in
// the same state and the error text is shown as the corrective prompt.
// Handlers may also set a pending state override on the machine.
type Handler[S comparable, D any, M DraftMachine[S, D]] func(m M, input string) error

// Step is the per-state configuration of a workflow: a prompt (optionally
// a menu) and an optional input handler. A state without a handler accepts
// any input as-is.
type Step[S comparable, D any, M DraftMachine[S, D]] struct {
	Prompt  string
	Options []Option
	Handle  Handler[S, D, M]
}

// CompletionFunc receives the finished draft exactly once, when the
// machine reaches its end state.
type CompletionFunc[D any] func(ctx context.Context, draft D) error

// Orchestrator binds a state machine to per-state prompts and handlers and
// drives it one turn at a time. Configuration happens once per concrete
// workflow; the orchestrator itself holds no per-session state.
type Orchestrator[S comparable, D any, M DraftMachine[S, D]] struct {
	steps      map[S]Step[S, D, M]
	end        S
	onComplete CompletionFunc[D]
	log        *slog.Logger
}

func NewOrchestrator[S comparable, D any, M DraftMachine[S, D]](end S, onComplete CompletionFunc[D], log *slog.Logger) *Orchestrator[S, D, M] {
	return &Orchestrator[S, D, M]{
		steps:      make(map[S]Step[S, D, M]),
		end:        end,
		onComplete: onComplete,
		log:        log,
	}
}

// Configure sets the step for a state, replacing any previous one.
func (o *Orchestrator[S, D, M]) Configure(state S, step Step[S, D, M]) {
	o.steps[state] = step
}

// Start returns the prompt for the machine's current state without
// consuming any input.
func (o *Orchestrator[S, D, M]) Start(m M) Response {
	step := o.steps[m.Current()]
	return Response{Kind: KindNeedMoreInput, Text: step.Prompt, Options: step.Options}
}

// Continue applies one raw user message to the machine.
//
// The turn runs in two phases. Phase one is the handler: it validates the
// input and mutates the draft, and once it accepts, that mutation is
// committed. Phase two advances the state and, on reaching the end state,
// invokes the completion callback first — if the callback fails, the state
// is not advanced and the committed draft stays as it was, so a retry can
// complete the same turn.
func (o *Orchestrator[S, D, M]) Continue(ctx context.Context, m M, input string) (Response, error) {
	state := m.Current()
	step := o.steps[state]

	if step.Handle != nil {
		if err := step.Handle(m, input); err != nil {
			o.log.Debug("workflow input rejected",
				slog.Any("state", state),
				slog.String("reason", err.Error()),
			)
			return Response{Kind: KindError, Text: err.Error(), Options: step.Options}, nil
		}
	}

	next := m.Next()
	if next == o.end {
		if o.onComplete != nil {
			if err := o.onComplete(ctx, m.Draft()); err != nil {
				return Response{}, fmt.Errorf("completing workflow: %w", err)
			}
		}
		m.Advance()

		o.log.Info("workflow completed", slog.Any("state", state))
		text := o.steps[o.end].Prompt
		if text == "" {
			text = "Done."
		}
		return Response{Kind: KindCompleted, Text: text}, nil
	}

	m.Advance()
	nextStep := o.steps[m.Current()]
	return Response{Kind: KindNeedMoreInput, Text: nextStep.Prompt, Options: nextStep.Options}, nil
}
