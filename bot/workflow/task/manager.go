package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"TaskBadger/bot/workflow"
	"TaskBadger/bot/workflow/recurrence"
	"TaskBadger/entity"
	"TaskBadger/internal/lib/sl"
)

// TaskWriter persists finished tasks. It is the only collaborator the
// engine hands a task to; scheduling and delivery live elsewhere.
type TaskWriter interface {
	SaveTask(ctx context.Context, t *entity.Task) error
}

// TaskFinder resolves an existing task for editing.
type TaskFinder interface {
	GetTaskByName(ctx context.Context, conversationID, userID, name string) (*entity.Task, error)
}

// Notifier is told about task lifecycle events, e.g. to broadcast them to
// dashboard clients. Implementations must not block.
type Notifier interface {
	TaskCreated(t *entity.Task)
	TaskUpdated(t *entity.Task)
}

// session is one live authoring conversation. Its mutex serializes turns
// for the whole session key: draft mutation and state advancement are not
// commutative, so a second message must wait out the first entirely, even
// across the nested sub-workflow and the completion callback.
type session struct {
	mu      sync.Mutex
	machine *Machine
	sub     *recurrence.Machine
}

// manager holds what the create and change flavors share: the session
// store, the configured orchestrators, and the turn loop with nested
// schedule delegation.
type manager struct {
	tag      workflow.Tag
	sessions *workflow.Store[*session]
	orch     *workflow.Orchestrator[State, *Draft, *Machine]
	subOrch  *workflow.Orchestrator[recurrence.State, *recurrence.Draft, *recurrence.Machine]
	log      *slog.Logger
}

func newManager(tag workflow.Tag, orch *workflow.Orchestrator[State, *Draft, *Machine], log *slog.Logger) *manager {
	return &manager{
		tag:      tag,
		sessions: workflow.NewStore[*session](),
		orch:     orch,
		subOrch:  recurrence.NewOrchestrator(log),
		log:      log,
	}
}

// Tag returns the workflow tag this manager was registered under.
func (m *manager) Tag() workflow.Tag { return m.tag }

// Active reports whether a workflow is live for the key.
func (m *manager) Active(key workflow.Key) bool {
	_, ok := m.sessions.TryGet(key)
	return ok
}

// Abandon destroys the key's session and its draft.
func (m *manager) Abandon(key workflow.Key) error {
	if _, ok := m.sessions.TryGet(key); !ok {
		return workflow.ErrNoActiveWorkflow
	}
	m.sessions.Remove(key)
	m.log.Info("workflow abandoned",
		slog.String("workflow", m.tag.String()),
		slog.String("conversation_id", key.ConversationID),
		slog.String("user_id", key.UserID),
	)
	return nil
}

// begin registers a new session and returns the first prompt. A key with
// a live session is rejected, never overwritten.
func (m *manager) begin(key workflow.Key, machine *Machine) (workflow.Response, error) {
	// Move off the Start node to the first prompting state while the
	// machine is still unshared; once TryAdd publishes the session, a
	// concurrent message may lock it and advance the machine.
	machine.Advance()

	sess := &session{machine: machine}
	if !m.sessions.TryAdd(key, sess) {
		return workflow.Response{}, workflow.ErrAlreadyInWorkflow
	}

	m.log.Info("workflow started",
		slog.String("workflow", m.tag.String()),
		slog.String("conversation_id", key.ConversationID),
		slog.String("user_id", key.UserID),
	)

	return m.orch.Start(machine), nil
}

// Continue applies one inbound message to the key's session.
func (m *manager) Continue(ctx context.Context, key workflow.Key, text string) (workflow.Response, error) {
	sess, ok := m.sessions.TryGet(key)
	if !ok {
		return workflow.Response{}, workflow.ErrNoActiveWorkflow
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// A turn that was completing while we waited on the lock has torn the
	// session down; running against its finished machine would invoke the
	// completion callback again.
	if _, live := m.sessions.TryGet(key); !live {
		return workflow.Response{}, workflow.ErrNoActiveWorkflow
	}

	if sess.sub != nil {
		return m.continueSub(ctx, key, sess, text)
	}

	// A failed sub-workflow leaves the machine waiting here with no
	// sub-session; restart schedule construction instead of advancing.
	if sess.machine.Current() == StateRecurrenceExpression {
		return m.beginSub(sess), nil
	}

	resp, err := m.orch.Continue(ctx, sess.machine, text)
	if err != nil {
		return workflow.Response{}, err
	}
	return m.afterTurn(key, sess, resp), nil
}

// afterTurn spawns the schedule sub-workflow when the task graph lands on
// the delegation state, and tears the session down on completion.
func (m *manager) afterTurn(key workflow.Key, sess *session, resp workflow.Response) workflow.Response {
	if resp.Kind == workflow.KindNeedMoreInput && sess.machine.Current() == StateRecurrenceExpression {
		return m.beginSub(sess)
	}
	if resp.Kind == workflow.KindCompleted {
		m.sessions.Remove(key)
	}
	return resp
}

func (m *manager) beginSub(sess *session) workflow.Response {
	sess.sub = recurrence.NewMachine()
	sess.sub.Advance()

	m.log.Debug("schedule sub-workflow started", slog.String("workflow", m.tag.String()))
	return m.subOrch.Start(sess.sub)
}

// continueSub routes the message into the nested schedule sub-workflow.
// When the sub-workflow completes, its generated expression resumes the
// task graph; a failed generation surfaces as invalid input at the
// delegating state and the next message starts the sub-workflow over.
func (m *manager) continueSub(ctx context.Context, key workflow.Key, sess *session, text string) (workflow.Response, error) {
	resp, err := m.subOrch.Continue(ctx, sess.sub, text)
	if err != nil {
		return workflow.Response{}, err
	}
	if resp.Kind != workflow.KindCompleted {
		return resp, nil
	}

	expr, exprErr := sess.sub.Draft().Expression()
	sess.sub = nil
	if exprErr != nil {
		m.log.Warn("schedule construction failed", sl.Err(exprErr))
		return workflow.Response{
			Kind: workflow.KindError,
			Text: "I couldn't build that schedule — let's try it again.",
		}, nil
	}

	resp, err = m.orch.Continue(ctx, sess.machine, expr)
	if err != nil {
		return workflow.Response{}, err
	}

	if resp.Kind != workflow.KindError {
		resp.Text = scheduleSummary(expr, sess.machine.Draft().Timezone) + "\n\n" + resp.Text
	}
	return m.afterTurn(key, sess, resp), nil
}

func scheduleSummary(expr, timezone string) string {
	summary := fmt.Sprintf("Schedule set: %s.", expr)
	if next, err := recurrence.NextRun(expr, timezone, time.Now()); err == nil {
		summary += fmt.Sprintf(" Next run: %s.", next.Format("Mon, 02 Jan 2006 15:04"))
	}
	return summary
}
