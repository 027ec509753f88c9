package task

import (
	"context"
	"fmt"
	"log/slog"

	"TaskBadger/bot/workflow"
)

// TagCreate names the create-task workflow in the registry.
const TagCreate = "CreateTask"

// CreateManager runs the "create task" flavor: a fresh draft walked
// through every field once.
type CreateManager struct {
	*manager
}

func NewCreateManager(registry *workflow.Registry, tasks TaskWriter, notifier Notifier, log *slog.Logger) (*CreateManager, error) {
	tag, err := registry.Register(TagCreate)
	if err != nil {
		return nil, err
	}
	log = log.With(slog.String("workflow", TagCreate))

	onComplete := func(ctx context.Context, d *Draft) error {
		t := d.Task()
		if err := t.Validate(); err != nil {
			return fmt.Errorf("validating task: %w", err)
		}
		if err := tasks.SaveTask(ctx, t); err != nil {
			return fmt.Errorf("saving task: %w", err)
		}
		if notifier != nil {
			notifier.TaskCreated(t)
		}
		log.Info("task created",
			slog.String("task_id", t.ID),
			slog.String("user_id", t.UserID),
			slog.String("name", t.Name),
		)
		return nil
	}

	return &CreateManager{manager: newManager(tag, NewOrchestrator(onComplete, log), log)}, nil
}

// Start opens a create-task session for the key. A non-empty seed is
// applied immediately as the task name, so "/newtask Walk dog" skips the
// name prompt.
func (c *CreateManager) Start(ctx context.Context, key workflow.Key, seed string) (workflow.Response, error) {
	draft := NewDraft(key.ConversationID, key.UserID)
	resp, err := c.begin(key, NewMachine(KindCreate, draft))
	if err != nil {
		return resp, err
	}

	if seed != "" {
		return c.Continue(ctx, key, seed)
	}
	return resp, nil
}
