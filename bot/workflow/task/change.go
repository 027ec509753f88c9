package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"TaskBadger/bot/workflow"
)

// TagChange names the change-task workflow in the registry.
const TagChange = "ChangeTask"

// ChangeManager runs the "change task" flavor: an existing task is loaded
// into the draft and edited one field at a time from the menu hub.
type ChangeManager struct {
	*manager
	finder TaskFinder
}

func NewChangeManager(registry *workflow.Registry, tasks TaskWriter, finder TaskFinder, notifier Notifier, log *slog.Logger) (*ChangeManager, error) {
	tag, err := registry.Register(TagChange)
	if err != nil {
		return nil, err
	}
	log = log.With(slog.String("workflow", TagChange))

	onComplete := func(ctx context.Context, d *Draft) error {
		t := d.Task()
		if err := t.Validate(); err != nil {
			return fmt.Errorf("validating task: %w", err)
		}
		if err := tasks.SaveTask(ctx, t); err != nil {
			return fmt.Errorf("saving task: %w", err)
		}
		if notifier != nil {
			notifier.TaskUpdated(t)
		}
		log.Info("task updated",
			slog.String("task_id", t.ID),
			slog.String("user_id", t.UserID),
			slog.String("name", t.Name),
		)
		return nil
	}

	return &ChangeManager{
		manager: newManager(tag, NewOrchestrator(onComplete, log), log),
		finder:  finder,
	}, nil
}

// Start opens a change-task session for the key, editing the task named
// by seed.
func (c *ChangeManager) Start(ctx context.Context, key workflow.Key, seed string) (workflow.Response, error) {
	name := strings.TrimSpace(seed)
	if name == "" {
		return workflow.Response{
			Kind: workflow.KindError,
			Text: "Which task? Send the command with the task's name.",
		}, nil
	}

	existing, err := c.finder.GetTaskByName(ctx, key.ConversationID, key.UserID, name)
	if err != nil {
		return workflow.Response{}, fmt.Errorf("looking up task %q: %w", name, err)
	}
	if existing == nil {
		return workflow.Response{
			Kind: workflow.KindError,
			Text: fmt.Sprintf("I couldn't find a task named %q.", name),
		}, nil
	}

	return c.begin(key, NewMachine(KindChange, DraftFromTask(existing)))
}
