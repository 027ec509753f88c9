package tasks

import (
	"TaskBadger/entity"
	"context"
)

type Core interface {
	GetTask(ctx context.Context, id string) (*entity.Task, error)
	ListTasks(ctx context.Context, conversationID, userID string) ([]entity.Task, error)
	DeleteTask(ctx context.Context, id string) error
}
