package entity

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Recurrence is a repeating schedule attached to a task instead of fixed
// due dates. Expression is a standard 5-field cron expression.
type Recurrence struct {
	Expression          string        `json:"expression" bson:"expression" validate:"required"`
	Expiry              time.Time     `json:"expiry,omitempty" bson:"expiry,omitempty"`
	CompletionThreshold time.Duration `json:"completion_threshold,omitempty" bson:"completion_threshold,omitempty"`
}

// Escalation is the "badger" configuration: once a task is overdue, a
// reminder fires every Frequency until the task is completed or skipped.
type Escalation struct {
	Frequency time.Duration `json:"frequency" bson:"frequency" validate:"required,gt=0"`
	Messages  []string      `json:"messages" bson:"messages"`
}

// Task is the finished task definition produced by the authoring workflow.
// This is the only artifact handed to persistence and scheduling collaborators.
type Task struct {
	ID                string      `json:"id" bson:"id" validate:"required,uuid4"`
	ConversationID    string      `json:"conversation_id" bson:"conversation_id" validate:"required"`
	UserID            string      `json:"user_id" bson:"user_id" validate:"required"`
	Name              string      `json:"name" bson:"name" validate:"required,min=2,max=200"`
	Description       string      `json:"description" bson:"description" validate:"omitempty"`
	Timezone          string      `json:"timezone" bson:"timezone" validate:"required"`
	CompletedMessages []string    `json:"completed_messages" bson:"completed_messages"`
	SkippedMessages   []string    `json:"skipped_messages" bson:"skipped_messages"`
	IsActive          bool        `json:"is_active" bson:"is_active"`
	DueDates          []time.Time `json:"due_dates,omitempty" bson:"due_dates,omitempty"`
	Recurrence        *Recurrence `json:"recurrence,omitempty" bson:"recurrence,omitempty"`
	Escalation        *Escalation `json:"escalation,omitempty" bson:"escalation,omitempty"`
	CreatedAt         time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at" bson:"updated_at"`
}

var validate = validator.New()

func NewTask(conversationID, userID string) *Task {
	return &Task{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		UserID:         userID,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
}

// Validate checks the task against its field constraints.
func (t *Task) Validate() error {
	return validate.Struct(t)
}

// IsRecurring reports whether the task repeats on a schedule.
func (t *Task) IsRecurring() bool {
	return t.Recurrence != nil
}
