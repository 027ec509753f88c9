package task

import (
	"time"

	"TaskBadger/entity"
)

// Draft is the mutable builder the authoring workflow fills in across
// turns. The recurrence and escalation sub-drafts are toggled on and off
// through explicit operations; the pointer itself is the toggle, so the
// flag and the sub-draft can never disagree.
type Draft struct {
	ID             string
	ConversationID string
	UserID         string

	Name              string
	Description       string
	Timezone          string
	CompletedMessages []string
	SkippedMessages   []string
	IsActive          bool
	DueDates          []time.Time

	Recurrence *entity.Recurrence
	Escalation *entity.Escalation

	createdAt time.Time
}

// NewDraft starts an empty draft for a fresh task.
func NewDraft(conversationID, userID string) *Draft {
	t := entity.NewTask(conversationID, userID)
	return &Draft{
		ID:             t.ID,
		ConversationID: conversationID,
		UserID:         userID,
		IsActive:       true,
		createdAt:      t.CreatedAt,
	}
}

// DraftFromTask loads an existing task into a draft for editing.
func DraftFromTask(t *entity.Task) *Draft {
	d := &Draft{
		ID:                t.ID,
		ConversationID:    t.ConversationID,
		UserID:            t.UserID,
		Name:              t.Name,
		Description:       t.Description,
		Timezone:          t.Timezone,
		CompletedMessages: append([]string(nil), t.CompletedMessages...),
		SkippedMessages:   append([]string(nil), t.SkippedMessages...),
		IsActive:          t.IsActive,
		DueDates:          append([]time.Time(nil), t.DueDates...),
		createdAt:         t.CreatedAt,
	}
	if t.Recurrence != nil {
		rec := *t.Recurrence
		d.Recurrence = &rec
	}
	if t.Escalation != nil {
		esc := *t.Escalation
		esc.Messages = append([]string(nil), t.Escalation.Messages...)
		d.Escalation = &esc
	}
	return d
}

// EnableRecurrence turns the recurrence sub-draft on. Due dates are
// cleared: a fixed due date is meaningless once a schedule exists.
func (d *Draft) EnableRecurrence() {
	if d.Recurrence == nil {
		d.Recurrence = &entity.Recurrence{}
	}
	d.DueDates = nil
}

// DisableRecurrence turns the recurrence sub-draft off, discarding any
// collected schedule.
func (d *Draft) DisableRecurrence() {
	d.Recurrence = nil
}

// HasRecurrence reports whether the recurrence toggle is on. The state
// machine branches on this, so it must always agree with the sub-draft.
func (d *Draft) HasRecurrence() bool {
	return d.Recurrence != nil
}

// EnableEscalation turns the escalation ("badger") sub-draft on.
func (d *Draft) EnableEscalation() {
	if d.Escalation == nil {
		d.Escalation = &entity.Escalation{}
	}
}

// DisableEscalation turns the escalation sub-draft off.
func (d *Draft) DisableEscalation() {
	d.Escalation = nil
}

// HasEscalation reports whether the escalation toggle is on.
func (d *Draft) HasEscalation() bool {
	return d.Escalation != nil
}

// Task produces the finished task in its stable outbound shape.
func (d *Draft) Task() *entity.Task {
	t := &entity.Task{
		ID:                d.ID,
		ConversationID:    d.ConversationID,
		UserID:            d.UserID,
		Name:              d.Name,
		Description:       d.Description,
		Timezone:          d.Timezone,
		CompletedMessages: append([]string(nil), d.CompletedMessages...),
		SkippedMessages:   append([]string(nil), d.SkippedMessages...),
		IsActive:          d.IsActive,
		DueDates:          append([]time.Time(nil), d.DueDates...),
		CreatedAt:         d.createdAt,
		UpdatedAt:         time.Now(),
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = t.UpdatedAt
	}
	if d.Recurrence != nil {
		rec := *d.Recurrence
		t.Recurrence = &rec
	}
	if d.Escalation != nil {
		esc := *d.Escalation
		esc.Messages = append([]string(nil), d.Escalation.Messages...)
		t.Escalation = &esc
	}
	return t
}
