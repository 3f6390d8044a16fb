package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTaskID    = errors.New("task ID cannot be empty")
	ErrEmptyTaskOwner = errors.New("task owner cannot be empty")
	ErrEmptyTaskText  = errors.New("task text cannot be empty")
)

// Task is a single to-do item owned by exactly one user.
// Timestamps are stored as opaque strings: they are set at creation and
// UpdatedAt is refreshed only when the task itself is modified.
type Task struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
	Checked   bool      `json:"is_checked"`
	Important bool      `json:"is_important"`
}

// TaskDraft carries the caller-supplied fields of a task: the free text and
// the two flags. Everything else (ID, owner, timestamps) is assigned by the
// service.
type TaskDraft struct {
	Text      string `json:"text"`
	Checked   bool   `json:"is_checked"`
	Important bool   `json:"is_important"`
}

// Timestamp returns the current UTC time in the string form tasks store.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// NewTask creates a Task from a draft for the given owner, generating a
// fresh ID and setting both timestamps to now.
func NewTask(draft TaskDraft, userID string) (*Task, error) {
	now := Timestamp()
	task := &Task{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      draft.Text,
		CreatedAt: now,
		UpdatedAt: now,
		Checked:   draft.Checked,
		Important: draft.Important,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks that the Task has an ID, an owner, and text.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.UserID == "" {
		return ErrEmptyTaskOwner
	}
	if t.Text == "" {
		return ErrEmptyTaskText
	}
	return nil
}
