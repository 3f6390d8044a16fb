package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	draft := TaskDraft{Text: "buy milk", Checked: false, Important: true}

	task, err := NewTask(draft, "alice")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Equal(t, "alice", task.UserID)
	assert.Equal(t, "buy milk", task.Text)
	assert.False(t, task.Checked)
	assert.True(t, task.Important)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt, "timestamps should match at creation")

	created, err := time.Parse(time.RFC3339Nano, task.CreatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), created, 5*time.Second)
}

func TestNewTaskRequiresOwnerAndText(t *testing.T) {
	_, err := NewTask(TaskDraft{Text: "x"}, "")
	assert.ErrorIs(t, err, ErrEmptyTaskOwner)

	_, err = NewTask(TaskDraft{}, "alice")
	assert.ErrorIs(t, err, ErrEmptyTaskText)
}

func TestTaskValidate(t *testing.T) {
	task := Task{ID: uuid.New(), UserID: "alice", Text: "x"}
	assert.NoError(t, task.Validate())

	task.ID = uuid.Nil
	assert.ErrorIs(t, task.Validate(), ErrEmptyTaskID)
}
