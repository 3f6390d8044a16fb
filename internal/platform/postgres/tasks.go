package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
	"github.com/phrazzld/tasklist-api/internal/store"
)

const taskColumns = `id, user_id, text, created_at, updated_at, is_checked, is_important`

func scanTask(row interface{ Scan(...any) error }) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Text,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.Checked,
		&task.Important,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// taskByID fetches a task row. Returns store.ErrTaskNotFound when no row
// matches.
func (s *Store) taskByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query task: %w", err)
	}
	return task, nil
}

// tasksByUser returns all tasks owned by the given user, oldest first.
func (s *Store) tasksByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	return collectTasks(rows)
}

func collectTasks(rows *sql.Rows) ([]domain.Task, error) {
	defer func() { _ = rows.Close() }()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

// ListTasks implements store.Store.ListTasks.
func (s *Store) ListTasks(ctx context.Context, token string) ([]domain.Task, error) {
	if auth.IsMaster(token) {
		rows, err := s.db.QueryContext(ctx,
			`SELECT `+taskColumns+` FROM tasks ORDER BY created_at`)
		if err != nil {
			return nil, fmt.Errorf("failed to query tasks: %w", err)
		}
		return collectTasks(rows)
	}

	user, err := s.userByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.tasksByUser(ctx, user.ID)
}

// GetTask implements store.Store.GetTask. Existence is checked before
// ownership so a missing task reads as "Task not found" even for a bad token.
func (s *Store) GetTask(ctx context.Context, id uuid.UUID, token string) (*domain.Task, error) {
	task, err := s.taskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ownerOf(ctx, task, token); err != nil {
		return nil, err
	}
	return task, nil
}

// CreateTask implements store.Store.CreateTask.
func (s *Store) CreateTask(ctx context.Context, draft domain.TaskDraft, token string) (*domain.Task, error) {
	owner, err := s.userByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	task, err := domain.NewTask(draft, owner.ID)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		task.ID, task.UserID, task.Text, task.CreatedAt, task.UpdatedAt, task.Checked, task.Important,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	s.logger.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID))
	return task, nil
}

// UpdateTask implements store.Store.UpdateTask. Text and flags are
// overwritten and updated_at is refreshed; created_at and ownership are
// untouched.
func (s *Store) UpdateTask(ctx context.Context, id uuid.UUID, token string, draft domain.TaskDraft) (*domain.Task, error) {
	task, err := s.taskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ownerOf(ctx, task, token); err != nil {
		return nil, err
	}

	now := domain.Timestamp()
	_, err = s.db.ExecContext(ctx,
		`UPDATE tasks SET text = $1, updated_at = $2, is_checked = $3, is_important = $4 WHERE id = $5`,
		draft.Text, now, draft.Checked, draft.Important, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	task.Text = draft.Text
	task.Checked = draft.Checked
	task.Important = draft.Important
	task.UpdatedAt = now
	return task, nil
}

// DeleteTask implements store.Store.DeleteTask.
func (s *Store) DeleteTask(ctx context.Context, id uuid.UUID, token string) error {
	task, err := s.taskByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ownerOf(ctx, task, token); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("task deleted", slog.String("task_id", id.String()))
	return nil
}
