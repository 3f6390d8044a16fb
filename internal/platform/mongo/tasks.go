package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// taskDoc is the BSON shape of a task record. IDs are stored in their
// canonical string form.
type taskDoc struct {
	ID        string `bson:"id"`
	UserID    string `bson:"user_id"`
	Text      string `bson:"text"`
	CreatedAt string `bson:"created_at"`
	UpdatedAt string `bson:"updated_at"`
	Checked   bool   `bson:"is_checked"`
	Important bool   `bson:"is_important"`
}

func (d taskDoc) toDomain() (*domain.Task, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt task ID %q: %w", d.ID, err)
	}
	return &domain.Task{
		ID:        id,
		UserID:    d.UserID,
		Text:      d.Text,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Checked:   d.Checked,
		Important: d.Important,
	}, nil
}

func toTaskDoc(t *domain.Task) taskDoc {
	return taskDoc{
		ID:        t.ID.String(),
		UserID:    t.UserID,
		Text:      t.Text,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		Checked:   t.Checked,
		Important: t.Important,
	}
}

// taskByID fetches a task record. Returns store.ErrTaskNotFound when no
// document matches.
func (s *Store) taskByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var doc taskDoc
	err := s.tasks.FindOne(ctx, bson.D{{Key: "id", Value: id.String()}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query task: %w", err)
	}
	return doc.toDomain()
}

// tasksByUser returns all tasks owned by the given user.
func (s *Store) tasksByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	cursor, err := s.tasks.Find(ctx, bson.D{{Key: "user_id", Value: userID}})
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	return collectTasks(ctx, cursor)
}

func collectTasks(ctx context.Context, cursor *mongo.Cursor) ([]domain.Task, error) {
	var docs []taskDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	tasks := []domain.Task{}
	for _, doc := range docs {
		task, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

// ownerOf checks the token against the user owning the given task.
// A task can be orphaned by a crash between a user delete and its task
// cleanup; orphans are only reachable with the master credential.
func (s *Store) ownerOf(ctx context.Context, task *domain.Task, token string) error {
	owner, err := s.userByID(ctx, task.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		if auth.IsMaster(token) {
			return nil
		}
		return store.ErrUnauthorized
	}
	if err != nil {
		return err
	}
	return auth.Authorize(token, owner)
}

// ListTasks implements store.Store.ListTasks.
func (s *Store) ListTasks(ctx context.Context, token string) ([]domain.Task, error) {
	if auth.IsMaster(token) {
		cursor, err := s.tasks.Find(ctx, bson.D{})
		if err != nil {
			return nil, fmt.Errorf("failed to query tasks: %w", err)
		}
		return collectTasks(ctx, cursor)
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

// CreateTask implements store.Store.CreateTask. The owning user's existence
// is established by the token resolution itself.
func (s *Store) CreateTask(ctx context.Context, draft domain.TaskDraft, token string) (*domain.Task, error) {
	owner, err := s.userByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	task, err := domain.NewTask(draft, owner.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.tasks.InsertOne(ctx, toTaskDoc(task)); err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	s.logger.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID))
	return task, nil
}

// UpdateTask implements store.Store.UpdateTask. Text and flags are
// overwritten via a field-level $set and updated_at is refreshed;
// created_at and ownership are untouched.
func (s *Store) UpdateTask(ctx context.Context, id uuid.UUID, token string, draft domain.TaskDraft) (*domain.Task, error) {
	task, err := s.taskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ownerOf(ctx, task, token); err != nil {
		return nil, err
	}

	now := domain.Timestamp()
	_, err = s.tasks.UpdateOne(ctx,
		bson.D{{Key: "id", Value: id.String()}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "text", Value: draft.Text},
			{Key: "updated_at", Value: now},
			{Key: "is_checked", Value: draft.Checked},
			{Key: "is_important", Value: draft.Important},
		}}},
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

	if _, err := s.tasks.DeleteOne(ctx, bson.D{{Key: "id", Value: id.String()}}); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("task deleted", slog.String("task_id", id.String()))
	return nil
}
