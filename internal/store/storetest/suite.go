// Package storetest holds a conformance suite run against every store.Store
// implementation. The two backends must be externally indistinguishable, so
// they share one set of behavioral tests instead of drifting copies.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// testTimeout bounds each subtest.
const testTimeout = 30 * time.Second

// Run exercises the full store contract against the given implementation.
// The store is purged with the master credential before every subtest, so
// the backing database must be disposable.
func Run(t *testing.T, s store.Store) {
	subtests := []struct {
		name string
		fn   func(t *testing.T, ctx context.Context, s store.Store)
	}{
		{"IsAlive", testIsAlive},
		{"UserLifecycle", testUserLifecycle},
		{"GetToken", testGetToken},
		{"TaskLifecycle", testTaskLifecycle},
		{"TaskAuthorization", testTaskAuthorization},
		{"ListTasksVisibility", testListTasksVisibility},
		{"CascadeDelete", testCascadeDelete},
		{"UserRename", testUserRename},
		{"Purge", testPurge},
	}

	for _, st := range subtests {
		t.Run(st.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			require.NoError(t, s.Purge(ctx, auth.MasterToken))
			st.fn(t, ctx, s)
		})
	}
}

// mustCreateUser registers a user and returns it together with its bearer
// token in string form.
func mustCreateUser(t *testing.T, ctx context.Context, s store.Store, id, password string) (*domain.User, string) {
	t.Helper()
	user, err := s.CreateUser(ctx, domain.Credentials{ID: id, Password: password})
	require.NoError(t, err)
	return user, user.Token.String()
}

func mustCreateTask(t *testing.T, ctx context.Context, s store.Store, token, text string) *domain.Task {
	t.Helper()
	task, err := s.CreateTask(ctx, domain.TaskDraft{Text: text}, token)
	require.NoError(t, err)
	return task
}

func testIsAlive(t *testing.T, ctx context.Context, s store.Store) {
	health := s.IsAlive(ctx)
	assert.True(t, health.Alive)
	assert.NotEmpty(t, health.Driver)
}

func testUserLifecycle(t *testing.T, ctx context.Context, s store.Store) {
	alice, aliceToken := mustCreateUser(t, ctx, s, "alice", "wonderland")
	assert.NotEqual(t, uuid.Nil, alice.Token)
	assert.NotEqual(t, "wonderland", alice.Password, "password must be stored hashed")

	// Duplicate registration fails regardless of password.
	_, err := s.CreateUser(ctx, domain.Credentials{ID: "alice", Password: "different"})
	assert.ErrorIs(t, err, store.ErrDuplicateUser)

	// Owner and master can read the user; a stranger cannot.
	_, bobToken := mustCreateUser(t, ctx, s, "bob", "builder")

	got, err := s.GetUser(ctx, "alice", aliceToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.ID)
	assert.Equal(t, alice.Token, got.Token)
	assert.NotNil(t, got.Tasks)

	_, err = s.GetUser(ctx, "alice", auth.MasterToken)
	assert.NoError(t, err)

	_, err = s.GetUser(ctx, "alice", bobToken)
	assert.ErrorIs(t, err, store.ErrUnauthorized)

	// Existence is checked before authorization.
	_, err = s.GetUser(ctx, "ghost", bobToken)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	// Listing is master-only.
	users, err := s.ListUsers(ctx, auth.MasterToken)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = s.ListUsers(ctx, aliceToken)
	assert.ErrorIs(t, err, store.ErrUnauthorized)

	// Owner can delete their own account.
	require.NoError(t, s.DeleteUser(ctx, "bob", bobToken))
	_, err = s.GetUser(ctx, "bob", auth.MasterToken)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	require.NoError(t, s.DeleteUser(ctx, "alice", auth.MasterToken))
	err = s.DeleteUser(ctx, "alice", auth.MasterToken)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func testGetToken(t *testing.T, ctx context.Context, s store.Store) {
	alice, _ := mustCreateUser(t, ctx, s, "alice", "wonderland")

	token, err := s.GetToken(ctx, domain.Credentials{ID: "alice", Password: "wonderland"})
	require.NoError(t, err)
	assert.Equal(t, alice.Token.String(), token)

	_, err = s.GetToken(ctx, domain.Credentials{ID: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)

	_, err = s.GetToken(ctx, domain.Credentials{ID: "nobody", Password: "wonderland"})
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
}

func testTaskLifecycle(t *testing.T, ctx context.Context, s store.Store) {
	_, aliceToken := mustCreateUser(t, ctx, s, "alice", "wonderland")

	task, err := s.CreateTask(ctx, domain.TaskDraft{Text: "buy milk", Important: true}, aliceToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", task.UserID)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)

	// Round-trip: fetching right after creation returns identical fields.
	got, err := s.GetTask(ctx, task.ID, aliceToken)
	require.NoError(t, err)
	assert.Equal(t, task, got)

	// Update overwrites text and flags and refreshes only updated_at.
	updated, err := s.UpdateTask(ctx, task.ID, aliceToken, domain.TaskDraft{Text: "buy oat milk", Checked: true})
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", updated.Text)
	assert.True(t, updated.Checked)
	assert.False(t, updated.Important)
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)
	assert.NotEqual(t, task.UpdatedAt, updated.UpdatedAt)

	got, err = s.GetTask(ctx, task.ID, auth.MasterToken)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, s.DeleteTask(ctx, task.ID, aliceToken))
	_, err = s.GetTask(ctx, task.ID, aliceToken)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func testTaskAuthorization(t *testing.T, ctx context.Context, s store.Store) {
	_, aliceToken := mustCreateUser(t, ctx, s, "alice", "wonderland")
	_, bobToken := mustCreateUser(t, ctx, s, "bob", "builder")
	task := mustCreateTask(t, ctx, s, aliceToken, "secret plans")

	// A known identity without ownership is Unauthorized.
	_, err := s.GetTask(ctx, task.ID, bobToken)
	assert.ErrorIs(t, err, store.ErrUnauthorized)
	_, err = s.UpdateTask(ctx, task.ID, bobToken, domain.TaskDraft{Text: "defaced"})
	assert.ErrorIs(t, err, store.ErrUnauthorized)
	err = s.DeleteTask(ctx, task.ID, bobToken)
	assert.ErrorIs(t, err, store.ErrUnauthorized)

	// Existence is checked before ownership.
	_, err = s.GetTask(ctx, uuid.New(), bobToken)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	_, err = s.GetTask(ctx, uuid.New(), "garbage")
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	// A token resolving to nobody cannot create tasks; neither can the
	// master credential, which carries no identity.
	_, err = s.CreateTask(ctx, domain.TaskDraft{Text: "orphan"}, uuid.NewString())
	assert.ErrorIs(t, err, store.ErrInvalidToken)
	_, err = s.CreateTask(ctx, domain.TaskDraft{Text: "orphan"}, "garbage")
	assert.ErrorIs(t, err, store.ErrInvalidToken)
	_, err = s.CreateTask(ctx, domain.TaskDraft{Text: "orphan"}, auth.MasterToken)
	assert.ErrorIs(t, err, store.ErrInvalidToken)

	// The master credential can do everything else.
	_, err = s.GetTask(ctx, task.ID, auth.MasterToken)
	assert.NoError(t, err)
	require.NoError(t, s.DeleteTask(ctx, task.ID, auth.MasterToken))
}

func testListTasksVisibility(t *testing.T, ctx context.Context, s store.Store) {
	_, aliceToken := mustCreateUser(t, ctx, s, "alice", "wonderland")
	_, bobToken := mustCreateUser(t, ctx, s, "bob", "builder")
	mustCreateTask(t, ctx, s, aliceToken, "alice 1")
	mustCreateTask(t, ctx, s, aliceToken, "alice 2")
	mustCreateTask(t, ctx, s, bobToken, "bob 1")

	all, err := s.ListTasks(ctx, auth.MasterToken)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := s.ListTasks(ctx, aliceToken)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, task := range mine {
		assert.Equal(t, "alice", task.UserID)
	}

	_, err = s.ListTasks(ctx, uuid.NewString())
	assert.ErrorIs(t, err, store.ErrInvalidToken)
	_, err = s.ListTasks(ctx, "garbage")
	assert.ErrorIs(t, err, store.ErrInvalidToken)
}

func testCascadeDelete(t *testing.T, ctx context.Context, s store.Store) {
	_, aliceToken := mustCreateUser(t, ctx, s, "alice", "wonderland")
	_, bobToken := mustCreateUser(t, ctx, s, "bob", "builder")
	mustCreateTask(t, ctx, s, aliceToken, "doomed 1")
	mustCreateTask(t, ctx, s, aliceToken, "doomed 2")
	survivor := mustCreateTask(t, ctx, s, bobToken, "survivor")

	require.NoError(t, s.DeleteUser(ctx, "alice", auth.MasterToken))

	remaining, err := s.ListTasks(ctx, auth.MasterToken)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, survivor.ID, remaining[0].ID)
	for _, task := range remaining {
		assert.NotEqual(t, "alice", task.UserID)
	}
}

func testUserRename(t *testing.T, ctx context.Context, s store.Store) {
	alice, aliceToken := mustCreateUser(t, ctx, s, "alice", "wonderland")
	task := mustCreateTask(t, ctx, s, aliceToken, "follows the rename")

	updated, err := s.UpdateUser(ctx, "alice", aliceToken,
		domain.Credentials{ID: "alice2", Password: "looking-glass"})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.ID)
	assert.Equal(t, alice.Token, updated.Token, "auth token is immutable across updates")

	// Owned tasks follow the new login ID.
	got, err := s.GetTask(ctx, task.ID, aliceToken)
	require.NoError(t, err)
	assert.Equal(t, "alice2", got.UserID)

	// Old credentials stop working; new ones return the same token.
	_, err = s.GetToken(ctx, domain.Credentials{ID: "alice", Password: "wonderland"})
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
	token, err := s.GetToken(ctx, domain.Credentials{ID: "alice2", Password: "looking-glass"})
	require.NoError(t, err)
	assert.Equal(t, alice.Token.String(), token)

	// Renaming onto an existing login is a duplicate.
	mustCreateUser(t, ctx, s, "bob", "builder")
	_, err = s.UpdateUser(ctx, "alice2", auth.MasterToken,
		domain.Credentials{ID: "bob", Password: "x"})
	assert.ErrorIs(t, err, store.ErrDuplicateUser)
}

func testPurge(t *testing.T, ctx context.Context, s store.Store) {
	_, aliceToken := mustCreateUser(t, ctx, s, "alice", "wonderland")
	mustCreateTask(t, ctx, s, aliceToken, "doomed")

	// A non-master token leaves everything untouched.
	err := s.Purge(ctx, aliceToken)
	assert.ErrorIs(t, err, store.ErrUnauthorized)
	users, err := s.ListUsers(ctx, auth.MasterToken)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, s.Purge(ctx, auth.MasterToken))

	users, err = s.ListUsers(ctx, auth.MasterToken)
	require.NoError(t, err)
	assert.Empty(t, users)
	tasks, err := s.ListTasks(ctx, auth.MasterToken)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
