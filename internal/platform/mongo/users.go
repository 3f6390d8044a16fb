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

// userDoc is the BSON shape of a user record. Auth tokens are stored in
// their canonical string form.
type userDoc struct {
	ID       string `bson:"id"`
	Password string `bson:"password"`
	Token    string `bson:"uuid"`
}

func (d userDoc) toDomain() (*domain.User, error) {
	token, err := uuid.Parse(d.Token)
	if err != nil {
		return nil, fmt.Errorf("corrupt auth token for user %q: %w", d.ID, err)
	}
	return &domain.User{
		ID:       d.ID,
		Password: d.Password,
		Token:    token,
		Tasks:    []domain.Task{},
	}, nil
}

func toUserDoc(u *domain.User) userDoc {
	return userDoc{ID: u.ID, Password: u.Password, Token: u.Token.String()}
}

// userByID fetches a user record without tasks. Returns
// store.ErrUserNotFound when no document matches.
func (s *Store) userByID(ctx context.Context, id string) (*domain.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return doc.toDomain()
}

// userByToken resolves a non-master bearer token to the user it identifies.
// Returns store.ErrInvalidToken when the token is malformed or matches no user.
func (s *Store) userByToken(ctx context.Context, token string) (*domain.User, error) {
	parsed, err := auth.ParseToken(token)
	if err != nil {
		return nil, err
	}

	var doc userDoc
	err = s.users.FindOne(ctx, bson.D{{Key: "uuid", Value: parsed.String()}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}
	return doc.toDomain()
}

// ListUsers implements store.Store.ListUsers.
func (s *Store) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	if !auth.IsMaster(token) {
		return nil, store.ErrUnauthorized
	}

	cursor, err := s.users.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	users := []domain.User{}
	for _, doc := range docs {
		user, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		tasks, err := s.tasksByUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		user.Tasks = tasks
		users = append(users, *user)
	}
	return users, nil
}

// GetUser implements store.Store.GetUser. Existence is checked before
// authorization so an unknown ID always reads as "User not found".
func (s *Store) GetUser(ctx context.Context, id, token string) (*domain.User, error) {
	user, err := s.userByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(token, user); err != nil {
		return nil, err
	}

	tasks, err := s.tasksByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Tasks = tasks
	return user, nil
}

// CreateUser implements store.Store.CreateUser. The uniqueness check rides
// on the unique index; a concurrent duplicate insert surfaces as a
// duplicate-key error rather than a race.
func (s *Store) CreateUser(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	user, err := domain.NewUser(creds)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed

	if _, err := s.users.InsertOne(ctx, toUserDoc(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, store.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	s.logger.Info("user created", slog.String("user_id", user.ID))
	return user, nil
}

// UpdateUser implements store.Store.UpdateUser. The login ID and password
// are replaced wholesale; owned tasks are explicitly re-pointed at the new
// login ID since nothing in the database does it for us.
func (s *Store) UpdateUser(ctx context.Context, id, token string, creds domain.Credentials) (*domain.User, error) {
	existing, err := s.userByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(token, existing); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.users.UpdateOne(ctx,
		bson.D{{Key: "id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "id", Value: creds.ID},
			{Key: "password", Value: hashed},
		}}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, store.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if creds.ID != id {
		_, err = s.tasks.UpdateMany(ctx,
			bson.D{{Key: "user_id", Value: id}},
			bson.D{{Key: "$set", Value: bson.D{{Key: "user_id", Value: creds.ID}}}},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to re-point tasks: %w", err)
		}
	}

	updated := &domain.User{
		ID:       creds.ID,
		Password: hashed,
		Token:    existing.Token,
	}
	tasks, err := s.tasksByUser(ctx, updated.ID)
	if err != nil {
		return nil, err
	}
	updated.Tasks = tasks
	return updated, nil
}

// DeleteUser implements store.Store.DeleteUser. Dependent tasks are deleted
// explicitly; there is no cascade in the database.
func (s *Store) DeleteUser(ctx context.Context, id, token string) error {
	existing, err := s.userByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.Authorize(token, existing); err != nil {
		return err
	}

	if _, err := s.users.DeleteOne(ctx, bson.D{{Key: "id", Value: id}}); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if _, err := s.tasks.DeleteMany(ctx, bson.D{{Key: "user_id", Value: id}}); err != nil {
		return fmt.Errorf("failed to delete user tasks: %w", err)
	}

	s.logger.Info("user deleted", slog.String("user_id", id))
	return nil
}

// GetToken implements store.Store.GetToken. An unknown user and a wrong
// password are indistinguishable to the caller.
func (s *Store) GetToken(ctx context.Context, creds domain.Credentials) (string, error) {
	user, err := s.userByID(ctx, creds.ID)
	if errors.Is(err, store.ErrUserNotFound) {
		return "", store.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := s.hasher.Compare(user.Password, creds.Password); err != nil {
		return "", store.ErrInvalidCredentials
	}
	return user.Token.String(), nil
}
