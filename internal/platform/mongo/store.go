package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/phrazzld/tasklist-api/internal/service/auth"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// driverName is reported by the liveness probe.
const driverName = "mongo"

// pingTimeout bounds the liveness probe so an unreachable server yields a
// prompt Alive == false instead of hanging the health endpoint.
const pingTimeout = 3 * time.Second

// Store implements store.Store using two MongoDB collections.
type Store struct {
	client *mongo.Client
	users  *mongo.Collection
	tasks  *mongo.Collection
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// Ensure Store implements store.Store
var _ store.Store = (*Store)(nil)

// New creates a Mongo-backed store over the named database and ensures the
// unique indexes on user login IDs and auth tokens exist.
func New(ctx context.Context, client *mongo.Client, database string, hasher auth.PasswordHasher, logger *slog.Logger) (*Store, error) {
	if client == nil {
		panic("client cannot be nil")
	}
	if hasher == nil {
		hasher = auth.NewBcryptHasher()
	}
	if logger == nil {
		logger = slog.Default()
	}

	db := client.Database(database)
	s := &Store{
		client: client,
		users:  db.Collection("users"),
		tasks:  db.Collection("tasks"),
		hasher: hasher,
		logger: logger.With(slog.String("component", "mongo_store")),
	}

	unique := options.Index().SetUnique(true)
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "uuid", Value: 1}}, Options: unique},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user indexes: %w", err)
	}

	return s, nil
}

// Open connects to the MongoDB server at the given URI and verifies
// connectivity with a ping.
func Open(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, nil
}

// IsAlive implements store.Store.IsAlive.
func (s *Store) IsAlive(ctx context.Context) store.Health {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := s.client.Ping(pingCtx, readpref.Primary()); err != nil {
		s.logger.Warn("liveness probe failed", slog.String("error", err.Error()))
		return store.Health{Alive: false, Driver: driverName}
	}
	return store.Health{Alive: true, Driver: driverName}
}

// Purge implements store.Store.Purge.
func (s *Store) Purge(ctx context.Context, token string) error {
	if !auth.IsMaster(token) {
		return store.ErrUnauthorized
	}

	if _, err := s.users.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("failed to purge users: %w", err)
	}
	if _, err := s.tasks.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("failed to purge tasks: %w", err)
	}

	s.logger.Info("purged all data")
	return nil
}

// Close implements store.Store.Close.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
