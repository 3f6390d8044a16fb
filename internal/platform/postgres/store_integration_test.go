package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/tasklist-api/internal/platform/postgres"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
	"github.com/phrazzld/tasklist-api/internal/store/storetest"
)

// testDB is shared across the integration tests in this package. It is nil
// when TASKLIST_TEST_POSTGRES_DSN is unset.
var testDB *sql.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TASKLIST_TEST_POSTGRES_DSN")
	if dsn == "" {
		fmt.Println("TASKLIST_TEST_POSTGRES_DSN not set, skipping postgres integration tests")
		os.Exit(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, dsn)
	if err != nil {
		fmt.Printf("failed to connect to postgres: %v\n", err)
		os.Exit(1)
	}
	testDB = db

	code := m.Run()
	_ = db.Close()
	os.Exit(code)
}

func TestStoreConformance(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s, err := postgres.New(context.Background(), testDB, auth.NewBcryptHasher(), logger)
	if err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	storetest.Run(t, s)
}
