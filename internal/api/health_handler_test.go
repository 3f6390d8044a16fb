package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/tasklist-api/internal/mocks"
	"github.com/phrazzld/tasklist-api/internal/store"
)

func TestLiveness(t *testing.T) {
	mock := &mocks.MockStore{Health: store.Health{Alive: true, Driver: "postgres"}}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["is_alive"])
	assert.Equal(t, "postgres", body["db"])
}

func TestLivenessStoreDown(t *testing.T) {
	mock := &mocks.MockStore{Health: store.Health{Alive: false, Driver: "mongo"}}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, rec.Code, "an unreachable store is reported, not erred")
	assert.Equal(t, false, body["is_alive"])
	assert.Equal(t, "mongo", body["db"])
}
