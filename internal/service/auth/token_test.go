package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	owner := &domain.User{ID: "alice", Password: "hash", Token: uuid.New()}
	other := &domain.User{ID: "bob", Password: "hash", Token: uuid.New()}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "master credential", token: MasterToken, wantErr: nil},
		{name: "owner token", token: owner.Token.String(), wantErr: nil},
		{name: "other user's token", token: other.Token.String(), wantErr: store.ErrUnauthorized},
		{name: "garbage token", token: "not-a-token", wantErr: store.ErrUnauthorized},
		{name: "empty token", token: "", wantErr: store.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.token, owner)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestParseToken(t *testing.T) {
	id := uuid.New()

	parsed, err := ParseToken(id.String())
	assert.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseToken("root")
	assert.ErrorIs(t, err, store.ErrInvalidToken, "the master credential is not a user identity")

	_, err = ParseToken("")
	assert.ErrorIs(t, err, store.ErrInvalidToken)
}

func TestIsMaster(t *testing.T) {
	assert.True(t, IsMaster("root"))
	assert.False(t, IsMaster("Root"))
	assert.False(t, IsMaster(""))
}
