package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/tasklist-api/internal/store"
)

func TestContractMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{store.ErrUnauthorized, "Unauthorized"},
		{store.ErrUserNotFound, "User not found"},
		{store.ErrTaskNotFound, "Task not found"},
		{store.ErrInvalidToken, "Invalid token"},
		{store.ErrDuplicateUser, "Email already registered"},
		{store.ErrInvalidCredentials, "Invalid credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			msg, ok := ContractMessage(tt.err)
			assert.True(t, ok)
			assert.Equal(t, tt.want, msg)

			// Wrapping must not change the exposed message.
			msg, ok = ContractMessage(fmt.Errorf("query failed: %w", tt.err))
			assert.True(t, ok)
			assert.Equal(t, tt.want, msg)
		})
	}
}

func TestContractMessageRejectsInternalErrors(t *testing.T) {
	_, ok := ContractMessage(errors.New("dial tcp: connection refused"))
	assert.False(t, ok)
}
