// Package auth holds the authorization rule shared by both store backends
// and the password hashing used for credential verification.
//
// The rule is deliberately small: a single fixed master credential grants
// unrestricted access, and every other caller must present the auth token
// of the user that owns the targeted record. Keeping it in one place rather
// than duplicated per backend prevents the two variants from drifting.
package auth

import (
	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// MasterToken is the fixed credential granting unrestricted access to every
// operation, including listing all records and purging all data.
const MasterToken = "root"

// IsMaster reports whether the token is the master credential.
func IsMaster(token string) bool {
	return token == MasterToken
}

// Authorize checks a token against the auth token of the user owning the
// targeted record. It returns nil for the master credential or an exact
// owner match, and store.ErrUnauthorized otherwise.
func Authorize(token string, owner *domain.User) error {
	if IsMaster(token) {
		return nil
	}
	if token == owner.Token.String() {
		return nil
	}
	return store.ErrUnauthorized
}

// ParseToken parses a non-master token as a user auth identifier. A token
// that is not a well-formed identifier cannot resolve to any user, which is
// the store.ErrInvalidToken outcome.
func ParseToken(token string) (uuid.UUID, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return uuid.Nil, store.ErrInvalidToken
	}
	return id, nil
}
