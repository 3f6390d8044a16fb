package store

import "errors"

// Failure outcomes of store operations. The error strings are part of the
// HTTP contract: the API layer serializes them verbatim into
// {"error": "<string>"} bodies, so they must not change.
var (
	// ErrUnauthorized is returned when a token resolves to a real identity
	// that does not own the targeted record and is not the master credential.
	ErrUnauthorized = errors.New("Unauthorized")

	// ErrUserNotFound is returned when the targeted user does not exist.
	ErrUserNotFound = errors.New("User not found")

	// ErrTaskNotFound is returned when the targeted task does not exist.
	ErrTaskNotFound = errors.New("Task not found")

	// ErrInvalidToken is returned when a token resolves to no identity at
	// all. Distinct from ErrUnauthorized, which implies a known identity
	// lacking ownership.
	ErrInvalidToken = errors.New("Invalid token")

	// ErrDuplicateUser is returned when user creation or update would take
	// a login ID that is already registered.
	ErrDuplicateUser = errors.New("Email already registered")

	// ErrInvalidCredentials is returned by GetToken when no user matches
	// the supplied ID and password.
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

// contractErrors is the closed set of outcomes the API layer may expose.
var contractErrors = []error{
	ErrUnauthorized,
	ErrUserNotFound,
	ErrTaskNotFound,
	ErrInvalidToken,
	ErrDuplicateUser,
	ErrInvalidCredentials,
}

// IsContractError reports whether err is (or wraps) one of the closed set
// of contract outcomes. Anything else is an internal fault and must not
// leak its message to clients.
func IsContractError(err error) bool {
	for _, sentinel := range contractErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
