package api

// Common request/response structures

// CredentialsRequest is the payload for user creation, user update, and
// token retrieval: a login ID and a plaintext password.
type CredentialsRequest struct {
	ID       string `json:"id"       validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TaskRequest is the payload for task creation and update.
type TaskRequest struct {
	Text      string `json:"text" validate:"required"`
	Checked   bool   `json:"is_checked"`
	Important bool   `json:"is_important"`
}

// TokenResponse is the successful response of the get_token endpoint.
type TokenResponse struct {
	Token string `json:"token"`
}
