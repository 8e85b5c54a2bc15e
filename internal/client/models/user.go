package models

// User is the authenticated account as reported by the backend.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// Credentials is the secret blob persisted by the credential store between
// runs: the account identity plus the bearer token, if one was issued.
type Credentials struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token,omitempty"`
	Admin  bool   `json:"admin"`
}
