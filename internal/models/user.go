package models

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Username is the unique display name chosen at registration.
	Username string `json:"username"`

	// Email is the user's email address (unique, stored lowercase).
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized in any response.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last profile or password change.
	UpdatedAt int64 `json:"updatedAt"`
}

// NewUser creates a User with the given identity and password hash.
// ID and timestamps are assigned by the store on insert.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
}
