package user

import "time"

// User is the persisted entity. ID and CreatedAt are store-assigned and
// immutable after creation; Password holds only the hashed credential.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

// UserCreateRequest represents the expected JSON body for user creation.
// Validation is structural only: both fields must be present and non-empty.
type UserCreateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPublic is the strict subset of User exposed over HTTP. The hashed
// credential, created_at and is_active are never serialized.
type UserPublic struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Public maps the entity to its response contract.
func (u *User) Public() UserPublic {
	return UserPublic{ID: u.ID, Email: u.Email}
}
