package user

import (
	"errors"
	"time"
)

// TimestampFormat is the wire format for created_at/updated_at.
const TimestampFormat = time.RFC3339

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	// Absent until the first update.
	UpdatedAt string `json:"updated_at,omitempty"`
}

var ErrNotFound = errors.New("user not found")

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// a partial update: nil fields are left untouched.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}
