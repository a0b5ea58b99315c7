package user

import (
	"time"

	"github.com/google/uuid"
)

const DefaultRole = "user"

func NewFromCreateRequest(req CreateUserRequest) User {
	role := req.Role

	if role == "" {
		role = DefaultRole
	}

	return User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		CreatedAt: time.Now().UTC().Format(TimestampFormat),
	}
}
