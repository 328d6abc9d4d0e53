package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleReviewer = "reviewer"
	RoleAdmin    = "admin"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
