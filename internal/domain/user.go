package domain

import (
	"context"
)

type Role struct {
	ID              int
	Name            string
	MaxReservations int
}

type User struct {
	ID    int
	Name  string
	Email string
	Role  Role
}

type UserRepository interface {
	GetWithRoleById(ctx context.Context, id int) (*User, error)
}
