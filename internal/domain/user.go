package domain

import (
	"time"
)

type Role string

const (
	RoleAdministrator Role = "administrador"
	RoleCoordinator   Role = "coordinador"
	RoleManager       Role = "gerente"
)

// User is an operator account for the roster API, not a rostered
// employee. Employees live in their own table and may not log in.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
