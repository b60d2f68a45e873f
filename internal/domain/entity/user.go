package entity

import "time"

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema (pertenece a una Company y tiene un Role).
type User struct {
	ID           string
	CompanyID    string
	RoleID       string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano
	Name         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
