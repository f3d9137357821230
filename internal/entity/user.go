package entity

import "time"

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleOrganizer UserRole = "organizer"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	Avatar       string    `json:"avatar,omitempty" db:"avatar"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
