package model

import (
	"time"
)

// User is a clinic operator allowed to sign in to the back office.
type User struct {
	Base
	Name         string     `json:"nome" db:"nome"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
}

type CreateUserRequest struct {
	Name     string `json:"nome" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}
