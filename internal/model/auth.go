package model

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	User      *User  `json:"user"`
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// TokenClaims is the payload of the session token.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"nome"`
}

// Principal identifies the authenticated operator of a request.
type Principal struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"nome"`
}

func (c *TokenClaims) Principal() *Principal {
	return &Principal{UserID: c.UserID, Email: c.Email, Name: c.Name}
}
