package models

import (
	"time"

	"github.com/golang-jwt/jwt"
)

type UserRole = string

const (
	RoleAdmin        UserRole = "Admin"
	RoleGroupLeader  UserRole = "Group Leader"
	RoleCollaborator UserRole = "Collaborator"
)

type UserStatus = string

const (
	StatusActive  UserStatus = "Active"
	StatusPending UserStatus = "Pending"
)

// NoGroup is assigned to self-registered users until an admin sorts them.
const NoGroup = "Chưa có nhóm"

type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	Group        string     `json:"group,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Claims struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
}

type Session struct {
	ID           string    `json:"id"`
	UserID       int       `json:"user_id"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Group    string `json:"group,omitempty"`
}

type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Message      string `json:"message"`
}
