package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleOperator UserRole = "operator"
	RoleSales    UserRole = "sales"
	RoleStaff    UserRole = "staff"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleOperator, RoleSales, RoleStaff:
		return true
	}
	return false
}

const (
	UserStatusDisabled = 0
	UserStatusActive   = 1
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone"`
	Email        *string   `json:"email"`
	Role         UserRole  `json:"role"`
	Avatar       *string   `json:"avatar"`
	Status       int       `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateUserRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Phone    *string  `json:"phone"`
	Email    *string  `json:"email"`
	Role     UserRole `json:"role"`
}

type UpdateUserRequest struct {
	ID     int64     `json:"-"`
	Name   *string   `json:"name"`
	Phone  *string   `json:"phone"`
	Email  *string   `json:"email"`
	Role   *UserRole `json:"role"`
	Avatar *string   `json:"avatar"`
	Status *int      `json:"status"`
}

type UserFilter struct {
	Keyword *string
	Role    *UserRole
	Status  *int
	Page    PageRequest
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type Claims struct {
	UserID   int64    `json:"userId"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	jwt.RegisteredClaims
}
