package domain

import (
	"errors"
)

var (
	MessageSuccessRegister   = "user registered successfully"
	MessageSuccessLogin      = "login successful"
	MessageSuccessGetMe      = "user profile retrieved successfully"
	MessageSuccessAssignRole = "role assigned successfully"
	MessageSuccessRemoveRole = "role removed successfully"

	MessageFailedRegister   = "failed to register user"
	MessageFailedLogin      = "failed to login"
	MessageFailedGetMe      = "failed to retrieve user profile"
	MessageFailedAssignRole = "failed to assign role"
	MessageFailedRemoveRole = "failed to remove role"

	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrWrongCredentials   = errors.New("wrong username or password")
	ErrUserBlocked        = errors.New("user is blocked")
	ErrRoleAlreadyGranted = errors.New("role already granted")
)

type (
	RegisterRequest struct {
		TelegramID int64  `json:"telegram_id" validate:"required"`
		Username   string `json:"username" validate:"max=255"`
		FullName   string `json:"full_name" validate:"required,max=255"`
		Phone      string `json:"phone" validate:"max=20"`
		Password   string `json:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		TelegramID int64  `json:"telegram_id" validate:"required"`
		Password   string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string   `json:"token"`
		Roles []string `json:"roles"`
	}

	AssignRoleRequest struct {
		UserID uint   `json:"user_id" validate:"required"`
		Role   string `json:"role" validate:"required,oneof=admin warehouse operator driver"`
	}

	UserResponse struct {
		ID         uint     `json:"id"`
		TelegramID int64    `json:"telegram_id"`
		Username   string   `json:"username,omitempty"`
		FullName   string   `json:"full_name"`
		Phone      string   `json:"phone,omitempty"`
		IsActive   bool     `json:"is_active"`
		Roles      []string `json:"roles"`
	}
)
