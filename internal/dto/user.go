package dto

import "github.com/funnyprom/work-management-system/internal/model"

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Username   string  `json:"username"   binding:"required,max=100"`
	FullName   string  `json:"fullName"   binding:"required,max=200"`
	Email      string  `json:"email"      binding:"required,email,max=200"`
	Department *string `json:"department" binding:"omitempty,max=100"`
}

// UserResponse 用户响应
type UserResponse struct {
	ID         int     `json:"id"`
	Username   string  `json:"username"`
	FullName   string  `json:"fullName"`
	Email      string  `json:"email"`
	Department *string `json:"department"`
	IsActive   bool    `json:"isActive"`
	CreatedAt  string  `json:"createdAt"`
}

// NewUserResponse 模型转响应
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:         u.UserID,
		Username:   u.Username,
		FullName:   u.FullName,
		Email:      u.Email,
		Department: u.Department,
		IsActive:   u.IsActive,
		CreatedAt:  FormatTime(u.CreatedAt),
	}
}
