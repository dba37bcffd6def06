package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/funnyprom/work-management-system/internal/dto"
	"github.com/funnyprom/work-management-system/internal/service"
	"github.com/funnyprom/work-management-system/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc       service.UserService
	exposeDetails bool
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService, exposeDetails bool) *UserHandler {
	return &UserHandler{userSvc: userSvc, exposeDetails: exposeDetails}
}

// ListUsers 获取用户列表
// GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		h.handleUserError(c, err, "Failed to fetch users")
		return
	}

	response.OK(c, users)
}

// GetUser 获取用户详情
// GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleUserError(c, err, "Failed to fetch user")
		return
	}

	response.OK(c, user)
}

// CreateUser 创建用户
// POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, "Username, full name, and email are required")
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleUserError(c, err, "Failed to create user")
		return
	}

	response.Created(c, user)
}

// handleUserError 统一处理用户模块业务错误
func (h *UserHandler) handleUserError(c *gin.Context, err error, internal string) {
	errorMapping{notFound: "User not found", internal: internal, exposeDetails: h.exposeDetails}.write(c, err)
}
