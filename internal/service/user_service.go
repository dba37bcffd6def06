package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/funnyprom/work-management-system/internal/dto"
	"github.com/funnyprom/work-management-system/internal/model"
	"github.com/funnyprom/work-management-system/internal/repository"
	pkgerrors "github.com/funnyprom/work-management-system/pkg/errors"
)

// ── 用户模块业务错误 ──

var ErrUserNotFound = fmt.Errorf("用户%w", pkgerrors.ErrNotFound)

// UserService 用户业务接口（用户仅作目录数据，无认证）
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	user := &model.User{
		Username:   strings.TrimSpace(req.Username),
		FullName:   strings.TrimSpace(req.FullName),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Department: req.Department,
		IsActive:   true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.String("username", user.Username), zap.Error(err))
		return nil, pkgerrors.Persistence("创建用户", err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ────────────────────── Query ──────────────────────

// GetByID 用户主键为自增整数，非数字 id 视为不存在
func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	userID, err := strconv.Atoi(id)
	if err != nil || userID <= 0 {
		return nil, ErrUserNotFound
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Int("id", userID), zap.Error(err))
		return nil, pkgerrors.Persistence("查询用户", err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, pkgerrors.Persistence("列出用户", err)
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, dto.NewUserResponse(&users[i]))
	}
	return result, nil
}
