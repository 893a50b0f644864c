package service

import (
	"context"
	"strings"

	"github.com/elitebuy/internal/cache"
	"github.com/elitebuy/internal/logger"
	"github.com/elitebuy/internal/models"
	"github.com/elitebuy/internal/repository"
)

// UserService 用户资料与后台用户管理
type UserService struct {
	userRepo     repository.UserRepository
	orderRepo    repository.OrderRepository
	wishlistRepo repository.WishlistRepository
}

// UpdateProfileInput 资料更新，nil 字段保持不变
type UpdateProfileInput struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	ZipCode     *string `json:"zip_code"`
	Country     *string `json:"country"`
	DateOfBirth *string `json:"date_of_birth"`
	Avatar      *string `json:"avatar"`
}

// UserStats 用户统计
type UserStats struct {
	TotalOrders   int64        `json:"total_orders"`
	TotalSpent    models.Money `json:"total_spent"`
	WishlistCount int64        `json:"wishlist_count"`
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, orderRepo repository.OrderRepository, wishlistRepo repository.WishlistRepository) *UserService {
	return &UserService{
		userRepo:     userRepo,
		orderRepo:    orderRepo,
		wishlistRepo: wishlistRepo,
	}
}

// GetProfile 获取用户资料
func (s *UserService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile 更新用户资料
func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if err := firstInvalid(ValidateName(*input.Name)); err != nil {
			return nil, err
		}
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone != "" {
			if err := firstInvalid(ValidatePhone(phone)); err != nil {
				return nil, err
			}
		}
		user.Phone = phone
	}
	assignTrimmed(&user.Address, input.Address)
	assignTrimmed(&user.City, input.City)
	assignTrimmed(&user.State, input.State)
	assignTrimmed(&user.ZipCode, input.ZipCode)
	assignTrimmed(&user.Country, input.Country)
	assignTrimmed(&user.DateOfBirth, input.DateOfBirth)
	assignTrimmed(&user.Avatar, input.Avatar)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserStats 用户订单与收藏统计
func (s *UserService) GetUserStats(userID uint) (*UserStats, error) {
	totalOrders, totalSpent, err := s.orderRepo.StatsByUser(userID)
	if err != nil {
		return nil, err
	}
	wishlistCount, err := s.wishlistRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	return &UserStats{
		TotalOrders:   totalOrders,
		TotalSpent:    totalSpent,
		WishlistCount: wishlistCount,
	}, nil
}

// ListUsers 后台用户列表
func (s *UserService) ListUsers(filter repository.UserListFilter) ([]models.User, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.userRepo.List(filter)
}

// SetUserActive 后台启用/禁用用户
func (s *UserService) SetUserActive(actorID, userID uint, active bool) (*models.User, error) {
	if actorID == userID && !active {
		return nil, ErrCannotDeleteSelf
	}
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if user.IsActive == active {
		return user, nil
	}
	user.IsActive = active
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	s.dropAuthState(userID)
	logger.Infow("admin_user_active_updated", "actor_id", actorID, "user_id", userID, "is_active", active)
	return user, nil
}

// DeleteUser 后台删除用户及其订单、支付、收藏、地址、登录记录与购物车
func (s *UserService) DeleteUser(actorID, userID uint) error {
	if actorID == userID {
		return ErrCannotDeleteSelf
	}
	deleted, err := s.userRepo.DeleteCascade(userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	s.dropAuthState(userID)
	logger.Infow("admin_user_deleted", "actor_id", actorID, "user_id", userID)
	return nil
}

func (s *UserService) dropAuthState(userID uint) {
	if err := cache.DelUserAuthState(context.Background(), userID); err != nil {
		logger.Warnw("user_auth_state_cache_del_failed", "user_id", userID, "error", err)
	}
}

func assignTrimmed(dst *string, value *string) {
	if value == nil {
		return
	}
	*dst = strings.TrimSpace(*value)
}
