package service

import (
	"strings"
	"time"

	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/logger"
	"github.com/elitebuy/internal/models"
	"github.com/elitebuy/internal/repository"
)

const defaultLoginHistoryLimit = 10

// LoginMeta 登录请求上下文
type LoginMeta struct {
	ClientIP  string
	UserAgent string
	RequestID string
}

// LoginHistoryService 登录记录服务
type LoginHistoryService struct {
	repo repository.LoginHistoryRepository
}

// NewLoginHistoryService 创建登录记录服务
func NewLoginHistoryService(repo repository.LoginHistoryRepository) *LoginHistoryService {
	return &LoginHistoryService{repo: repo}
}

// Record 记录一次成功登录，失败只记日志不影响登录
func (s *LoginHistoryService) Record(userID uint, meta LoginMeta, at time.Time) {
	if s == nil || s.repo == nil || userID == 0 {
		return
	}
	record := &models.LoginHistory{
		UserID:    userID,
		LoginTime: at,
		IPAddress: strings.TrimSpace(meta.ClientIP),
		UserAgent: truncateString(strings.TrimSpace(meta.UserAgent), 512),
		Device:    detectLoginDevice(meta.UserAgent),
		RequestID: strings.TrimSpace(meta.RequestID),
	}
	if err := s.repo.Create(record); err != nil {
		logger.Warnw("login_history_record_failed", "user_id", userID, "error", err)
	}
}

// List 用户登录记录，最新在前
func (s *LoginHistoryService) List(userID uint, limit int) ([]models.LoginHistory, error) {
	if limit <= 0 {
		limit = defaultLoginHistoryLimit
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.ListByUser(userID, limit)
}

func detectLoginDevice(userAgent string) string {
	ua := strings.ToLower(userAgent)
	for _, marker := range []string{"okhttp", "expo", "cfnetwork", "dalvik", "android", "iphone", "ipad", "mobile"} {
		if strings.Contains(ua, marker) {
			return constants.LoginDeviceMobile
		}
	}
	return constants.LoginDeviceWeb
}

func truncateString(value string, max int) string {
	if len(value) <= max {
		return value
	}
	return value[:max]
}
