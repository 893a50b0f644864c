package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/elitebuy/internal/cache"
	"github.com/elitebuy/internal/config"
	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/logger"
	"github.com/elitebuy/internal/models"
	"github.com/elitebuy/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	loginHistory *LoginHistoryService
	captcha      *CaptchaService
	now          func() time.Time
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, loginHistory *LoginHistoryService, captcha *CaptchaService) *UserAuthService {
	return &UserAuthService{
		cfg:          cfg,
		userRepo:     userRepo,
		loginHistory: loginHistory,
		captcha:      captcha,
		now:          time.Now,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RegisterInput 注册输入
type RegisterInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
	Country     string `json:"country"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// LoginInput 登录输入
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult 认证结果
type AuthResult struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	hours := s.cfg.UserJWT.ExpireHours
	if hours <= 0 {
		hours = 168
	}
	now := s.now()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)
	claims := UserJWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// Register 注册并直接登录
func (s *UserAuthService) Register(input RegisterInput, meta LoginMeta) (*AuthResult, error) {
	if err := s.captcha.Verify(constants.CaptchaSceneRegister, input.CaptchaID, input.CaptchaCode); err != nil {
		return nil, err
	}
	email := normalizeEmail(input.Email)
	if err := firstInvalid(
		ValidateName(input.Name),
		ValidateEmail(email),
		ValidatePassword(input.Password),
	); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Phone) != "" {
		if err := firstInvalid(ValidatePhone(input.Phone)); err != nil {
			return nil, err
		}
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(input.Phone),
		DateOfBirth:  strings.TrimSpace(input.DateOfBirth),
		Country:      strings.TrimSpace(input.Country),
		Avatar:       constants.DefaultAvatarURL,
		Role:         constants.UserRoleCustomer,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	logger.Infow("user_registered", "user_id", user.ID, "email", user.Email)
	return s.issue(user, meta)
}

// Login 邮箱密码登录
func (s *UserAuthService) Login(input LoginInput, meta LoginMeta) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !models.CheckPassword(user.PasswordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}
	return s.issue(user, meta)
}

// ChangePassword 修改密码
func (s *UserAuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !models.CheckPassword(user.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}
	if err := firstInvalid(ValidatePassword(newPassword)); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.userRepo.Update(user)
}

func (s *UserAuthService) issue(user *models.User, meta LoginMeta) (*AuthResult, error) {
	now := s.now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		logger.Warnw("user_last_login_update_failed", "user_id", user.ID, "error", err)
	} else {
		user.LastLogin = &now
	}
	s.loginHistory.Record(user.ID, meta, now)

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// ResolveAuthState 获取鉴权快照，优先读缓存
func (s *UserAuthService) ResolveAuthState(userID uint) (*cache.UserAuthState, error) {
	ctx := context.Background()
	if state, hit, err := cache.GetUserAuthState(ctx, userID); err == nil && hit {
		return state, nil
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	state := cache.BuildUserAuthState(user)
	if err := cache.SetUserAuthState(ctx, state); err != nil {
		logger.Warnw("user_auth_state_cache_set_failed", "user_id", userID, "error", err)
	}
	return state, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
