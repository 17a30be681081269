package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"forum_thread/internal/domain/user/model"
	"forum_thread/internal/domain/user/repository"
	"forum_thread/pkg/cache"
	"forum_thread/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserExists         = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// 缓存键常量
const (
	UserCacheKeyPrefix = "user:"
	UserCacheTTL       = time.Hour * 2
)

// LoginResult 登录结果
type LoginResult struct {
	Token    string     `json:"token"`
	ExpireAt *time.Time `json:"expireAt"`
	User     model.User `json:"user"`
}

// UserService 用户服务接口
type UserService interface {
	Register(ctx context.Context, username, password, email string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	GetProfile(ctx context.Context, id string) (*model.User, error)
}

// userService 实现
type userService struct {
	repo  repository.UserRepository
	cache cache.CacheService
	log   *zap.Logger
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository, c cache.CacheService, log *zap.Logger) UserService {
	return &userService{repo: repo, cache: c, log: log}
}

func (s *userService) getUserCacheKey(id string) string {
	return fmt.Sprintf("%s%s", UserCacheKeyPrefix, id)
}

// Register 注册，密码使用 bcrypt 加密
func (s *userService) Register(ctx context.Context, username, password, email string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     model.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login 校验密码并签发 JWT
func (s *userService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expireAt, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpireAt: expireAt, User: *user}, nil
}

// GetProfile 获取用户资料（带缓存）
func (s *userService) GetProfile(ctx context.Context, id string) (*model.User, error) {
	key := s.getUserCacheKey(id)

	var user model.User
	if err := s.cache.Get(ctx, key, &user); err == nil {
		return &user, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("read user cache failed", zap.String("key", key), zap.Error(err))
	}

	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 缓存失败不影响主流程
	if err := s.cache.Set(ctx, key, found, UserCacheTTL); err != nil {
		s.log.Warn("write user cache failed", zap.String("key", key), zap.Error(err))
	}
	return found, nil
}
