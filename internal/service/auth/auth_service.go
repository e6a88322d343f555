package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/repository"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/pkg/logger"
)

// JWT Claims
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	repo        *repository.UserRepository
	jwtSecret   []byte
	tokenExpire time.Duration
}

// NewAuthService 创建认证服务
func NewAuthService(repo *repository.UserRepository, jwtSecret string, tokenExpireHours int) *AuthService {
	jwtKey := []byte(jwtSecret)
	if len(jwtKey) == 0 {
		// 未配置时使用默认值，仅用于开发环境
		jwtKey = []byte("appraisal-dev-jwt-secret-do-not-use-in-production")
	}
	if tokenExpireHours <= 0 {
		tokenExpireHours = 24
	}
	return &AuthService{
		repo:        repo,
		jwtSecret:   jwtKey,
		tokenExpire: time.Duration(tokenExpireHours) * time.Hour,
	}
}

// Register 用户注册
func (s *AuthService) Register(req *model.RegisterRequest) (*model.User, error) {
	// 检查用户名是否已存在
	if _, err := s.repo.FindByUsername(req.Username); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("检查用户名失败: %w", err)
		}
	} else {
		return nil, fmt.Errorf("%w: username already taken", repository.ErrConflict)
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	user := &model.User{
		ID:       uuid.New().String(),
		Username: req.Username,
		Password: string(hashedPassword),
		Email:    req.Email,
		FullName: req.FullName,
		Role:     "user", // 默认角色
		Status:   "active",
	}

	unique := map[string]any{"username": user.Username}
	if user.Email != "" {
		unique["email"] = user.Email
	}
	if err := s.repo.Create(user, unique); err != nil {
		return nil, err
	}

	return user, nil
}

// Login 用户登录
func (s *AuthService) Login(req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.repo.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.New("用户名或密码错误")
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	if user.Status != "active" {
		return nil, errors.New("用户已被禁用")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("用户名或密码错误")
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("生成Token失败: %w", err)
	}

	// 更新最后登录时间，失败不影响登录
	if err := s.repo.UpdateLastLogin(user.ID, time.Now()); err != nil {
		logger.Warnf("Failed to update last login time for %s: %v", user.Username, err)
	}

	return &model.LoginResponse{
		Token: token,
		User:  *user,
	}, nil
}

// GenerateToken 生成 JWT Token
func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	expirationTime := time.Now().Add(s.tokenExpire)

	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "appraisal",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken 验证 JWT Token
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("无效的Token")
}

// GetUserByID 根据ID获取用户
func (s *AuthService) GetUserByID(userID string) (*model.User, error) {
	return s.repo.GetByID(userID)
}
