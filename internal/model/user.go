package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 平台用户
type User struct {
	ID            string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username      string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password      string     `gorm:"type:varchar(255);not null" json:"-"` // 不在JSON中暴露
	Email         string     `gorm:"type:varchar(100);uniqueIndex" json:"email"`
	FullName      string     `gorm:"type:varchar(100)" json:"full_name"`
	Role          string     `gorm:"type:varchar(20);default:'user'" json:"role"` // admin, user
	Status        string     `gorm:"type:varchar(20);default:'active';index" json:"status"`
	StaffID       *string    `gorm:"type:varchar(36);index" json:"staff_id,omitempty"`
	LastLoginTime *time.Time `json:"last_login_time,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
