package auth

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/repository"
)

func newTestService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	// 内存库在多连接下会丢表，限制为单连接
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("迁移表失败: %v", err)
	}
	return NewAuthService(repository.NewUserRepository(db), "test-secret", 1), db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Register(&model.RegisterRequest{
		Username: "zhangsan",
		Password: "password123",
		Email:    "zhangsan@example.com",
		FullName: "张三",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if user.Role != "user" || user.Status != "active" {
		t.Errorf("默认角色和状态不正确: role=%s status=%s", user.Role, user.Status)
	}
	if user.Password == "password123" {
		t.Error("密码应加密存储")
	}

	t.Run("用户名重复注册拒绝", func(t *testing.T) {
		_, err := svc.Register(&model.RegisterRequest{Username: "zhangsan", Password: "password456"})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("期望 ErrConflict，实际 %v", err)
		}
	})

	t.Run("正确密码登录成功", func(t *testing.T) {
		resp, err := svc.Login(&model.LoginRequest{Username: "zhangsan", Password: "password123"})
		if err != nil {
			t.Fatalf("登录失败: %v", err)
		}
		if resp.Token == "" {
			t.Error("登录应返回 Token")
		}

		claims, err := svc.ValidateToken(resp.Token)
		if err != nil {
			t.Fatalf("校验 Token 失败: %v", err)
		}
		if claims.UserID != user.ID || claims.Username != "zhangsan" || claims.Role != "user" {
			t.Errorf("Token 声明不正确: %+v", claims)
		}
	})

	t.Run("错误密码登录失败", func(t *testing.T) {
		if _, err := svc.Login(&model.LoginRequest{Username: "zhangsan", Password: "wrong"}); err == nil {
			t.Fatal("错误密码应登录失败")
		}
	})

	t.Run("未知用户登录失败", func(t *testing.T) {
		if _, err := svc.Login(&model.LoginRequest{Username: "nobody", Password: "password123"}); err == nil {
			t.Fatal("未知用户应登录失败")
		}
	})
}

func TestLoginDisabledUser(t *testing.T) {
	svc, db := newTestService(t)

	if _, err := svc.Register(&model.RegisterRequest{Username: "lisi", Password: "password123"}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if err := db.Model(&model.User{}).Where("username = ?", "lisi").Update("status", "disabled").Error; err != nil {
		t.Fatalf("禁用用户失败: %v", err)
	}

	if _, err := svc.Login(&model.LoginRequest{Username: "lisi", Password: "password123"}); err == nil {
		t.Fatal("禁用用户应登录失败")
	}
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	svc, _ := newTestService(t)
	other := NewAuthService(nil, "another-secret", 1)

	token, err := other.GenerateToken(&model.User{ID: "id", Username: "x", Role: "user"})
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}
	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("异源签名的 Token 应校验失败")
	}
}
