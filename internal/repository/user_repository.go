package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
)

// UserRepository 平台用户仓储
type UserRepository struct {
	*Store[model.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		Store: NewStore[model.User](db),
	}
}

// FindByUsername 根据用户名查找用户
func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB().Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateLastLogin 更新最近登录时间
func (r *UserRepository) UpdateLastLogin(userID string, loginTime time.Time) error {
	return r.DB().Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login_time", loginTime).Error
}
