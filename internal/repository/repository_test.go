package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
)

// newTestDB 创建内存数据库并迁移全部表
func newTestDB(t *testing.T) *gorm.DB {
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

	err = db.AutoMigrate(
		&model.Department{},
		&model.Staff{},
		&model.DepartmentGroup{},
		&model.AppraisalCycle{},
		&model.AppraisalSection{},
		&model.Appraisal{},
		&model.AppraisalInput{},
		&model.AppraisalSubmission{},
		&model.User{},
	)
	if err != nil {
		t.Fatalf("迁移表失败: %v", err)
	}
	return db
}
