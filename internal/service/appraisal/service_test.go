package appraisal

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/repository"
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

// testRepos 测试用的仓储集合
type testRepos struct {
	cycle      *repository.CycleRepository
	section    *repository.SectionRepository
	input      *repository.InputRepository
	submission *repository.SubmissionRepository
	appraisal  *repository.AppraisalRepository
	deptGroup  *repository.DepartmentGroupRepository
	department *repository.DepartmentRepository
	staff      *repository.StaffRepository
}

func newTestRepos(db *gorm.DB) *testRepos {
	return &testRepos{
		cycle:      repository.NewCycleRepository(db),
		section:    repository.NewSectionRepository(db),
		input:      repository.NewInputRepository(db),
		submission: repository.NewSubmissionRepository(db),
		appraisal:  repository.NewAppraisalRepository(db),
		deptGroup:  repository.NewDepartmentGroupRepository(db),
		department: repository.NewDepartmentRepository(db),
		staff:      repository.NewStaffRepository(db),
	}
}

// seedStaff 创建部门和员工
func seedStaff(t *testing.T, db *gorm.DB, deptName, email string) *model.Staff {
	t.Helper()

	dept := &model.Department{Name: deptName}
	if err := db.Create(dept).Error; err != nil {
		t.Fatalf("创建部门失败: %v", err)
	}
	staff := &model.Staff{FirstName: "测试", LastName: "员工", Email: email, DepartmentID: dept.ID}
	if err := db.Create(staff).Error; err != nil {
		t.Fatalf("创建员工失败: %v", err)
	}
	return staff
}

// seedSection 创建周期和小节
func seedSection(t *testing.T, db *gorm.DB, cycleName, sectionName string) *model.AppraisalSection {
	t.Helper()

	cycle := &model.AppraisalCycle{Name: cycleName, Year: "2026"}
	if err := db.Create(cycle).Error; err != nil {
		t.Fatalf("创建周期失败: %v", err)
	}
	section := &model.AppraisalSection{Name: sectionName, AppraisalCycleID: cycle.ID}
	if err := db.Create(section).Error; err != nil {
		t.Fatalf("创建小节失败: %v", err)
	}
	return section
}
