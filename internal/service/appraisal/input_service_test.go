package appraisal

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/repository"
)

func newInputService(db *gorm.DB) (*InputService, *testRepos) {
	repos := newTestRepos(db)
	svc := NewInputService(repos.input, repos.section, repos.deptGroup, repos.staff, repos.submission)
	return svc, repos
}

func TestInputCreate(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newInputService(db)
	section := seedSection(t, db, "年度考核", "自我评价")

	input, err := svc.Create(&CreateInputRequest{
		Title:              "自评表",
		AppraisalSectionID: section.ID,
		FormGroups: []model.FormGroup{
			{GroupName: "工作业绩", Fields: []model.FormField{
				{FieldType: "text", FieldName: "completion", FieldText: "完成情况"},
			}},
		},
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if !input.IsActive {
		t.Error("创建的表单应默认启用")
	}
	groups, err := input.Template()
	if err != nil || len(groups) != 1 || groups[0].GroupName != "工作业绩" {
		t.Errorf("模板回读不正确: %+v, err=%v", groups, err)
	}

	t.Run("一个小节只允许一份表单", func(t *testing.T) {
		_, err := svc.Create(&CreateInputRequest{
			Title:              "第二份表单",
			AppraisalSectionID: section.ID,
		})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("期望 ErrConflict，实际 %v", err)
		}
	})

	t.Run("小节不存在时拒绝", func(t *testing.T) {
		_, err := svc.Create(&CreateInputRequest{
			Title:              "无主表单",
			AppraisalSectionID: "missing-section",
		})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("期望 ErrNotFound，实际 %v", err)
		}
	})

	t.Run("部门组不存在时拒绝", func(t *testing.T) {
		other := seedSection(t, db, "季度考核", "上级评价")
		missing := "missing-group"
		_, err := svc.Create(&CreateInputRequest{
			Title:              "组表单",
			AppraisalSectionID: other.ID,
			DepartmentGroupID:  &missing,
		})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("期望 ErrNotFound，实际 %v", err)
		}
	})
}

func TestInputListForStaffVisibility(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newInputService(db)

	staff := seedStaff(t, db, "研发部", "dev@example.com")
	outsider := seedStaff(t, db, "市场部", "mkt@example.com")

	group := &model.DepartmentGroup{Name: "研发组", DepartmentID: staff.DepartmentID}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("创建部门组失败: %v", err)
	}

	// 四份表单：全局、部门组投放、显式部门名单、停用的全局
	sections := []string{"全局小节", "组投放小节", "名单投放小节", "停用小节"}
	for i, name := range sections {
		section := seedSection(t, db, name+"周期", name)
		input := &model.AppraisalInput{
			Title:              name + "表单",
			AppraisalSectionID: section.ID,
			IsActive:           true,
		}
		switch i {
		case 0:
			input.IsGlobal = true
		case 1:
			input.DepartmentGroupID = &group.ID
		case 2:
			raw, err := marshalStringList([]string{staff.DepartmentID})
			if err != nil {
				t.Fatalf("编码部门名单失败: %v", err)
			}
			input.DepartmentIDs = raw
		case 3:
			input.IsGlobal = true
			input.IsActive = false
		}
		if err := db.Create(input).Error; err != nil {
			t.Fatalf("创建表单失败: %v", err)
		}
	}

	t.Run("命中全局、部门组和显式名单", func(t *testing.T) {
		visible, err := svc.ListForStaff(staff.ID)
		if err != nil {
			t.Fatalf("查询失败: %v", err)
		}
		if len(visible) != 3 {
			t.Fatalf("期望3份可见表单，实际 %d", len(visible))
		}
		for _, input := range visible {
			if !input.IsActive {
				t.Errorf("停用的表单不应可见: %s", input.Title)
			}
		}
	})

	t.Run("其他部门只见全局表单", func(t *testing.T) {
		visible, err := svc.ListForStaff(outsider.ID)
		if err != nil {
			t.Fatalf("查询失败: %v", err)
		}
		if len(visible) != 1 || !visible[0].IsGlobal {
			t.Errorf("期望只命中全局表单: %+v", visible)
		}
	})

	t.Run("员工不存在时报错", func(t *testing.T) {
		_, err := svc.ListForStaff("missing-staff")
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("期望 ErrNotFound，实际 %v", err)
		}
	})
}

func TestInputInactiveStateRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newInputService(db)
	section := seedSection(t, db, "年度考核", "自我评价")

	input := &model.AppraisalInput{
		Title:              "停用表单",
		AppraisalSectionID: section.ID,
		IsActive:           false,
	}
	if err := db.Create(input).Error; err != nil {
		t.Fatalf("创建表单失败: %v", err)
	}

	got, err := svc.Get(input.ID)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if got.IsActive {
		t.Error("停用状态不应被写回成启用")
	}
}

func TestInputListEnrichment(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newInputService(db)
	section := seedSection(t, db, "年度考核", "自我评价")

	if _, err := svc.Create(&CreateInputRequest{
		Title:              "自评表",
		AppraisalSectionID: section.ID,
	}); err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	enriched, total, err := svc.List(repository.ListOptions{})
	if err != nil {
		t.Fatalf("列表查询失败: %v", err)
	}
	if total != 1 || len(enriched) != 1 {
		t.Fatalf("期望1条记录: total=%d len=%d", total, len(enriched))
	}
	if enriched[0].SectionName != "自我评价" {
		t.Errorf("小节名称未填充: %q", enriched[0].SectionName)
	}
}

func TestInputDeleteBlockedBySubmissions(t *testing.T) {
	db := newTestDB(t)
	svc, repos := newInputService(db)
	section := seedSection(t, db, "年度考核", "自我评价")
	staff := seedStaff(t, db, "研发部", "dev@example.com")

	input, err := svc.Create(&CreateInputRequest{
		Title:              "自评表",
		AppraisalSectionID: section.ID,
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	appraisal := &model.Appraisal{Name: "年度考核", Year: 2026}
	if err := db.Create(appraisal).Error; err != nil {
		t.Fatalf("创建考核失败: %v", err)
	}
	submissionSvc := NewSubmissionService(repos.submission, repos.input, repos.staff, 60)
	submission, err := submissionSvc.Create(&CreateSubmissionRequest{
		AppraisalInputID: input.ID,
		AppraisalID:      appraisal.ID,
		StaffID:          staff.ID,
	})
	if err != nil {
		t.Fatalf("创建作答记录失败: %v", err)
	}

	if err := svc.Delete(input.ID); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("有作答记录时删除应返回 ErrConflict，实际 %v", err)
	}

	if err := submissionSvc.Delete(submission.ID); err != nil {
		t.Fatalf("删除作答记录失败: %v", err)
	}
	if err := svc.Delete(input.ID); err != nil {
		t.Fatalf("删除表单失败: %v", err)
	}
}
