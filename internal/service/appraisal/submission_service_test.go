package appraisal

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/repository"
)

func newSubmissionService(db *gorm.DB) (*SubmissionService, *testRepos) {
	repos := newTestRepos(db)
	return NewSubmissionService(repos.submission, repos.input, repos.staff, 60), repos
}

// seedSubmissionSetup 构建一条带表单模板和初始答案的作答记录
func seedSubmissionSetup(t *testing.T, db *gorm.DB, svc *SubmissionService) (*model.AppraisalSubmission, *model.Staff) {
	t.Helper()

	staff := seedStaff(t, db, "研发部", "dev@example.com")
	section := seedSection(t, db, "2026年度考核", "自我评价")

	template, err := model.MarshalFormGroups([]model.FormGroup{
		{
			GroupName: "工作业绩",
			Fields: []model.FormField{
				{FieldType: "text", FieldName: "completion", FieldText: "完成情况"},
				{FieldType: "text", FieldName: "highlights", FieldText: "工作亮点"},
			},
		},
	})
	if err != nil {
		t.Fatalf("编码模板失败: %v", err)
	}
	input := &model.AppraisalInput{
		Title:              "年度自评表",
		AppraisalSectionID: section.ID,
		FormFields:         template,
		IsActive:           true,
		IsGlobal:           true,
	}
	if err := db.Create(input).Error; err != nil {
		t.Fatalf("创建表单失败: %v", err)
	}
	appraisal := &model.Appraisal{Name: "2026年度考核", Year: 2026}
	if err := db.Create(appraisal).Error; err != nil {
		t.Fatalf("创建考核失败: %v", err)
	}

	submission, err := svc.Create(&CreateSubmissionRequest{
		AppraisalInputID: input.ID,
		AppraisalID:      appraisal.ID,
		StaffID:          staff.ID,
		Data: map[string]any{
			"工作业绩": map[string]any{"completion": "按期完成"},
		},
	})
	if err != nil {
		t.Fatalf("创建作答记录失败: %v", err)
	}
	return submission, staff
}

func TestSubmissionCreate(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newSubmissionService(db)
	submission, staff := seedSubmissionSetup(t, db, svc)

	if submission.StartedAt == nil {
		t.Error("创建时应记录开始时间")
	}
	if submission.Version != 0 {
		t.Errorf("初始版本号应为0: %d", submission.Version)
	}

	t.Run("同一员工同一表单不允许重复创建", func(t *testing.T) {
		_, err := svc.Create(&CreateSubmissionRequest{
			AppraisalInputID: submission.AppraisalInputID,
			AppraisalID:      submission.AppraisalID,
			StaffID:          staff.ID,
		})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("期望 ErrConflict，实际 %v", err)
		}
	})

	t.Run("表单不存在时拒绝创建", func(t *testing.T) {
		_, err := svc.Create(&CreateSubmissionRequest{
			AppraisalInputID: "missing-input",
			AppraisalID:      submission.AppraisalID,
			StaffID:          staff.ID,
		})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("期望 ErrNotFound，实际 %v", err)
		}
	})
}

func TestUpdateAnswerStrict(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newSubmissionService(db)
	submission, _ := seedSubmissionSetup(t, db, svc)

	t.Run("已有字段可以覆盖", func(t *testing.T) {
		updated, err := svc.UpdateAnswer(submission.ID, "工作业绩", "completion", "超额完成")
		if err != nil {
			t.Fatalf("更新失败: %v", err)
		}
		answer, ok := updated.Answer("工作业绩", "completion")
		if !ok || answer != "超额完成" {
			t.Errorf("答案未覆盖: %v", answer)
		}
		if updated.Version != submission.Version+1 {
			t.Errorf("版本号应递增: %d", updated.Version)
		}
	})

	t.Run("组不存在时拒绝", func(t *testing.T) {
		_, err := svc.UpdateAnswer(submission.ID, "不存在的组", "completion", "x")
		if !errors.Is(err, ErrGroupNotFound) {
			t.Fatalf("期望 ErrGroupNotFound，实际 %v", err)
		}
	})

	t.Run("字段不存在时拒绝", func(t *testing.T) {
		_, err := svc.UpdateAnswer(submission.ID, "工作业绩", "不存在的字段", "x")
		if !errors.Is(err, ErrFieldNotFound) {
			t.Fatalf("期望 ErrFieldNotFound，实际 %v", err)
		}
	})

	t.Run("记录不存在时拒绝", func(t *testing.T) {
		_, err := svc.UpdateAnswer("missing-id", "工作业绩", "completion", "x")
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("期望 ErrNotFound，实际 %v", err)
		}
	})

	t.Run("已完成的记录拒绝修改", func(t *testing.T) {
		if _, err := svc.Complete(submission.ID); err != nil {
			t.Fatalf("标记完成失败: %v", err)
		}
		_, err := svc.UpdateAnswer(submission.ID, "工作业绩", "completion", "x")
		if !errors.Is(err, ErrSubmissionClosed) {
			t.Fatalf("期望 ErrSubmissionClosed，实际 %v", err)
		}
	})
}

func TestUpsertAnswersBulk(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newSubmissionService(db)
	submission, _ := seedSubmissionSetup(t, db, svc)

	t.Run("缺失的组和字段自动创建", func(t *testing.T) {
		updated, err := svc.UpsertAnswers(submission.ID, map[string]any{
			"工作业绩": map[string]any{"highlights": "攻坚项目交付"},
			"个人发展": map[string]any{"training": "完成两门认证"},
		})
		if err != nil {
			t.Fatalf("批量更新失败: %v", err)
		}

		// 已有组内新增字段，原字段保留
		if answer, ok := updated.Answer("工作业绩", "completion"); !ok || answer != "按期完成" {
			t.Errorf("原有答案不应丢失: %v", answer)
		}
		if answer, ok := updated.Answer("工作业绩", "highlights"); !ok || answer != "攻坚项目交付" {
			t.Errorf("新字段未写入: %v", answer)
		}
		// 全新的组
		if answer, ok := updated.Answer("个人发展", "training"); !ok || answer != "完成两门认证" {
			t.Errorf("新组未创建: %v", answer)
		}
	})

	t.Run("组的值必须是字段映射", func(t *testing.T) {
		_, err := svc.UpsertAnswers(submission.ID, map[string]any{
			"工作业绩": "不是映射",
		})
		if !errors.Is(err, ErrInvalidAnswerData) {
			t.Fatalf("期望 ErrInvalidAnswerData，实际 %v", err)
		}
	})

	t.Run("空载荷幂等", func(t *testing.T) {
		before, err := svc.Get(submission.ID)
		if err != nil {
			t.Fatalf("查询失败: %v", err)
		}
		after, err := svc.UpsertAnswers(submission.ID, map[string]any{})
		if err != nil {
			t.Fatalf("空载荷更新失败: %v", err)
		}
		if answer, ok := after.Answer("工作业绩", "completion"); !ok || answer != "按期完成" {
			t.Errorf("空载荷不应改动答案: %v", answer)
		}
		if after.Version != before.Version+1 {
			t.Errorf("版本号应递增: %d", after.Version)
		}
	})

	t.Run("已完成的记录拒绝修改", func(t *testing.T) {
		if _, err := svc.Complete(submission.ID); err != nil {
			t.Fatalf("标记完成失败: %v", err)
		}
		_, err := svc.UpsertAnswers(submission.ID, map[string]any{
			"工作业绩": map[string]any{"completion": "x"},
		})
		if !errors.Is(err, ErrSubmissionClosed) {
			t.Fatalf("期望 ErrSubmissionClosed，实际 %v", err)
		}
	})
}

func TestSubmitAndComplete(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newSubmissionService(db)
	submission, _ := seedSubmissionSetup(t, db, svc)

	submitted, err := svc.Submit(submission.ID)
	if err != nil {
		t.Fatalf("提交失败: %v", err)
	}
	if !submitted.Submitted || submitted.Completed {
		t.Errorf("提交后状态不正确: submitted=%v completed=%v", submitted.Submitted, submitted.Completed)
	}

	completed, err := svc.Complete(submission.ID)
	if err != nil {
		t.Fatalf("标记完成失败: %v", err)
	}
	if !completed.Submitted || !completed.Completed {
		t.Errorf("完成后状态不正确: submitted=%v completed=%v", completed.Submitted, completed.Completed)
	}

	// 完成之后不允许再提交
	if _, err := svc.Submit(submission.ID); !errors.Is(err, ErrSubmissionClosed) {
		t.Fatalf("期望 ErrSubmissionClosed，实际 %v", err)
	}
}

func TestSummaryByStaff(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newSubmissionService(db)
	submission, staff := seedSubmissionSetup(t, db, svc)

	summaries, err := svc.SummaryByStaff(context.Background(), staff.ID)
	if err != nil {
		t.Fatalf("汇总失败: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("期望1条汇总，实际 %d", len(summaries))
	}

	summary := summaries[0]
	if summary.StaffID != staff.ID || summary.AppraisalID != submission.AppraisalID {
		t.Errorf("汇总归属不正确: %+v", summary)
	}

	entries, ok := summary.Groups["工作业绩"]
	if !ok || len(entries) != 2 {
		t.Fatalf("汇总应按模板展开该组的全部字段: %+v", summary.Groups)
	}

	byField := map[string]model.SummaryEntry{}
	for _, entry := range entries {
		byField[entry.FieldName] = entry
	}
	if entry := byField["completion"]; entry.Answer != "按期完成" || entry.FieldText != "完成情况" {
		t.Errorf("已作答字段应带答案: %+v", entry)
	}
	if entry := byField["highlights"]; entry.Answer != nil {
		t.Errorf("未作答字段答案应为 null: %+v", entry)
	}

	t.Run("员工不存在时报错", func(t *testing.T) {
		_, err := svc.SummaryByStaff(context.Background(), "missing-staff")
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("期望 ErrNotFound，实际 %v", err)
		}
	})
}

func TestSummaryResults(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newSubmissionService(db)
	_, staff := seedSubmissionSetup(t, db, svc)

	// 第二份表单 + 第二名员工，覆盖跨员工与同员工合并两种情况
	other := seedStaff(t, db, "市场部", "mkt@example.com")
	section := seedSection(t, db, "季度考核", "上级评价")
	template, err := model.MarshalFormGroups([]model.FormGroup{
		{
			GroupName: "管理能力",
			Fields: []model.FormField{
				{FieldType: "text", FieldName: "leadership", FieldText: "带队情况"},
			},
		},
	})
	if err != nil {
		t.Fatalf("编码模板失败: %v", err)
	}
	input := &model.AppraisalInput{
		Title:              "上级评价表",
		AppraisalSectionID: section.ID,
		FormFields:         template,
		IsActive:           true,
		IsGlobal:           true,
	}
	if err := db.Create(input).Error; err != nil {
		t.Fatalf("创建表单失败: %v", err)
	}
	appraisal := &model.Appraisal{Name: "2026季度考核", Year: 2026, Cycle: "H2"}
	if err := db.Create(appraisal).Error; err != nil {
		t.Fatalf("创建考核失败: %v", err)
	}

	for _, staffID := range []string{staff.ID, other.ID} {
		if _, err := svc.Create(&CreateSubmissionRequest{
			AppraisalInputID: input.ID,
			AppraisalID:      appraisal.ID,
			StaffID:          staffID,
			Data: map[string]any{
				"管理能力": map[string]any{"leadership": "良好"},
			},
		}); err != nil {
			t.Fatalf("创建作答记录失败: %v", err)
		}
	}

	t.Run("按年份过滤并按员工分组", func(t *testing.T) {
		results, err := svc.SummaryResults(repository.SubmissionFilter{Year: 2026})
		if err != nil {
			t.Fatalf("汇总失败: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("期望2名员工的汇总，实际 %d", len(results))
		}

		// 同一员工的两条作答合并到同一个条目
		merged, ok := results[staff.ID]
		if !ok {
			t.Fatal("缺少第一名员工的汇总")
		}
		if len(merged.Groups) != 2 {
			t.Errorf("两份表单的组应合并到同一条目: %+v", merged.Groups)
		}
		if _, ok := merged.Groups["工作业绩"]; !ok {
			t.Error("缺少第一份表单的组")
		}
		if _, ok := merged.Groups["管理能力"]; !ok {
			t.Error("缺少第二份表单的组")
		}

		if _, ok := results[other.ID]; !ok {
			t.Error("缺少第二名员工的汇总")
		}
	})

	t.Run("按员工过滤", func(t *testing.T) {
		results, err := svc.SummaryResults(repository.SubmissionFilter{StaffID: other.ID})
		if err != nil {
			t.Fatalf("汇总失败: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("期望1名员工的汇总，实际 %d", len(results))
		}
		entry := results[other.ID]
		if entry.AppraisalID != appraisal.ID {
			t.Errorf("单一考核时应保留考核 ID: %q", entry.AppraisalID)
		}
	})

	t.Run("按周期过滤", func(t *testing.T) {
		results, err := svc.SummaryResults(repository.SubmissionFilter{Cycle: "H2"})
		if err != nil {
			t.Fatalf("汇总失败: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("期望2名员工的汇总，实际 %d", len(results))
		}
		// 周期过滤只命中第二份表单的作答，第一份表单的组不应出现
		entry := results[staff.ID]
		if _, ok := entry.Groups["工作业绩"]; ok {
			t.Error("周期外的作答不应进入汇总")
		}
	})
}

func TestSubmissionDelete(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newSubmissionService(db)
	submission, _ := seedSubmissionSetup(t, db, svc)

	if err := svc.Delete(submission.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := svc.Get(submission.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("删除后应查不到记录，实际 %v", err)
	}
}
