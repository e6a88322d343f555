package appraisal

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/repository"
)

func newCycleService(t *testing.T) (*CycleService, *testRepos) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	return NewCycleService(repos.cycle, repos.section), repos
}

func TestCycleCreate(t *testing.T) {
	svc, _ := newCycleService(t)

	cycle, err := svc.Create(&CreateCycleRequest{Name: "年度考核", Description: "全员年度考核"})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if cycle.Year != strconv.Itoa(time.Now().Year()) {
		t.Errorf("年份应强制取当前年份: %s", cycle.Year)
	}

	t.Run("周期名称全局唯一", func(t *testing.T) {
		_, err := svc.Create(&CreateCycleRequest{Name: "年度考核"})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("期望 ErrConflict，实际 %v", err)
		}
	})

	t.Run("指定非当前年份拒绝", func(t *testing.T) {
		_, err := svc.Create(&CreateCycleRequest{Name: "历史周期", Year: "2020"})
		if !errors.Is(err, ErrYearMismatch) {
			t.Fatalf("期望 ErrYearMismatch，实际 %v", err)
		}
	})

	t.Run("指定当前年份允许", func(t *testing.T) {
		cycle, err := svc.Create(&CreateCycleRequest{
			Name: "当前年份周期",
			Year: strconv.Itoa(time.Now().Year()),
		})
		if err != nil {
			t.Fatalf("创建失败: %v", err)
		}
		if cycle.Year != strconv.Itoa(time.Now().Year()) {
			t.Errorf("年份不正确: %s", cycle.Year)
		}
	})
}

func TestCycleUpdateSectionsReplacement(t *testing.T) {
	svc, repos := newCycleService(t)

	cycle, err := svc.Create(&CreateCycleRequest{Name: "年度考核"})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	// 首次提交小节名单
	updated, err := svc.Update(cycle.ID, &UpdateCycleRequest{
		Sections: []SectionPayload{
			{Name: "自我评价"},
			{Name: "上级评价"},
		},
	})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if len(updated.AppraisalSections) != 2 {
		t.Fatalf("期望2个小节，实际 %d", len(updated.AppraisalSections))
	}

	t.Run("再次提交时整体替换", func(t *testing.T) {
		updated, err := svc.Update(cycle.ID, &UpdateCycleRequest{
			Sections: []SectionPayload{
				{Name: "同事互评"},
			},
		})
		if err != nil {
			t.Fatalf("更新失败: %v", err)
		}
		if len(updated.AppraisalSections) != 1 || updated.AppraisalSections[0].Name != "同事互评" {
			t.Errorf("小节应被整体替换: %+v", updated.AppraisalSections)
		}

		count, err := repos.section.CountByCycle(cycle.ID)
		if err != nil {
			t.Fatalf("统计失败: %v", err)
		}
		if count != 1 {
			t.Errorf("旧小节应被删除，实际剩 %d", count)
		}
	})

	t.Run("名单内重复小节名拒绝", func(t *testing.T) {
		_, err := svc.Update(cycle.ID, &UpdateCycleRequest{
			Sections: []SectionPayload{
				{Name: "自我评价"},
				{Name: "自我评价"},
			},
		})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("期望 ErrConflict，实际 %v", err)
		}
	})

	t.Run("不带小节时只更新周期字段", func(t *testing.T) {
		desc := "更新后的描述"
		updated, err := svc.Update(cycle.ID, &UpdateCycleRequest{Description: &desc})
		if err != nil {
			t.Fatalf("更新失败: %v", err)
		}
		if updated.Description != desc {
			t.Errorf("描述未更新: %s", updated.Description)
		}
		if len(updated.AppraisalSections) != 1 {
			t.Errorf("小节不应被改动: %d", len(updated.AppraisalSections))
		}
	})
}

func TestCycleUpdateNameConflict(t *testing.T) {
	svc, _ := newCycleService(t)

	if _, err := svc.Create(&CreateCycleRequest{Name: "年度考核"}); err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	other, err := svc.Create(&CreateCycleRequest{Name: "季度考核"})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	name := "年度考核"
	_, err = svc.Update(other.ID, &UpdateCycleRequest{Name: &name})
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("期望 ErrConflict，实际 %v", err)
	}

	// 改成自己当前的名字不算冲突
	own := "季度考核"
	if _, err := svc.Update(other.ID, &UpdateCycleRequest{Name: &own}); err != nil {
		t.Fatalf("保持原名更新失败: %v", err)
	}
}

func TestCycleDeleteBlockedBySections(t *testing.T) {
	svc, _ := newCycleService(t)

	cycle, err := svc.Create(&CreateCycleRequest{Name: "年度考核"})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if _, err := svc.Update(cycle.ID, &UpdateCycleRequest{
		Sections: []SectionPayload{{Name: "自我评价"}},
	}); err != nil {
		t.Fatalf("更新失败: %v", err)
	}

	if err := svc.Delete(cycle.ID); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("有小节时删除应返回 ErrConflict，实际 %v", err)
	}

	// 清空小节后可以删除
	if _, err := svc.Update(cycle.ID, &UpdateCycleRequest{Sections: []SectionPayload{}}); err != nil {
		t.Fatalf("清空小节失败: %v", err)
	}
	if err := svc.Delete(cycle.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
}
