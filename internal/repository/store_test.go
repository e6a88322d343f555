package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
)

func TestStoreCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	store := NewStore[model.AppraisalCycle](db)

	cycle := &model.AppraisalCycle{Name: "2026年度考核", Year: "2026"}
	if err := store.Create(cycle, map[string]any{"name": cycle.Name}); err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if cycle.ID == "" {
		t.Fatal("创建后应自动填充 UUID")
	}

	got, err := store.GetByID(cycle.ID)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if got.Name != "2026年度考核" || got.Year != "2026" {
		t.Errorf("回读数据不一致: %+v", got)
	}
}

func TestStoreCreateUniqueConflict(t *testing.T) {
	db := newTestDB(t)
	store := NewStore[model.AppraisalCycle](db)

	first := &model.AppraisalCycle{Name: "H1考核", Year: "2026"}
	if err := store.Create(first, map[string]any{"name": first.Name}); err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	dup := &model.AppraisalCycle{Name: "H1考核", Year: "2026"}
	err := store.Create(dup, map[string]any{"name": dup.Name})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("期望 ErrConflict，实际 %v", err)
	}
}

func TestStoreGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	store := NewStore[model.AppraisalCycle](db)

	_, err := store.GetByID("missing-id")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("期望 ErrNotFound，实际 %v", err)
	}
}

func TestStoreUpdateSparse(t *testing.T) {
	db := newTestDB(t)
	store := NewStore[model.AppraisalCycle](db)

	cycle := &model.AppraisalCycle{Name: "原名称", Description: "原描述", Year: "2026"}
	if err := store.Create(cycle, nil); err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	// 只改名称，描述不动
	updated, err := store.Update(cycle.ID, map[string]any{"name": "新名称"})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Name != "新名称" {
		t.Errorf("名称未更新: %s", updated.Name)
	}
	if updated.Description != "原描述" {
		t.Errorf("稀疏更新不应修改描述: %s", updated.Description)
	}

	// 相同内容再更新一次，结果不变（幂等）
	again, err := store.Update(cycle.ID, map[string]any{"name": "新名称"})
	if err != nil {
		t.Fatalf("重复更新失败: %v", err)
	}
	if again.Name != updated.Name || again.Description != updated.Description {
		t.Errorf("重复更新结果不一致: %+v vs %+v", again, updated)
	}
}

func TestStoreUpdateMissingRecord(t *testing.T) {
	db := newTestDB(t)
	store := NewStore[model.AppraisalCycle](db)

	_, err := store.Update("missing-id", map[string]any{"name": "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("期望 ErrNotFound，实际 %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	db := newTestDB(t)
	store := NewStore[model.AppraisalCycle](db)

	cycle := &model.AppraisalCycle{Name: "待删除", Year: "2026"}
	if err := store.Create(cycle, nil); err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	if err := store.Delete(cycle.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := store.GetByID(cycle.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("删除后应查不到记录，实际 %v", err)
	}
	if err := store.Delete(cycle.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("重复删除应返回 ErrNotFound，实际 %v", err)
	}
}

func TestStoreGetAllByIDsSilent(t *testing.T) {
	db := newTestDB(t)
	store := NewStore[model.AppraisalCycle](db)

	a := &model.AppraisalCycle{Name: "周期A", Year: "2026"}
	b := &model.AppraisalCycle{Name: "周期B", Year: "2026"}
	for _, c := range []*model.AppraisalCycle{a, b} {
		if err := store.Create(c, nil); err != nil {
			t.Fatalf("创建失败: %v", err)
		}
	}

	// 包含一个不存在的 ID，不应报错
	got, err := store.GetAllByIDs([]string{a.ID, "missing-id", b.ID})
	if err != nil {
		t.Fatalf("批量查询失败: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("期望2条记录，实际 %d", len(got))
	}
	if got[a.ID].Name != "周期A" || got[b.ID].Name != "周期B" {
		t.Errorf("批量查询结果不正确: %+v", got)
	}
	if _, ok := got["missing-id"]; ok {
		t.Error("缺失的 ID 不应出现在结果中")
	}
}

func TestStoreListOrderingAndPagination(t *testing.T) {
	db := newTestDB(t)
	store := NewStore[model.AppraisalCycle](db)

	names := []string{"最早", "中间", "最新"}
	base := time.Now().Add(-time.Hour)
	for i, name := range names {
		cycle := &model.AppraisalCycle{Name: name, Year: "2026"}
		if err := store.Create(cycle, nil); err != nil {
			t.Fatalf("创建失败: %v", err)
		}
		// 拉开创建时间，保证排序可判定
		db.Model(cycle).Update("created_at", base.Add(time.Duration(i)*time.Minute))
	}

	// 默认排序：created_at DESC
	got, err := store.List(ListOptions{})
	if err != nil {
		t.Fatalf("列表查询失败: %v", err)
	}
	if len(got) != 3 || got[0].Name != "最新" || got[2].Name != "最早" {
		t.Errorf("默认排序应为创建时间倒序: %+v", got)
	}

	// 升序 + 分页
	got, err = store.List(ListOptions{Skip: 1, Limit: 1, OrderBy: "created_at", OrderDirection: "asc"})
	if err != nil {
		t.Fatalf("分页查询失败: %v", err)
	}
	if len(got) != 1 || got[0].Name != "中间" {
		t.Errorf("分页结果不正确: %+v", got)
	}

	// 指定排序键但不指定方向时默认升序
	got, err = store.List(ListOptions{OrderBy: "created_at"})
	if err != nil {
		t.Fatalf("列表查询失败: %v", err)
	}
	if len(got) != 3 || got[0].Name != "最早" || got[2].Name != "最新" {
		t.Errorf("指定排序键后默认方向应为升序: %+v", got)
	}
}

func TestStoreListInvalidSortKey(t *testing.T) {
	db := newTestDB(t)
	store := NewStore[model.AppraisalCycle](db)

	_, err := store.List(ListOptions{OrderBy: "not_a_column"})
	if !errors.Is(err, ErrInvalidSortKey) {
		t.Fatalf("期望 ErrInvalidSortKey，实际 %v", err)
	}
}

func TestStoreGetByFilters(t *testing.T) {
	db := newTestDB(t)
	store := NewStore[model.AppraisalCycle](db)

	for _, c := range []*model.AppraisalCycle{
		{Name: "A", Year: "2025"},
		{Name: "B", Year: "2026"},
		{Name: "C", Year: "2026"},
	} {
		if err := store.Create(c, nil); err != nil {
			t.Fatalf("创建失败: %v", err)
		}
	}

	got, total, err := store.GetByFilters(map[string]any{"year": "2026"}, ListOptions{})
	if err != nil {
		t.Fatalf("过滤查询失败: %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Errorf("期望2条2026年记录，实际 total=%d len=%d", total, len(got))
	}
}

func TestStoreSearchByPattern(t *testing.T) {
	db := newTestDB(t)
	store := NewStore[model.AppraisalCycle](db)

	for _, name := range []string{"年度考核", "季度考核", "专项评审"} {
		if err := store.Create(&model.AppraisalCycle{Name: name, Year: "2026"}, nil); err != nil {
			t.Fatalf("创建失败: %v", err)
		}
	}

	got, err := store.SearchByPattern("name", "考核", ListOptions{})
	if err != nil {
		t.Fatalf("模糊查询失败: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("期望2条匹配记录，实际 %d", len(got))
	}
}
