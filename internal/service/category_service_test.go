package service

import (
	"context"
	"testing"

	"github.com/sunethdesoyza/lyst-backend/internal/models"
	"github.com/sunethdesoyza/lyst-backend/internal/store/memory"
)

func setupCategoryService(t *testing.T) (*CategoryService, *memory.Store) {
	t.Helper()
	st := memory.New()
	svc := NewCategoryService(st)
	return svc, st
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	svc, _ := setupCategoryService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, models.CreateCategoryRequest{Name: "Groceries"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := svc.Create(ctx, 1, models.CreateCategoryRequest{Name: "Groceries"})
	if !IsConflict(err) {
		t.Errorf("duplicate create: err = %v, want conflict", err)
	}

	// Same name under another owner is fine.
	if _, err := svc.Create(ctx, 2, models.CreateCategoryRequest{Name: "Groceries"}); err != nil {
		t.Errorf("create for other owner: %v", err)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	svc, st := setupCategoryService(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, 1, models.CreateCategoryRequest{Name: "Groceries"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	list := &models.List{OwnerID: 1, Name: "Weekly", Category: "Groceries", Priority: models.PriorityMedium}
	if err := st.CreateList(ctx, list); err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	if err := svc.Delete(ctx, category.ID, 1); !IsConflict(err) {
		t.Errorf("delete in-use category: err = %v, want conflict", err)
	}

	// A deleted (not merely expired) list stops counting.
	if err := st.ArchiveList(ctx, list.ID, 1, models.ArchivedReasonDeleted); err != nil {
		t.Fatalf("ArchiveList: %v", err)
	}
	if err := svc.Delete(ctx, category.ID, 1); err != nil {
		t.Errorf("delete after list removal: %v", err)
	}
}

func TestDeleteCategoryCountsExpiredLists(t *testing.T) {
	svc, st := setupCategoryService(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, 1, models.CreateCategoryRequest{Name: "Groceries"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	list := &models.List{OwnerID: 1, Name: "Weekly", Category: "Groceries", Priority: models.PriorityMedium}
	if err := st.CreateList(ctx, list); err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if err := st.ArchiveList(ctx, list.ID, 1, models.ArchivedReasonExpired); err != nil {
		t.Fatalf("ArchiveList: %v", err)
	}

	// Expired lists still reference the category.
	if err := svc.Delete(ctx, category.ID, 1); !IsConflict(err) {
		t.Errorf("delete with expired list: err = %v, want conflict", err)
	}
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	svc, _ := setupCategoryService(t)
	ctx := context.Background()

	first, err := svc.SeedDefaults(ctx, 1)
	if err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	if len(first) != len(defaultCategories) {
		t.Fatalf("seeded %d categories, want %d", len(first), len(defaultCategories))
	}

	second, err := svc.SeedDefaults(ctx, 1)
	if err != nil {
		t.Fatalf("SeedDefaults again: %v", err)
	}
	if len(second) != len(defaultCategories) {
		t.Errorf("after reseed %d categories, want %d", len(second), len(defaultCategories))
	}
	for _, c := range second {
		if !c.IsDefault {
			t.Errorf("category %q should carry the default flag", c.Name)
		}
	}
}

func TestUpdateListCountsRecomputes(t *testing.T) {
	svc, st := setupCategoryService(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, 1, models.CreateCategoryRequest{Name: "Groceries"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if category.ListCount != 0 {
		t.Fatalf("fresh category list_count = %d, want 0", category.ListCount)
	}

	for i := 0; i < 2; i++ {
		list := &models.List{OwnerID: 1, Name: "L", Category: "Groceries", Priority: models.PriorityMedium}
		if err := st.CreateList(ctx, list); err != nil {
			t.Fatalf("CreateList: %v", err)
		}
	}

	// Counts drift until recomputed.
	got, err := svc.Get(ctx, category.ID, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ListCount != 0 {
		t.Fatalf("list_count before recompute = %d, want 0", got.ListCount)
	}

	recomputed, err := svc.UpdateListCounts(ctx, 1)
	if err != nil {
		t.Fatalf("UpdateListCounts: %v", err)
	}
	if len(recomputed) != 1 || recomputed[0].ListCount != 2 {
		t.Errorf("recomputed = %+v, want list_count 2", recomputed)
	}
}

func TestRenameCategoryDoesNotCascade(t *testing.T) {
	svc, st := setupCategoryService(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, 1, models.CreateCategoryRequest{Name: "Groceries"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	list := &models.List{OwnerID: 1, Name: "Weekly", Category: "Groceries", Priority: models.PriorityMedium}
	if err := st.CreateList(ctx, list); err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	if _, err := svc.Update(ctx, category.ID, 1, models.UpdateCategoryRequest{Name: strPtr("Food")}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := st.GetList(ctx, list.ID, 1)
	if err != nil {
		t.Fatalf("GetList: %v", err)
	}
	if got.Category != "Groceries" {
		t.Errorf("list category = %q, renaming must not cascade", got.Category)
	}
}
