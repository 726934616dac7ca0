package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sunethdesoyza/lyst-backend/internal/models"
	"github.com/sunethdesoyza/lyst-backend/internal/store"
)

// defaultCategories seeds a fresh account. Names that already exist
// for the owner are skipped.
var defaultCategories = []models.Category{
	{Name: "Groceries", Color: "#4CAF50", IsDefault: true},
	{Name: "Household", Color: "#2196F3", IsDefault: true},
	{Name: "Work", Color: "#FF9800", IsDefault: true},
	{Name: "Personal", Color: "#9C27B0", IsDefault: true},
}

// CategoryService manages user-scoped named categories. Lists refer to
// categories by name, not id, so renaming a category deliberately does
// not cascade to lists already tagged with the old name.
type CategoryService struct {
	store store.Store
}

func NewCategoryService(st store.Store) *CategoryService {
	return &CategoryService{store: st}
}

func (s *CategoryService) Create(ctx context.Context, ownerID int, req models.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		OwnerID: ownerID,
		Name:    req.Name,
		Color:   req.Color,
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, Conflictf("category %q already exists", req.Name)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, ownerID int) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id, ownerID int) (*models.Category, error) {
	category, err := s.store.GetCategory(ctx, id, ownerID)
	if err != nil {
		return nil, notFoundOr(err, "failed to fetch category", "category not found")
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id, ownerID int, req models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.store.GetCategory(ctx, id, ownerID)
	if err != nil {
		return nil, notFoundOr(err, "failed to fetch category", "category not found")
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}

	if err := s.store.UpdateCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, Conflictf("category %q already exists", category.Name)
		}
		return nil, notFoundOr(err, "failed to update category", "category not found")
	}
	return category, nil
}

// Delete refuses to remove a category that any of the owner's lists
// still reference. The check queries live at delete time instead of
// trusting the stored counter, which can be stale between recomputes.
func (s *CategoryService) Delete(ctx context.Context, id, ownerID int) error {
	category, err := s.store.GetCategory(ctx, id, ownerID)
	if err != nil {
		return notFoundOr(err, "failed to fetch category", "category not found")
	}

	inUse, err := s.store.CountListsByCategory(ctx, ownerID, category.Name)
	if err != nil {
		return fmt.Errorf("failed to count lists using category: %w", err)
	}
	if inUse > 0 {
		return Conflictf("category %q is used by %d list(s)", category.Name, inUse)
	}

	if err := s.store.DeleteCategory(ctx, id, ownerID); err != nil {
		return notFoundOr(err, "failed to delete category", "category not found")
	}
	return nil
}

// SeedDefaults creates the default category set, skipping names the
// owner already has.
func (s *CategoryService) SeedDefaults(ctx context.Context, ownerID int) ([]models.Category, error) {
	for _, def := range defaultCategories {
		category := def
		category.OwnerID = ownerID
		if err := s.store.CreateCategory(ctx, &category); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				continue
			}
			return nil, fmt.Errorf("failed to seed default category: %w", err)
		}
	}
	return s.List(ctx, ownerID)
}

// UpdateListCounts recomputes every stored list_count for the owner.
// Counts are not maintained on list writes, so they drift until this
// runs.
func (s *CategoryService) UpdateListCounts(ctx context.Context, ownerID int) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	for i := range categories {
		count, err := s.store.CountListsByCategory(ctx, ownerID, categories[i].Name)
		if err != nil {
			return nil, fmt.Errorf("failed to count lists for category: %w", err)
		}
		if count == categories[i].ListCount {
			continue
		}
		categories[i].ListCount = count
		if err := s.store.UpdateCategory(ctx, &categories[i]); err != nil {
			return nil, fmt.Errorf("failed to store recomputed list count: %w", err)
		}
	}
	return categories, nil
}
