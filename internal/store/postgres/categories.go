package postgres

import (
	"context"
	"fmt"

	"github.com/sunethdesoyza/lyst-backend/internal/models"
	"github.com/sunethdesoyza/lyst-backend/internal/store"
)

const categoryColumns = `id, owner_id, name, color, list_count, is_default, created_at, updated_at`

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	err := s.q.QueryRow(ctx,
		`INSERT INTO categories (owner_id, name, color, list_count, is_default)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		category.OwnerID, category.Name, category.Color, category.ListCount,
		category.IsDefault).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *Store) ListCategories(ctx context.Context, ownerID int) ([]models.Category, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE owner_id = $1 ORDER BY id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Color, &c.ListCount,
			&c.IsDefault, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) GetCategory(ctx context.Context, id, ownerID int) (*models.Category, error) {
	var c models.Category
	err := s.q.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND owner_id = $2`,
		id, ownerID).Scan(&c.ID, &c.OwnerID, &c.Name, &c.Color, &c.ListCount,
		&c.IsDefault, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (s *Store) UpdateCategory(ctx context.Context, category *models.Category) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE categories
		 SET name = $1, color = $2, list_count = $3, is_default = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5 AND owner_id = $6`,
		category.Name, category.Color, category.ListCount, category.IsDefault,
		category.ID, category.OwnerID)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id, ownerID int) error {
	tag, err := s.q.Exec(ctx,
		`DELETE FROM categories WHERE id = $1 AND owner_id = $2`,
		id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
