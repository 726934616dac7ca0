package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sunethdesoyza/lyst-backend/internal/models"
)

const forgottenColumns = `id, owner_id, name, quantity, notes, original_list_id,
	 original_list_name, original_expiry, created_at, updated_at`

func scanForgotten(row pgx.Row) (*models.ForgottenItem, error) {
	var item models.ForgottenItem
	err := row.Scan(
		&item.ID, &item.OwnerID, &item.Name, &item.Quantity, &item.Notes,
		&item.OriginalListID, &item.OriginalListName, &item.OriginalExpiry,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreateForgottenItems(ctx context.Context, items []models.ForgottenItem) error {
	for i := range items {
		err := s.q.QueryRow(ctx,
			`INSERT INTO forgotten_items
			 (owner_id, name, quantity, notes, original_list_id, original_list_name, original_expiry)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id, created_at, updated_at`,
			items[i].OwnerID, items[i].Name, items[i].Quantity, items[i].Notes,
			items[i].OriginalListID, items[i].OriginalListName, items[i].OriginalExpiry).Scan(
			&items[i].ID, &items[i].CreatedAt, &items[i].UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert forgotten item: %w", err)
		}
	}
	return nil
}

func (s *Store) forgottenQuery(ctx context.Context, query string, args ...any) ([]models.ForgottenItem, error) {
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query forgotten items: %w", err)
	}
	defer rows.Close()

	var items []models.ForgottenItem
	for rows.Next() {
		item, err := scanForgotten(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan forgotten item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *Store) ListForgottenItems(ctx context.Context, ownerID int) ([]models.ForgottenItem, error) {
	return s.forgottenQuery(ctx,
		`SELECT `+forgottenColumns+` FROM forgotten_items WHERE owner_id = $1 ORDER BY id`,
		ownerID)
}

func (s *Store) GetForgottenItemsByIDs(ctx context.Context, ownerID int, ids []int) ([]models.ForgottenItem, error) {
	return s.forgottenQuery(ctx,
		`SELECT `+forgottenColumns+` FROM forgotten_items
		 WHERE owner_id = $1 AND id = ANY($2) ORDER BY id`,
		ownerID, ids)
}

func (s *Store) GetForgottenItemsByList(ctx context.Context, ownerID, listID int) ([]models.ForgottenItem, error) {
	return s.forgottenQuery(ctx,
		`SELECT `+forgottenColumns+` FROM forgotten_items
		 WHERE owner_id = $1 AND original_list_id = $2 ORDER BY id`,
		ownerID, listID)
}

func (s *Store) DeleteForgottenItems(ctx context.Context, ownerID int, ids []int) (int, error) {
	tag, err := s.q.Exec(ctx,
		`DELETE FROM forgotten_items WHERE owner_id = $1 AND id = ANY($2)`,
		ownerID, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete forgotten items: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *Store) DeleteForgottenItemsByList(ctx context.Context, ownerID, listID int) (int, error) {
	tag, err := s.q.Exec(ctx,
		`DELETE FROM forgotten_items WHERE owner_id = $1 AND original_list_id = $2`,
		ownerID, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete forgotten items: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
