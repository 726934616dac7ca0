package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sunethdesoyza/lyst-backend/internal/models"
	"github.com/sunethdesoyza/lyst-backend/internal/store"
)

const listColumns = `id, owner_id, name, category, priority, expiry_date, color,
	 is_archived, archived_reason, is_shared, shared_with, items, created_at, updated_at`

func scanList(row pgx.Row) (*models.List, error) {
	var list models.List
	var sharedWith, items []byte
	err := row.Scan(
		&list.ID, &list.OwnerID, &list.Name, &list.Category, &list.Priority,
		&list.ExpiryDate, &list.Color, &list.IsArchived, &list.ArchivedReason,
		&list.IsShared, &sharedWith, &items, &list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sharedWith, &list.SharedWith); err != nil {
		return nil, fmt.Errorf("failed to decode shared_with: %w", err)
	}
	if err := json.Unmarshal(items, &list.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return &list, nil
}

func encodeListFields(list *models.List) (sharedWith, items []byte, err error) {
	if list.SharedWith == nil {
		list.SharedWith = []int{}
	}
	if list.Items == nil {
		list.Items = []models.Item{}
	}
	sharedWith, err = json.Marshal(list.SharedWith)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode shared_with: %w", err)
	}
	items, err = json.Marshal(list.Items)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode items: %w", err)
	}
	return sharedWith, items, nil
}

func (s *Store) CreateList(ctx context.Context, list *models.List) error {
	sharedWith, items, err := encodeListFields(list)
	if err != nil {
		return err
	}

	err = s.q.QueryRow(ctx,
		`INSERT INTO lists (owner_id, name, category, priority, expiry_date, color, shared_with, items)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		list.OwnerID, list.Name, list.Category, list.Priority, list.ExpiryDate,
		list.Color, sharedWith, items).Scan(&list.ID, &list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert list: %w", err)
	}
	return nil
}

func (s *Store) GetList(ctx context.Context, id, ownerID int) (*models.List, error) {
	list, err := scanList(s.q.QueryRow(ctx,
		`SELECT `+listColumns+` FROM lists WHERE id = $1 AND owner_id = $2`,
		id, ownerID))
	if err != nil {
		return nil, mapErr(err)
	}
	return list, nil
}

func (s *Store) ListActiveLists(ctx context.Context, ownerID int) ([]models.List, error) {
	rows, err := s.q.Query(ctx,
		`SELECT `+listColumns+` FROM lists WHERE owner_id = $1 AND NOT is_archived ORDER BY id`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	var lists []models.List
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, *list)
	}
	return lists, rows.Err()
}

// UpdateList replaces the whole list row in one statement, which is
// the atomic-document primitive the services rely on.
func (s *Store) UpdateList(ctx context.Context, list *models.List) error {
	sharedWith, items, err := encodeListFields(list)
	if err != nil {
		return err
	}

	tag, err := s.q.Exec(ctx,
		`UPDATE lists
		 SET name = $1, category = $2, priority = $3, expiry_date = $4, color = $5,
		     is_archived = $6, archived_reason = $7, is_shared = $8,
		     shared_with = $9, items = $10, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $11 AND owner_id = $12`,
		list.Name, list.Category, list.Priority, list.ExpiryDate, list.Color,
		list.IsArchived, list.ArchivedReason, list.IsShared,
		sharedWith, items, list.ID, list.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ArchiveList(ctx context.Context, id, ownerID int, reason string) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE lists
		 SET is_archived = TRUE, archived_reason = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND owner_id = $3`,
		reason, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to archive list: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CountListsByCategory(ctx context.Context, ownerID int, category string) (int, error) {
	var count int
	err := s.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM lists
		 WHERE owner_id = $1 AND category = $2
		   AND (archived_reason IS NULL OR archived_reason <> 'DELETED')`,
		ownerID, category).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count lists by category: %w", err)
	}
	return count, nil
}
