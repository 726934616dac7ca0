package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sunethdesoyza/lyst-backend/internal/metrics"
	"github.com/sunethdesoyza/lyst-backend/internal/models"
	"github.com/sunethdesoyza/lyst-backend/internal/store"
)

// ForgottenService recovers items that the expiry sweep rescued from
// expired lists: dismiss them, push them back into an existing list,
// or move them into a brand-new list.
type ForgottenService struct {
	store store.Store
	now   func() time.Time
}

func NewForgottenService(st store.Store) *ForgottenService {
	return &ForgottenService{store: st, now: time.Now}
}

func (s *ForgottenService) List(ctx context.Context, ownerID int) ([]models.ForgottenItem, error) {
	items, err := s.store.ListForgottenItems(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forgotten items: %w", err)
	}
	return items, nil
}

// Dismiss deletes the selected forgotten items. The boundary layer
// enforces exactly one selector; the empty-selector case is still
// rejected here so the engine cannot bulk-delete by accident.
func (s *ForgottenService) Dismiss(ctx context.Context, ownerID int, req models.DismissRequest) error {
	if req.ListID == nil && len(req.ItemIDs) == 0 {
		return InvalidOperationf("dismiss requires either list_id or item_ids")
	}

	var (
		deleted int
		err     error
	)
	if req.ListID != nil {
		deleted, err = s.store.DeleteForgottenItemsByList(ctx, ownerID, *req.ListID)
	} else {
		deleted, err = s.store.DeleteForgottenItems(ctx, ownerID, req.ItemIDs)
	}
	if err != nil {
		return fmt.Errorf("failed to dismiss forgotten items: %w", err)
	}

	metrics.ForgottenItemsRecovered.WithLabelValues("dismissed").Add(float64(deleted))
	slog.Info("forgotten items dismissed", "owner_id", ownerID, "count", deleted)
	return nil
}

// Reactivate appends the selected forgotten items back onto the target
// list, un-archives it and deletes the consumed records. The whole
// sequence runs in one transaction so a partial failure cannot
// duplicate items on retry.
func (s *ForgottenService) Reactivate(ctx context.Context, ownerID, listID int, itemIDs []int) (*models.List, error) {
	var result *models.List

	err := s.store.WithTx(ctx, func(tx store.Store) error {
		list, err := tx.GetList(ctx, listID, ownerID)
		if err != nil {
			return notFoundOr(err, "failed to fetch target list", "list not found")
		}

		selected, err := tx.GetForgottenItemsByList(ctx, ownerID, listID)
		if err != nil {
			return fmt.Errorf("failed to fetch forgotten items: %w", err)
		}
		if len(itemIDs) > 0 {
			wanted := make(map[int]bool, len(itemIDs))
			for _, id := range itemIDs {
				wanted[id] = true
			}
			narrowed := selected[:0]
			for _, f := range selected {
				if wanted[f.ID] {
					narrowed = append(narrowed, f)
				}
			}
			selected = narrowed
		}

		now := s.now()
		consumed := make([]int, 0, len(selected))
		for _, f := range selected {
			list.Items = append(list.Items, models.Item{
				ID:        uuid.NewString(),
				Name:      f.Name,
				Quantity:  f.Quantity,
				Notes:     f.Notes,
				Completed: false,
				CreatedAt: now,
				UpdatedAt: now,
			})
			consumed = append(consumed, f.ID)
		}

		list.IsArchived = false
		list.ArchivedReason = nil
		if err := tx.UpdateList(ctx, list); err != nil {
			return fmt.Errorf("failed to update target list: %w", err)
		}

		if len(consumed) > 0 {
			if _, err := tx.DeleteForgottenItems(ctx, ownerID, consumed); err != nil {
				return fmt.Errorf("failed to delete consumed forgotten items: %w", err)
			}
		}

		metrics.ForgottenItemsRecovered.WithLabelValues("reactivated").Add(float64(len(consumed)))
		result = list
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("forgotten items reactivated",
		"owner_id", ownerID,
		"list_id", listID,
		"count", len(result.Items),
	)
	return result, nil
}

// MoveToNewList creates a minimal new list populated from the selected
// forgotten items and deletes the consumed records, transactionally.
func (s *ForgottenService) MoveToNewList(ctx context.Context, ownerID int, itemIDs []int, name string) (*models.List, error) {
	var result *models.List

	err := s.store.WithTx(ctx, func(tx store.Store) error {
		found, err := tx.GetForgottenItemsByIDs(ctx, ownerID, itemIDs)
		if err != nil {
			return fmt.Errorf("failed to fetch forgotten items: %w", err)
		}
		if len(found) == 0 {
			return NotFoundf("no forgotten items found for the given ids")
		}

		// Preserve the caller's selection order.
		byID := make(map[int]models.ForgottenItem, len(found))
		for _, f := range found {
			byID[f.ID] = f
		}

		now := s.now()
		list := &models.List{
			OwnerID:    ownerID,
			Name:       name,
			Priority:   models.PriorityMedium,
			SharedWith: []int{},
			Items:      []models.Item{},
		}
		consumed := make([]int, 0, len(found))
		for _, id := range itemIDs {
			f, ok := byID[id]
			if !ok {
				continue
			}
			list.Items = append(list.Items, models.Item{
				ID:        uuid.NewString(),
				Name:      f.Name,
				Quantity:  f.Quantity,
				Notes:     f.Notes,
				Completed: false,
				CreatedAt: now,
				UpdatedAt: now,
			})
			consumed = append(consumed, f.ID)
		}

		if err := tx.CreateList(ctx, list); err != nil {
			return fmt.Errorf("failed to create new list: %w", err)
		}
		if _, err := tx.DeleteForgottenItems(ctx, ownerID, consumed); err != nil {
			return fmt.Errorf("failed to delete consumed forgotten items: %w", err)
		}

		metrics.ForgottenItemsRecovered.WithLabelValues("moved").Add(float64(len(consumed)))
		result = list
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("forgotten items moved to new list",
		"owner_id", ownerID,
		"list_id", result.ID,
		"count", len(result.Items),
	)
	return result, nil
}
