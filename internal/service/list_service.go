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

// ListService owns the list lifecycle: creation, updates, explicit
// archival and the lazy expiry sweep that converts an expired list's
// incomplete items into forgotten items.
type ListService struct {
	store store.Store
	now   func() time.Time
}

func NewListService(st store.Store) *ListService {
	return &ListService{store: st, now: time.Now}
}

func (s *ListService) Create(ctx context.Context, ownerID int, req models.CreateListRequest) (*models.List, error) {
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	list := &models.List{
		OwnerID:    ownerID,
		Name:       req.Name,
		Category:   req.Category,
		Priority:   priority,
		ExpiryDate: req.ExpiryDate,
		Color:      req.Color,
		SharedWith: []int{},
		Items:      []models.Item{},
	}
	if err := s.store.CreateList(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	return list, nil
}

// FindAll sweeps every active list for the owner, then re-queries so
// lists archived by the sweep drop out of the result.
func (s *ListService) FindAll(ctx context.Context, ownerID int) ([]models.List, error) {
	lists, err := s.store.ListActiveLists(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lists: %w", err)
	}

	for i := range lists {
		if err := s.sweep(ctx, &lists[i]); err != nil {
			return nil, err
		}
	}

	lists, err = s.store.ListActiveLists(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-fetch lists after sweep: %w", err)
	}
	return lists, nil
}

// FindOne sweeps the list and returns the re-fetched record. Unlike
// FindAll it does not filter archived results, so a just-expired list
// comes back with its archived flags set.
func (s *ListService) FindOne(ctx context.Context, id, ownerID int) (*models.List, error) {
	list, err := s.store.GetList(ctx, id, ownerID)
	if err != nil {
		return nil, notFoundOr(err, "failed to fetch list", "list not found")
	}

	if err := s.sweep(ctx, list); err != nil {
		return nil, err
	}

	list, err = s.store.GetList(ctx, id, ownerID)
	if err != nil {
		return nil, notFoundOr(err, "failed to re-fetch list after sweep", "list not found")
	}
	return list, nil
}

// sweep archives an expired list, first materializing its incomplete
// items as forgotten items. Completed items are dropped outright. The
// insert happens before the archive update: a crash in between
// self-heals on the next sweep, while the reverse order could lose
// items.
func (s *ListService) sweep(ctx context.Context, list *models.List) error {
	if list.IsArchived {
		return nil
	}
	if list.ExpiryDate == nil || list.ExpiryDate.After(s.now()) {
		return nil
	}

	var forgotten []models.ForgottenItem
	for _, item := range list.Items {
		if item.Completed {
			continue
		}
		forgotten = append(forgotten, models.ForgottenItem{
			OwnerID:          list.OwnerID,
			Name:             item.Name,
			Quantity:         item.Quantity,
			Notes:            item.Notes,
			OriginalListID:   list.ID,
			OriginalListName: list.Name,
			OriginalExpiry:   list.ExpiryDate,
		})
	}

	if len(forgotten) > 0 {
		if err := s.store.CreateForgottenItems(ctx, forgotten); err != nil {
			return fmt.Errorf("failed to create forgotten items: %w", err)
		}
		metrics.ForgottenItemsCreated.Add(float64(len(forgotten)))
	}

	// Items migrate out on expiry, so clearing the sequence and
	// setting the archive flags is one single-row update.
	reason := models.ArchivedReasonExpired
	list.Items = []models.Item{}
	list.IsArchived = true
	list.ArchivedReason = &reason
	if err := s.store.UpdateList(ctx, list); err != nil {
		return fmt.Errorf("failed to archive expired list: %w", err)
	}
	metrics.ListsArchived.WithLabelValues(models.ArchivedReasonExpired).Inc()

	slog.Info("list expired",
		"list_id", list.ID,
		"owner_id", list.OwnerID,
		"forgotten_items", len(forgotten),
	)
	return nil
}

func (s *ListService) Update(ctx context.Context, id, ownerID int, req models.UpdateListRequest) (*models.List, error) {
	list, err := s.store.GetList(ctx, id, ownerID)
	if err != nil {
		return nil, notFoundOr(err, "failed to fetch list", "list not found")
	}

	if req.Name != nil {
		list.Name = *req.Name
	}
	if req.Category != nil {
		list.Category = *req.Category
	}
	if req.Priority != nil {
		list.Priority = *req.Priority
	}
	if req.ExpiryDate != nil {
		list.ExpiryDate = req.ExpiryDate
	}
	if req.Color != nil {
		list.Color = *req.Color
	}

	if err := s.store.UpdateList(ctx, list); err != nil {
		return nil, notFoundOr(err, "failed to update list", "list not found")
	}
	return list, nil
}

// Archive is the explicit user deletion: reason DELETED regardless of
// expiry state, and never any forgotten-item creation.
func (s *ListService) Archive(ctx context.Context, id, ownerID int) error {
	if err := s.store.ArchiveList(ctx, id, ownerID, models.ArchivedReasonDeleted); err != nil {
		return notFoundOr(err, "failed to archive list", "list not found")
	}
	metrics.ListsArchived.WithLabelValues(models.ArchivedReasonDeleted).Inc()
	return nil
}

func (s *ListService) AddItem(ctx context.Context, listID, ownerID int, req models.CreateItemRequest) (*models.Item, error) {
	list, err := s.store.GetList(ctx, listID, ownerID)
	if err != nil {
		return nil, notFoundOr(err, "failed to fetch list", "list not found")
	}
	if list.IsArchived {
		return nil, InvalidOperationf("cannot add items to an archived list")
	}

	now := s.now()
	item := models.Item{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	list.Items = append(list.Items, item)

	if err := s.store.UpdateList(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}
	return &item, nil
}

func (s *ListService) UpdateItem(ctx context.Context, listID, ownerID int, itemID string, req models.UpdateItemRequest) (*models.Item, error) {
	list, err := s.store.GetList(ctx, listID, ownerID)
	if err != nil {
		return nil, notFoundOr(err, "failed to fetch list", "list not found")
	}

	idx := -1
	for i := range list.Items {
		if list.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, NotFoundf("item not found")
	}

	item := &list.Items[idx]
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Quantity != nil {
		item.Quantity = req.Quantity
	}
	if req.Notes != nil {
		item.Notes = req.Notes
	}
	if req.Completed != nil {
		item.Completed = *req.Completed
	}
	item.UpdatedAt = s.now()

	if err := s.store.UpdateList(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}
	return item, nil
}

func (s *ListService) DeleteItem(ctx context.Context, listID, ownerID int, itemID string) error {
	list, err := s.store.GetList(ctx, listID, ownerID)
	if err != nil {
		return notFoundOr(err, "failed to fetch list", "list not found")
	}

	kept := list.Items[:0]
	found := false
	for _, item := range list.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return NotFoundf("item not found")
	}
	list.Items = kept

	if err := s.store.UpdateList(ctx, list); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}
