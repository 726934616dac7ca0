package service

import (
	"context"
	"testing"
	"time"

	"github.com/sunethdesoyza/lyst-backend/internal/models"
	"github.com/sunethdesoyza/lyst-backend/internal/store/memory"
)

func setupForgottenService(t *testing.T) (*ForgottenService, *memory.Store) {
	t.Helper()
	st := memory.New()
	svc := NewForgottenService(st)
	return svc, st
}

// seedForgotten stores forgotten items for the owner and returns them
// with ids assigned.
func seedForgotten(t *testing.T, st *memory.Store, ownerID, listID int, names ...string) []models.ForgottenItem {
	t.Helper()
	items := make([]models.ForgottenItem, 0, len(names))
	for _, name := range names {
		items = append(items, models.ForgottenItem{
			OwnerID:          ownerID,
			Name:             name,
			OriginalListID:   listID,
			OriginalListName: "Source list",
		})
	}
	if err := st.CreateForgottenItems(context.Background(), items); err != nil {
		t.Fatalf("CreateForgottenItems: %v", err)
	}
	stored, err := st.ListForgottenItems(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("ListForgottenItems: %v", err)
	}
	return stored
}

func TestDismissRequiresSelector(t *testing.T) {
	svc, _ := setupForgottenService(t)

	err := svc.Dismiss(context.Background(), 1, models.DismissRequest{})
	if !IsInvalidOperation(err) {
		t.Errorf("Dismiss with no selector: err = %v, want invalid operation", err)
	}
}

func TestDismissByIDs(t *testing.T) {
	svc, st := setupForgottenService(t)
	ctx := context.Background()

	items := seedForgotten(t, st, 1, 10, "Milk", "Eggs", "Butter")

	err := svc.Dismiss(ctx, 1, models.DismissRequest{ItemIDs: []int{items[0].ID, items[2].ID}})
	if err != nil {
		t.Fatalf("Dismiss: %v", err)
	}

	left, _ := st.ListForgottenItems(ctx, 1)
	if len(left) != 1 || left[0].Name != "Eggs" {
		t.Errorf("remaining = %+v, want only Eggs", left)
	}
}

func TestDismissByList(t *testing.T) {
	svc, st := setupForgottenService(t)
	ctx := context.Background()

	seedForgotten(t, st, 1, 10, "Milk")
	seedForgotten(t, st, 1, 20, "Nails")

	listID := 10
	if err := svc.Dismiss(ctx, 1, models.DismissRequest{ListID: &listID}); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}

	left, _ := st.ListForgottenItems(ctx, 1)
	if len(left) != 1 || left[0].OriginalListID != 20 {
		t.Errorf("remaining = %+v, want only the other list's item", left)
	}
}

func TestDismissScopedToOwner(t *testing.T) {
	svc, st := setupForgottenService(t)
	ctx := context.Background()

	items := seedForgotten(t, st, 1, 10, "Milk")

	// Another user dismissing by the same ids must not touch them.
	if err := svc.Dismiss(ctx, 2, models.DismissRequest{ItemIDs: []int{items[0].ID}}); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}

	left, _ := st.ListForgottenItems(ctx, 1)
	if len(left) != 1 {
		t.Errorf("owner's items = %d, want 1", len(left))
	}
}

func TestReactivateRestoresListAndConsumesItems(t *testing.T) {
	svc, st := setupForgottenService(t)
	ctx := context.Background()

	reason := models.ArchivedReasonExpired
	list := &models.List{
		OwnerID:        1,
		Name:           "Expired groceries",
		Priority:       models.PriorityMedium,
		IsArchived:     true,
		ArchivedReason: &reason,
		SharedWith:     []int{},
		Items:          []models.Item{},
	}
	if err := st.CreateList(ctx, list); err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	seedForgotten(t, st, 1, list.ID, "Milk", "Eggs")

	got, err := svc.Reactivate(ctx, 1, list.ID, nil)
	if err != nil {
		t.Fatalf("Reactivate: %v", err)
	}

	if got.IsArchived || got.ArchivedReason != nil {
		t.Error("reactivated list must not stay archived")
	}
	if len(got.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(got.Items))
	}
	for _, item := range got.Items {
		if item.Completed {
			t.Errorf("reactivated item %q must start incomplete", item.Name)
		}
	}

	left, _ := st.ListForgottenItems(ctx, 1)
	if len(left) != 0 {
		t.Errorf("forgotten items = %d after reactivate, want 0", len(left))
	}
}

func TestReactivateSubsetLeavesRest(t *testing.T) {
	svc, st := setupForgottenService(t)
	ctx := context.Background()

	list := &models.List{OwnerID: 1, Name: "Target", Priority: models.PriorityMedium, SharedWith: []int{}, Items: []models.Item{}}
	if err := st.CreateList(ctx, list); err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	items := seedForgotten(t, st, 1, list.ID, "Milk", "Eggs", "Butter")

	got, err := svc.Reactivate(ctx, 1, list.ID, []int{items[1].ID})
	if err != nil {
		t.Fatalf("Reactivate: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Name != "Eggs" {
		t.Errorf("items = %+v, want only Eggs", got.Items)
	}

	left, _ := st.ListForgottenItems(ctx, 1)
	if len(left) != 2 {
		t.Errorf("unselected items remaining = %d, want 2", len(left))
	}
}

func TestReactivateMissingList(t *testing.T) {
	svc, _ := setupForgottenService(t)

	_, err := svc.Reactivate(context.Background(), 1, 404, nil)
	if !IsNotFound(err) {
		t.Errorf("Reactivate: err = %v, want not found", err)
	}
}

func TestMoveToNewListPreservesSelectionOrder(t *testing.T) {
	svc, st := setupForgottenService(t)
	ctx := context.Background()

	items := seedForgotten(t, st, 1, 10, "Milk", "Eggs", "Butter")

	// Select in reverse of insertion order.
	got, err := svc.MoveToNewList(ctx, 1, []int{items[2].ID, items[0].ID}, "Rescued")
	if err != nil {
		t.Fatalf("MoveToNewList: %v", err)
	}

	if got.Name != "Rescued" || got.Priority != models.PriorityMedium {
		t.Errorf("new list = %q/%q, want Rescued/MEDIUM", got.Name, got.Priority)
	}
	if len(got.Items) != 2 || got.Items[0].Name != "Butter" || got.Items[1].Name != "Milk" {
		t.Errorf("items = %+v, want Butter then Milk", got.Items)
	}
	if got.ExpiryDate != nil {
		t.Error("new list must not inherit an expiry")
	}

	left, _ := st.ListForgottenItems(ctx, 1)
	if len(left) != 1 || left[0].Name != "Eggs" {
		t.Errorf("remaining = %+v, want only Eggs", left)
	}

	stored, err := st.GetList(ctx, got.ID, 1)
	if err != nil {
		t.Fatalf("GetList: %v", err)
	}
	if stored.IsArchived {
		t.Error("new list must be active")
	}
}

func TestMoveToNewListNoMatches(t *testing.T) {
	svc, st := setupForgottenService(t)
	ctx := context.Background()

	seedForgotten(t, st, 1, 10, "Milk")

	_, err := svc.MoveToNewList(ctx, 1, []int{999}, "Nothing")
	if !IsNotFound(err) {
		t.Errorf("MoveToNewList: err = %v, want not found", err)
	}

	lists, _ := st.ListActiveLists(ctx, 1)
	if len(lists) != 0 {
		t.Errorf("no list should be created, found %d", len(lists))
	}
}

func TestEndToEndExpiryRecovery(t *testing.T) {
	st := memory.New()
	lists := NewListService(st)
	forgotten := NewForgottenService(st)
	ctx := context.Background()

	expiry := time.Now().Add(-time.Hour)
	list, err := lists.Create(ctx, 1, models.CreateListRequest{Name: "Weekly", ExpiryDate: &expiry})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := lists.AddItem(ctx, list.ID, 1, models.CreateItemRequest{Name: "Milk"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	// The sweep fires on read and rescues the incomplete item.
	if _, err := lists.FindOne(ctx, list.ID, 1); err != nil {
		t.Fatalf("FindOne: %v", err)
	}

	rescued, err := forgotten.List(ctx, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rescued) != 1 || rescued[0].Name != "Milk" {
		t.Fatalf("rescued = %+v, want exactly Milk", rescued)
	}

	// Reactivating restores the original list with the item incomplete.
	restored, err := forgotten.Reactivate(ctx, 1, list.ID, nil)
	if err != nil {
		t.Fatalf("Reactivate: %v", err)
	}
	if restored.IsArchived || len(restored.Items) != 1 || restored.Items[0].Completed {
		t.Errorf("restored list = %+v, want active with one incomplete item", restored)
	}
}
