package models

import "time"

// ForgottenItem is an incomplete item rescued from an expired list.
// The original* fields are value snapshots taken at rescue time; the
// source list may be deleted later without affecting them.
type ForgottenItem struct {
	ID               int        `json:"id" db:"id"`
	OwnerID          int        `json:"owner_id" db:"owner_id"`
	Name             string     `json:"name" db:"name"`
	Quantity         *string    `json:"quantity,omitempty" db:"quantity"`
	Notes            *string    `json:"notes,omitempty" db:"notes"`
	OriginalListID   int        `json:"original_list_id" db:"original_list_id"`
	OriginalListName string     `json:"original_list_name" db:"original_list_name"`
	OriginalExpiry   *time.Time `json:"original_expiry,omitempty" db:"original_expiry"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// DismissRequest selects forgotten items either by origin list or by
// explicit ids. Exactly one selector must be set.
type DismissRequest struct {
	ListID  *int  `json:"list_id,omitempty"`
	ItemIDs []int `json:"item_ids,omitempty"`
}

type ReactivateRequest struct {
	ListID  int   `json:"list_id" validate:"required"`
	ItemIDs []int `json:"item_ids,omitempty"`
}

type MoveToNewListRequest struct {
	ItemIDs []int  `json:"item_ids" validate:"required,min=1"`
	Name    string `json:"name" validate:"required,min=1,max=255"`
}
