package models

import "time"

// List priorities.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Reasons a list can be archived.
const (
	ArchivedReasonDeleted = "DELETED"
	ArchivedReasonExpired = "EXPIRED"
)

type List struct {
	ID             int        `json:"id" db:"id"`
	OwnerID        int        `json:"owner_id" db:"owner_id"`
	Name           string     `json:"name" db:"name"`
	Category       string     `json:"category" db:"category"`
	Priority       string     `json:"priority" db:"priority"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty" db:"expiry_date"`
	Color          string     `json:"color" db:"color"`
	IsArchived     bool       `json:"is_archived" db:"is_archived"`
	ArchivedReason *string    `json:"archived_reason,omitempty" db:"archived_reason"`
	IsShared       bool       `json:"is_shared" db:"is_shared"`
	SharedWith     []int      `json:"shared_with" db:"shared_with"`
	Items          []Item     `json:"items" db:"items"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// Item lives embedded in its list's items column and is never
// addressable outside the owning list.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  *string   `json:"quantity,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateListRequest struct {
	Name       string     `json:"name" validate:"required,min=1,max=255"`
	Category   string     `json:"category" validate:"omitempty,max=100"`
	Priority   string     `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Color      string     `json:"color" validate:"omitempty,hexcolor"`
}

type UpdateListRequest struct {
	Name       *string    `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Category   *string    `json:"category,omitempty" validate:"omitempty,max=100"`
	Priority   *string    `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Color      *string    `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

type CreateItemRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=255"`
	Quantity *string `json:"quantity,omitempty" validate:"omitempty,max=50"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type UpdateItemRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Quantity  *string `json:"quantity,omitempty" validate:"omitempty,max=50"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=500"`
	Completed *bool   `json:"completed,omitempty"`
}
