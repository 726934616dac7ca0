package models

import "time"

// Share and invitation statuses.
const (
	ShareStatusPending  = "PENDING"
	ShareStatusAccepted = "ACCEPTED"
	ShareStatusDeclined = "DECLINED"
	ShareStatusExpired  = "EXPIRED"

	InvitationStatusPending   = "PENDING"
	InvitationStatusAccepted  = "ACCEPTED"
	InvitationStatusExpired   = "EXPIRED"
	InvitationStatusCancelled = "CANCELLED"
)

// SharedList tracks one grant of a list from its owner to a recipient.
// Recipient holds the invitation token while the share is PENDING and
// the accepting user's id (as a string) once ACCEPTED.
type SharedList struct {
	ID               int        `json:"id" db:"id"`
	ListID           int        `json:"list_id" db:"list_id"`
	OwnerID          int        `json:"owner_id" db:"owner_id"`
	Recipient        string     `json:"recipient" db:"recipient"`
	Status           string     `json:"status" db:"status"`
	InvitationToken  string     `json:"invitation_token" db:"invitation_token"`
	InvitationExpiry *time.Time `json:"invitation_expiry,omitempty" db:"invitation_expiry"`
	IsActive         bool       `json:"is_active" db:"is_active"`
	Message          string     `json:"message" db:"message"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`

	// Joined fields
	ListName string `json:"list_name,omitempty"`
}

type UserInvitation struct {
	ID          int        `json:"id" db:"id"`
	Token       string     `json:"token" db:"token"`
	Contact     string     `json:"contact" db:"contact"`
	ContactType string     `json:"contact_type" db:"contact_type"`
	InviterID   int        `json:"inviter_id" db:"inviter_id"`
	Status      string     `json:"status" db:"status"`
	ExpiresAt   time.Time  `json:"expires_at" db:"expires_at"`
	AcceptedBy  *int       `json:"accepted_by,omitempty" db:"accepted_by"`
	Message     string     `json:"message" db:"message"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type ShareListRequest struct {
	ListID  int    `json:"list_id" validate:"required"`
	Message string `json:"message" validate:"omitempty,max=500"`
}

type AcceptShareRequest struct {
	Token string `json:"token" validate:"required"`
}

type ShareListResponse struct {
	ShareID              int    `json:"share_id"`
	InvitationToken      string `json:"invitation_token"`
	SharingLink          string `json:"sharing_link"`
	ShareMessageTemplate string `json:"share_message_template"`
}

// InvitationPreview is the public (pre-registration) view of a pending
// invitation, resolved by bearer token alone.
type InvitationPreview struct {
	Token     string    `json:"token"`
	ListName  string    `json:"list_name"`
	OwnerName string    `json:"owner_name"`
	Message   string    `json:"message,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}
