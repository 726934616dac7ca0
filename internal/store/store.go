// Package store abstracts persistence for lists, forgotten items,
// categories, shares and invitations. This keeps the service layer
// independent of the backend (Postgres in deployments, in-memory for
// tests and local development).
package store

import (
	"context"
	"errors"

	"github.com/sunethdesoyza/lyst-backend/internal/models"
)

// ErrNotFound is returned when a record does not exist within the
// caller's scope. Services translate it into their own taxonomy.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned on uniqueness violations, e.g. a second
// category with the same name for one owner.
var ErrDuplicate = errors.New("duplicate record")

type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByEmailOrUsername(ctx context.Context, emailOrUsername string) (*models.User, error)
	UserExists(ctx context.Context, username, email string) (bool, error)

	// Lists. UpdateList replaces the whole row, items included, in a
	// single statement; that is the store's atomic-document primitive.
	CreateList(ctx context.Context, list *models.List) error
	GetList(ctx context.Context, id, ownerID int) (*models.List, error)
	ListActiveLists(ctx context.Context, ownerID int) ([]models.List, error)
	UpdateList(ctx context.Context, list *models.List) error
	ArchiveList(ctx context.Context, id, ownerID int, reason string) error
	// CountListsByCategory counts the owner's lists tagged with the
	// category name, excluding lists archived by explicit deletion.
	CountListsByCategory(ctx context.Context, ownerID int, category string) (int, error)

	// Forgotten items
	CreateForgottenItems(ctx context.Context, items []models.ForgottenItem) error
	ListForgottenItems(ctx context.Context, ownerID int) ([]models.ForgottenItem, error)
	GetForgottenItemsByIDs(ctx context.Context, ownerID int, ids []int) ([]models.ForgottenItem, error)
	GetForgottenItemsByList(ctx context.Context, ownerID, listID int) ([]models.ForgottenItem, error)
	DeleteForgottenItems(ctx context.Context, ownerID int, ids []int) (int, error)
	DeleteForgottenItemsByList(ctx context.Context, ownerID, listID int) (int, error)

	// Categories
	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context, ownerID int) ([]models.Category, error)
	GetCategory(ctx context.Context, id, ownerID int) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id, ownerID int) error

	// Shares
	CreateShare(ctx context.Context, share *models.SharedList) error
	GetShareByID(ctx context.Context, id int) (*models.SharedList, error)
	GetActiveShareByList(ctx context.Context, listID, ownerID int) (*models.SharedList, error)
	GetShareByToken(ctx context.Context, token string) (*models.SharedList, error)
	UpdateShare(ctx context.Context, share *models.SharedList) error
	ListSharesByRecipient(ctx context.Context, recipient string) ([]models.SharedList, error)
	ListSharesByOwner(ctx context.Context, ownerID int) ([]models.SharedList, error)
	CountActiveSharesByList(ctx context.Context, listID int) (int, error)

	// Invitations
	CreateInvitation(ctx context.Context, inv *models.UserInvitation) error
	GetInvitationByToken(ctx context.Context, token string) (*models.UserInvitation, error)
	UpdateInvitation(ctx context.Context, inv *models.UserInvitation) error

	// WithTx runs fn against a transactional view of the store. All
	// writes made through the passed Store commit together or not at
	// all. The memory backend serializes the whole call instead.
	WithTx(ctx context.Context, fn func(Store) error) error

	Close()
}
