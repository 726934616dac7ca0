// Package memory is a map-backed store.Store used by the tests and by
// STORAGE_DRIVER=memory for local development. Data lives for the
// process lifetime only.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sunethdesoyza/lyst-backend/internal/models"
	"github.com/sunethdesoyza/lyst-backend/internal/store"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	mu sync.RWMutex
	// txMu serializes WithTx blocks against each other.
	txMu sync.Mutex

	users       map[int]*models.User
	lists       map[int]*models.List
	forgotten   map[int]*models.ForgottenItem
	categories  map[int]*models.Category
	shares      map[int]*models.SharedList
	invitations map[int]*models.UserInvitation

	nextUserID       int
	nextListID       int
	nextForgottenID  int
	nextCategoryID   int
	nextShareID      int
	nextInvitationID int
}

func New() *Store {
	return &Store{
		users:       make(map[int]*models.User),
		lists:       make(map[int]*models.List),
		forgotten:   make(map[int]*models.ForgottenItem),
		categories:  make(map[int]*models.Category),
		shares:      make(map[int]*models.SharedList),
		invitations: make(map[int]*models.UserInvitation),
	}
}

func (s *Store) Close() {}

// WithTx serializes the block against other transactions. Writes apply
// immediately; the memory backend has no rollback, which the tests do
// not depend on.
func (s *Store) WithTx(ctx context.Context, fn func(store.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}

// Users

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	s.nextUserID++
	user.ID = s.nextUserID
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) GetUserByEmailOrUsername(ctx context.Context, emailOrUsername string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(emailOrUsername)
	for _, u := range s.users {
		if strings.ToLower(u.Email) == needle || strings.ToLower(u.Username) == needle {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UserExists(ctx context.Context, username, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// Lists

func copyList(l *models.List) *models.List {
	cp := *l
	cp.Items = append([]models.Item(nil), l.Items...)
	cp.SharedWith = append([]int(nil), l.SharedWith...)
	return &cp
}

func (s *Store) CreateList(ctx context.Context, list *models.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextListID++
	list.ID = s.nextListID
	now := time.Now()
	list.CreatedAt = now
	list.UpdatedAt = now
	if list.Items == nil {
		list.Items = []models.Item{}
	}
	s.lists[list.ID] = copyList(list)
	return nil
}

func (s *Store) GetList(ctx context.Context, id, ownerID int) (*models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.lists[id]
	if !ok || l.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	return copyList(l), nil
}

func (s *Store) ListActiveLists(ctx context.Context, ownerID int) ([]models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.List
	for _, l := range s.lists {
		if l.OwnerID == ownerID && !l.IsArchived {
			out = append(out, *copyList(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateList(ctx context.Context, list *models.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.lists[list.ID]
	if !ok || existing.OwnerID != list.OwnerID {
		return store.ErrNotFound
	}
	list.CreatedAt = existing.CreatedAt
	list.UpdatedAt = time.Now()
	s.lists[list.ID] = copyList(list)
	return nil
}

func (s *Store) ArchiveList(ctx context.Context, id, ownerID int, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lists[id]
	if !ok || l.OwnerID != ownerID {
		return store.ErrNotFound
	}
	l.IsArchived = true
	r := reason
	l.ArchivedReason = &r
	l.UpdatedAt = time.Now()
	return nil
}

func (s *Store) CountListsByCategory(ctx context.Context, ownerID int, category string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, l := range s.lists {
		if l.OwnerID != ownerID || l.Category != category {
			continue
		}
		if l.ArchivedReason != nil && *l.ArchivedReason == models.ArchivedReasonDeleted {
			continue
		}
		count++
	}
	return count, nil
}

// Forgotten items

func (s *Store) CreateForgottenItems(ctx context.Context, items []models.ForgottenItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for i := range items {
		s.nextForgottenID++
		items[i].ID = s.nextForgottenID
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
		cp := items[i]
		s.forgotten[cp.ID] = &cp
	}
	return nil
}

func (s *Store) ListForgottenItems(ctx context.Context, ownerID int) ([]models.ForgottenItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.ForgottenItem
	for _, f := range s.forgotten {
		if f.OwnerID == ownerID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetForgottenItemsByIDs(ctx context.Context, ownerID int, ids []int) ([]models.ForgottenItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.ForgottenItem
	for _, id := range ids {
		if f, ok := s.forgotten[id]; ok && f.OwnerID == ownerID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (s *Store) GetForgottenItemsByList(ctx context.Context, ownerID, listID int) ([]models.ForgottenItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.ForgottenItem
	for _, f := range s.forgotten {
		if f.OwnerID == ownerID && f.OriginalListID == listID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) DeleteForgottenItems(ctx context.Context, ownerID int, ids []int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for _, id := range ids {
		if f, ok := s.forgotten[id]; ok && f.OwnerID == ownerID {
			delete(s.forgotten, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) DeleteForgottenItemsByList(ctx context.Context, ownerID, listID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for id, f := range s.forgotten {
		if f.OwnerID == ownerID && f.OriginalListID == listID {
			delete(s.forgotten, id)
			deleted++
		}
	}
	return deleted, nil
}

// Categories

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.OwnerID == category.OwnerID && c.Name == category.Name {
			return store.ErrDuplicate
		}
	}
	s.nextCategoryID++
	category.ID = s.nextCategoryID
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now
	cp := *category
	s.categories[category.ID] = &cp
	return nil
}

func (s *Store) ListCategories(ctx context.Context, ownerID int) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Category
	for _, c := range s.categories {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetCategory(ctx context.Context, id, ownerID int) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok || c.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *Store) UpdateCategory(ctx context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.categories[category.ID]
	if !ok || existing.OwnerID != category.OwnerID {
		return store.ErrNotFound
	}
	for _, c := range s.categories {
		if c.ID != category.ID && c.OwnerID == category.OwnerID && c.Name == category.Name {
			return store.ErrDuplicate
		}
	}
	category.CreatedAt = existing.CreatedAt
	category.UpdatedAt = time.Now()
	cp := *category
	s.categories[category.ID] = &cp
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id, ownerID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok || c.OwnerID != ownerID {
		return store.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

// Shares

func (s *Store) CreateShare(ctx context.Context, share *models.SharedList) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextShareID++
	share.ID = s.nextShareID
	now := time.Now()
	share.CreatedAt = now
	share.UpdatedAt = now
	cp := *share
	s.shares[share.ID] = &cp
	return nil
}

func (s *Store) GetShareByID(ctx context.Context, id int) (*models.SharedList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sh, ok := s.shares[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *sh
	return &cp, nil
}

func (s *Store) GetActiveShareByList(ctx context.Context, listID, ownerID int) (*models.SharedList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sh := range s.shares {
		if sh.ListID == listID && sh.OwnerID == ownerID && sh.IsActive {
			cp := *sh
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetShareByToken(ctx context.Context, token string) (*models.SharedList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sh := range s.shares {
		if sh.InvitationToken == token {
			cp := *sh
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdateShare(ctx context.Context, share *models.SharedList) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.shares[share.ID]
	if !ok {
		return store.ErrNotFound
	}
	share.CreatedAt = existing.CreatedAt
	share.UpdatedAt = time.Now()
	cp := *share
	s.shares[share.ID] = &cp
	return nil
}

func (s *Store) ListSharesByRecipient(ctx context.Context, recipient string) ([]models.SharedList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.SharedList
	for _, sh := range s.shares {
		if sh.Recipient == recipient && sh.IsActive && sh.Status == models.ShareStatusAccepted {
			cp := *sh
			if l, ok := s.lists[sh.ListID]; ok {
				cp.ListName = l.Name
			}
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListSharesByOwner(ctx context.Context, ownerID int) ([]models.SharedList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.SharedList
	for _, sh := range s.shares {
		if sh.OwnerID == ownerID && sh.IsActive {
			cp := *sh
			if l, ok := s.lists[sh.ListID]; ok {
				cp.ListName = l.Name
			}
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CountActiveSharesByList(ctx context.Context, listID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, sh := range s.shares {
		if sh.ListID == listID && sh.IsActive {
			count++
		}
	}
	return count, nil
}

// Invitations

func (s *Store) CreateInvitation(ctx context.Context, inv *models.UserInvitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.invitations {
		if existing.Token == inv.Token {
			return store.ErrDuplicate
		}
	}
	s.nextInvitationID++
	inv.ID = s.nextInvitationID
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	cp := *inv
	s.invitations[inv.ID] = &cp
	return nil
}

func (s *Store) GetInvitationByToken(ctx context.Context, token string) (*models.UserInvitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.invitations {
		if inv.Token == token {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdateInvitation(ctx context.Context, inv *models.UserInvitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.invitations[inv.ID]
	if !ok {
		return store.ErrNotFound
	}
	inv.CreatedAt = existing.CreatedAt
	inv.UpdatedAt = time.Now()
	cp := *inv
	s.invitations[inv.ID] = &cp
	return nil
}
