package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sunethdesoyza/lyst-backend/internal/models"
	"github.com/sunethdesoyza/lyst-backend/internal/store"
)

const shareColumns = `sl.id, sl.list_id, sl.owner_id, sl.recipient, sl.status,
	 sl.invitation_token, sl.invitation_expiry, sl.is_active, sl.message,
	 sl.created_at, sl.updated_at`

func scanShare(row pgx.Row, withListName bool) (*models.SharedList, error) {
	var sh models.SharedList
	dest := []any{
		&sh.ID, &sh.ListID, &sh.OwnerID, &sh.Recipient, &sh.Status,
		&sh.InvitationToken, &sh.InvitationExpiry, &sh.IsActive, &sh.Message,
		&sh.CreatedAt, &sh.UpdatedAt,
	}
	if withListName {
		dest = append(dest, &sh.ListName)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &sh, nil
}

func (s *Store) CreateShare(ctx context.Context, share *models.SharedList) error {
	err := s.q.QueryRow(ctx,
		`INSERT INTO shared_lists
		 (list_id, owner_id, recipient, status, invitation_token, invitation_expiry, is_active, message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		share.ListID, share.OwnerID, share.Recipient, share.Status,
		share.InvitationToken, share.InvitationExpiry, share.IsActive,
		share.Message).Scan(&share.ID, &share.CreatedAt, &share.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert share: %w", err)
	}
	return nil
}

func (s *Store) GetShareByID(ctx context.Context, id int) (*models.SharedList, error) {
	sh, err := scanShare(s.q.QueryRow(ctx,
		`SELECT `+shareColumns+` FROM shared_lists sl WHERE sl.id = $1`, id), false)
	if err != nil {
		return nil, mapErr(err)
	}
	return sh, nil
}

func (s *Store) GetActiveShareByList(ctx context.Context, listID, ownerID int) (*models.SharedList, error) {
	sh, err := scanShare(s.q.QueryRow(ctx,
		`SELECT `+shareColumns+` FROM shared_lists sl
		 WHERE sl.list_id = $1 AND sl.owner_id = $2 AND sl.is_active
		 ORDER BY sl.id LIMIT 1`,
		listID, ownerID), false)
	if err != nil {
		return nil, mapErr(err)
	}
	return sh, nil
}

func (s *Store) GetShareByToken(ctx context.Context, token string) (*models.SharedList, error) {
	sh, err := scanShare(s.q.QueryRow(ctx,
		`SELECT `+shareColumns+` FROM shared_lists sl
		 WHERE sl.invitation_token = $1
		 ORDER BY sl.id DESC LIMIT 1`, token), false)
	if err != nil {
		return nil, mapErr(err)
	}
	return sh, nil
}

func (s *Store) UpdateShare(ctx context.Context, share *models.SharedList) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE shared_lists
		 SET recipient = $1, status = $2, invitation_token = $3, invitation_expiry = $4,
		     is_active = $5, message = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		share.Recipient, share.Status, share.InvitationToken, share.InvitationExpiry,
		share.IsActive, share.Message, share.ID)
	if err != nil {
		return fmt.Errorf("failed to update share: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) shareQuery(ctx context.Context, query string, args ...any) ([]models.SharedList, error) {
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shares: %w", err)
	}
	defer rows.Close()

	var shares []models.SharedList
	for rows.Next() {
		sh, err := scanShare(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, *sh)
	}
	return shares, rows.Err()
}

func (s *Store) ListSharesByRecipient(ctx context.Context, recipient string) ([]models.SharedList, error) {
	return s.shareQuery(ctx,
		`SELECT `+shareColumns+`, l.name
		 FROM shared_lists sl JOIN lists l ON sl.list_id = l.id
		 WHERE sl.recipient = $1 AND sl.is_active AND sl.status = 'ACCEPTED'
		 ORDER BY sl.id`,
		recipient)
}

func (s *Store) ListSharesByOwner(ctx context.Context, ownerID int) ([]models.SharedList, error) {
	return s.shareQuery(ctx,
		`SELECT `+shareColumns+`, l.name
		 FROM shared_lists sl JOIN lists l ON sl.list_id = l.id
		 WHERE sl.owner_id = $1 AND sl.is_active
		 ORDER BY sl.id`,
		ownerID)
}

func (s *Store) CountActiveSharesByList(ctx context.Context, listID int) (int, error) {
	var count int
	err := s.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM shared_lists WHERE list_id = $1 AND is_active`,
		listID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active shares: %w", err)
	}
	return count, nil
}

func (s *Store) CreateInvitation(ctx context.Context, inv *models.UserInvitation) error {
	err := s.q.QueryRow(ctx,
		`INSERT INTO user_invitations
		 (token, contact, contact_type, inviter_id, status, expires_at, accepted_by, message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		inv.Token, inv.Contact, inv.ContactType, inv.InviterID, inv.Status,
		inv.ExpiresAt, inv.AcceptedBy, inv.Message).Scan(
		&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return mapErr(err)
	}
	return nil
}

func (s *Store) GetInvitationByToken(ctx context.Context, token string) (*models.UserInvitation, error) {
	var inv models.UserInvitation
	err := s.q.QueryRow(ctx,
		`SELECT id, token, contact, contact_type, inviter_id, status, expires_at,
		 accepted_by, message, created_at, updated_at
		 FROM user_invitations WHERE token = $1`,
		token).Scan(&inv.ID, &inv.Token, &inv.Contact, &inv.ContactType,
		&inv.InviterID, &inv.Status, &inv.ExpiresAt, &inv.AcceptedBy,
		&inv.Message, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &inv, nil
}

func (s *Store) UpdateInvitation(ctx context.Context, inv *models.UserInvitation) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE user_invitations
		 SET status = $1, accepted_by = $2, message = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		inv.Status, inv.AcceptedBy, inv.Message, inv.ID)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
