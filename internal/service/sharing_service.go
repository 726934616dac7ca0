package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/sunethdesoyza/lyst-backend/internal/metrics"
	"github.com/sunethdesoyza/lyst-backend/internal/models"
	"github.com/sunethdesoyza/lyst-backend/internal/store"
)

// SharingService drives the share/invitation state machine: a list
// owner mints a single-use invitation link, a recipient accepts it, and
// the owner can revoke access at any point.
type SharingService struct {
	store         store.Store
	frontendURL   string
	invitationTTL time.Duration
	now           func() time.Time
}

func NewSharingService(st store.Store, frontendURL string, invitationTTL time.Duration) *SharingService {
	return &SharingService{
		store:         st,
		frontendURL:   frontendURL,
		invitationTTL: invitationTTL,
		now:           time.Now,
	}
}

// newInvitationToken mints the bearer credential for a pending share.
// It must be unpredictable: until the recipient registers, the token
// alone grants access to the invitation preview.
func newInvitationToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invitation token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func (s *SharingService) response(share *models.SharedList, listName string) *models.ShareListResponse {
	link := fmt.Sprintf("%s/shared/%s", s.frontendURL, share.InvitationToken)
	return &models.ShareListResponse{
		ShareID:              share.ID,
		InvitationToken:      share.InvitationToken,
		SharingLink:          link,
		ShareMessageTemplate: fmt.Sprintf("I shared my list %q with you: %s", listName, link),
	}
}

// ShareList creates a pending share for the owner's list. Re-sharing a
// list that already has an active share updates its message in place
// and returns the existing token, so repeated calls hand out one link.
func (s *SharingService) ShareList(ctx context.Context, ownerID int, req models.ShareListRequest) (*models.ShareListResponse, error) {
	list, err := s.store.GetList(ctx, req.ListID, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, InvalidOperationf("you can only share lists you own")
		}
		return nil, fmt.Errorf("failed to fetch list: %w", err)
	}

	existing, err := s.store.GetActiveShareByList(ctx, req.ListID, ownerID)
	if err == nil {
		existing.Message = req.Message
		if err := s.store.UpdateShare(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update existing share: %w", err)
		}
		return s.response(existing, list.Name), nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up existing share: %w", err)
	}

	token, err := newInvitationToken()
	if err != nil {
		return nil, err
	}
	expiry := s.now().Add(s.invitationTTL)

	invitation := &models.UserInvitation{
		Token:       token,
		ContactType: "link",
		InviterID:   ownerID,
		Status:      models.InvitationStatusPending,
		ExpiresAt:   expiry,
		Message:     req.Message,
	}
	if err := s.store.CreateInvitation(ctx, invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	share := &models.SharedList{
		ListID:           req.ListID,
		OwnerID:          ownerID,
		Recipient:        token,
		Status:           models.ShareStatusPending,
		InvitationToken:  token,
		InvitationExpiry: &expiry,
		IsActive:         true,
		Message:          req.Message,
	}
	if err := s.store.CreateShare(ctx, share); err != nil {
		return nil, fmt.Errorf("failed to create share: %w", err)
	}

	if !list.IsShared {
		list.IsShared = true
		if err := s.store.UpdateList(ctx, list); err != nil {
			return nil, fmt.Errorf("failed to mark list as shared: %w", err)
		}
	}

	metrics.SharesCreated.Inc()
	slog.Info("list shared", "list_id", req.ListID, "owner_id", ownerID, "share_id", share.ID)
	return s.response(share, list.Name), nil
}

// AcceptShare resolves a pending invitation token for the accepting
// user. Invitation and share transition to ACCEPTED in lockstep and
// the user joins the list's shared-with set. Expired, cancelled or
// already-accepted tokens all surface as NotFound.
func (s *SharingService) AcceptShare(ctx context.Context, userID int, token string) (*models.SharedList, error) {
	invitation, err := s.store.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, notFoundOr(err, "failed to fetch invitation", "invitation not found")
	}
	if invitation.Status != models.InvitationStatusPending || s.now().After(invitation.ExpiresAt) {
		return nil, NotFoundf("invitation not found")
	}

	share, err := s.store.GetShareByToken(ctx, token)
	if err != nil {
		return nil, notFoundOr(err, "failed to fetch share", "invitation not found")
	}
	if share.Status != models.ShareStatusPending {
		return nil, NotFoundf("invitation not found")
	}

	err = s.store.WithTx(ctx, func(tx store.Store) error {
		invitation.Status = models.InvitationStatusAccepted
		invitation.AcceptedBy = &userID
		if err := tx.UpdateInvitation(ctx, invitation); err != nil {
			return fmt.Errorf("failed to accept invitation: %w", err)
		}

		share.Status = models.ShareStatusAccepted
		share.Recipient = strconv.Itoa(userID)
		if err := tx.UpdateShare(ctx, share); err != nil {
			return fmt.Errorf("failed to accept share: %w", err)
		}

		list, err := tx.GetList(ctx, share.ListID, share.OwnerID)
		if err != nil {
			return fmt.Errorf("failed to fetch shared list: %w", err)
		}
		alreadyMember := false
		for _, id := range list.SharedWith {
			if id == userID {
				alreadyMember = true
				break
			}
		}
		if !alreadyMember {
			list.SharedWith = append(list.SharedWith, userID)
			if err := tx.UpdateList(ctx, list); err != nil {
				return fmt.Errorf("failed to add user to shared list: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SharesAccepted.Inc()
	slog.Info("share accepted", "share_id", share.ID, "user_id", userID)
	return share, nil
}

// GetSharedLists returns the accepted, still-active shares where the
// caller is the recipient.
func (s *SharingService) GetSharedLists(ctx context.Context, userID int) ([]models.SharedList, error) {
	shares, err := s.store.ListSharesByRecipient(ctx, strconv.Itoa(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch received shares: %w", err)
	}
	return shares, nil
}

// GetMySharedLists returns every active share the caller has handed
// out, pending or accepted.
func (s *SharingService) GetMySharedLists(ctx context.Context, ownerID int) ([]models.SharedList, error) {
	shares, err := s.store.ListSharesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sent shares: %w", err)
	}
	return shares, nil
}

// RevokeShare deactivates a share. Revoking the last active share of a
// list also clears the list's shared flag and shared-with set.
func (s *SharingService) RevokeShare(ctx context.Context, shareID, ownerID int) (*models.SharedList, error) {
	share, err := s.store.GetShareByID(ctx, shareID)
	if err != nil {
		return nil, notFoundOr(err, "failed to fetch share", "share not found")
	}
	if share.OwnerID != ownerID {
		return nil, InvalidOperationf("you can only revoke shares you own")
	}

	share.IsActive = false
	share.Status = models.ShareStatusExpired
	if err := s.store.UpdateShare(ctx, share); err != nil {
		return nil, fmt.Errorf("failed to revoke share: %w", err)
	}

	remaining, err := s.store.CountActiveSharesByList(ctx, share.ListID)
	if err != nil {
		return nil, fmt.Errorf("failed to count remaining shares: %w", err)
	}
	if remaining == 0 {
		list, err := s.store.GetList(ctx, share.ListID, ownerID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch list after revoke: %w", err)
		}
		list.IsShared = false
		list.SharedWith = []int{}
		if err := s.store.UpdateList(ctx, list); err != nil {
			return nil, fmt.Errorf("failed to clear shared flag: %w", err)
		}
	}

	metrics.SharesRevoked.Inc()
	slog.Info("share revoked", "share_id", shareID, "owner_id", ownerID)
	return share, nil
}

// GetInvitation is the public, pre-registration lookup of a pending
// invitation by its bearer token.
func (s *SharingService) GetInvitation(ctx context.Context, token string) (*models.InvitationPreview, error) {
	invitation, err := s.store.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, notFoundOr(err, "failed to fetch invitation", "invitation not found")
	}
	if invitation.Status != models.InvitationStatusPending || s.now().After(invitation.ExpiresAt) {
		return nil, NotFoundf("invitation not found")
	}

	share, err := s.store.GetShareByToken(ctx, token)
	if err != nil {
		return nil, notFoundOr(err, "failed to fetch share", "invitation not found")
	}

	list, err := s.store.GetList(ctx, share.ListID, share.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shared list: %w", err)
	}

	ownerName := ""
	if owner, err := s.store.GetUserByID(ctx, share.OwnerID); err == nil {
		ownerName = owner.Username
	}

	return &models.InvitationPreview{
		Token:     token,
		ListName:  list.Name,
		OwnerName: ownerName,
		Message:   invitation.Message,
		ExpiresAt: invitation.ExpiresAt,
	}, nil
}
