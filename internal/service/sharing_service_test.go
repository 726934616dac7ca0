package service

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/sunethdesoyza/lyst-backend/internal/models"
	"github.com/sunethdesoyza/lyst-backend/internal/store/memory"
)

const testFrontendURL = "http://localhost:3000"

func setupSharingService(t *testing.T) (*SharingService, *memory.Store) {
	t.Helper()
	st := memory.New()
	svc := NewSharingService(st, testFrontendURL, 30*24*time.Hour)
	return svc, st
}

func seedList(t *testing.T, st *memory.Store, ownerID int, name string) *models.List {
	t.Helper()
	list := &models.List{
		OwnerID:    ownerID,
		Name:       name,
		Priority:   models.PriorityMedium,
		SharedWith: []int{},
		Items:      []models.Item{},
	}
	if err := st.CreateList(context.Background(), list); err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	return list
}

func TestShareListMintsInvitation(t *testing.T) {
	svc, st := setupSharingService(t)
	ctx := context.Background()

	list := seedList(t, st, 1, "Groceries")

	resp, err := svc.ShareList(ctx, 1, models.ShareListRequest{ListID: list.ID, Message: "have a look"})
	if err != nil {
		t.Fatalf("ShareList: %v", err)
	}
	if resp.InvitationToken == "" {
		t.Fatal("expected a non-empty invitation token")
	}
	if !strings.HasPrefix(resp.SharingLink, testFrontendURL+"/shared/") {
		t.Errorf("sharing link = %q, want it under %s/shared/", resp.SharingLink, testFrontendURL)
	}

	share, err := st.GetShareByID(ctx, resp.ShareID)
	if err != nil {
		t.Fatalf("GetShareByID: %v", err)
	}
	if share.Status != models.ShareStatusPending || !share.IsActive {
		t.Errorf("share = %q/active=%v, want PENDING and active", share.Status, share.IsActive)
	}
	if share.Recipient != resp.InvitationToken {
		t.Error("pending share recipient should hold the invitation token")
	}

	got, _ := st.GetList(ctx, list.ID, 1)
	if !got.IsShared {
		t.Error("shared list should carry the shared flag")
	}
}

func TestShareListNotOwned(t *testing.T) {
	svc, st := setupSharingService(t)
	ctx := context.Background()

	list := seedList(t, st, 1, "Private")

	_, err := svc.ShareList(ctx, 2, models.ShareListRequest{ListID: list.ID})
	if !IsInvalidOperation(err) {
		t.Errorf("ShareList by non-owner: err = %v, want invalid operation", err)
	}
}

func TestReShareReturnsSameToken(t *testing.T) {
	svc, st := setupSharingService(t)
	ctx := context.Background()

	list := seedList(t, st, 1, "Groceries")

	first, err := svc.ShareList(ctx, 1, models.ShareListRequest{ListID: list.ID, Message: "first"})
	if err != nil {
		t.Fatalf("ShareList: %v", err)
	}
	second, err := svc.ShareList(ctx, 1, models.ShareListRequest{ListID: list.ID, Message: "second"})
	if err != nil {
		t.Fatalf("ShareList again: %v", err)
	}

	if first.InvitationToken != second.InvitationToken {
		t.Error("re-sharing without a revoke must reuse the existing token")
	}
	if first.ShareID != second.ShareID {
		t.Error("re-sharing must not create a second share record")
	}

	share, _ := st.GetShareByID(ctx, first.ShareID)
	if share.Message != "second" {
		t.Errorf("message = %q, want the updated one", share.Message)
	}
}

func TestAcceptShareTransitions(t *testing.T) {
	svc, st := setupSharingService(t)
	ctx := context.Background()

	list := seedList(t, st, 1, "Groceries")
	resp, err := svc.ShareList(ctx, 1, models.ShareListRequest{ListID: list.ID})
	if err != nil {
		t.Fatalf("ShareList: %v", err)
	}

	share, err := svc.AcceptShare(ctx, 7, resp.InvitationToken)
	if err != nil {
		t.Fatalf("AcceptShare: %v", err)
	}
	if share.Status != models.ShareStatusAccepted {
		t.Errorf("share status = %q, want ACCEPTED", share.Status)
	}
	if share.Recipient != strconv.Itoa(7) {
		t.Errorf("recipient = %q, want the accepting user id", share.Recipient)
	}

	invitation, err := st.GetInvitationByToken(ctx, resp.InvitationToken)
	if err != nil {
		t.Fatalf("GetInvitationByToken: %v", err)
	}
	if invitation.Status != models.InvitationStatusAccepted {
		t.Errorf("invitation status = %q, want ACCEPTED", invitation.Status)
	}
	if invitation.AcceptedBy == nil || *invitation.AcceptedBy != 7 {
		t.Errorf("accepted_by = %v, want 7", invitation.AcceptedBy)
	}

	got, _ := st.GetList(ctx, list.ID, 1)
	if len(got.SharedWith) != 1 || got.SharedWith[0] != 7 {
		t.Errorf("shared_with = %v, want [7]", got.SharedWith)
	}

	// The accepted share now shows up for the recipient.
	received, err := svc.GetSharedLists(ctx, 7)
	if err != nil {
		t.Fatalf("GetSharedLists: %v", err)
	}
	if len(received) != 1 || received[0].ListName != "Groceries" {
		t.Errorf("received = %+v, want one share with the list name joined", received)
	}
}

func TestAcceptShareTwice(t *testing.T) {
	svc, st := setupSharingService(t)
	ctx := context.Background()

	list := seedList(t, st, 1, "Groceries")
	resp, err := svc.ShareList(ctx, 1, models.ShareListRequest{ListID: list.ID})
	if err != nil {
		t.Fatalf("ShareList: %v", err)
	}

	if _, err := svc.AcceptShare(ctx, 7, resp.InvitationToken); err != nil {
		t.Fatalf("AcceptShare: %v", err)
	}
	if _, err := svc.AcceptShare(ctx, 8, resp.InvitationToken); !IsNotFound(err) {
		t.Errorf("second accept: err = %v, want not found", err)
	}
}

func TestAcceptExpiredInvitation(t *testing.T) {
	svc, st := setupSharingService(t)
	ctx := context.Background()

	list := seedList(t, st, 1, "Groceries")
	resp, err := svc.ShareList(ctx, 1, models.ShareListRequest{ListID: list.ID})
	if err != nil {
		t.Fatalf("ShareList: %v", err)
	}

	// Move the service clock past the invitation TTL.
	svc.now = func() time.Time { return time.Now().Add(31 * 24 * time.Hour) }

	if _, err := svc.AcceptShare(ctx, 7, resp.InvitationToken); !IsNotFound(err) {
		t.Errorf("accept after expiry: err = %v, want not found", err)
	}
}

func TestAcceptUnknownToken(t *testing.T) {
	svc, _ := setupSharingService(t)

	if _, err := svc.AcceptShare(context.Background(), 7, "deadbeef"); !IsNotFound(err) {
		t.Errorf("accept unknown token: err = %v, want not found", err)
	}
}

func TestRevokeShareByNonOwner(t *testing.T) {
	svc, st := setupSharingService(t)
	ctx := context.Background()

	list := seedList(t, st, 1, "Groceries")
	resp, err := svc.ShareList(ctx, 1, models.ShareListRequest{ListID: list.ID})
	if err != nil {
		t.Fatalf("ShareList: %v", err)
	}

	if _, err := svc.RevokeShare(ctx, resp.ShareID, 2); !IsInvalidOperation(err) {
		t.Errorf("revoke by non-owner: err = %v, want invalid operation", err)
	}

	share, _ := st.GetShareByID(ctx, resp.ShareID)
	if !share.IsActive {
		t.Error("failed revoke must leave the share untouched")
	}
}

func TestRevokeLastShareClearsListFlag(t *testing.T) {
	svc, st := setupSharingService(t)
	ctx := context.Background()

	list := seedList(t, st, 1, "Groceries")
	resp, err := svc.ShareList(ctx, 1, models.ShareListRequest{ListID: list.ID})
	if err != nil {
		t.Fatalf("ShareList: %v", err)
	}
	if _, err := svc.AcceptShare(ctx, 7, resp.InvitationToken); err != nil {
		t.Fatalf("AcceptShare: %v", err)
	}

	revoked, err := svc.RevokeShare(ctx, resp.ShareID, 1)
	if err != nil {
		t.Fatalf("RevokeShare: %v", err)
	}
	if revoked.IsActive || revoked.Status != models.ShareStatusExpired {
		t.Errorf("revoked share = %q/active=%v, want EXPIRED and inactive", revoked.Status, revoked.IsActive)
	}

	got, _ := st.GetList(ctx, list.ID, 1)
	if got.IsShared || len(got.SharedWith) != 0 {
		t.Errorf("list after last revoke: shared=%v shared_with=%v, want cleared", got.IsShared, got.SharedWith)
	}

	// The token is now dead.
	if _, err := svc.AcceptShare(ctx, 8, resp.InvitationToken); !IsNotFound(err) {
		t.Errorf("accept after revoke: err = %v, want not found", err)
	}

	// A fresh share mints a new token.
	again, err := svc.ShareList(ctx, 1, models.ShareListRequest{ListID: list.ID})
	if err != nil {
		t.Fatalf("ShareList after revoke: %v", err)
	}
	if again.InvitationToken == resp.InvitationToken {
		t.Error("share after revoke must mint a new token")
	}
}

func TestGetInvitationPreview(t *testing.T) {
	svc, st := setupSharingService(t)
	ctx := context.Background()

	owner := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	if err := st.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	list := seedList(t, st, owner.ID, "Groceries")

	resp, err := svc.ShareList(ctx, owner.ID, models.ShareListRequest{ListID: list.ID, Message: "join me"})
	if err != nil {
		t.Fatalf("ShareList: %v", err)
	}

	preview, err := svc.GetInvitation(ctx, resp.InvitationToken)
	if err != nil {
		t.Fatalf("GetInvitation: %v", err)
	}
	if preview.ListName != "Groceries" || preview.OwnerName != "alice" || preview.Message != "join me" {
		t.Errorf("preview = %+v", preview)
	}

	if _, err := svc.GetInvitation(ctx, "deadbeef"); !IsNotFound(err) {
		t.Errorf("preview of unknown token: err = %v, want not found", err)
	}
}
