package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sunethdesoyza/lyst-backend/internal/config"
	"github.com/sunethdesoyza/lyst-backend/internal/models"
	"github.com/sunethdesoyza/lyst-backend/internal/store/memory"
	"github.com/sunethdesoyza/lyst-backend/internal/websocket"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment: "test",
		Port:        "0",
		Database:    config.DatabaseConfig{Driver: "memory"},
		JWT:         config.JWTConfig{Secret: "test-secret", ExpiresIn: "1h"},
		Sharing: config.SharingConfig{
			FrontendURL:   "http://localhost:3000",
			InvitationTTL: 30 * 24 * time.Hour,
		},
	}

	hub := websocket.NewHub()
	go hub.Run()

	return SetupRouter(memory.New(), cfg, hub)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func registerUser(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d body %s", rec.Code, rec.Body.String())
	}
	return decode[models.LoginResponse](t, rec).Token
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/lists", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status %d, want 401", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/lists", "not-a-jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status %d, want 401", rec.Code)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	router := setupRouter(t)
	registerUser(t, router, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email_or_username": "alice",
		"password":          "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email_or_username": "alice",
		"password":          "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status %d, want 401", rec.Code)
	}
}

// TestExpiryRecoveryFlow walks the full path: an expired list with one
// incomplete item is archived on read and the item surfaces under
// forgotten items.
func TestExpiryRecoveryFlow(t *testing.T) {
	router := setupRouter(t)
	token := registerUser(t, router, "bob")

	expiry := time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
	rec := doJSON(t, router, http.MethodPost, "/api/lists", token, gin.H{
		"name":        "Weekend shopping",
		"expiry_date": expiry,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create list: status %d body %s", rec.Code, rec.Body.String())
	}
	list := decode[models.List](t, rec)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/lists/%d/items", list.ID), token, gin.H{"name": "Milk"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add Milk: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/lists/%d/items", list.ID), token, gin.H{"name": "Bread"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add Bread: status %d body %s", rec.Code, rec.Body.String())
	}
	bread := decode[models.Item](t, rec)

	rec = doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/lists/%d/items/%s", list.ID, bread.ID), token, gin.H{"completed": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("complete Bread: status %d body %s", rec.Code, rec.Body.String())
	}

	// Reading the list triggers the sweep.
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/lists/%d", list.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get list: status %d body %s", rec.Code, rec.Body.String())
	}
	swept := decode[models.List](t, rec)
	if !swept.IsArchived {
		t.Error("expired list should come back archived")
	}
	if swept.ArchivedReason == nil || *swept.ArchivedReason != models.ArchivedReasonExpired {
		t.Errorf("archived_reason = %v, want EXPIRED", swept.ArchivedReason)
	}

	// FindAll filters the archived list out.
	rec = doJSON(t, router, http.MethodGet, "/api/lists", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get lists: status %d", rec.Code)
	}
	all := decode[map[string][]models.List](t, rec)
	if len(all["lists"]) != 0 {
		t.Errorf("active lists = %d, want 0", len(all["lists"]))
	}

	// Only the incomplete item was rescued.
	rec = doJSON(t, router, http.MethodGet, "/api/lists/forgotten-items", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("forgotten items: status %d body %s", rec.Code, rec.Body.String())
	}
	forgotten := decode[map[string][]models.ForgottenItem](t, rec)
	items := forgotten["forgotten_items"]
	if len(items) != 1 || items[0].Name != "Milk" {
		t.Fatalf("forgotten = %+v, want exactly Milk", items)
	}
	if items[0].OriginalListID != list.ID || items[0].OriginalListName != "Weekend shopping" {
		t.Errorf("snapshot fields = %+v", items[0])
	}

	// Reactivate brings the list and the item back.
	rec = doJSON(t, router, http.MethodPost, "/api/lists/forgotten-items/reactivate", token, gin.H{"list_id": list.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("reactivate: status %d body %s", rec.Code, rec.Body.String())
	}
	restored := decode[models.List](t, rec)
	if restored.IsArchived || len(restored.Items) != 1 || restored.Items[0].Name != "Milk" {
		t.Errorf("restored = %+v, want active with Milk", restored)
	}
}

func TestSharingFlow(t *testing.T) {
	router := setupRouter(t)
	owner := registerUser(t, router, "carol")
	guest := registerUser(t, router, "dave")

	rec := doJSON(t, router, http.MethodPost, "/api/lists", owner, gin.H{"name": "Party supplies"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create list: status %d", rec.Code)
	}
	list := decode[models.List](t, rec)

	rec = doJSON(t, router, http.MethodPost, "/api/sharing/share", owner, gin.H{
		"list_id": list.ID,
		"message": "bring snacks",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("share: status %d body %s", rec.Code, rec.Body.String())
	}
	share := decode[models.ShareListResponse](t, rec)

	// The invitation preview is reachable without a token.
	rec = doJSON(t, router, http.MethodGet, "/api/sharing/invitation/"+share.InvitationToken, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("invitation preview: status %d body %s", rec.Code, rec.Body.String())
	}
	preview := decode[models.InvitationPreview](t, rec)
	if preview.ListName != "Party supplies" || preview.OwnerName != "carol" {
		t.Errorf("preview = %+v", preview)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/sharing/accept", guest, gin.H{"token": share.InvitationToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("accept: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/sharing/received", guest, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("received: status %d", rec.Code)
	}
	received := decode[map[string][]models.SharedList](t, rec)
	if len(received["shared_lists"]) != 1 {
		t.Fatalf("received shares = %d, want 1", len(received["shared_lists"]))
	}

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/sharing/%d", share.ShareID), owner, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("revoke: status %d body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/sharing/received", guest, nil)
	received = decode[map[string][]models.SharedList](t, rec)
	if len(received["shared_lists"]) != 0 {
		t.Errorf("received shares after revoke = %d, want 0", len(received["shared_lists"]))
	}
}

func TestCategoryConflictOnDelete(t *testing.T) {
	router := setupRouter(t)
	token := registerUser(t, router, "erin")

	rec := doJSON(t, router, http.MethodPost, "/api/categories", token, gin.H{"name": "Groceries"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category: status %d body %s", rec.Code, rec.Body.String())
	}
	category := decode[models.Category](t, rec)

	rec = doJSON(t, router, http.MethodPost, "/api/categories", token, gin.H{"name": "Groceries"})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate category: status %d, want 409", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/lists", token, gin.H{"name": "Weekly", "category": "Groceries"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create list: status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/categories/%d", category.ID), token, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("delete in-use category: status %d, want 409", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health: status %d, want 200", rec.Code)
	}
}
