package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/sunethdesoyza/lyst-backend/internal/auth"
	"github.com/sunethdesoyza/lyst-backend/internal/models"
	"github.com/sunethdesoyza/lyst-backend/internal/service"
	"github.com/sunethdesoyza/lyst-backend/internal/websocket"
)

type SharingHandler struct {
	sharing   *service.SharingService
	hub       *websocket.Hub
	validator *validator.Validate
}

func NewSharingHandler(sharing *service.SharingService, hub *websocket.Hub) *SharingHandler {
	return &SharingHandler{
		sharing:   sharing,
		hub:       hub,
		validator: validator.New(),
	}
}

func (h *SharingHandler) ShareList(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.ShareListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.sharing.ShareList(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *SharingHandler) AcceptShare(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.AcceptShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	share, err := h.sharing.AcceptShare(c.Request.Context(), userID, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.NotifyShareUpdate(share.OwnerID, share)
	c.JSON(http.StatusOK, share)
}

func (h *SharingHandler) GetSharedLists(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shares, err := h.sharing.GetSharedLists(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shared_lists": shares})
}

func (h *SharingHandler) GetMySharedLists(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shares, err := h.sharing.GetMySharedLists(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shared_lists": shares})
}

func (h *SharingHandler) RevokeShare(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shareID, err := strconv.Atoi(c.Param("shareId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid share ID"})
		return
	}

	share, err := h.sharing.RevokeShare(c.Request.Context(), shareID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if recipientID, err := strconv.Atoi(share.Recipient); err == nil {
		h.hub.NotifyShareUpdate(recipientID, gin.H{"revoked": true, "share_id": share.ID})
	}
	c.JSON(http.StatusOK, gin.H{"message": "Share revoked successfully"})
}

// GetInvitation is public so recipients can preview an invitation
// before registering or logging in.
func (h *SharingHandler) GetInvitation(c *gin.Context) {
	preview, err := h.sharing.GetInvitation(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}
