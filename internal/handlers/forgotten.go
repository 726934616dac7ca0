package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/sunethdesoyza/lyst-backend/internal/auth"
	"github.com/sunethdesoyza/lyst-backend/internal/models"
	"github.com/sunethdesoyza/lyst-backend/internal/service"
)

type ForgottenHandler struct {
	forgotten *service.ForgottenService
	validator *validator.Validate
}

func NewForgottenHandler(forgotten *service.ForgottenService) *ForgottenHandler {
	return &ForgottenHandler{
		forgotten: forgotten,
		validator: validator.New(),
	}
}

func (h *ForgottenHandler) GetForgottenItems(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	items, err := h.forgotten.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"forgotten_items": items})
}

func (h *ForgottenHandler) DismissForgottenItems(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.DismissRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Exactly one selector: either a source list or an explicit id set.
	if (req.ListID == nil) == (len(req.ItemIDs) == 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide either list_id or item_ids"})
		return
	}

	if err := h.forgotten.Dismiss(c.Request.Context(), userID, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Forgotten items dismissed"})
}

func (h *ForgottenHandler) ReactivateItems(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.ReactivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.forgotten.Reactivate(c.Request.Context(), userID, req.ListID, req.ItemIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ForgottenHandler) MoveToNewList(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.MoveToNewListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.forgotten.MoveToNewList(c.Request.Context(), userID, req.ItemIDs, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, list)
}
