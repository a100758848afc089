package handlers

import (
	"net/http"
	"time"

	"github.com/Daniel-Moraes1/offer-watch/internal/auth"
	"github.com/Daniel-Moraes1/offer-watch/internal/dtos"
	"github.com/Daniel-Moraes1/offer-watch/internal/models"
	"github.com/Daniel-Moraes1/offer-watch/internal/store"
	"github.com/Daniel-Moraes1/offer-watch/internal/table"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ApplicationHandler serves the tracker table: list, upsert, delete.
type ApplicationHandler struct {
	Store  *store.Store
	Logger *zap.Logger
}

func NewApplicationHandler(st *store.Store, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{Store: st, Logger: logger}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// List is GET /applications. Optional ?sort=<column>&dir=asc|desc orders the
// result server-side with the table comparator; without params the rows come
// back in store-native order.
func (h *ApplicationHandler) List(c *gin.Context) {
	email := UserEmail(c)

	apps, err := h.Store.ListByOwner(c.Request.Context(), email)
	if err != nil {
		h.Logger.Error("listing applications failed", zap.String("owner", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load applications"})
		return
	}

	if column := c.Query("sort"); column != "" {
		if !table.ValidColumn(column) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sort column: " + column})
			return
		}
		dir := table.Direction(c.DefaultQuery("dir", string(table.Ascending)))
		if dir != table.Ascending && dir != table.Descending {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dir must be asc or desc"})
			return
		}
		apps = table.Sort(apps, column, dir)
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// Upsert is POST /applications. Every cell edit in the UI lands here, so it
// patches in place when the (email, company) key already exists.
func (h *ApplicationHandler) Upsert(c *gin.Context) {
	var req dtos.UpsertApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	app := &models.Application{
		Email:              UserEmail(c),
		Company:            req.Company,
		Role:               req.Role,
		Status:             req.Status,
		JobDescriptionLink: req.JobDescriptionLink,
		ApplicationDate:    req.ApplicationDate,
		DueDate:            req.DueDate,
		LastActionDate:     req.LastActionDate,
	}

	if err := h.Store.Upsert(c.Request.Context(), app); err != nil {
		if store.IsValidation(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.Logger.Error("upsert failed", zap.String("company", req.Company), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save application"})
		return
	}

	c.JSON(http.StatusOK, app)
}

// Delete is DELETE /applications. The token's email plus the request body
// form the delete key; deleting a record that is already gone succeeds.
func (h *ApplicationHandler) Delete(c *gin.Context) {
	var req dtos.DeleteApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	key := store.Key{
		Email:   UserEmail(c),
		Company: req.Company,
		Role:    req.Role,
	}
	if err := h.Store.Delete(c.Request.Context(), key); err != nil {
		h.Logger.Error("delete failed", zap.String("company", req.Company), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete application"})
		return
	}

	c.Status(http.StatusNoContent)
}

// TokenHandler stands in for the identity provider: it mints a session
// token for an email address. Real deployments put a provider in front.
type TokenHandler struct {
	Secret string
	TTL    time.Duration
}

func (h *TokenHandler) Mint(c *gin.Context) {
	var req dtos.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	token, err := auth.GenerateToken(h.Secret, req.Email, h.TTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mint token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
