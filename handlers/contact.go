package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinvetia/services/contact"
)

// ContactHandler exposes the lead/contact binder over HTTP.
type ContactHandler struct {
	Service contact.Service
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(svc contact.Service) *ContactHandler {
	return &ContactHandler{Service: svc}
}

// CreateContact inserts a submitted lead form.
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req contact.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// DeleteContact removes a lead after running the cleanup cascade.
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
