package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinvetia/services/roi"
)

// ROIHandler exposes the ROI session store over HTTP.
type ROIHandler struct {
	Sessions roi.SessionService
}

// NewROIHandler constructs an ROIHandler.
func NewROIHandler(sessions roi.SessionService) *ROIHandler {
	return &ROIHandler{Sessions: sessions}
}

// CreateSession mints a token-addressable ROI snapshot.
func (h *ROIHandler) CreateSession(c *gin.Context) {
	var req struct {
		roi.Input
		ProofToken string `json:"proofToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Sessions.CreateVerified(c.Request.Context(), req.Input, req.ProofToken, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetSession resolves a session token. An expired session answers 410 so the
// client can offer "start over" instead of "nothing here".
func (h *ROIHandler) GetSession(c *gin.Context) {
	session, err := h.Sessions.Read(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
