package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinvetia/services/availability"
	"clinvetia/services/booking"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service      booking.Service
	Availability availability.Service
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc booking.Service, avail availability.Service) *BookingHandler {
	return &BookingHandler{Service: svc, Availability: avail}
}

// CreateBooking reserves a demo slot. The response carries the access token
// exactly once; it is never re-derivable.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	req.ClientIP = c.ClientIP()

	created, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetBooking reads a booking by id; the access token arrives as a query
// parameter or X-Access-Token header.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	accessToken := c.Query("accessToken")
	if accessToken == "" {
		accessToken = c.GetHeader("X-Access-Token")
	}

	view, err := h.Service.GetByID(c.Request.Context(), c.Param("id"), accessToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetBookingBySession reads the active booking of a browsing session.
func (h *BookingHandler) GetBookingBySession(c *gin.Context) {
	view, err := h.Service.GetBySession(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ExpireBooking terminates a booking on behalf of its token holder.
func (h *BookingHandler) ExpireBooking(c *gin.Context) {
	var req struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Service.Expire(c.Request.Context(), c.Param("id"), req.AccessToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "expired"})
}

// GetAvailability returns free and occupied slots for a calendar date.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	slots, err := h.Availability.DaySlots(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// BackfillMeetLinks is the admin maintenance endpoint deriving meeting links
// for bookings that lack one.
func (h *BookingHandler) BackfillMeetLinks(c *gin.Context) {
	updated, err := h.Service.BackfillMeetLinks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
