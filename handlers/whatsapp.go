package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinvetia/config"
	"clinvetia/services/whatsapp"
	"clinvetia/utils"
)

// WhatsAppHandler receives the channel's webhook traffic.
type WhatsAppHandler struct {
	Service whatsapp.Service
}

// NewWhatsAppHandler constructs a WhatsAppHandler.
func NewWhatsAppHandler(svc whatsapp.Service) *WhatsAppHandler {
	return &WhatsAppHandler{Service: svc}
}

// VerifyWebhook answers the subscription handshake: the challenge is echoed
// only when the verify token matches the configured secret.
func (h *WhatsAppHandler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token != "" && token == config.AppConfig.WhatsAppVerifyToken {
		c.String(http.StatusOK, challenge)
		return
	}
	c.String(http.StatusForbidden, "verification failed")
}

// webhookPayload is the inbound envelope of the Cloud-API-style transport.
type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					ID   string `json:"id"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// ReceiveWebhook processes inbound messages. The transport is always ACKed
// with 200: processing failures are logged, never surfaced to the channel.
func (h *WhatsAppHandler) ReceiveWebhook(c *gin.Context) {
	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		// Malformed or non-message event; ACK and move on.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	logger := utils.GetLogger()
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.Type != "text" || msg.From == "" || msg.Text.Body == "" {
					continue
				}
				if err := h.Service.HandleInbound(c.Request.Context(), msg.From, msg.ID, msg.Text.Body); err != nil {
					logger.Error("whatsapp webhook: inbound processing failed",
						zap.String("phone", msg.From), zap.Error(err))
				}
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
