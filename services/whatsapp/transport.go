package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"clinvetia/config"
)

// Transport sends outbound text messages over the WhatsApp channel.
type Transport interface {
	SendText(ctx context.Context, to, body string) error
}

// CloudAPIClient implements Transport against the Graph-API-style endpoint.
type CloudAPIClient struct {
	apiURL      string
	phoneID     string
	accessToken string
	client      *http.Client
}

// NewCloudAPIClient constructs a transport from the loaded config.
func NewCloudAPIClient() *CloudAPIClient {
	return &CloudAPIClient{
		apiURL:      config.AppConfig.WhatsAppAPIURL,
		phoneID:     config.AppConfig.WhatsAppPhoneID,
		accessToken: config.AppConfig.WhatsAppAccessToken,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type outboundText struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

// SendText posts one text message to the phone number.
func (c *CloudAPIClient) SendText(ctx context.Context, to, body string) error {
	msg := outboundText{MessagingProduct: "whatsapp", To: to, Type: "text"}
	msg.Text.Body = body

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding outbound message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.apiURL, c.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building outbound request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("transport returned status %d", resp.StatusCode)
	}
	return nil
}
