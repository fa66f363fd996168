// Package assistant wraps the external chat-assistant brain. The brain itself
// lives outside this core; only its request/response contract is modeled here.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"clinvetia/config"
	"clinvetia/models"
)

// Booking is the booking handle the brain may attach to a reply.
type Booking struct {
	BookingID   string `json:"bookingId"`
	AccessToken string `json:"accessToken"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    int    `json:"duration"`
}

// Request is one inbound user message plus the caller's conversational state.
type Request struct {
	Message      string                   `json:"message"`
	State        models.ConversationState `json:"state"`
	SessionToken string                   `json:"sessionToken,omitempty"`
	BookingToken string                   `json:"bookingToken,omitempty"`
}

// Response is the brain's reply. BookingSet distinguishes an absent booking
// field (keep the current token) from an explicit null (clear it).
type Response struct {
	Reply             string
	State             models.ConversationState
	OpenROICalculator bool
	OpenCalendar      bool
	Booking           *Booking
	BookingSet        bool
}

type wireResponse struct {
	Reply             string                   `json:"reply"`
	State             models.ConversationState `json:"state"`
	OpenROICalculator bool                     `json:"openRoiCalculator"`
	OpenCalendar      bool                     `json:"openCalendar"`
	Booking           json.RawMessage          `json:"booking"`
}

// Brain is the chat-assistant collaborator interface.
type Brain interface {
	Respond(ctx context.Context, req Request) (*Response, error)
}

// HTTPBrain calls the assistant over its REST endpoint.
type HTTPBrain struct {
	url    string
	client *http.Client
}

// NewHTTPBrain constructs a brain client from the loaded config.
func NewHTTPBrain() *HTTPBrain {
	return &HTTPBrain{
		url:    config.AppConfig.AssistantURL,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Respond forwards the message and relays the brain's decision.
func (b *HTTPBrain) Respond(ctx context.Context, req Request) (*Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding assistant request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building assistant request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling assistant: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("assistant returned status %d", resp.StatusCode)
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decoding assistant response: %w", err)
	}
	return decodeWire(wire)
}

func decodeWire(wire wireResponse) (*Response, error) {
	out := &Response{
		Reply:             wire.Reply,
		State:             wire.State,
		OpenROICalculator: wire.OpenROICalculator,
		OpenCalendar:      wire.OpenCalendar,
	}
	if len(wire.Booking) > 0 {
		out.BookingSet = true
		if string(wire.Booking) != "null" {
			var b Booking
			if err := json.Unmarshal(wire.Booking, &b); err != nil {
				return nil, fmt.Errorf("decoding assistant booking: %w", err)
			}
			out.Booking = &b
		}
	}
	return out, nil
}
