package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinvetia/config"
	"clinvetia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeWireBookingField(t *testing.T) {
	t.Run("absent field keeps the caller's token", func(t *testing.T) {
		resp, err := decodeWire(wireResponse{Reply: "hola"})
		require.NoError(t, err)
		assert.False(t, resp.BookingSet)
		assert.Nil(t, resp.Booking)
	})

	t.Run("explicit null is a clear instruction", func(t *testing.T) {
		resp, err := decodeWire(wireResponse{Reply: "cancelada", Booking: json.RawMessage("null")})
		require.NoError(t, err)
		assert.True(t, resp.BookingSet)
		assert.Nil(t, resp.Booking)
	})

	t.Run("object populates the handle", func(t *testing.T) {
		raw := json.RawMessage(`{"bookingId":"b1","accessToken":"tok-1","date":"2026-09-01","time":"10:00","duration":30}`)
		resp, err := decodeWire(wireResponse{Reply: "reservado", Booking: raw})
		require.NoError(t, err)
		assert.True(t, resp.BookingSet)
		require.NotNil(t, resp.Booking)
		assert.Equal(t, "b1", resp.Booking.BookingID)
		assert.Equal(t, "tok-1", resp.Booking.AccessToken)
		assert.Equal(t, 30, resp.Booking.Duration)
	})

	t.Run("malformed object is an error", func(t *testing.T) {
		_, err := decodeWire(wireResponse{Booking: json.RawMessage(`{"duration":"thirty"}`)})
		require.Error(t, err)
	})
}

func TestHTTPBrainRespond(t *testing.T) {
	var received Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reply":"te propongo el martes","state":{"intent":"booking","step":"pick_slot"},"openRoiCalculator":false}`))
	}))
	defer srv.Close()

	config.AppConfig.AssistantURL = srv.URL
	brain := NewHTTPBrain()

	resp, err := brain.Respond(context.Background(), Request{
		Message:      "quiero una demo",
		State:        models.ConversationState{Intent: "greeting"},
		SessionToken: "sess-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "te propongo el martes", resp.Reply)
	assert.Equal(t, models.ConversationState{Intent: "booking", Step: "pick_slot"}, resp.State)
	assert.False(t, resp.BookingSet)

	assert.Equal(t, "quiero una demo", received.Message)
	assert.Equal(t, "sess-1", received.SessionToken)
}

func TestHTTPBrainRespondRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	config.AppConfig.AssistantURL = srv.URL
	brain := NewHTTPBrain()

	_, err := brain.Respond(context.Background(), Request{Message: "hola"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
