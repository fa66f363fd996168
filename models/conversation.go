package models

import "time"

// ROI question steps for the WhatsApp sub-flow, in the order they are asked.
const (
	ROIStepMonthlyPatients = "monthlyPatients"
	ROIStepAverageTicket   = "averageTicket"
	ROIStepConversionLoss  = "conversionLoss"
)

// ConversationState mirrors the webchat assistant's state machine.
type ConversationState struct {
	Intent string `bson:"intent" json:"intent"`
	Step   string `bson:"step" json:"step"`
}

// ROIDraft holds partially collected ROI answers while the sub-flow runs.
type ROIDraft struct {
	MonthlyPatients *float64 `bson:"monthlyPatients,omitempty" json:"monthlyPatients,omitempty"`
	AverageTicket   *float64 `bson:"averageTicket,omitempty" json:"averageTicket,omitempty"`
	ConversionLoss  *float64 `bson:"conversionLoss,omitempty" json:"conversionLoss,omitempty"`
}

// WhatsAppConversation is the per-phone-number conversational state. It is
// upserted on every inbound message and never explicitly deleted; idle
// conversations simply stop being updated.
type WhatsAppConversation struct {
	Phone          string            `bson:"phone" json:"phone"`
	State          ConversationState `bson:"state" json:"state"`
	SessionToken   string            `bson:"sessionToken,omitempty" json:"sessionToken,omitempty"`
	BookingToken   string            `bson:"bookingToken,omitempty" json:"bookingToken,omitempty"` // == booking accessToken
	ROIStep        string            `bson:"roiStep,omitempty" json:"roiStep,omitempty"`
	ROIDraft       ROIDraft          `bson:"roiDraft,omitempty" json:"roiDraft,omitempty"`
	LastInboundAt  time.Time         `bson:"lastInboundAt" json:"lastInboundAt"`
	LastOutboundAt time.Time         `bson:"lastOutboundAt" json:"lastOutboundAt"`
}
