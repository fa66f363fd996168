// Package whatsapp drives the conversational booking flow: a per-phone-number
// state machine that walks users through the ROI questions, then hands off to
// the chat-assistant brain for the booking dialogue.
package whatsapp

import (
	"context"
	"fmt"
	"time"

	conversationRepo "clinvetia/database/repository/conversation"
	"clinvetia/models"
	"clinvetia/services/assistant"
	"clinvetia/services/roi"
	"clinvetia/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Prompts of the ROI sub-flow, asked in fixed order.
const (
	promptMonthlyPatients = "Para calcular tu ROI necesito tres datos. ¿Cuántos pacientes atiende tu clínica al mes?"
	promptAverageTicket   = "¿Cuál es el ticket medio por visita, en euros?"
	promptConversionLoss  = "¿Qué porcentaje de solicitudes estimas que se pierden sin convertir?"

	retryReply = "Estamos teniendo problemas técnicos. Inténtalo de nuevo en unos minutos, por favor."

	// syntheticBookingMessage re-enters the booking dialogue once the ROI
	// sub-flow completes.
	syntheticBookingMessage = "Quiero reservar una demo"

	dedupeKeyPrefix = "wa:msg:"
	dedupeTTL       = 24 * time.Hour
)

// Service processes inbound WhatsApp messages.
type Service interface {
	HandleInbound(ctx context.Context, phone, messageID, text string) error
}

// DefaultService implements Service.
type DefaultService struct {
	Conversations conversationRepo.ConversationRepository
	Brain         assistant.Brain
	Transport     Transport
	ROISessions   roi.SessionService
	Dedupe        *redis.Client
	Now           func() time.Time
}

func (s *DefaultService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// HandleInbound processes one inbound text message. Whatever branch runs, the
// conversation is upserted afterwards and the transport is never left without
// a reply attempt; errors degrade to the generic retry message.
func (s *DefaultService) HandleInbound(ctx context.Context, phone, messageID, text string) error {
	if s.alreadyProcessed(ctx, messageID) {
		return nil
	}

	conv, err := s.Conversations.GetByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if conv == nil {
		conv = &models.WhatsAppConversation{Phone: phone}
	}
	conv.LastInboundAt = s.now()

	if conv.ROIStep != "" {
		s.handleROIAnswer(ctx, conv, text)
	} else {
		s.handleAssistantTurn(ctx, conv, text)
	}

	conv.LastOutboundAt = s.now()
	return s.Conversations.Upsert(ctx, conv)
}

// handleROIAnswer consumes the pending ROI question's answer. A message with
// no numeric token re-prompts the same step without advancing.
func (s *DefaultService) handleROIAnswer(ctx context.Context, conv *models.WhatsAppConversation, text string) {
	value, ok := extractNumber(text)
	if !ok {
		s.send(ctx, conv.Phone, "No he entendido el número. "+promptFor(conv.ROIStep))
		return
	}

	switch conv.ROIStep {
	case models.ROIStepMonthlyPatients:
		conv.ROIDraft.MonthlyPatients = &value
		conv.ROIStep = models.ROIStepAverageTicket
		s.send(ctx, conv.Phone, promptAverageTicket)
	case models.ROIStepAverageTicket:
		conv.ROIDraft.AverageTicket = &value
		conv.ROIStep = models.ROIStepConversionLoss
		s.send(ctx, conv.Phone, promptConversionLoss)
	case models.ROIStepConversionLoss:
		conv.ROIDraft.ConversionLoss = &value
		s.finishROIFlow(ctx, conv)
	default:
		// Unknown step left by an older build; restart the sub-flow.
		conv.ROIStep = models.ROIStepMonthlyPatients
		conv.ROIDraft = models.ROIDraft{}
		s.send(ctx, conv.Phone, promptMonthlyPatients)
	}
}

// finishROIFlow computes the estimate, mints the ROI session and immediately
// resumes the booking dialogue with a synthetic message carrying the token.
func (s *DefaultService) finishROIFlow(ctx context.Context, conv *models.WhatsAppConversation) {
	draft := conv.ROIDraft
	conv.ROIStep = ""
	conv.ROIDraft = models.ROIDraft{}

	if draft.MonthlyPatients == nil || draft.AverageTicket == nil || draft.ConversionLoss == nil {
		s.send(ctx, conv.Phone, retryReply)
		return
	}

	estimate := roi.Calculate(*draft.MonthlyPatients, *draft.AverageTicket, *draft.ConversionLoss)
	session, err := s.ROISessions.Create(ctx, roi.Input{
		MonthlyPatients: *draft.MonthlyPatients,
		AverageTicket:   *draft.AverageTicket,
		ConversionLoss:  *draft.ConversionLoss,
	})
	if err != nil {
		utils.GetLogger().Warn("whatsapp: ROI session creation failed",
			zap.String("phone", conv.Phone), zap.Error(err))
		s.send(ctx, conv.Phone, retryReply)
		return
	}
	conv.SessionToken = session.Token

	s.send(ctx, conv.Phone, fmt.Sprintf(
		"Con esos datos, tu clínica pierde unos %.0f € al mes y el ROI estimado del plan es del %.0f%%.",
		estimate.PerdidaMensual, estimate.ROI))

	s.handleAssistantTurn(ctx, conv, syntheticBookingMessage)
}

// handleAssistantTurn forwards the message to the brain and relays its reply.
// Brain failure degrades to the generic retry reply and resets the state to
// idle; the channel is never left unacknowledged.
func (s *DefaultService) handleAssistantTurn(ctx context.Context, conv *models.WhatsAppConversation, text string) {
	resp, err := s.Brain.Respond(ctx, assistant.Request{
		Message:      text,
		State:        conv.State,
		SessionToken: conv.SessionToken,
		BookingToken: conv.BookingToken,
	})
	if err != nil {
		utils.GetLogger().Warn("whatsapp: assistant call failed",
			zap.String("phone", conv.Phone), zap.Error(err))
		conv.State = models.ConversationState{}
		s.send(ctx, conv.Phone, retryReply)
		return
	}

	conv.State = resp.State
	if resp.BookingSet {
		if resp.Booking == nil {
			conv.BookingToken = ""
		} else {
			conv.BookingToken = resp.Booking.AccessToken
		}
	}

	if resp.OpenROICalculator {
		conv.ROIStep = models.ROIStepMonthlyPatients
		conv.ROIDraft = models.ROIDraft{}
		s.send(ctx, conv.Phone, promptMonthlyPatients)
		return
	}

	s.send(ctx, conv.Phone, resp.Reply)
}

// send splits the body under the transport bound and delivers chunks in
// order. Transport failures are logged; the inbound webhook still ACKs.
func (s *DefaultService) send(ctx context.Context, phone, body string) {
	for _, chunk := range SplitMessage(body, MaxMessageLength) {
		if chunk == "" {
			continue
		}
		if err := s.Transport.SendText(ctx, phone, chunk); err != nil {
			utils.GetLogger().Warn("whatsapp: outbound send failed",
				zap.String("phone", phone), zap.Error(err))
			return
		}
	}
}

// alreadyProcessed marks the transport message id in Redis; a duplicate
// delivery is skipped. Redis trouble fails open.
func (s *DefaultService) alreadyProcessed(ctx context.Context, messageID string) bool {
	if s.Dedupe == nil || messageID == "" {
		return false
	}
	fresh, err := s.Dedupe.SetNX(ctx, dedupeKeyPrefix+messageID, 1, dedupeTTL).Result()
	if err != nil {
		utils.GetLogger().Warn("whatsapp: dedupe check failed", zap.Error(err))
		return false
	}
	return !fresh
}

func promptFor(step string) string {
	switch step {
	case models.ROIStepAverageTicket:
		return promptAverageTicket
	case models.ROIStepConversionLoss:
		return promptConversionLoss
	default:
		return promptMonthlyPatients
	}
}
