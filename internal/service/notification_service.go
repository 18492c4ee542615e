package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/albedo-hq/support-portal/internal/events"
)

// NotificationService turns ticket events into outbound email. Send
// failures are logged and swallowed: the mutation that fired the event
// has already committed and must never fail on mail transport.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     Mailer
	logger     *zap.Logger
	baseURL    string
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer Mailer, logger *zap.Logger, baseURL string) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
		baseURL:    baseURL,
	}
}

// RegisterHandlers subscribes to ticket events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketReplied, n.handleTicketReplied)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for ticket_created", zap.String("ticket_id", event.TicketID))
		return nil
	}
	err := n.mailer.SendAcknowledgment(payload.Email, AcknowledgmentData{
		Name:     payload.Name,
		Subject:  payload.Subject,
		Category: payload.CategoryName,
		TrackURL: n.trackURL(payload.Token),
	})
	if err != nil {
		n.logger.Error("failed to send acknowledgment email",
			zap.String("ticket_id", event.TicketID), zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleTicketReplied(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketRepliedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for ticket_replied", zap.String("ticket_id", event.TicketID))
		return nil
	}
	err := n.mailer.SendReply(payload.Email, ReplyData{
		Name:     payload.Name,
		Subject:  payload.Subject,
		Reply:    payload.Reply,
		TrackURL: n.trackURL(payload.Token),
	})
	if err != nil {
		n.logger.Error("failed to send reply email",
			zap.String("ticket_id", event.TicketID), zap.Error(err))
	}
	return nil
}

func (n *NotificationService) trackURL(token string) string {
	return fmt.Sprintf("%s/support/track/%s", n.baseURL, token)
}
