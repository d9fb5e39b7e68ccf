package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ShabiGardezi/crm-hunfa/internal/events"
)

// Forwarder hands events to an out-of-process sink. Forward must not block.
type Forwarder interface {
	Forward(event events.Event) bool
}

// NotificationService logs domain events and forwards them to the broker.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	forwarder  Forwarder
}

// NewNotificationService creates the service. forwarder may be nil.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, forwarder Forwarder) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		forwarder:  forwarder,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, eventType := range events.AllEventTypes() {
		n.dispatcher.Subscribe(eventType, n.handle)
	}
}

func (n *NotificationService) handle(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("subject_id", event.SubjectID),
		zap.String("actor_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))
	if n.forwarder == nil {
		return nil
	}
	if !n.forwarder.Forward(event) {
		n.logger.Warn("event forward dropped",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
	}
	return nil
}
