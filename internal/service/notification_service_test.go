package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ShabiGardezi/crm-hunfa/internal/events"
)

type forwardRecorder struct {
	accept bool
	got    []events.EventType
}

func (f *forwardRecorder) Forward(event events.Event) bool {
	f.got = append(f.got, event.Type)
	return f.accept
}

func TestNotificationServiceForwardsEveryEventType(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	fwd := &forwardRecorder{accept: true}
	NewNotificationService(dispatcher, zap.NewNop(), fwd).RegisterHandlers()

	for _, eventType := range events.AllEventTypes() {
		require.NoError(t, dispatcher.Publish(context.Background(), events.Event{ID: "e", Type: eventType}))
	}
	assert.Equal(t, events.AllEventTypes(), fwd.got)
}

func TestNotificationServiceToleratesDroppedForward(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, nil, &forwardRecorder{}).RegisterHandlers()

	assert.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketCreated}))
}
