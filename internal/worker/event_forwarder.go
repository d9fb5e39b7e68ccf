package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ShabiGardezi/crm-hunfa/internal/events"
)

const publishTimeout = 3 * time.Second

// EventSink receives forwarded events.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

// EventForwarder pushes domain events to the broker off the request path.
// Delivery is best effort; nothing is retried.
type EventForwarder struct {
	queue   chan events.Event
	sink    EventSink
	logger  *zap.Logger
	stopped chan struct{}
}

// NewEventForwarder builds a forwarder with a buffer of size events.
func NewEventForwarder(sink EventSink, size int, logger *zap.Logger) *EventForwarder {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventForwarder{
		queue:   make(chan events.Event, size),
		sink:    sink,
		logger:  logger,
		stopped: make(chan struct{}),
	}
}

// Forward enqueues event and reports false if the buffer is full.
func (f *EventForwarder) Forward(event events.Event) bool {
	select {
	case f.queue <- event:
		return true
	default:
		return false
	}
}

// Run publishes events until ctx is cancelled.
func (f *EventForwarder) Run(ctx context.Context) {
	defer close(f.stopped)
	for {
		select {
		case event := <-f.queue:
			f.publish(ctx, event)
		case <-ctx.Done():
			return
		}
	}
}

// Done is closed once Run has returned.
func (f *EventForwarder) Done() <-chan struct{} {
	return f.stopped
}

func (f *EventForwarder) publish(ctx context.Context, event events.Event) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := f.sink.Publish(ctx, event); err != nil {
		f.logger.Warn("forward event",
			zap.Error(err),
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
	}
}
