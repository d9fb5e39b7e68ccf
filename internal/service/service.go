// Package service implements the back office operations on top of the
// repositories, the authorization guard and the ticket router.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ShabiGardezi/crm-hunfa/internal/access"
	"github.com/ShabiGardezi/crm-hunfa/internal/events"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

// Caller is the authenticated identity plus the client address it came from.
type Caller struct {
	Identity *access.Identity
	Origin   string
}

func (c Caller) attempt(op access.Operation, action string, metadata map[string]any) access.Attempt {
	return access.Attempt{Operation: op, Origin: c.Origin, Action: action, Metadata: metadata}
}

func (c Caller) actor() events.Actor {
	if c.Identity == nil {
		return events.Actor{}
	}
	return events.Actor{UserID: c.Identity.ID, Role: c.Identity.Role}
}

// authorizer is the guard as seen by services.
type authorizer interface {
	Authorize(ctx context.Context, identity *access.Identity, attempt access.Attempt) (access.Decision, error)
}

func authorize(ctx context.Context, guard authorizer, caller Caller, op access.Operation, action string, metadata map[string]any) (access.Decision, error) {
	return guard.Authorize(ctx, caller.Identity, caller.attempt(op, action, metadata))
}

type publisher struct {
	dispatcher events.Dispatcher
	now        func() time.Time
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		now := time.Now
		if p.now != nil {
			now = p.now
		}
		event.Timestamp = now().UTC()
	}
	_ = p.dispatcher.Publish(ctx, event)
}

func requireID(value, field string) error {
	if _, err := uuid.Parse(strings.TrimSpace(value)); err != nil {
		return apperrors.NewValidationError("invalid "+field, map[string]any{field: value})
	}
	return nil
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
