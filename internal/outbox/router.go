package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	domain "leaguehub/internal/domain/outbox"
	"leaguehub/internal/events"
	"leaguehub/pkg/logger"
)

// HandlerFunc processes one decoded event. The envelope carries the wire
// metadata for delivery.
type HandlerFunc func(ctx context.Context, env events.Envelope, evt events.Event) error

// Router maps event kinds to handlers through an explicit dispatch table.
// Retired kinds are logged no-ops. Any other unregistered kind is a hard
// failure: succeeding silently would hide a missing handler and lose data in
// whatever listens downstream.
type Router struct {
	handlers map[events.EventType]HandlerFunc
	log      *logger.Logger
}

func NewRouter(log *logger.Logger) *Router {
	return &Router{
		handlers: make(map[events.EventType]HandlerFunc),
		log:      log,
	}
}

// Handle registers a handler for kind, replacing any previous registration.
func (r *Router) Handle(kind events.EventType, h HandlerFunc) {
	r.handlers[kind] = h
}

// Route decodes and dispatches one outbox event.
func (r *Router) Route(ctx context.Context, e domain.OutboxEvent) error {
	kind := events.EventType(e.EventType)

	if events.IsRetired(kind) {
		r.log.Infof("outbox: skipping retired event type %s (id=%s)", kind, e.ID)
		return nil
	}

	handler, ok := r.handlers[kind]
	if !ok {
		return fmt.Errorf("No handler implemented for event type %q", kind)
	}

	evt, err := events.Decode(kind, e.Payload)
	if err != nil {
		return err
	}

	env := events.Envelope{
		EventType:  e.EventType,
		SourceType: e.SourceType,
		SourceID:   e.SourceID,
		OccurredAt: e.CreatedAt.UTC(),
		Payload:    json.RawMessage(e.Payload),
	}
	return handler(ctx, env, evt)
}

// NewPublishRouter wires every live event kind to a handler that publishes the
// envelope on the channel the Discord gateway subscribes to.
func NewPublishRouter(pub events.Publisher, log *logger.Logger) *Router {
	r := NewRouter(log)
	publish := func(ctx context.Context, env events.Envelope, _ events.Event) error {
		payload, err := events.MarshalEnvelope(env)
		if err != nil {
			return err
		}
		return pub.Publish(ctx, events.RouteChannel(env), payload)
	}
	r.Handle(events.EventMemberJoined, publish)
	r.Handle(events.EventMemberApproved, publish)
	r.Handle(events.EventMemberRejected, publish)
	r.Handle(events.EventMemberLeft, publish)
	r.Handle(events.EventMemberReactivated, publish)
	return r
}
