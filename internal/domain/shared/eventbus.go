package shared

import "context"

// EventHandler processes a single domain event
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
}

// EventHandlerFunc adapts a function to the EventHandler interface
type EventHandlerFunc func(ctx context.Context, event DomainEvent) error

// Handle calls the wrapped function
func (f EventHandlerFunc) Handle(ctx context.Context, event DomainEvent) error {
	return f(ctx, event)
}

// EventPublisher publishes domain events to interested handlers
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus is an EventPublisher that also supports subscriptions
type EventBus interface {
	EventPublisher
	Subscribe(eventType string, handler EventHandler)
}
