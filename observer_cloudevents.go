package modgraph

import (
	"context"
	"fmt"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
)

// NewCloudEvent creates a new CloudEvent with the specified parameters.
func NewCloudEvent(eventType, source string, data any, metadata map[string]any) cloudevents.Event {
	event := cloudevents.NewEvent()

	event.SetID(generateEventID())
	event.SetSource(source)
	event.SetType(eventType)
	event.SetTime(time.Now())
	event.SetSpecVersion(cloudevents.VersionV1)

	if data != nil {
		_ = event.SetData(cloudevents.ApplicationJSON, data)
	}

	for key, value := range metadata {
		event.SetExtension(key, value)
	}

	return event
}

// generateEventID returns a time-ordered UUIDv7, falling back to v4.
func generateEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// ValidateCloudEvent validates that a CloudEvent conforms to the specification.
func ValidateCloudEvent(event cloudevents.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("CloudEvent validation failed: %w", err)
	}
	return nil
}

// eventEmitter delivers events to observers synchronously. A nil emitter
// drops every event.
type eventEmitter struct {
	source    string
	sessionID string
	observers []Observer
	logger    Logger
}

func (e *eventEmitter) emit(eventType string, data any) {
	if e == nil || len(e.observers) == 0 {
		return
	}
	event := NewCloudEvent(eventType, e.source, data, map[string]any{"session": e.sessionID})
	if err := ValidateCloudEvent(event); err != nil {
		e.logger.Error("Invalid CloudEvent", "eventType", eventType, "error", err)
		return
	}

	ctx := context.Background()
	for _, observer := range e.observers {
		e.notify(ctx, observer, event)
	}
}

func (e *eventEmitter) notify(ctx context.Context, observer Observer, event cloudevents.Event) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Observer panicked", "observerID", observer.ObserverID(), "event", event.Type(), "panic", r)
		}
	}()
	if err := observer.OnEvent(ctx, event); err != nil {
		e.logger.Error("Observer error", "observerID", observer.ObserverID(), "event", event.Type(), "error", err)
	}
}

func (e *eventEmitter) moduleBuilt(c *Container) {
	e.emit(EventTypeModuleBuilt, ModuleEventData{Module: c.Name(), Order: c.Order(), Exports: c.Exports()})
}

func (e *eventEmitter) moduleFailed(module string, err error) {
	e.emit(EventTypeModuleFailed, ModuleEventData{Module: module, Error: err.Error()})
}

func (e *eventEmitter) providerInstantiated(module string, p ProviderDescriptor) {
	e.emit(EventTypeProviderInstantiated, ProviderEventData{Module: module, Identity: p.Identity(), Scope: p.Scope()})
}

func (e *eventEmitter) providerResolved(module string, p ProviderDescriptor) {
	e.emit(EventTypeProviderResolved, ProviderEventData{Module: module, Identity: p.Identity(), Scope: p.Scope()})
}
