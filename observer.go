package modgraph

import (
	"context"

	cloudevents "github.com/cloudevents/sdk-go/v2"
)

// Observer is notified of graph build and resolution events.
// Events use the CloudEvents specification.
type Observer interface {
	// OnEvent is called synchronously from the build or resolve call that
	// produced the event. Build events arrive while the application build
	// lock is held, so observers must not call back into the Application.
	OnEvent(ctx context.Context, event cloudevents.Event) error

	// ObserverID returns a unique identifier for this observer.
	ObserverID() string
}

// ObserverFunc is a functional observer that can be registered with the application
type ObserverFunc func(ctx context.Context, event cloudevents.Event) error

// Event types emitted by an Application.
const (
	EventTypeModuleBuilt          = "com.modgraph.module.built"
	EventTypeModuleFailed         = "com.modgraph.module.failed"
	EventTypeProviderInstantiated = "com.modgraph.provider.instantiated"
	EventTypeProviderResolved     = "com.modgraph.provider.resolved"
)

// ModuleEventData is the payload of module events.
type ModuleEventData struct {
	Module  string     `json:"module"`
	Order   []Identity `json:"order,omitempty"`
	Exports []Identity `json:"exports,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// ProviderEventData is the payload of provider events.
type ProviderEventData struct {
	Module   string   `json:"module"`
	Identity Identity `json:"identity"`
	Scope    Scope    `json:"scope"`
}

// FunctionalObserver adapts a function to the Observer interface.
type FunctionalObserver struct {
	id      string
	handler func(ctx context.Context, event cloudevents.Event) error
}

// NewFunctionalObserver creates a new observer that uses the provided function
// to handle events.
func NewFunctionalObserver(id string, handler func(ctx context.Context, event cloudevents.Event) error) Observer {
	return &FunctionalObserver{
		id:      id,
		handler: handler,
	}
}

// OnEvent implements the Observer interface by calling the handler function.
func (f *FunctionalObserver) OnEvent(ctx context.Context, event cloudevents.Event) error {
	return f.handler(ctx, event)
}

// ObserverID implements the Observer interface by returning the observer ID.
func (f *FunctionalObserver) ObserverID() string {
	return f.id
}
