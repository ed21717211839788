package modgraph

import (
	"errors"
	"fmt"
)

// ErrLoggerNotSet is returned when WithLogger receives a nil logger.
var ErrLoggerNotSet = errors.New("logger is nil")

// Option configures an Application.
type Option func(*Application) error

// WithLogger sets the logger for the application
func WithLogger(logger Logger) Option {
	return func(app *Application) error {
		if logger == nil {
			return ErrLoggerNotSet
		}
		app.logger = logger
		return nil
	}
}

// WithConfig replaces the default configuration. An empty EventSource keeps
// the default one.
func WithConfig(cfg Config) Option {
	return func(app *Application) error {
		if cfg.EventSource == "" {
			cfg.EventSource = DefaultConfig().EventSource
		}
		app.config = cfg
		return nil
	}
}

// WithObserver registers observer functions for build and resolve events.
func WithObserver(observers ...ObserverFunc) Option {
	return func(app *Application) error {
		for _, fn := range observers {
			if fn == nil {
				continue
			}
			id := fmt.Sprintf("observer-%d", len(app.observers)+1)
			app.observers = append(app.observers, NewFunctionalObserver(id, fn))
		}
		return nil
	}
}

// WithObservers registers Observer implementations.
func WithObservers(observers ...Observer) Option {
	return func(app *Application) error {
		app.observers = append(app.observers, observers...)
		return nil
	}
}
