package modgraph

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// Application owns one resolution session: the root module, the registry of
// built modules and the global providers. Each Application starts from an empty
// registry, so two applications never share instances.
type Application struct {
	root      *ModuleDescriptor
	id        string
	logger    Logger
	config    Config
	observers []Observer

	mu        sync.Mutex
	registry  *registry
	container *Container
	buildErr  error
	built     bool
}

// NewApplication creates an application for the root module. Nothing is built
// until the first Resolve or Container call.
func NewApplication(root *ModuleDescriptor, opts ...Option) (*Application, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: root module", ErrModuleNil)
	}

	app := &Application{
		root:     root,
		id:       uuid.NewString(),
		logger:   discardLogger(),
		config:   DefaultConfig(),
		registry: newRegistry(),
	}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// ID returns the unique identifier of this resolution session.
func (app *Application) ID() string {
	return app.id
}

// Logger returns the application logger.
func (app *Application) Logger() Logger {
	return app.logger
}

// Container builds the root module on first use and returns its container.
// A failed build is not retried: later calls return the same error.
func (app *Application) Container() (*Container, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.built {
		return app.container, app.buildErr
	}
	app.built = true

	events := &eventEmitter{
		source:    app.config.EventSource,
		sessionID: app.id,
		observers: app.observers,
		logger:    app.logger,
	}

	app.logger.Debug("Building module graph", "root", app.root.Name(), "session", app.id)
	root, err := app.build(events)
	if err != nil {
		app.buildErr = fmt.Errorf("failed to build module %q: %w", app.root.Name(), err)
		return nil, app.buildErr
	}
	app.container = root
	app.logger.Info("Module graph built", "root", app.root.Name(), "modules", len(app.registry.order))
	return app.container, nil
}

// build constructs every reachable global module before the root, so global
// exports are visible to all containers whatever the import order. A global
// root is built by that pass and reused.
func (app *Application) build(events *eventEmitter) (*Container, error) {
	root := newContainer(app.root, app.registry, app.config, app.logger, events)

	globals, err := globalModules(app.root)
	if err != nil {
		return nil, err
	}
	for _, m := range globals {
		app.logger.Debug("Building global module", "module", m.Name())
		if _, err := root.importContainer(m); err != nil {
			return nil, err
		}
	}

	entry, err := app.registry.lookup(app.root)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		return entry.container, nil
	}
	if err := root.build(); err != nil {
		return nil, err
	}
	return root, nil
}

// Resolve returns the instance registered under id by the root module's
// exports or the global registry.
func (app *Application) Resolve(id Identity) (any, error) {
	c, err := app.Container()
	if err != nil {
		return nil, err
	}
	return c.GetInstance(id)
}

// Module returns the built container for a module name. It reports false
// before the graph is built or when no module of that name was reached.
func (app *Application) Module(name string) (*Container, bool) {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.container == nil {
		return nil, false
	}
	entry, ok := app.registry.modules[name]
	if !ok {
		return nil, false
	}
	return entry.container, true
}

// Modules returns snapshots of every built module in build completion order,
// so imports precede their importers.
func (app *Application) Modules() ([]ModuleSnapshot, error) {
	if _, err := app.Container(); err != nil {
		return nil, err
	}
	containers := app.registry.built()
	out := make([]ModuleSnapshot, 0, len(containers))
	for _, c := range containers {
		out = append(out, c.Describe())
	}
	return out, nil
}

// Globals returns the globally registered identities with their declaring module.
func (app *Application) Globals() (map[Identity]string, error) {
	if _, err := app.Container(); err != nil {
		return nil, err
	}
	out := make(map[Identity]string, len(app.registry.globals))
	for id, b := range app.registry.globals {
		out[id] = b.module
	}
	return out, nil
}

// Resolve resolves id from app and asserts the instance to T.
func Resolve[T any](app *Application, id Identity) (T, error) {
	var zero T
	instance, err := app.Resolve(id)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T, not %s", ErrInstanceWrongType, id, instance, reflect.TypeFor[T]())
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](app *Application, id Identity) T {
	v, err := Resolve[T](app, id)
	if err != nil {
		panic(err)
	}
	return v
}
