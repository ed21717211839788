package modgraph

import "slices"

// Container holds the fully wired providers of one module. Containers are
// created and built by an Application; after the build completes they are
// read-only and safe for concurrent use.
type Container struct {
	module   *ModuleDescriptor
	registry *registry
	config   Config

	// appLogger is the application logger; logger tags it with the module name
	appLogger Logger
	logger    Logger
	events    *eventEmitter

	imported map[Identity]*binding
	local    map[Identity]*binding
	exported map[Identity]*binding
	order    []Identity
}

func newContainer(module *ModuleDescriptor, reg *registry, cfg Config, logger Logger, events *eventEmitter) *Container {
	return &Container{
		module:    module,
		registry:  reg,
		config:    cfg,
		appLogger: logger,
		logger:    NewValueInjectionLoggerDecorator(logger, "module", module.Name()),
		events:    events,
	}
}

// build resolves imports, orders and instantiates the local providers, then
// publishes the exports. The container is registered as in progress before
// imports are resolved so that an import cycle leading back here is detected.
func (c *Container) build() (err error) {
	c.registry.begin(c)
	defer func() {
		if err != nil {
			c.logger.Error("Module build failed", "error", err)
			c.events.moduleFailed(c.Name(), err)
		}
	}()

	graph, err := buildGraph(c.Name(), c.module.providers)
	if err != nil {
		return err
	}
	c.logger.Debug("Dependency graph built", "providers", len(graph.order))

	if err = c.resolveImports(); err != nil {
		return err
	}

	sorted, err := topologicalSort(graph)
	if err != nil {
		return err
	}

	if err = c.instantiate(sorted); err != nil {
		return err
	}

	c.registry.finish(c)
	c.logger.Debug("Module built", "order", c.order, "exports", c.module.exports)
	c.events.moduleBuilt(c)
	return nil
}

// Name returns the name of the module the container was built from.
func (c *Container) Name() string {
	return c.module.Name()
}

// Module returns the descriptor the container was built from.
func (c *Container) Module() *ModuleDescriptor {
	return c.module
}

// Order returns the local provider identities in construction order.
func (c *Container) Order() []Identity {
	return slices.Clone(c.order)
}

// Exports returns the exported identities in declaration order.
func (c *Container) Exports() []Identity {
	return c.module.Exports()
}

// GetInstance returns the instance for an exported identity, falling back to
// the global registry. Request-scoped providers are constructed on every call.
func (c *Container) GetInstance(id Identity) (any, error) {
	b, ok := c.exported[id]
	if !ok {
		b, ok = c.registry.global(id)
	}
	if !ok {
		return nil, &UnknownProviderError{Module: c.Name(), Identity: id}
	}

	instance, err := b.get()
	if err != nil {
		return nil, err
	}
	c.events.providerResolved(c.Name(), b.provider)
	return instance, nil
}

// lookup probes local providers, then imports, then the global registry.
func (c *Container) lookup(id Identity) (*binding, bool) {
	if b, ok := c.local[id]; ok {
		return b, true
	}
	if b, ok := c.imported[id]; ok {
		return b, true
	}
	return c.registry.global(id)
}
