package modgraph

// instantiate wires the sorted providers. Each dependency is resolved against
// local providers built earlier in this pass, then imports, then globals.
// Singletons are constructed here; request providers only record their
// resolved dependencies and construct on every resolve. Finally the exported
// table is published and, for global modules, merged into the global registry.
func (c *Container) instantiate(sorted []ProviderDescriptor) error {
	if err := c.checkVisibility(sorted); err != nil {
		return err
	}

	c.local = make(map[Identity]*binding, len(sorted))
	c.order = make([]Identity, 0, len(sorted))

	for _, p := range sorted {
		id := p.Identity()
		b := &binding{
			provider: p,
			module:   c.Name(),
			deps:     make([]*binding, 0, len(p.dependencies)),
			events:   c.events,
		}

		for _, dep := range p.dependencies {
			depBinding, ok := c.lookup(dep)
			if !ok {
				return &MissingDependencyError{Module: c.Name(), Provider: id, Dependency: dep}
			}
			if c.config.WarnCaptiveDependencies && !p.Scope().IsCompatibleWith(depBinding.provider.Scope()) {
				c.logger.Warn("Provider captures a request-scoped dependency",
					"provider", id, "scope", p.Scope(), "dependency", dep)
			}
			b.deps = append(b.deps, depBinding)
		}

		if p.Scope().IsCacheable() {
			instance, err := b.construct()
			if err != nil {
				return err
			}
			b.instance = instance
			c.logger.Debug("Provider instantiated", "provider", id)
		}

		c.local[id] = b
		c.order = append(c.order, id)
	}

	return c.publishExports()
}

// checkVisibility rejects local providers that collide with an imported or
// global identity, and exports that name nothing this module can see. It runs
// before any constructor is called.
func (c *Container) checkVisibility(sorted []ProviderDescriptor) error {
	localIDs := make(map[Identity]struct{}, len(sorted))
	for _, p := range sorted {
		id := p.Identity()
		localIDs[id] = struct{}{}

		if imported, ok := c.imported[id]; ok {
			return &AmbiguousProviderError{
				Identity: id,
				Importer: c.Name(),
				Modules:  []string{imported.module, c.Name()},
			}
		}
		if global, ok := c.registry.global(id); ok && !c.config.AllowGlobalShadowing {
			return &AmbiguousProviderError{
				Identity: id,
				Importer: c.Name(),
				Modules:  []string{global.module, c.Name()},
				Global:   true,
			}
		}
	}

	for _, id := range c.module.exports {
		if _, ok := localIDs[id]; ok {
			continue
		}
		if _, ok := c.imported[id]; ok {
			continue
		}
		return &InvalidExportError{Module: c.Name(), Identity: id}
	}

	return nil
}

// publishExports fills the exported table and registers global exports.
func (c *Container) publishExports() error {
	c.exported = make(map[Identity]*binding, len(c.module.exports))
	for _, id := range c.module.exports {
		b, ok := c.local[id]
		if !ok {
			b = c.imported[id]
		}
		c.exported[id] = b

		if c.module.IsGlobal() {
			if err := c.registry.registerGlobal(c.Name(), id, b); err != nil {
				return err
			}
		}
	}
	return nil
}
