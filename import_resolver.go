package modgraph

// resolveImports builds or reuses every imported module in declaration order
// and merges their exports into the table of imported bindings. An identity
// reaching this module from two different providers is ambiguous; the same
// provider re-exported along two paths is not.
func (c *Container) resolveImports() error {
	imports, err := c.module.Imports()
	if err != nil {
		return err
	}

	c.imported = make(map[Identity]*binding)
	for _, m := range imports {
		child, err := c.importContainer(m)
		if err != nil {
			return err
		}

		for _, id := range child.module.exports {
			b := child.exported[id]
			if existing, ok := c.imported[id]; ok && existing != b {
				return &AmbiguousProviderError{
					Identity: id,
					Importer: c.Name(),
					Modules:  []string{existing.module, b.module},
				}
			}
			c.imported[id] = b
		}
	}

	return nil
}

// importContainer returns the already built container for m, or builds it.
func (c *Container) importContainer(m *ModuleDescriptor) (*Container, error) {
	entry, err := c.registry.lookup(m)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		c.logger.Debug("Reusing built module", "import", m.Name())
		return entry.container, nil
	}

	c.logger.Debug("Building imported module", "import", m.Name())
	child := newContainer(m, c.registry, c.config, c.appLogger, c.events)
	if err := child.build(); err != nil {
		return nil, err
	}
	return child, nil
}

// globalModules returns the global modules reachable from root, each listed
// after the modules it imports.
func globalModules(root *ModuleDescriptor) ([]*ModuleDescriptor, error) {
	var out []*ModuleDescriptor
	seen := make(map[*ModuleDescriptor]struct{})

	var visit func(m *ModuleDescriptor) error
	visit = func(m *ModuleDescriptor) error {
		if _, ok := seen[m]; ok {
			return nil
		}
		seen[m] = struct{}{}

		imports, err := m.Imports()
		if err != nil {
			return err
		}
		for _, imported := range imports {
			if err := visit(imported); err != nil {
				return err
			}
		}
		if m.IsGlobal() {
			out = append(out, m)
		}
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return out, nil
}
